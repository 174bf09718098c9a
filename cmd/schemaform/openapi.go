package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-schemaform/pkg/openapi"
	"github.com/goliatone/go-schemaform/pkg/schema"
)

func (a *app) openapiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "openapi",
		Short: "Move schemas in and out of OpenAPI documents",
	}

	var (
		storeAs string
		format  string
	)
	importCmd := &cobra.Command{
		Use:   "import <document> [component]",
		Short: "Convert an OpenAPI component schema; lists components when none is named",
		Args:  cobra.RangeArgs(1, 2),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			if len(args) == 1 {
				names, err := openapi.Components(cmd.Context(), raw)
				if err != nil {
					return err
				}
				for _, name := range names {
					fmt.Fprintln(a.out, name)
				}
				return nil
			}

			s, err := openapi.ImportComponent(cmd.Context(), raw, args[1])
			if err != nil {
				return err
			}
			if storeAs != "" {
				db, err := a.openStore()
				if err != nil {
					return err
				}
				defer db.Close()
				if err := db.Put(cmd.Context(), storeAs, s); err != nil {
					return err
				}
			}
			return a.printSchema(s, format)
		}),
	}
	importCmd.Flags().StringVar(&storeAs, "store", "", "also store the schema under this name")
	importCmd.Flags().StringVar(&format, "format", string(schema.FormatJSON), "output format (json or yaml)")

	var (
		component string
		title     string
		fromStore bool
	)
	exportCmd := &cobra.Command{
		Use:   "export <schema>",
		Short: "Wrap a schema file, or a stored schema with --stored, as an OpenAPI component",
		Args:  cobra.ExactArgs(1),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			var s schema.Schema
			if fromStore {
				db, err := a.openStore()
				if err != nil {
					return err
				}
				defer db.Close()
				if s, err = db.Get(cmd.Context(), args[0]); err != nil {
					return err
				}
			} else {
				src, err := schema.ParseSource(args[0])
				if err != nil {
					return err
				}
				doc, err := a.loader().Load(cmd.Context(), src)
				if err != nil {
					return err
				}
				if s, err = schema.Decode(doc); err != nil {
					return err
				}
			}
			name := component
			if name == "" {
				name = args[0]
			}
			data, err := openapi.ExportComponent(cmd.Context(), s, name, title)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(a.out, string(data))
			return err
		}),
	}
	exportCmd.Flags().StringVar(&component, "component", "", "component name (defaults to the argument)")
	exportCmd.Flags().StringVar(&title, "title", "", "document title")
	exportCmd.Flags().BoolVar(&fromStore, "stored", false, "read the schema from the database")

	cmd.AddCommand(importCmd, exportCmd)
	return cmd
}
