package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-schemaform/pkg/schema"
)

func (a *app) storeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Manage schemas kept in the local database",
	}

	var format string
	get := &cobra.Command{
		Use:   "get <name>",
		Short: "Print a stored schema",
		Args:  cobra.ExactArgs(1),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			db, err := a.openStore()
			if err != nil {
				return err
			}
			defer db.Close()
			s, err := db.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.printSchema(s, format)
		}),
	}
	get.Flags().StringVar(&format, "format", string(schema.FormatJSON), "output format (json or yaml)")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List stored schema names",
			Args:  cobra.NoArgs,
			RunE: a.run(func(cmd *cobra.Command, _ []string) error {
				db, err := a.openStore()
				if err != nil {
					return err
				}
				defer db.Close()
				names, err := db.List(cmd.Context())
				if err != nil {
					return err
				}
				for _, name := range names {
					fmt.Fprintln(a.out, name)
				}
				return nil
			}),
		},
		get,
		&cobra.Command{
			Use:   "put <name> <schema>",
			Short: "Store a schema file or URL under name",
			Args:  cobra.ExactArgs(2),
			RunE: a.run(func(cmd *cobra.Command, args []string) error {
				src, err := schema.ParseSource(args[1])
				if err != nil {
					return err
				}
				doc, err := a.loader().Load(cmd.Context(), src)
				if err != nil {
					return err
				}
				s, err := schema.Decode(doc)
				if err != nil {
					return err
				}
				db, err := a.openStore()
				if err != nil {
					return err
				}
				defer db.Close()
				if err := db.Put(cmd.Context(), args[0], s); err != nil {
					return err
				}
				a.logger.Info("schema stored", "name", args[0], "properties", s.Properties.Len())
				return nil
			}),
		},
		&cobra.Command{
			Use:   "delete <name>",
			Short: "Delete a stored schema",
			Args:  cobra.ExactArgs(1),
			RunE: a.run(func(cmd *cobra.Command, args []string) error {
				db, err := a.openStore()
				if err != nil {
					return err
				}
				defer db.Close()
				return db.Delete(cmd.Context(), args[0])
			}),
		},
	)
	return cmd
}
