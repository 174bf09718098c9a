package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-schemaform/pkg/model"
	"github.com/goliatone/go-schemaform/pkg/schema"
)

func (a *app) keyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "key <title>",
		Short: "Print the property key derived from a title",
		Args:  cobra.MinimumNArgs(1),
		RunE: a.run(func(_ *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(a.out, model.DeriveKey(strings.Join(args, " ")))
			return err
		}),
	}
}

func (a *app) modelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "model <schema>",
		Short: "Print the ordered model of a schema file or URL",
		Args:  cobra.ExactArgs(1),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			m, err := a.loadModel(cmd.Context(), a.orchestrator(), args[0])
			if err != nil {
				return err
			}
			return a.printJSON(m)
		}),
	}
}

func (a *app) schemaCmd() *cobra.Command {
	var (
		creating bool
		format   string
	)
	cmd := &cobra.Command{
		Use:   "schema <model.json>",
		Short: "Serialize a model file back into a schema",
		Args:  cobra.ExactArgs(1),
		RunE: a.run(func(_ *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			var m model.Model
			if err := json.Unmarshal(raw, &m); err != nil {
				return fmt.Errorf("parse model %s: %w", args[0], err)
			}
			if err := m.Validate(); err != nil {
				return err
			}
			s, err := model.NewBuilder(model.WithMessages(a.messages())).ToSchema(m, creating)
			if err != nil {
				return err
			}
			return a.printSchema(s, format)
		}),
	}
	cmd.Flags().BoolVar(&creating, "create", false, "derive every key from its title")
	cmd.Flags().StringVar(&format, "format", string(schema.FormatJSON), "output format (json or yaml)")
	return cmd
}

func (a *app) printSchema(s schema.Schema, format string) error {
	data, err := schema.Encode(s, schema.Format(format))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.out, strings.TrimRight(string(data), "\n"))
	return err
}
