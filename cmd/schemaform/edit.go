package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-schemaform/pkg/model"
	"github.com/goliatone/go-schemaform/pkg/orchestrator"
	"github.com/goliatone/go-schemaform/pkg/schema"
	"github.com/goliatone/go-schemaform/pkg/store"
)

func (a *app) editCmd() *cobra.Command {
	var (
		name    string
		example bool
		format  string
	)
	cmd := &cobra.Command{
		Use:   "edit [schema]",
		Short: "Edit a schema interactively",
		Long: `Edit a schema interactively. With --name the result is saved to the
database; the stored schema is opened when no schema argument is given.
Without --name the edited schema is printed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var options []orchestrator.Option
			if name != "" {
				db, err := a.openStore()
				if err != nil {
					return err
				}
				defer db.Close()
				options = append(options, orchestrator.WithStore(db))
			}
			o := a.orchestrator(options...)

			var (
				m        model.Model
				creating bool
				err      error
			)
			switch {
			case len(args) == 1:
				m, err = a.loadModel(ctx, o, args[0])
			case name != "":
				m, err = o.OpenModel(ctx, name)
				if errors.Is(err, store.ErrNotFound) {
					m, creating, err = a.starter(example), true, nil
				}
			default:
				m, creating = a.starter(example), true
			}
			if err != nil {
				return err
			}

			edited, err := a.prompter().EditModel(ctx, m)
			if err != nil {
				return err
			}

			if name != "" {
				s, err := o.SaveModel(ctx, name, edited, creating)
				if err != nil {
					return err
				}
				return a.printSchema(s, format)
			}
			s, err := model.NewBuilder(model.WithMessages(a.messages())).ToSchema(edited, creating)
			if err != nil {
				return err
			}
			return a.printSchema(s, format)
		}),
	}
	cmd.Flags().StringVar(&name, "name", "", "store the result under this name")
	cmd.Flags().BoolVar(&example, "example", false, "start new schemas from the example property")
	cmd.Flags().StringVar(&format, "format", string(schema.FormatJSON), "output format (json or yaml)")
	return cmd
}

func (a *app) starter(example bool) model.Model {
	if example {
		return model.ExampleModel(a.messages())
	}
	return model.EmptyModel()
}
