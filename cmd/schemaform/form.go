package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func (a *app) coerceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "coerce <schema> [key=value...]",
		Short: "Coerce raw key=value input into typed JSON values",
		Args:  cobra.MinimumNArgs(1),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			raw, err := parsePairs(args[1:])
			if err != nil {
				return err
			}
			o := a.orchestrator()
			m, err := a.loadModel(cmd.Context(), o, args[0])
			if err != nil {
				return err
			}
			values, err := o.Submit(cmd.Context(), m, raw)
			if err != nil {
				return err
			}
			return a.printJSON(values)
		}),
	}
}

func (a *app) fillCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fill <schema>",
		Short: "Fill a form interactively and print the typed values",
		Args:  cobra.ExactArgs(1),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			m, err := a.loadModel(cmd.Context(), a.orchestrator(), args[0])
			if err != nil {
				return err
			}
			values, err := a.prompter().FillForm(cmd.Context(), m)
			if err != nil {
				return err
			}
			return a.printJSON(values)
		}),
	}
}

// parsePairs splits key=value arguments. Values may be empty and may contain
// further '=' characters.
func parsePairs(args []string) (map[string]string, error) {
	out := make(map[string]string, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid input %q, expected key=value", arg)
		}
		out[key] = value
	}
	return out, nil
}
