package main

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-schemaform/pkg/schema"
	"github.com/goliatone/go-schemaform/pkg/validation"
)

type violation struct {
	file     string
	location string
	message  string
}

// errInvalid is returned after violations have been printed.
var errInvalid = errors.New("validation failed")

func (a *app) validateCmd() *cobra.Command {
	var document string
	cmd := &cobra.Command{
		Use:   "validate <schema>...",
		Short: "Check schemas against the supported subset",
		Long: `Check schemas against the supported subset. With --document, a JSON value
file is also validated against the (single) schema.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if document != "" && len(args) != 1 {
				return a.reportErr(errors.New("--document needs exactly one schema"))
			}

			var violations []violation
			for _, path := range args {
				src, err := schema.ParseSource(path)
				if err != nil {
					return a.reportErr(err)
				}
				doc, err := a.loader().Load(cmd.Context(), src)
				if err != nil {
					return a.reportErr(fmt.Errorf("validate %s: %w", path, err))
				}
				for _, issue := range validation.ValidateSchemaDocument(doc, a.messages()).Issues {
					violations = append(violations, violation{file: path, location: issue.Path, message: issue.Message})
				}

				if document == "" {
					continue
				}
				found, err := a.validateValues(doc, document)
				if err != nil {
					return a.reportErr(err)
				}
				violations = append(violations, found...)
			}

			if len(violations) == 0 {
				return nil
			}
			sort.SliceStable(violations, func(i, j int) bool {
				if violations[i].file == violations[j].file {
					return violations[i].location < violations[j].location
				}
				return violations[i].file < violations[j].file
			})
			for _, v := range violations {
				fmt.Fprintf(a.errOut, "%s: %s -> %s\n", v.file, v.location, v.message)
			}
			return errInvalid
		},
	}
	cmd.Flags().StringVar(&document, "document", "", "JSON file with typed values to validate")
	return cmd
}

func (a *app) validateValues(doc schema.Document, path string) ([]violation, error) {
	s, err := schema.Decode(doc)
	if err != nil {
		return nil, validation.NewParseError(a.messages(), err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var values any
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	result, err := validation.ValidateDocument(s, values, a.messages())
	if err != nil {
		return nil, err
	}
	out := make([]violation, 0, len(result.Issues))
	for _, issue := range result.Issues {
		out = append(out, violation{file: path, location: issue.Path, message: issue.Message})
	}
	return out, nil
}
