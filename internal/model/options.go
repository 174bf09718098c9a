package model

import "github.com/goliatone/go-schemaform/pkg/i18n"

// Options configures the behaviour of the Builder. Options are constructed by
// the public adapter in pkg/model and passed into New.
type Options struct {
	Messages i18n.MessageSource
	// Labeler supplies a title for properties stored without one. When nil
	// the property id is used as is.
	Labeler func(string) string
}

func defaultOptions() Options {
	return Options{
		Messages: i18n.Default(),
		Labeler:  func(id string) string { return id },
	}
}
