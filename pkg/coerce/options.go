package coerce

import "github.com/goliatone/go-schemaform/pkg/i18n"

// Option customises a Coerce call.
type Option func(*config)

type config struct {
	messages i18n.MessageSource
}

func newConfig(opts []Option) config {
	cfg := config{messages: i18n.Default()}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.messages == nil {
		cfg.messages = i18n.Default()
	}
	return cfg
}

// WithMessages sets the message source used for issue text.
func WithMessages(messages i18n.MessageSource) Option {
	return func(cfg *config) {
		cfg.messages = messages
	}
}
