package tui

import "github.com/goliatone/go-schemaform/pkg/i18n"

// Theme captures optional message prefixes.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// Option configures a Prompter.
type Option func(*Prompter)

// WithPromptDriver overrides the prompt driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(p *Prompter) {
		if driver != nil {
			p.driver = driver
		}
	}
}

// WithMessages sets the message source for prompt labels and errors.
func WithMessages(messages i18n.MessageSource) Option {
	return func(p *Prompter) {
		if messages != nil {
			p.messages = messages
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(p *Prompter) {
		p.theme = theme
	}
}

// WithMaxAttempts bounds how often FillForm re-prompts. Zero means no limit.
func WithMaxAttempts(n int) Option {
	return func(p *Prompter) {
		if n >= 0 {
			p.maxAttempts = n
		}
	}
}
