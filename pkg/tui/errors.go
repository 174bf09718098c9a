package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrTooManyAttempts is returned by FillForm once the attempt limit is
	// reached. It wraps the last validation error.
	ErrTooManyAttempts = errors.New("tui: too many attempts")
)
