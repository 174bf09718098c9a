// Package orchestrator wires the editing pipeline together: load a stored
// schema, convert it to an editable model, coerce submitted form input, and
// persist the edited model. Each step logs through log/slog.
package orchestrator
