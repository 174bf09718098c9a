// Package model converts between persisted object schemas and the ordered,
// editable model a form renders. Property keys for new properties are derived
// from titles with DeriveKey; existing keys are kept on edit so data stored
// under them is not orphaned. Every error carries text obtained from an
// i18n.MessageSource, the English catalog by default.
package model
