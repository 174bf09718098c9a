package model

import internalmodel "github.com/goliatone/go-schemaform/internal/model"

// PropertyType re-exports the internal PropertyType enumeration.
type PropertyType = internalmodel.PropertyType

const (
	PropertyTypeString  = internalmodel.PropertyTypeString
	PropertyTypeInteger = internalmodel.PropertyTypeInteger
	PropertyTypeNumber  = internalmodel.PropertyTypeNumber
	PropertyTypeBoolean = internalmodel.PropertyTypeBoolean
	PropertyTypeArray   = internalmodel.PropertyTypeArray
	PropertyTypeObject  = internalmodel.PropertyTypeObject
)

type Property = internalmodel.Property
type Model = internalmodel.Model

var (
	ErrPropertyNotFound = internalmodel.ErrPropertyNotFound
	ErrIndexOutOfRange  = internalmodel.ErrIndexOutOfRange
	KeyPattern          = internalmodel.KeyPattern
)

// DeriveKey re-exports the key derivation used for new properties.
func DeriveKey(title string) string {
	return internalmodel.DeriveKey(title)
}

// Label converts a property key into a human-friendly title.
func Label(key string) string {
	return internalmodel.TitleFromKey(key)
}

// EmptyModel returns a model with no properties.
func EmptyModel() Model { return internalmodel.EmptyModel() }
