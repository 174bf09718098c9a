package model

import (
	"errors"
	"fmt"
	"slices"

	"github.com/goliatone/go-schemaform/pkg/schema"
)

// PropertyType is the declared type of a model property.
type PropertyType = schema.Type

const (
	PropertyTypeString  = schema.TypeString
	PropertyTypeInteger = schema.TypeInteger
	PropertyTypeNumber  = schema.TypeNumber
	PropertyTypeBoolean = schema.TypeBoolean
	PropertyTypeArray   = schema.TypeArray
	PropertyTypeObject  = schema.TypeObject
)

// Property is one editable entry of a Model. ID is the persisted key and stays
// empty for properties that have never been saved.
type Property struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Type        PropertyType `json:"type"`
	Required    bool         `json:"required"`
}

// Model is the ordered, editable form of a schema.
type Model struct {
	Properties []Property `json:"properties"`
}

var (
	// ErrPropertyNotFound is returned by the editing helpers for unknown ids.
	ErrPropertyNotFound = errors.New("model: property not found")
	// ErrIndexOutOfRange is returned by the positional helpers for positions
	// outside the model.
	ErrIndexOutOfRange = errors.New("model: index out of range")
)

// Validate reports duplicate ids. Empty ids belong to unsaved properties and
// are allowed.
func (m Model) Validate() error {
	seen := make(map[string]int, len(m.Properties))
	for idx, prop := range m.Properties {
		if prop.ID == "" {
			continue
		}
		if first, ok := seen[prop.ID]; ok {
			return fmt.Errorf("model: duplicate property id %q at positions %d and %d", prop.ID, first, idx)
		}
		seen[prop.ID] = idx
	}
	return nil
}

// Index returns the position of id, or -1.
func (m Model) Index(id string) int {
	if id == "" {
		return -1
	}
	for idx, prop := range m.Properties {
		if prop.ID == id {
			return idx
		}
	}
	return -1
}

// Property returns the property stored under id.
func (m Model) Property(id string) (Property, bool) {
	idx := m.Index(id)
	if idx < 0 {
		return Property{}, false
	}
	return m.Properties[idx], true
}

// The mutators below never write into the current backing array, so a Model
// copied by value before the call keeps its properties.

// Add appends prop. A non-empty id that is already in use is rejected.
func (m *Model) Add(prop Property) error {
	if prop.ID != "" && m.Index(prop.ID) >= 0 {
		return fmt.Errorf("model: property id %q already exists", prop.ID)
	}
	m.Properties = slices.Concat(m.Properties, []Property{prop})
	return nil
}

// Update replaces the title, description, type and required flag of the
// property stored under id. The id itself never changes.
func (m *Model) Update(id string, prop Property) error {
	idx := m.Index(id)
	if idx < 0 {
		return fmt.Errorf("%w: %q", ErrPropertyNotFound, id)
	}
	return m.UpdateAt(idx, prop)
}

// UpdateAt is Update by position, for properties that have no id yet.
func (m *Model) UpdateAt(idx int, prop Property) error {
	if idx < 0 || idx >= len(m.Properties) {
		return fmt.Errorf("%w: update %d (len %d)", ErrIndexOutOfRange, idx, len(m.Properties))
	}
	prop.ID = m.Properties[idx].ID
	props := slices.Clone(m.Properties)
	props[idx] = prop
	m.Properties = props
	return nil
}

// Remove deletes the property stored under id.
func (m *Model) Remove(id string) error {
	idx := m.Index(id)
	if idx < 0 {
		return fmt.Errorf("%w: %q", ErrPropertyNotFound, id)
	}
	return m.RemoveAt(idx)
}

// RemoveAt deletes the property at position idx.
func (m *Model) RemoveAt(idx int) error {
	if idx < 0 || idx >= len(m.Properties) {
		return fmt.Errorf("%w: remove %d (len %d)", ErrIndexOutOfRange, idx, len(m.Properties))
	}
	m.Properties = slices.Delete(slices.Clone(m.Properties), idx, idx+1)
	return nil
}

// Move relocates the property at position from to position to, shifting the
// entries in between.
func (m *Model) Move(from, to int) error {
	n := len(m.Properties)
	if from < 0 || from >= n || to < 0 || to >= n {
		return fmt.Errorf("%w: move %d -> %d (len %d)", ErrIndexOutOfRange, from, to, n)
	}
	if from == to {
		return nil
	}
	props := slices.Clone(m.Properties)
	prop := props[from]
	if from < to {
		copy(props[from:to], props[from+1:to+1])
	} else {
		copy(props[to+1:from+1], props[to:from])
	}
	props[to] = prop
	m.Properties = props
	return nil
}
