package model

// Decorator adjusts a freshly loaded model before it is handed to an editing
// session, e.g. to fill titles or reorder properties.
type Decorator interface {
	Decorate(*Model) error
}

// DecoratorFunc adapts a function into a Decorator.
type DecoratorFunc func(*Model) error

// Decorate calls the underlying function.
func (fn DecoratorFunc) Decorate(m *Model) error {
	return fn(m)
}

// LabelTitles is a Decorator that replaces titles equal to the property id
// with Label(id).
var LabelTitles = DecoratorFunc(func(m *Model) error {
	for idx := range m.Properties {
		prop := &m.Properties[idx]
		if prop.ID != "" && prop.Title == prop.ID {
			prop.Title = Label(prop.ID)
		}
	}
	return nil
})
