package viewhelper

import (
	"reflect"
	"slices"
)

// TypeTag names the declared type of an argument. Besides the built-in tags
// any name registered in a TypeRegistry can be used.
type TypeTag string

const (
	TypeString  TypeTag = "string"
	TypeBoolean TypeTag = "boolean"
	TypeArray   TypeTag = "array"
	TypeInteger TypeTag = "integer"
	TypeFloat   TypeTag = "float"
	TypeMixed   TypeTag = "mixed"
)

// IsBuiltin reports whether t is one of the closed set of scalar/collection tags.
func (t TypeTag) IsBuiltin() bool {
	switch t {
	case TypeString, TypeBoolean, TypeArray, TypeInteger, TypeFloat, TypeMixed:
		return true
	default:
		return false
	}
}

// ArgumentDefinition describes one named helper argument. It is immutable.
type ArgumentDefinition struct {
	name            string
	typ             TypeTag
	description     string
	required        bool
	defaultValue    any
	methodParameter bool
}

// NewArgumentDefinition builds a definition. methodParameter marks arguments
// that are passed to Render; it defaults to false.
func NewArgumentDefinition(name string, typ TypeTag, description string, required bool, defaultValue any, methodParameter ...bool) ArgumentDefinition {
	return ArgumentDefinition{
		name:            name,
		typ:             typ,
		description:     description,
		required:        required,
		defaultValue:    defaultValue,
		methodParameter: len(methodParameter) > 0 && methodParameter[0],
	}
}

func (d ArgumentDefinition) Name() string        { return d.name }
func (d ArgumentDefinition) Type() TypeTag       { return d.typ }
func (d ArgumentDefinition) Description() string { return d.description }
func (d ArgumentDefinition) IsRequired() bool    { return d.required }
func (d ArgumentDefinition) DefaultValue() any   { return d.defaultValue }

// IsMethodParameter reports whether the argument is passed to Render.
func (d ArgumentDefinition) IsMethodParameter() bool { return d.methodParameter }

// Equal compares two definitions by value.
func (d ArgumentDefinition) Equal(other ArgumentDefinition) bool {
	return d.name == other.name &&
		d.typ == other.typ &&
		d.description == other.description &&
		d.required == other.required &&
		d.methodParameter == other.methodParameter &&
		reflect.DeepEqual(d.defaultValue, other.defaultValue)
}

// Definitions is an ordered set of argument definitions keyed by name.
type Definitions struct {
	order  []string
	byName map[string]ArgumentDefinition
}

// NewDefinitions creates an empty set.
func NewDefinitions() *Definitions {
	return &Definitions{byName: make(map[string]ArgumentDefinition)}
}

// Len returns the number of definitions.
func (d *Definitions) Len() int {
	if d == nil {
		return 0
	}
	return len(d.order)
}

// Has reports whether name is defined.
func (d *Definitions) Has(name string) bool {
	if d == nil {
		return false
	}
	_, ok := d.byName[name]
	return ok
}

// Get returns the definition for name.
func (d *Definitions) Get(name string) (ArgumentDefinition, bool) {
	if d == nil {
		return ArgumentDefinition{}, false
	}
	def, ok := d.byName[name]
	return def, ok
}

// Names returns definition names in registration order.
func (d *Definitions) Names() []string {
	if d == nil {
		return nil
	}
	return slices.Clone(d.order)
}

// All returns the definitions in registration order.
func (d *Definitions) All() []ArgumentDefinition {
	if d == nil {
		return nil
	}
	out := make([]ArgumentDefinition, 0, len(d.order))
	for _, name := range d.order {
		out = append(out, d.byName[name])
	}
	return out
}

// set upserts def, keeping the position of an existing name.
func (d *Definitions) set(def ArgumentDefinition) {
	if _, exists := d.byName[def.name]; !exists {
		d.order = append(d.order, def.name)
	}
	d.byName[def.name] = def
}

func (d *Definitions) clone() *Definitions {
	out := &Definitions{
		order:  slices.Clone(d.order),
		byName: make(map[string]ArgumentDefinition, len(d.byName)),
	}
	for name, def := range d.byName {
		out.byName[name] = def
	}
	return out
}

// Parameter is one formal render parameter as reported by a ParameterSource.
// Type may be empty when IsCollection is set; a parameter with neither cannot
// be typed.
type Parameter struct {
	Name         string
	Type         TypeTag
	IsCollection bool
	Optional     bool
	DefaultValue any
	Description  string
}
