package variables

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// ErrReserved reports an attempt to bind a reserved variable name.
var ErrReserved = errors.New("variables: reserved name")

var reservedNames = []string{"_all", "true", "false", "on", "off", "yes", "no"}

// TemplateContainer is the flat variable scope templates read from.
type TemplateContainer struct {
	values map[string]any
}

// NewTemplateContainer copies initial into a new scope. Reserved names in
// initial are rejected.
func NewTemplateContainer(initial map[string]any) (*TemplateContainer, error) {
	tc := &TemplateContainer{values: make(map[string]any, len(initial))}
	for name, value := range initial {
		if err := tc.Add(name, value); err != nil {
			return nil, err
		}
	}
	return tc, nil
}

// Add binds a new variable.
func (tc *TemplateContainer) Add(name string, value any) error {
	if IsReserved(name) {
		return fmt.Errorf("variables: add %q: %w", name, ErrReserved)
	}
	if tc.Exists(name) {
		return fmt.Errorf("variables: add %q: %w", name, ErrExists)
	}
	if tc.values == nil {
		tc.values = make(map[string]any)
	}
	tc.values[name] = value
	return nil
}

// Get returns a bound variable. The reserved name "_all" returns a copy of
// the whole scope.
func (tc *TemplateContainer) Get(name string) (any, error) {
	if name == "_all" {
		return tc.All(), nil
	}
	if !tc.Exists(name) {
		return nil, fmt.Errorf("variables: get %q: %w", name, ErrNotFound)
	}
	return tc.values[name], nil
}

// Exists reports whether name is bound.
func (tc *TemplateContainer) Exists(name string) bool {
	if tc == nil {
		return false
	}
	_, ok := tc.values[name]
	return ok
}

// Remove unbinds name.
func (tc *TemplateContainer) Remove(name string) error {
	if !tc.Exists(name) {
		return fmt.Errorf("variables: remove %q: %w", name, ErrNotFound)
	}
	delete(tc.values, name)
	return nil
}

// All returns a shallow copy of every bound variable.
func (tc *TemplateContainer) All() map[string]any {
	if tc == nil {
		return map[string]any{}
	}
	return maps.Clone(tc.values)
}

// Names returns the sorted variable names.
func (tc *TemplateContainer) Names() []string {
	if tc == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(tc.values))
}

// IsReserved reports whether name is reserved, ignoring case.
func IsReserved(name string) bool {
	return slices.Contains(reservedNames, strings.ToLower(strings.TrimSpace(name)))
}
