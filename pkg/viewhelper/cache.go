package viewhelper

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
	"sync"
)

// DefinitionCache maps a helper type to its resolved argument definitions
// and to the arguments that double as tag attributes. Entries are populated
// lazily and never invalidated; concurrent population of the same type is
// last-write-wins on equivalent values.
type DefinitionCache struct {
	mu            sync.RWMutex
	entries       map[reflect.Type]*Definitions
	tagAttributes *TagAttributeRegistry
}

// NewDefinitionCache creates an empty cache.
func NewDefinitionCache() *DefinitionCache {
	return &DefinitionCache{
		entries:       make(map[reflect.Type]*Definitions),
		tagAttributes: NewTagAttributeRegistry(),
	}
}

// TagAttributes returns the tag attribute names recorded alongside the
// cached definitions.
func (c *DefinitionCache) TagAttributes() *TagAttributeRegistry {
	return c.tagAttributes
}

// Load returns the cached definitions for a helper type.
func (c *DefinitionCache) Load(key reflect.Type) (*Definitions, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	defs, ok := c.entries[key]
	return defs, ok
}

// Store records definitions for a helper type. The set must not be mutated
// afterwards.
func (c *DefinitionCache) Store(key reflect.Type, defs *Definitions) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = defs
}

// Len returns the number of cached helper types.
func (c *DefinitionCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// TagAttributeRegistry records, per helper type, which arguments double as
// tag attributes.
type TagAttributeRegistry struct {
	mu    sync.RWMutex
	names map[reflect.Type][]string
}

// NewTagAttributeRegistry creates an empty registry.
func NewTagAttributeRegistry() *TagAttributeRegistry {
	return &TagAttributeRegistry{names: make(map[reflect.Type][]string)}
}

// Add records name for a helper type, ignoring duplicates.
func (r *TagAttributeRegistry) Add(key reflect.Type, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if slices.Contains(r.names[key], name) {
		return
	}
	r.names[key] = append(r.names[key], name)
}

// Names returns the tag attribute names of a helper type in registration order.
func (r *TagAttributeRegistry) Names(key reflect.Type) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.names[key])
}

// TypeRegistry resolves class/interface type tags to Go types.
type TypeRegistry struct {
	mu    sync.RWMutex
	types map[string]reflect.Type
}

// NewTypeRegistry creates an empty registry.
func NewTypeRegistry() *TypeRegistry {
	return &TypeRegistry{types: make(map[string]reflect.Type)}
}

// Register maps a type tag name to a Go type. Built-in tags cannot be remapped.
func (r *TypeRegistry) Register(name string, typ reflect.Type) error {
	name = strings.TrimSpace(name)
	if name == "" || typ == nil {
		return fmt.Errorf("viewhelper: type name and type are required")
	}
	if TypeTag(name).IsBuiltin() {
		return fmt.Errorf("viewhelper: type %q is built in", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.types[name] = typ
	return nil
}

// Lookup returns the Go type registered for a tag.
func (r *TypeRegistry) Lookup(tag TypeTag) (reflect.Type, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	typ, ok := r.types[string(tag)]
	return typ, ok
}

// RegisterType maps name to T. Use an interface type for T to accept any
// implementation.
func RegisterType[T any](r *TypeRegistry, name string) error {
	return r.Register(name, reflect.TypeFor[T]())
}
