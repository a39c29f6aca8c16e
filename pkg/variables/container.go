package variables

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrNotFound reports a lookup or removal of a key that is not stored.
	ErrNotFound = errors.New("variables: not found")
	// ErrExists reports an Add of a key that is already stored.
	ErrExists = errors.New("variables: already exists")
)

// Container is the namespaced key/value store view helpers use to exchange
// state during one tree evaluation. Namespaces are conventionally the stable
// identity of the helper that owns the keys.
type Container struct {
	values map[string]map[string]any
}

// NewContainer creates an empty container.
func NewContainer() *Container {
	return &Container{values: make(map[string]map[string]any)}
}

// Exists reports whether namespace holds key.
func (c *Container) Exists(namespace, key string) bool {
	if c == nil {
		return false
	}
	_, ok := c.values[namespace][key]
	return ok
}

// Get returns the stored value or ErrNotFound.
func (c *Container) Get(namespace, key string) (any, error) {
	if c == nil {
		return nil, fmt.Errorf("variables: get %s.%s: %w", namespace, key, ErrNotFound)
	}
	value, ok := c.values[namespace][key]
	if !ok {
		return nil, fmt.Errorf("variables: get %s.%s: %w", namespace, key, ErrNotFound)
	}
	return value, nil
}

// Add stores a new value and fails with ErrExists when the key is taken.
func (c *Container) Add(namespace, key string, value any) error {
	if c.Exists(namespace, key) {
		return fmt.Errorf("variables: add %s.%s: %w", namespace, key, ErrExists)
	}
	c.AddOrUpdate(namespace, key, value)
	return nil
}

// AddOrUpdate upserts value.
func (c *Container) AddOrUpdate(namespace, key string, value any) {
	if c.values == nil {
		c.values = make(map[string]map[string]any)
	}
	bucket, ok := c.values[namespace]
	if !ok {
		bucket = make(map[string]any)
		c.values[namespace] = bucket
	}
	bucket[key] = value
}

// Remove deletes key from namespace. Removing an absent key is an error.
func (c *Container) Remove(namespace, key string) error {
	if !c.Exists(namespace, key) {
		return fmt.Errorf("variables: remove %s.%s: %w", namespace, key, ErrNotFound)
	}
	bucket := c.values[namespace]
	delete(bucket, key)
	if len(bucket) == 0 {
		delete(c.values, namespace)
	}
	return nil
}

// Keys returns the sorted keys stored under namespace.
func (c *Container) Keys(namespace string) []string {
	if c == nil {
		return nil
	}
	bucket := c.values[namespace]
	if len(bucket) == 0 {
		return nil
	}
	keys := make([]string, 0, len(bucket))
	for key := range bucket {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
