package helpers

import (
	"errors"

	"github.com/goliatone/go-viewhelper/pkg/viewhelper"
)

// Register adds the built-in helpers to registry.
func Register(registry *viewhelper.Registry) error {
	return errors.Join(
		registry.Register("switch", NewSwitch),
		registry.Register("case", NewCase),
		registry.Register("link", NewLink),
		registry.Register("format.raw", NewRaw),
		registry.Register("format.sanitize", NewSanitize),
	)
}

// NewRegistry returns a registry holding the built-in helpers.
func NewRegistry(options ...viewhelper.Option) *viewhelper.Registry {
	registry := viewhelper.NewRegistry(options...)
	// a fresh registry has no names to collide with
	_ = Register(registry)
	return registry
}
