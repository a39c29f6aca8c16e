// Package viewhelper is the top-level entry point: it re-exports the helper
// contract and wires the built-in helpers into a pongo2 template engine.
package viewhelper

import (
	"context"

	"github.com/goliatone/go-viewhelper/pkg/helpers"
	"github.com/goliatone/go-viewhelper/pkg/render/template/gotemplate"
	core "github.com/goliatone/go-viewhelper/pkg/viewhelper"
)

// Helper is the view helper contract.
type Helper = core.Helper

// Registry stores helper factories and their shared metadata caches.
type Registry = core.Registry

// Option configures a Registry.
type Option = core.Option

// Arguments are the bound values passed to Render.
type Arguments = core.Arguments

// Parameter declares one render parameter.
type Parameter = core.Parameter

// Base is embedded by every helper.
type Base = core.Base

// TagBased is embedded by helpers rendering a single tag.
type TagBased = core.TagBased

// NewRegistry returns a registry holding the built-in helpers (switch, case,
// link, format.raw, format.sanitize).
func NewRegistry(options ...Option) *Registry {
	return helpers.NewRegistry(options...)
}

// NewEngine constructs a template engine with the {% helper %} tag.
func NewEngine(options ...gotemplate.Option) (*gotemplate.Engine, error) {
	return gotemplate.New(options...)
}

// RenderString renders inline template content against the built-in helpers.
// templateDir is where {% include %} and friends resolve files.
func RenderString(ctx context.Context, templateDir, content string, data any, options ...Option) (string, error) {
	engine, err := gotemplate.New(
		gotemplate.WithBaseDir(templateDir),
		gotemplate.WithRegistry(NewRegistry(options...)),
	)
	if err != nil {
		return "", err
	}
	return engine.RenderContext(ctx, content, data)
}
