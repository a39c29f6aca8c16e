// Package rendering provides the default RenderingContext handed to view
// helpers during one render pass.
package rendering

import (
	"context"

	"github.com/goliatone/go-viewhelper/pkg/variables"
	"github.com/goliatone/go-viewhelper/pkg/viewhelper"
)

// Option configures a Context.
type Option func(*Context)

// WithTemplateVariables sets the template variable scope.
func WithTemplateVariables(tc *variables.TemplateContainer) Option {
	return func(c *Context) {
		if tc != nil {
			c.templateVariables = tc
		}
	}
}

// WithViewHelperVariables sets the namespaced coordination store.
func WithViewHelperVariables(container *variables.Container) Option {
	return func(c *Context) {
		if container != nil {
			c.viewHelperVariables = container
		}
	}
}

// WithController attaches a controller context.
func WithController(controller viewhelper.ControllerContext) Option {
	return func(c *Context) {
		c.controller = controller
	}
}

// Context is request scoped: one instance per tree evaluation, never shared
// between concurrent renders.
type Context struct {
	ctx                 context.Context
	templateVariables   *variables.TemplateContainer
	viewHelperVariables *variables.Container
	controller          viewhelper.ControllerContext
}

var _ viewhelper.RenderingContext = (*Context)(nil)

// New creates a rendering context with empty containers unless options
// supply them.
func New(ctx context.Context, options ...Option) *Context {
	if ctx == nil {
		ctx = context.Background()
	}
	c := &Context{ctx: ctx}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	if c.templateVariables == nil {
		c.templateVariables, _ = variables.NewTemplateContainer(nil)
	}
	if c.viewHelperVariables == nil {
		c.viewHelperVariables = variables.NewContainer()
	}
	return c
}

// NewWithVariables creates a rendering context whose template scope holds vars.
func NewWithVariables(ctx context.Context, vars map[string]any, options ...Option) (*Context, error) {
	tc, err := variables.NewTemplateContainer(vars)
	if err != nil {
		return nil, err
	}
	return New(ctx, append([]Option{WithTemplateVariables(tc)}, options...)...), nil
}

// Context returns the Go context of the render pass.
func (c *Context) Context() context.Context { return c.ctx }

// TemplateVariableContainer returns the template variable scope.
func (c *Context) TemplateVariableContainer() *variables.TemplateContainer {
	return c.templateVariables
}

// ViewHelperVariableContainer returns the namespaced coordination store.
func (c *Context) ViewHelperVariableContainer() *variables.Container {
	return c.viewHelperVariables
}

// ControllerContext returns the controller context or nil.
func (c *Context) ControllerContext() viewhelper.ControllerContext {
	return c.controller
}

// WithContext returns a shallow copy bound to ctx. Both copies share the same
// containers.
func (c *Context) WithContext(ctx context.Context) *Context {
	clone := *c
	clone.ctx = ctx
	return &clone
}

// Controller is a plain ControllerContext.
type Controller struct {
	Controller string
	Action     string
}

func (c Controller) ControllerName() string { return c.Controller }
func (c Controller) ActionName() string     { return c.Action }
