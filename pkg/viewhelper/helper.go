package viewhelper

import (
	"context"
	"maps"
	"reflect"

	"github.com/spf13/cast"

	"github.com/goliatone/go-viewhelper/pkg/variables"
)

// Helper is the contract every view helper satisfies. Embedding Base provides
// everything except Render.
type Helper interface {
	// Render receives the bound values of every method-parameter argument.
	Render(args Arguments) (any, error)
	// InitializeArguments registers arguments that are not render parameters.
	InitializeArguments() error
	// Initialize runs after validation and before Render.
	Initialize() error
	// ResetState clears helper-held state before an instance is reused.
	ResetState()
	IsEscapingInterceptorEnabled() bool
	Compile(c CompileContext) StaticRenderFunc
	Core() *Base
}

// ParameterDeclarer is implemented by helpers that take render parameters.
type ParameterDeclarer interface {
	RenderParameters() []Parameter
}

// ChildNodeAccessor is implemented by helpers that walk their child nodes
// themselves instead of rendering them through RenderChildren.
type ChildNodeAccessor interface {
	SetChildNodes(nodes []Node)
}

// ParameterSource reports the formal render parameters of a helper.
type ParameterSource interface {
	MethodParameters(h Helper) ([]Parameter, error)
}

// ParameterSourceFunc adapts a function to ParameterSource.
type ParameterSourceFunc func(h Helper) ([]Parameter, error)

func (f ParameterSourceFunc) MethodParameters(h Helper) ([]Parameter, error) { return f(h) }

// DeclaredParameters is the default ParameterSource: it reads the helper's own
// RenderParameters declaration.
var DeclaredParameters ParameterSource = ParameterSourceFunc(func(h Helper) ([]Parameter, error) {
	if declarer, ok := h.(ParameterDeclarer); ok {
		return declarer.RenderParameters(), nil
	}
	return nil, nil
})

// ChildRenderer evaluates a node's child content on demand. It may be called
// more than once and must return the same result each time.
type ChildRenderer func() (any, error)

// Node is one evaluable element of a syntax tree.
type Node interface {
	Evaluate(rc RenderingContext) (any, error)
}

// ChildEvaluator evaluates the children of a helper node.
type ChildEvaluator interface {
	EvaluateChildNodes(rc RenderingContext) (any, error)
}

// HelperNode is a tree node that invokes a view helper.
type HelperNode interface {
	Node
	HelperName() string
	HelperType() reflect.Type
}

// ControllerContext exposes the request the render pass belongs to.
type ControllerContext interface {
	ControllerName() string
	ActionName() string
}

// RenderingContext is the per-render state handed to every helper.
type RenderingContext interface {
	Context() context.Context
	TemplateVariableContainer() *variables.TemplateContainer
	ViewHelperVariableContainer() *variables.Container
	// ControllerContext may return nil.
	ControllerContext() ControllerContext
}

// Arguments maps argument names to bound values.
type Arguments map[string]any

// Has reports whether name is bound to a non-nil value.
func (a Arguments) Has(name string) bool {
	value, ok := a[name]
	return ok && value != nil
}

// Get returns the bound value or nil.
func (a Arguments) Get(name string) any {
	return a[name]
}

// String returns the bound value converted to a string.
func (a Arguments) String(name string) string {
	return cast.ToString(a[name])
}

// Bool returns the bound value converted to a bool.
func (a Arguments) Bool(name string) bool {
	return cast.ToBool(a[name])
}

// Clone returns a shallow copy.
func (a Arguments) Clone() Arguments {
	if a == nil {
		return Arguments{}
	}
	return maps.Clone(a)
}

// TypeOf returns the identity used to key per-type caches.
func TypeOf(h Helper) reflect.Type {
	return reflect.TypeOf(h)
}
