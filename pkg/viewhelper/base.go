package viewhelper

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/goliatone/go-viewhelper/pkg/variables"
)

// Base carries the state and behaviour shared by every view helper. Embed it
// and implement Render; override InitializeArguments, Initialize, ResetState
// or IsEscapingInterceptorEnabled where needed.
type Base struct {
	self     Helper
	registry *Registry
	name     string
	typeKey  reflect.Type

	definitions       *Definitions
	definitionsShared bool
	prepared          bool

	arguments             Arguments
	renderingContext      RenderingContext
	templateVariables     *variables.TemplateContainer
	viewHelperVariables   *variables.Container
	controllerContext     ControllerContext
	renderChildrenClosure ChildRenderer
	node                  ChildEvaluator
}

func (b *Base) attach(self Helper, registry *Registry, name string) {
	b.self = self
	b.registry = registry
	b.typeKey = TypeOf(self)
	b.name = name
	if b.name == "" {
		b.name = b.typeKey.String()
	}
}

// Core returns the embedded Base.
func (b *Base) Core() *Base { return b }

// HelperName returns the name the helper was registered under.
func (b *Base) HelperName() string {
	if b.name != "" {
		return b.name
	}
	return "unattached"
}

// Registry returns the registry the helper is attached to.
func (b *Base) Registry() *Registry { return b.registry }

// SetArguments binds argument values.
func (b *Base) SetArguments(args Arguments) {
	b.arguments = args
}

// Arguments returns the bound argument values.
func (b *Base) Arguments() Arguments { return b.arguments }

// Argument returns one bound value.
func (b *Base) Argument(name string) any { return b.arguments[name] }

// HasArgument reports whether name is bound to a non-nil value.
func (b *Base) HasArgument(name string) bool {
	return b.arguments.Has(name)
}

// SetRenderingContext binds the rendering context and the containers it
// exposes.
func (b *Base) SetRenderingContext(rc RenderingContext) {
	b.renderingContext = rc
	if rc == nil {
		b.templateVariables, b.viewHelperVariables, b.controllerContext = nil, nil, nil
		return
	}
	b.templateVariables = rc.TemplateVariableContainer()
	if controller := rc.ControllerContext(); controller != nil {
		b.controllerContext = controller
	}
	b.viewHelperVariables = rc.ViewHelperVariableContainer()
}

// RenderingContext returns the bound rendering context.
func (b *Base) RenderingContext() RenderingContext { return b.renderingContext }

// TemplateVariableContainer returns the template variable scope.
func (b *Base) TemplateVariableContainer() *variables.TemplateContainer {
	return b.templateVariables
}

// ViewHelperVariableContainer returns the namespaced coordination store.
func (b *Base) ViewHelperVariableContainer() *variables.Container {
	return b.viewHelperVariables
}

// ControllerContext returns the controller context, or nil.
func (b *Base) ControllerContext() ControllerContext { return b.controllerContext }

// SetRenderChildrenClosure installs a precompiled child renderer. Passing nil
// falls back to the node's own child evaluation.
func (b *Base) SetRenderChildrenClosure(children ChildRenderer) {
	b.renderChildrenClosure = children
}

// SetViewHelperNode sets the node whose children RenderChildren evaluates.
func (b *Base) SetViewHelperNode(node ChildEvaluator) {
	b.node = node
}

// IsEscapingInterceptorEnabled reports whether dynamic output inside this
// helper is escaped. Helpers producing raw markup override it.
func (b *Base) IsEscapingInterceptorEnabled() bool { return true }

// InitializeArguments is the declaration hook for non-render-parameter
// arguments. It runs once per helper type.
func (b *Base) InitializeArguments() error { return nil }

// Initialize runs before Render.
func (b *Base) Initialize() error { return nil }

// ResetState runs before a pooled instance is reused.
func (b *Base) ResetState() {}

// RegisterArgument declares a new argument. Registering a name twice fails
// with ErrDuplicateArgument.
func (b *Base) RegisterArgument(name string, typ TypeTag, description string, required bool, defaultValue any) error {
	defs := b.mutableDefinitions()
	if defs.Has(name) {
		return &ArgumentError{Kind: ErrDuplicateArgument, Helper: b.HelperName(), Argument: name}
	}
	defs.set(NewArgumentDefinition(name, typ, description, required, defaultValue))
	return nil
}

// OverrideArgument replaces an existing declaration. Overriding an unknown
// name fails with ErrUnknownArgument.
func (b *Base) OverrideArgument(name string, typ TypeTag, description string, required bool, defaultValue any) error {
	defs := b.mutableDefinitions()
	if !defs.Has(name) {
		return &ArgumentError{Kind: ErrUnknownArgument, Helper: b.HelperName(), Argument: name}
	}
	defs.set(NewArgumentDefinition(name, typ, description, required, defaultValue))
	return nil
}

// PrepareArguments resolves and caches the helper's argument definitions:
// render parameters first, then whatever InitializeArguments registers.
func (b *Base) PrepareArguments() (*Definitions, error) {
	if b.prepared {
		return b.definitions, nil
	}
	if b.self == nil || b.registry == nil {
		return nil, ErrNotAttached
	}

	if cached, ok := b.registry.definitions.Load(b.typeKey); ok {
		b.definitions, b.definitionsShared = cached, true
	} else {
		// a failed attempt must leave the constructor-time declarations intact
		initial, initialShared := b.definitions, b.definitionsShared
		if initial != nil {
			b.definitions, b.definitionsShared = initial.clone(), false
		}
		if err := b.registerRenderMethodArguments(); err != nil {
			b.definitions, b.definitionsShared = initial, initialShared
			return nil, err
		}
		if err := b.self.InitializeArguments(); err != nil {
			b.definitions, b.definitionsShared = initial, initialShared
			return nil, err
		}
		defs := b.mutableDefinitions()
		b.registry.definitions.Store(b.typeKey, defs)
		b.definitionsShared = true
	}
	b.prepared = true
	return b.definitions, nil
}

func (b *Base) registerRenderMethodArguments() error {
	params, err := b.registry.parameters.MethodParameters(b.self)
	if err != nil {
		return fmt.Errorf("viewhelper: %s: method parameters: %w", b.HelperName(), err)
	}
	defs := b.mutableDefinitions()
	for _, param := range params {
		typ := param.Type
		if typ == "" && param.IsCollection {
			typ = TypeArray
		}
		if typ == "" {
			return &ArgumentError{Kind: ErrMissingTypeInformation, Helper: b.HelperName(), Argument: param.Name}
		}
		defs.set(NewArgumentDefinition(param.Name, typ, param.Description, !param.Optional, param.DefaultValue, true))
	}
	return nil
}

func (b *Base) mutableDefinitions() *Definitions {
	switch {
	case b.definitions == nil:
		b.definitions = NewDefinitions()
	case b.definitionsShared:
		b.definitions = b.definitions.clone()
		b.definitionsShared = false
	}
	return b.definitions
}

// ValidateArguments checks every bound, non-default value against its
// declared type.
func (b *Base) ValidateArguments() error {
	defs, err := b.PrepareArguments()
	if err != nil {
		return err
	}
	for _, def := range defs.All() {
		if !b.HasArgument(def.Name()) {
			continue
		}
		value := b.arguments[def.Name()]
		if reflect.DeepEqual(value, def.DefaultValue()) {
			continue
		}
		if !conforms(b.registry.types, def.Type(), value) {
			return &TypeMismatchError{
				Helper:   b.HelperName(),
				Argument: def.Name(),
				Expected: def.Type(),
				Actual:   fmt.Sprintf("%T", value),
			}
		}
	}
	return nil
}

// CallRenderMethod passes the method-parameter arguments to Render.
func (b *Base) CallRenderMethod() RenderResult {
	defs, err := b.PrepareArguments()
	if err != nil {
		return RenderResult{Failure: err}
	}
	params := make(Arguments, defs.Len())
	for _, def := range defs.All() {
		if def.IsMethodParameter() {
			params[def.Name()] = b.arguments[def.Name()]
		}
	}
	output, err := b.self.Render(params)
	return RenderResult{Output: output, Failure: err}
}

// InitializeArgumentsAndRender runs validation, Initialize and Render in that
// order and applies the registry's recovery policy to the result.
func (b *Base) InitializeArgumentsAndRender() (any, error) {
	if b.self == nil || b.registry == nil {
		return nil, ErrNotAttached
	}
	start := time.Now()
	if err := b.ValidateArguments(); err != nil {
		b.registry.observe(b.HelperName(), start, OutcomeFailed)
		return nil, err
	}
	if err := b.self.Initialize(); err != nil {
		b.registry.observe(b.HelperName(), start, OutcomeFailed)
		return nil, err
	}
	output, outcome, err := b.registry.resolve(b.context(), b.HelperName(), b.CallRenderMethod())
	b.registry.observe(b.HelperName(), start, outcome)
	return output, err
}

// RenderChildren evaluates the child content, preferring a precompiled closure.
func (b *Base) RenderChildren() (any, error) {
	if b.renderChildrenClosure != nil {
		return b.renderChildrenClosure()
	}
	if b.node != nil {
		return b.node.EvaluateChildNodes(b.renderingContext)
	}
	return "", nil
}

// BuildRenderChildrenClosure returns a ChildRenderer bound to this instance.
func (b *Base) BuildRenderChildrenClosure() ChildRenderer {
	return func() (any, error) {
		return b.RenderChildren()
	}
}

func (b *Base) context() context.Context {
	if b.renderingContext != nil {
		if ctx := b.renderingContext.Context(); ctx != nil {
			return ctx
		}
	}
	return context.Background()
}
