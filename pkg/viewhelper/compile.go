package viewhelper

import "fmt"

// StaticRenderFunc is the compiled form of one helper invocation: render with
// these bound arguments, this child renderer and this rendering context.
type StaticRenderFunc func(args Arguments, children ChildRenderer, rc RenderingContext) (any, error)

// CompileContext describes the node a template compiler is compiling.
type CompileContext struct {
	Registry   *Registry
	HelperName string
	// ChildNodes are handed to helpers implementing ChildNodeAccessor.
	ChildNodes []Node
}

// Compile returns the static entry point used by compiled templates. The
// default dispatches to a fresh instance through the standard invocation
// sequence; helpers with special compile-time behaviour override it.
func (b *Base) Compile(c CompileContext) StaticRenderFunc {
	registry, name := c.Registry, c.HelperName
	if registry == nil {
		registry = b.registry
	}
	if name == "" {
		name = b.name
	}
	return func(args Arguments, children ChildRenderer, rc RenderingContext) (any, error) {
		if registry == nil {
			return nil, ErrNotAttached
		}
		helper, err := registry.New(name)
		if err != nil {
			return nil, fmt.Errorf("viewhelper: compile %q: %w", name, err)
		}
		core := helper.Core()
		core.SetArguments(args)
		core.SetRenderingContext(rc)
		core.SetRenderChildrenClosure(children)
		if accessor, ok := helper.(ChildNodeAccessor); ok {
			accessor.SetChildNodes(c.ChildNodes)
		}
		return core.InitializeArgumentsAndRender()
	}
}
