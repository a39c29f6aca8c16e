package syntaxtree

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/goliatone/go-viewhelper/pkg/viewhelper"
)

// ViewHelperNode invokes one helper with argument nodes and child nodes.
// Instances are pooled per node and reset before reuse.
type ViewHelperNode struct {
	registry    *viewhelper.Registry
	name        string
	helperType  reflect.Type
	definitions *viewhelper.Definitions
	arguments   map[string]Node
	children    []Node
	prototype   viewhelper.Helper

	pool sync.Pool
}

var (
	_ viewhelper.HelperNode     = (*ViewHelperNode)(nil)
	_ viewhelper.ChildEvaluator = (*ViewHelperNode)(nil)
)

// NewViewHelperNode resolves the helper's argument definitions and checks
// that every required argument is bound. Unknown argument names are kept but
// never passed to the helper.
func NewViewHelperNode(registry *viewhelper.Registry, name string, arguments map[string]Node, children ...Node) (*ViewHelperNode, error) {
	if registry == nil {
		return nil, fmt.Errorf("syntaxtree: registry is required")
	}
	prototype, err := registry.New(name)
	if err != nil {
		return nil, err
	}
	definitions, err := prototype.Core().PrepareArguments()
	if err != nil {
		return nil, err
	}
	for _, def := range definitions.All() {
		if _, bound := arguments[def.Name()]; def.IsRequired() && !bound {
			return nil, &viewhelper.ArgumentError{Kind: viewhelper.ErrRequiredArgument, Helper: name, Argument: def.Name()}
		}
	}

	argNodes := make([]Node, 0, len(arguments))
	for _, node := range arguments {
		argNodes = append(argNodes, node)
	}
	applyEscaping(argNodes, false)
	applyEscaping(children, prototype.IsEscapingInterceptorEnabled())

	return &ViewHelperNode{
		registry:    registry,
		name:        name,
		helperType:  viewhelper.TypeOf(prototype),
		definitions: definitions,
		arguments:   arguments,
		children:    children,
		prototype:   prototype,
	}, nil
}

// MustViewHelperNode panics when the node cannot be built.
func MustViewHelperNode(registry *viewhelper.Registry, name string, arguments map[string]Node, children ...Node) *ViewHelperNode {
	node, err := NewViewHelperNode(registry, name, arguments, children...)
	if err != nil {
		panic(err)
	}
	return node
}

// HelperName returns the registered helper name.
func (n *ViewHelperNode) HelperName() string { return n.name }

// HelperType returns the Go type of the helper.
func (n *ViewHelperNode) HelperType() reflect.Type { return n.helperType }

// Children returns the child nodes.
func (n *ViewHelperNode) Children() []Node { return n.children }

// Evaluate binds arguments and runs the helper through the invocation sequence.
func (n *ViewHelperNode) Evaluate(rc viewhelper.RenderingContext) (any, error) {
	args, err := n.bindArguments(rc)
	if err != nil {
		return nil, err
	}
	helper, err := n.acquire()
	if err != nil {
		return nil, err
	}
	defer n.release(helper)

	core := helper.Core()
	core.SetArguments(args)
	core.SetRenderingContext(rc)
	core.SetViewHelperNode(n)
	if accessor, ok := helper.(viewhelper.ChildNodeAccessor); ok {
		accessor.SetChildNodes(n.children)
	}
	return core.InitializeArgumentsAndRender()
}

// EvaluateChildNodes renders the node's children.
func (n *ViewHelperNode) EvaluateChildNodes(rc viewhelper.RenderingContext) (any, error) {
	return evaluateNodes(rc, n.children)
}

// bindArguments evaluates every declared argument, falling back to its
// default value.
func (n *ViewHelperNode) bindArguments(rc viewhelper.RenderingContext) (viewhelper.Arguments, error) {
	args := make(viewhelper.Arguments, n.definitions.Len())
	for _, def := range n.definitions.All() {
		node, ok := n.arguments[def.Name()]
		if !ok {
			args[def.Name()] = def.DefaultValue()
			continue
		}
		value, err := node.Evaluate(rc)
		if err != nil {
			return nil, fmt.Errorf("syntaxtree: %s argument %q: %w", n.name, def.Name(), err)
		}
		args[def.Name()] = value
	}
	return args, nil
}

func (n *ViewHelperNode) acquire() (viewhelper.Helper, error) {
	if pooled, ok := n.pool.Get().(viewhelper.Helper); ok {
		pooled.ResetState()
		pooled.Core().SetRenderChildrenClosure(nil)
		return pooled, nil
	}
	return n.registry.New(n.name)
}

func (n *ViewHelperNode) release(helper viewhelper.Helper) {
	helper.Core().SetRenderingContext(nil)
	n.pool.Put(helper)
}
