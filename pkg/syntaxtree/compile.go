package syntaxtree

import (
	"strings"

	"github.com/spf13/cast"

	"github.com/goliatone/go-viewhelper/pkg/viewhelper"
)

type compiledNode func(rc viewhelper.RenderingContext) (any, error)

// CompiledTemplate is a tree flattened into closures. Helper invocations go
// through each helper's Compile hook with a precompiled child renderer, so
// child content is rendered without re-walking the node structure.
type CompiledTemplate struct {
	render compiledNode
}

// Compile flattens root into a CompiledTemplate.
func Compile(root *RootNode) *CompiledTemplate {
	return &CompiledTemplate{render: compileNodes(root.children)}
}

// Render evaluates the compiled template.
func (t *CompiledTemplate) Render(rc viewhelper.RenderingContext) (string, error) {
	out, err := t.render(rc)
	if err != nil {
		return "", err
	}
	return cast.ToString(out), nil
}

func compileNodes(nodes []Node) compiledNode {
	compiled := make([]compiledNode, len(nodes))
	for i, node := range nodes {
		compiled[i] = compileNode(node)
	}
	switch len(compiled) {
	case 0:
		return func(viewhelper.RenderingContext) (any, error) { return "", nil }
	case 1:
		single := compiled[0]
		return func(rc viewhelper.RenderingContext) (any, error) {
			if err := checkCancelled(rc); err != nil {
				return nil, err
			}
			return single(rc)
		}
	}
	return func(rc viewhelper.RenderingContext) (any, error) {
		var b strings.Builder
		for _, fn := range compiled {
			if err := checkCancelled(rc); err != nil {
				return nil, err
			}
			out, err := fn(rc)
			if err != nil {
				return nil, err
			}
			b.WriteString(cast.ToString(out))
		}
		return b.String(), nil
	}
}

func compileNode(node Node) compiledNode {
	switch n := node.(type) {
	case *TextNode:
		text := n.Text
		return func(viewhelper.RenderingContext) (any, error) { return text, nil }
	case *ViewHelperNode:
		return n.compile()
	default:
		return node.Evaluate
	}
}

func (n *ViewHelperNode) compile() compiledNode {
	children := compileNodes(n.children)
	static := n.prototype.Compile(viewhelper.CompileContext{
		Registry:   n.registry,
		HelperName: n.name,
		ChildNodes: n.children,
	})
	return func(rc viewhelper.RenderingContext) (any, error) {
		args, err := n.bindArguments(rc)
		if err != nil {
			return nil, err
		}
		return static(args, func() (any, error) { return children(rc) }, rc)
	}
}
