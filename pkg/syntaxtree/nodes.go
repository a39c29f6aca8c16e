package syntaxtree

import (
	"html"
	"strings"

	"github.com/spf13/cast"

	"github.com/goliatone/go-viewhelper/pkg/expression"
	"github.com/goliatone/go-viewhelper/pkg/viewhelper"
)

// Node aliases the node contract shared with the viewhelper package.
type Node = viewhelper.Node

// TextNode renders static text.
type TextNode struct {
	Text string
}

// Text creates a TextNode.
func Text(text string) *TextNode {
	return &TextNode{Text: text}
}

func (n *TextNode) Evaluate(viewhelper.RenderingContext) (any, error) {
	return n.Text, nil
}

// ValueNode yields a literal value unchanged. Useful for typed arguments.
type ValueNode struct {
	Value any
}

// Value creates a ValueNode.
func Value(value any) *ValueNode {
	return &ValueNode{Value: value}
}

func (n *ValueNode) Evaluate(viewhelper.RenderingContext) (any, error) {
	return n.Value, nil
}

// NodeFunc adapts a function to Node.
type NodeFunc func(rc viewhelper.RenderingContext) (any, error)

func (f NodeFunc) Evaluate(rc viewhelper.RenderingContext) (any, error) {
	return f(rc)
}

// ObjectAccessorNode resolves an expression against the template variables.
type ObjectAccessorNode struct {
	Expression string
	// Escape is maintained by the enclosing node constructors.
	Escape    bool
	evaluator *expression.Evaluator
}

// Accessor creates an ObjectAccessorNode using evaluator.
func Accessor(evaluator *expression.Evaluator, source string) *ObjectAccessorNode {
	if evaluator == nil {
		evaluator = expression.New()
	}
	return &ObjectAccessorNode{Expression: strings.TrimSpace(source), Escape: true, evaluator: evaluator}
}

// SetEscaping toggles HTML escaping of string results.
func (n *ObjectAccessorNode) SetEscaping(enabled bool) { n.Escape = enabled }

func (n *ObjectAccessorNode) Evaluate(rc viewhelper.RenderingContext) (any, error) {
	var env map[string]any
	if rc != nil {
		env = rc.TemplateVariableContainer().All()
	}
	value, err := n.evaluator.Evaluate(n.Expression, env)
	if err != nil {
		return nil, err
	}
	if s, ok := value.(string); ok && n.Escape {
		return html.EscapeString(s), nil
	}
	return value, nil
}

// RootNode is the top of a template tree.
type RootNode struct {
	children []Node
}

// Root creates a root node. Accessors directly below the root are escaped.
func Root(children ...Node) *RootNode {
	applyEscaping(children, true)
	return &RootNode{children: children}
}

// Children returns the child nodes.
func (n *RootNode) Children() []Node { return n.children }

func (n *RootNode) Evaluate(rc viewhelper.RenderingContext) (any, error) {
	return evaluateNodes(rc, n.children)
}

// Render evaluates the tree and stringifies the result.
func (n *RootNode) Render(rc viewhelper.RenderingContext) (string, error) {
	out, err := n.Evaluate(rc)
	if err != nil {
		return "", err
	}
	return cast.ToString(out), nil
}

// evaluateNodes returns the raw value of a single node, or the concatenated
// string output of several.
func evaluateNodes(rc viewhelper.RenderingContext, nodes []Node) (any, error) {
	switch len(nodes) {
	case 0:
		return "", nil
	case 1:
		if err := checkCancelled(rc); err != nil {
			return nil, err
		}
		return nodes[0].Evaluate(rc)
	}

	var b strings.Builder
	for _, node := range nodes {
		if err := checkCancelled(rc); err != nil {
			return nil, err
		}
		out, err := node.Evaluate(rc)
		if err != nil {
			return nil, err
		}
		b.WriteString(cast.ToString(out))
	}
	return b.String(), nil
}

func checkCancelled(rc viewhelper.RenderingContext) error {
	if rc == nil || rc.Context() == nil {
		return nil
	}
	return rc.Context().Err()
}

// EscapingNode is implemented by nodes whose output is subject to the
// escaping interceptor.
type EscapingNode interface {
	SetEscaping(enabled bool)
}

func applyEscaping(nodes []Node, enabled bool) {
	for _, node := range nodes {
		if escaping, ok := node.(EscapingNode); ok {
			escaping.SetEscaping(enabled)
		}
	}
}
