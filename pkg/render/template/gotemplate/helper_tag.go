package gotemplate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	"github.com/spf13/cast"

	"github.com/goliatone/go-viewhelper/pkg/rendering"
	"github.com/goliatone/go-viewhelper/pkg/syntaxtree"
	"github.com/goliatone/go-viewhelper/pkg/viewhelper"
)

// HelperTag is the pongo2 tag that invokes a view helper:
//
//	{% helper "switch" expression=user.gender %}
//	  {% helper "case" value="female" %}Mrs.{% endhelper %}
//	{% endhelper %}
//
// Helper tags nested directly in a helper body become child helper nodes, so
// helpers that walk their children (switch) see them.
const HelperTag = "helper"

const endHelperTag = "endhelper"

// stateKey holds the per-render state in the pongo2 public context.
const stateKey = "__viewhelper_state"

var registerTagOnce sync.Once

func registerHelperTag() {
	registerTagOnce.Do(func() {
		// a second registration only happens if another package claimed the name
		_ = pongo2.RegisterTag(HelperTag, parseHelperTag)
	})
}

type renderState struct {
	registry *viewhelper.Registry
	rc       *rendering.Context
}

type execContextKey struct{}

type helperTagNode struct {
	position  *pongo2.Token
	name      string
	arguments map[string]pongo2.IEvaluator
	// body holds *pongo2.NodeWrapper segments and nested *helperTagNode values
	body []any

	built sync.Map // *viewhelper.Registry -> *syntaxtree.ViewHelperNode
}

func parseHelperTag(doc *pongo2.Parser, start *pongo2.Token, arguments *pongo2.Parser) (pongo2.INodeTag, *pongo2.Error) {
	node, err := parseHelper(doc, start, arguments)
	if err != nil {
		return nil, err
	}
	return node, nil
}

func parseHelper(doc *pongo2.Parser, start *pongo2.Token, arguments *pongo2.Parser) (*helperTagNode, *pongo2.Error) {
	node := &helperTagNode{position: start, arguments: make(map[string]pongo2.IEvaluator)}

	nameToken := arguments.MatchType(pongo2.TokenString)
	if nameToken == nil {
		return nil, arguments.Error("Tag 'helper' requires the helper name as a string.", nil)
	}
	node.name = strings.TrimSpace(nameToken.Val)

	for arguments.Remaining() > 0 {
		key := arguments.MatchType(pongo2.TokenIdentifier)
		if key == nil {
			return nil, arguments.Error("Expected an argument name.", nil)
		}
		if arguments.Match(pongo2.TokenSymbol, "=") == nil {
			return nil, arguments.Error(fmt.Sprintf("Expected '=' after argument %q.", key.Val), nil)
		}
		if _, exists := node.arguments[key.Val]; exists {
			return nil, arguments.Error(fmt.Sprintf("Argument %q given twice.", key.Val), key)
		}
		value, err := arguments.ParseExpression()
		if err != nil {
			return nil, err
		}
		node.arguments[key.Val] = value
	}

	for {
		wrapper, endargs, err := doc.WrapUntilTag(HelperTag, endHelperTag)
		if err != nil {
			return nil, err
		}
		node.body = append(node.body, wrapper)
		if wrapper.Endtag == endHelperTag {
			if endargs.Count() > 0 {
				return nil, endargs.Error("Arguments not allowed here.", nil)
			}
			return node, nil
		}
		child, err := parseHelper(doc, endargs.Current(), endargs)
		if err != nil {
			return nil, err
		}
		node.body = append(node.body, child)
	}
}

func (n *helperTagNode) Execute(ctx *pongo2.ExecutionContext, writer pongo2.TemplateWriter) *pongo2.Error {
	state, ok := ctx.Public[stateKey].(*renderState)
	if !ok || state == nil {
		return ctx.Error("Tag 'helper' requires a template rendered by the view helper engine.", n.position)
	}

	node, err := n.build(state.registry)
	if err != nil {
		return ctx.OrigError(err, n.position)
	}

	goCtx := context.WithValue(state.rc.Context(), execContextKey{}, ctx)
	out, err := node.Evaluate(state.rc.WithContext(goCtx))
	if err != nil {
		var perr *pongo2.Error
		if errors.As(err, &perr) {
			return perr
		}
		return ctx.OrigError(err, n.position)
	}
	if out == nil {
		return nil
	}
	if _, err := writer.WriteString(cast.ToString(out)); err != nil {
		return ctx.OrigError(err, n.position)
	}
	return nil
}

// build converts the parsed tag into a helper node for registry. Nodes are
// built once per registry.
func (n *helperTagNode) build(registry *viewhelper.Registry) (*syntaxtree.ViewHelperNode, error) {
	if cached, ok := n.built.Load(registry); ok {
		return cached.(*syntaxtree.ViewHelperNode), nil
	}

	args := make(map[string]syntaxtree.Node, len(n.arguments))
	for name, evaluator := range n.arguments {
		args[name] = &expressionNode{evaluator: evaluator}
	}

	children := make([]syntaxtree.Node, 0, len(n.body))
	for _, item := range n.body {
		switch part := item.(type) {
		case *pongo2.NodeWrapper:
			children = append(children, &segmentNode{wrapper: part, escape: true})
		case *helperTagNode:
			child, err := part.build(registry)
			if err != nil {
				return nil, err
			}
			children = append(children, child)
		}
	}

	node, err := syntaxtree.NewViewHelperNode(registry, n.name, args, children...)
	if err != nil {
		return nil, err
	}
	actual, _ := n.built.LoadOrStore(registry, node)
	return actual.(*syntaxtree.ViewHelperNode), nil
}

func executionContext(rc viewhelper.RenderingContext) (*pongo2.ExecutionContext, error) {
	if rc != nil && rc.Context() != nil {
		if ctx, ok := rc.Context().Value(execContextKey{}).(*pongo2.ExecutionContext); ok {
			return ctx, nil
		}
	}
	return nil, errors.New("gotemplate: no pongo2 execution context in rendering context")
}

// expressionNode evaluates a pongo2 expression bound to a helper argument.
type expressionNode struct {
	evaluator pongo2.IEvaluator
}

func (n *expressionNode) Evaluate(rc viewhelper.RenderingContext) (any, error) {
	ctx, err := executionContext(rc)
	if err != nil {
		return nil, err
	}
	value, perr := n.evaluator.Evaluate(ctx)
	if perr != nil {
		return nil, perr
	}
	return value.Interface(), nil
}

// segmentNode renders a run of template markup between helper tags. Its
// escaping follows the enclosing helper.
type segmentNode struct {
	wrapper *pongo2.NodeWrapper
	escape  bool
}

func (n *segmentNode) SetEscaping(enabled bool) { n.escape = enabled }

func (n *segmentNode) Evaluate(rc viewhelper.RenderingContext) (any, error) {
	ctx, err := executionContext(rc)
	if err != nil {
		return nil, err
	}
	child := pongo2.NewChildExecutionContext(ctx)
	child.Autoescape = ctx.Autoescape && n.escape

	var b strings.Builder
	if perr := n.wrapper.Execute(child, &b); perr != nil {
		return nil, perr
	}
	return b.String(), nil
}
