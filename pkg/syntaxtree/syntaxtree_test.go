package syntaxtree_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-viewhelper/pkg/expression"
	"github.com/goliatone/go-viewhelper/pkg/rendering"
	"github.com/goliatone/go-viewhelper/pkg/syntaxtree"
	"github.com/goliatone/go-viewhelper/pkg/viewhelper"
)

// greet renders "<greeting>, <children>".
type greet struct {
	viewhelper.Base
	resets int
}

func (h *greet) RenderParameters() []viewhelper.Parameter {
	return []viewhelper.Parameter{
		{Name: "greeting", Type: viewhelper.TypeString, Optional: true, DefaultValue: "Hello"},
		{Name: "name", Type: viewhelper.TypeString},
	}
}

func (h *greet) ResetState() { h.resets++ }

func (h *greet) Render(args viewhelper.Arguments) (any, error) {
	children, err := h.RenderChildren()
	if err != nil {
		return nil, err
	}
	return args.String("greeting") + ", " + args.String("name") + children.(string), nil
}

// passthrough renders children without escaping.
type passthrough struct {
	viewhelper.Base
}

func (h *passthrough) IsEscapingInterceptorEnabled() bool { return false }

func (h *passthrough) Render(viewhelper.Arguments) (any, error) {
	return h.RenderChildren()
}

func newRegistry(t *testing.T) *viewhelper.Registry {
	t.Helper()
	reg := viewhelper.NewRegistry()
	reg.MustRegister("greet", func() viewhelper.Helper { return &greet{} })
	reg.MustRegister("raw", func() viewhelper.Helper { return &passthrough{} })
	return reg
}

func newContext(t *testing.T, vars map[string]any) *rendering.Context {
	t.Helper()
	rc, err := rendering.NewWithVariables(context.Background(), vars)
	if err != nil {
		t.Fatalf("rendering context: %v", err)
	}
	return rc
}

func TestViewHelperNode_FillsDefaults(t *testing.T) {
	reg := newRegistry(t)
	node := syntaxtree.MustViewHelperNode(reg, "greet",
		map[string]syntaxtree.Node{"name": syntaxtree.Value("Ada")},
		syntaxtree.Text("!"),
	)

	got, err := syntaxtree.Root(node).Render(newContext(t, nil))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "Hello, Ada!" {
		t.Fatalf("expected default greeting, got %q", got)
	}
}

func TestViewHelperNode_RequiredArgument(t *testing.T) {
	reg := newRegistry(t)
	_, err := syntaxtree.NewViewHelperNode(reg, "greet", nil)

	var argErr *viewhelper.ArgumentError
	if !errors.As(err, &argErr) || argErr.Argument != "name" {
		t.Fatalf("expected missing name argument, got %v", err)
	}
	if !errors.Is(err, viewhelper.ErrRequiredArgument) {
		t.Fatalf("expected ErrRequiredArgument, got %v", err)
	}
}

func TestViewHelperNode_UnknownHelper(t *testing.T) {
	_, err := syntaxtree.NewViewHelperNode(newRegistry(t), "missing", nil)
	if !errors.Is(err, viewhelper.ErrHelperNotFound) {
		t.Fatalf("expected ErrHelperNotFound, got %v", err)
	}
}

func TestEscaping(t *testing.T) {
	reg := newRegistry(t)
	vars := map[string]any{"markup": "<i>x</i>"}

	tests := []struct {
		name string
		node syntaxtree.Node
		want string
	}{
		{
			name: "accessor below root",
			node: syntaxtree.Accessor(nil, "markup"),
			want: "&lt;i&gt;x&lt;/i&gt;",
		},
		{
			name: "accessor inside escaping helper",
			node: syntaxtree.MustViewHelperNode(reg, "greet",
				map[string]syntaxtree.Node{"name": syntaxtree.Value("Ada")},
				syntaxtree.Accessor(nil, "markup")),
			want: "Hello, Ada&lt;i&gt;x&lt;/i&gt;",
		},
		{
			name: "accessor inside raw helper",
			node: syntaxtree.MustViewHelperNode(reg, "raw", nil, syntaxtree.Accessor(nil, "markup")),
			want: "<i>x</i>",
		},
		{
			name: "accessor as argument",
			node: syntaxtree.MustViewHelperNode(reg, "greet",
				map[string]syntaxtree.Node{"name": syntaxtree.Accessor(nil, "markup")}),
			want: "Hello, <i>x</i>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := syntaxtree.Root(tt.node).Render(newContext(t, vars))
			if err != nil {
				t.Fatalf("render: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestCompile_MatchesInterpreted(t *testing.T) {
	reg := newRegistry(t)
	evaluator := expression.New()
	root := syntaxtree.Root(
		syntaxtree.Text("<p>"),
		syntaxtree.MustViewHelperNode(reg, "greet",
			map[string]syntaxtree.Node{
				"greeting": syntaxtree.Accessor(evaluator, "user.greeting"),
				"name":     syntaxtree.Accessor(evaluator, "user.name"),
			},
			syntaxtree.Text(" ("),
			syntaxtree.Accessor(evaluator, "len(user.roles)"),
			syntaxtree.Text(" roles)"),
		),
		syntaxtree.Text("</p>"),
	)
	vars := map[string]any{"user": map[string]any{
		"greeting": "Hi",
		"name":     "Grace",
		"roles":    []string{"admin", "ops"},
	}}

	interpreted, err := root.Render(newContext(t, vars))
	if err != nil {
		t.Fatalf("interpreted: %v", err)
	}
	compiled, err := syntaxtree.Compile(root).Render(newContext(t, vars))
	if err != nil {
		t.Fatalf("compiled: %v", err)
	}
	if diff := cmp.Diff(interpreted, compiled); diff != "" {
		t.Fatalf("compiled output differs (-interpreted +compiled):\n%s", diff)
	}
	if interpreted != "<p>Hi, Grace (2 roles)</p>" {
		t.Fatalf("unexpected output %q", interpreted)
	}
}

func TestEvaluate_StopsWhenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	rendered := 0
	root := syntaxtree.Root(
		syntaxtree.NodeFunc(func(viewhelper.RenderingContext) (any, error) {
			rendered++
			cancel()
			return "a", nil
		}),
		syntaxtree.NodeFunc(func(viewhelper.RenderingContext) (any, error) {
			rendered++
			return "b", nil
		}),
	)

	_, err := root.Render(rendering.New(ctx))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if rendered != 1 {
		t.Fatalf("expected rendering to stop after the first node, rendered %d", rendered)
	}
}

func TestViewHelperNode_ConcurrentRenders(t *testing.T) {
	reg := newRegistry(t)
	root := syntaxtree.Root(syntaxtree.MustViewHelperNode(reg, "greet",
		map[string]syntaxtree.Node{"name": syntaxtree.Accessor(nil, "name")}))

	names := []string{"Ada", "Grace", "Linus", "Ken", "Rob", "Barbara"}
	var wg sync.WaitGroup
	errs := make(chan error, len(names)*10)
	for i := 0; i < 10; i++ {
		for _, name := range names {
			wg.Add(1)
			go func(name string) {
				defer wg.Done()
				rc, err := rendering.NewWithVariables(context.Background(), map[string]any{"name": name})
				if err != nil {
					errs <- err
					return
				}
				got, err := root.Render(rc)
				if err != nil {
					errs <- err
					return
				}
				if want := "Hello, " + name; got != want {
					errs <- errors.New("expected " + want + ", got " + got)
				}
			}(name)
		}
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatal(err)
	}
}

func TestTextAndValueNodes(t *testing.T) {
	rc := newContext(t, nil)
	if out, _ := syntaxtree.Value(42).Evaluate(rc); out != 42 {
		t.Fatalf("expected value node to keep its type, got %#v", out)
	}
	got, err := syntaxtree.Root(syntaxtree.Text("a"), syntaxtree.Value(1), syntaxtree.Value(true)).Render(rc)
	if err != nil || got != "a1true" {
		t.Fatalf("expected concatenated output, got %q (%v)", got, err)
	}
	if got, _ := syntaxtree.Root().Render(rc); got != "" {
		t.Fatalf("expected empty root to render nothing, got %q", got)
	}
}
