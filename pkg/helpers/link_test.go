package helpers

import (
	"context"
	"testing"

	"github.com/goliatone/go-viewhelper/pkg/rendering"
	"github.com/goliatone/go-viewhelper/pkg/syntaxtree"
	"github.com/goliatone/go-viewhelper/pkg/viewhelper"
)

func TestLink_Render(t *testing.T) {
	reg := NewRegistry()

	tests := []struct {
		name     string
		args     args
		children []syntaxtree.Node
		want     string
	}{
		{
			name:     "href and content",
			args:     args{"href": syntaxtree.Value("/home")},
			children: []syntaxtree.Node{syntaxtree.Text("Home")},
			want:     `<a href="/home">Home</a>`,
		},
		{
			name: "empty content keeps closing tag",
			args: args{"href": syntaxtree.Value("/")},
			want: `<a href="/"></a>`,
		},
		{
			name: "named attribute overrides the bag",
			args: args{
				"href":  syntaxtree.Value("/docs"),
				"class": syntaxtree.Value("external"),
				"additionalAttributes": syntaxtree.Value(map[string]string{
					"class":  "from-bag",
					"data-x": "1",
				}),
			},
			children: []syntaxtree.Node{syntaxtree.Text("Docs")},
			want:     `<a class="external" data-x="1" href="/docs">Docs</a>`,
		},
		{
			name: "bag attribute survives when the named one is empty",
			args: args{
				"href":                 syntaxtree.Value("/docs"),
				"id":                   syntaxtree.Value(""),
				"additionalAttributes": syntaxtree.Value(map[string]any{"id": "bag-id"}),
			},
			want: `<a id="bag-id" href="/docs"></a>`,
		},
		{
			name: "attribute values are escaped",
			args: args{
				"href":  syntaxtree.Value("/search?a=1&b=2"),
				"title": syntaxtree.Value(`say "hi"`),
			},
			want: `<a title="say &#34;hi&#34;" href="/search?a=1&amp;b=2"></a>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := syntaxtree.NewViewHelperNode(reg, "link", tt.args, tt.children...)
			if err != nil {
				t.Fatalf("node: %v", err)
			}
			if got := render(t, rendering.New(context.Background()), node); got != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestLink_EscapesDynamicChildren(t *testing.T) {
	reg := NewRegistry()
	rc, err := rendering.NewWithVariables(context.Background(), map[string]any{"label": "<b>Home</b>"})
	if err != nil {
		t.Fatalf("rendering context: %v", err)
	}
	node := syntaxtree.MustViewHelperNode(reg, "link", args{"href": syntaxtree.Value("/")}, syntaxtree.Accessor(nil, "label"))

	want := `<a href="/">&lt;b&gt;Home&lt;/b&gt;</a>`
	if got := render(t, rc, node); got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestLink_SharedDefinitionCache(t *testing.T) {
	cache := viewhelper.NewDefinitionCache()
	registries := []*viewhelper.Registry{
		NewRegistry(viewhelper.WithDefinitionCache(cache)),
		NewRegistry(viewhelper.WithDefinitionCache(cache)),
	}

	want := `<a class="c" href="/x"></a>`
	for i, reg := range registries {
		node := syntaxtree.MustViewHelperNode(reg, "link", args{
			"href":  syntaxtree.Value("/x"),
			"class": syntaxtree.Value("c"),
		})
		if got := render(t, rendering.New(context.Background()), node); got != want {
			t.Fatalf("registry %d: expected %s, got %s", i, want, got)
		}
	}
}
