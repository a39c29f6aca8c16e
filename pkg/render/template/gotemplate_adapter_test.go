package template_test

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-viewhelper/pkg/helpers"
	"github.com/goliatone/go-viewhelper/pkg/render/template/gotemplate"
	"github.com/goliatone/go-viewhelper/pkg/testsupport"
	"github.com/goliatone/go-viewhelper/pkg/viewhelper"
)

//go:embed testdata/templates/*.tpl
var embeddedTemplates embed.FS

func TestGoTemplateEngine_RenderTemplate(t *testing.T) {
	engine := newEngine(t)

	tests := []struct {
		name string
		data map[string]any
	}{
		{name: "hello", data: map[string]any{"name": "Ada"}},
		{name: "salutation", data: map[string]any{
			"person": map[string]any{"gender": "female", "name": "Curie"},
		}},
		{name: "people", data: map[string]any{
			"people": []any{
				map[string]any{"gender": "male", "name": "Turing"},
				map[string]any{"gender": "female", "name": "Curie"},
				map[string]any{"gender": "unknown", "name": "Who"},
			},
		}},
		{name: "link", data: map[string]any{"url": "/home", "label": "<Home>"}},
		{name: "raw", data: map[string]any{"html": "<b>x</b>"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
				return engine.RenderTemplate(tt.name, tt.data, w)
			})

			testsupport.AssertGolden(t, filepath.Join("testdata", tt.name+".golden"), result)
			if written != result {
				t.Fatalf("render template mismatch writer\nwant: %q\n got: %q", result, written)
			}
		})
	}
}

func TestGoTemplateEngine_GlobalContext(t *testing.T) {
	engine := newEngine(t)
	if err := engine.GlobalContext(map[string]any{
		"settings": map[string]any{"env": "  staging "},
	}); err != nil {
		t.Fatalf("global context: %v", err)
	}

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("use-global", nil, w)
	})

	want := testsupport.MustReadGoldenString(t, filepath.Join("testdata", "use-global.golden"))
	if result != want {
		t.Fatalf("render template mismatch result\nwant: %q\n got: %q", want, result)
	}
	if written != want {
		t.Fatalf("render template mismatch writer\nwant: %q\n got: %q", want, written)
	}
}

func TestGoTemplateEngine_RegisterFilter(t *testing.T) {
	engine := newEngine(t)
	err := engine.RegisterFilter("shout", func(input any, _ any) (any, error) {
		if input == nil {
			return "", nil
		}
		return fmt.Sprintf("%s!", strings.ToUpper(fmt.Sprint(input))), nil
	})
	if err != nil {
		t.Fatalf("register filter: %v", err)
	}

	result, err := engine.RenderString(`{% helper "link" href="/" %}{{ name|shout }}{% endhelper %}`, map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if want := `<a href="/">ADA!</a>`; result != want {
		t.Fatalf("render string mismatch\nwant: %q\n got: %q", want, result)
	}
}

func TestGoTemplateEngine_ReservedDataNames(t *testing.T) {
	engine := newEngine(t)
	data := map[string]any{"no": "n", "Yes": "y"}

	tests := []struct {
		name     string
		template string
		want     string
	}{
		{name: "plain output", template: `{{ no }}-{{ Yes }}`, want: "n-y"},
		{name: "helper arguments", template: `{% helper "link" href=no %}{{ Yes }}{% endhelper %}`, want: `<a href="n">y</a>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := engine.RenderString(tt.template, data)
			if err != nil {
				t.Fatalf("render string: %v", err)
			}
			if result != tt.want {
				t.Fatalf("render string mismatch\nwant: %q\n got: %q", tt.want, result)
			}
		})
	}
}

func TestGoTemplateEngine_ConstructionOptions(t *testing.T) {
	templatesFS, err := fs.Sub(embeddedTemplates, "testdata/templates")
	if err != nil {
		t.Fatalf("sub fs: %v", err)
	}
	engine, err := gotemplate.New(
		gotemplate.WithFS(templatesFS),
		gotemplate.WithGlobalData(map[string]any{" site ": "docs"}),
		gotemplate.WithTemplateFunc(map[string]any{
			"greet": func(name string) string { return "hi " + name },
		}),
	)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	result, err := engine.RenderString(`{% helper "link" href="/" %}{{ greet(name) }} @ {{ site }}{% endhelper %}`, map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if want := `<a href="/">hi Ada @ docs</a>`; result != want {
		t.Fatalf("render string mismatch\nwant: %q\n got: %q", want, result)
	}
}

func TestGoTemplateEngine_HelperErrors(t *testing.T) {
	engine := newEngine(t)

	tests := []struct {
		name     string
		template string
		want     error
	}{
		{name: "case outside switch", template: `{% helper "case" value="a" %}x{% endhelper %}`, want: viewhelper.ErrIllegalContext},
		{name: "unknown helper", template: `{% helper "nope" %}{% endhelper %}`, want: viewhelper.ErrHelperNotFound},
		{name: "missing required argument", template: `{% helper "link" %}x{% endhelper %}`, want: viewhelper.ErrRequiredArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.RenderString(tt.template, nil)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestGoTemplateEngine_ParseErrors(t *testing.T) {
	engine := newEngine(t)

	for _, tpl := range []string{
		`{% helper switch %}{% endhelper %}`,
		`{% helper "switch" expression %}{% endhelper %}`,
		`{% helper "switch" expression=1 expression=2 %}{% endhelper %}`,
		`{% helper "switch" expression=1 %}`,
	} {
		if _, err := engine.RenderString(tpl, nil); err == nil {
			t.Fatalf("expected parse error for %s", tpl)
		}
	}
}

func TestGoTemplateEngine_RecoveredMessage(t *testing.T) {
	engine := newEngine(t)

	result, err := engine.RenderString(`[{% helper "format.sanitize" value="<b>x</b>" policy="nope" %}{% endhelper %}]`, nil)
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if want := `[unknown sanitize policy "nope"]`; result != want {
		t.Fatalf("expected recovered message, got %q", result)
	}
}

func TestGoTemplateEngine_RenderContextCancelled(t *testing.T) {
	engine := newEngine(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := engine.RenderContext(ctx, `{% helper "format.raw" %}x{% endhelper %}`, nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestGoTemplateEngine_CustomRegistry(t *testing.T) {
	templatesFS, err := fs.Sub(embeddedTemplates, "testdata/templates")
	if err != nil {
		t.Fatalf("sub fs: %v", err)
	}
	registry := helpers.NewRegistry(viewhelper.WithRecoveryPolicy(viewhelper.Propagate))
	engine, err := gotemplate.New(gotemplate.WithFS(templatesFS), gotemplate.WithRegistry(registry))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	if engine.Registry() != registry {
		t.Fatalf("expected engine to use the provided registry")
	}

	_, err = engine.RenderString(`{% helper "format.sanitize" value="x" policy="nope" %}{% endhelper %}`, nil)
	var exception *viewhelper.Exception
	if !errors.As(err, &exception) {
		t.Fatalf("expected propagated exception, got %v", err)
	}
}

func newEngine(t *testing.T) *gotemplate.Engine {
	t.Helper()

	templatesFS, err := fs.Sub(embeddedTemplates, "testdata/templates")
	if err != nil {
		t.Fatalf("sub fs: %v", err)
	}

	engine, err := gotemplate.New(gotemplate.WithFS(templatesFS))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}
