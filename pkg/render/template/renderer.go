package template

import (
	"context"
	"io"
)

// TemplateRenderer renders named templates or inline template content. When
// out is given the result is also written to every writer.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}

// ContextRenderer is a TemplateRenderer whose render passes observe a
// context for cancellation.
type ContextRenderer interface {
	TemplateRenderer
	RenderContext(ctx context.Context, name string, data any, out ...io.Writer) (string, error)
}
