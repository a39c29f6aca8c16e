package helpers

import (
	"errors"

	"github.com/goliatone/go-viewhelper/pkg/viewhelper"
)

// Link renders an <a> tag around its children.
//
//	<link href="https://example.com" class="external">Example</link>
type Link struct {
	viewhelper.TagBased
}

// NewLink is the registry factory for Link.
func NewLink() viewhelper.Helper {
	return &Link{TagBased: viewhelper.NewTagBased("a")}
}

func (l *Link) RenderParameters() []viewhelper.Parameter {
	return []viewhelper.Parameter{
		{Name: "href", Type: viewhelper.TypeString, Description: "Target URI"},
	}
}

func (l *Link) InitializeArguments() error {
	return errors.Join(
		l.RegisterUniversalTagAttributes(),
		l.RegisterTagAttribute("target", viewhelper.TypeString, "Browsing context for the link", false, nil),
		l.RegisterTagAttribute("rel", viewhelper.TypeString, "Relationship of the target to this document", false, nil),
	)
}

func (l *Link) Render(args viewhelper.Arguments) (any, error) {
	content, err := l.RenderChildren()
	if err != nil {
		return nil, err
	}
	l.Tag.AddAttribute("href", args.String("href"))
	l.Tag.SetContent(childString(content))
	l.Tag.ForceClosingTag(true)
	return l.Tag.Render(), nil
}
