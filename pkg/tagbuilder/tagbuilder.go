// Package tagbuilder assembles a single markup tag from a name, an ordered
// attribute set and inner content.
package tagbuilder

import (
	"html"
	"slices"
	"strings"
)

type attribute struct {
	name  string
	value string
}

// TagBuilder is a mutable builder for one output tag. It is owned by a single
// helper instance and reset between invocations.
type TagBuilder struct {
	tagName         string
	content         string
	attributes      []attribute
	forceClosingTag bool
}

// New creates a builder for tagName with optional content.
func New(tagName string, content ...string) *TagBuilder {
	tb := &TagBuilder{tagName: tagName}
	if len(content) > 0 {
		tb.content = strings.Join(content, "")
	}
	return tb
}

// SetTagName sets the tag name.
func (tb *TagBuilder) SetTagName(name string) {
	tb.tagName = name
}

// TagName returns the tag name.
func (tb *TagBuilder) TagName() string {
	return tb.tagName
}

// SetContent replaces the inner content. Content is emitted verbatim.
func (tb *TagBuilder) SetContent(content string) {
	tb.content = content
}

// Content returns the inner content.
func (tb *TagBuilder) Content() string {
	return tb.content
}

// HasContent reports whether inner content is set.
func (tb *TagBuilder) HasContent() bool {
	return tb.content != ""
}

// ForceClosingTag renders an explicit closing tag even without content.
func (tb *TagBuilder) ForceClosingTag(force bool) {
	tb.forceClosingTag = force
}

// AddAttribute upserts an attribute. Values are HTML-escaped unless escape is
// false. An existing attribute keeps its position.
func (tb *TagBuilder) AddAttribute(name, value string, escape ...bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	if len(escape) == 0 || escape[0] {
		value = html.EscapeString(value)
	}
	if idx := tb.index(name); idx >= 0 {
		tb.attributes[idx].value = value
		return
	}
	tb.attributes = append(tb.attributes, attribute{name: name, value: value})
}

// AddAttributes upserts every attribute in sorted name order.
func (tb *TagBuilder) AddAttributes(attributes map[string]string, escape ...bool) {
	names := make([]string, 0, len(attributes))
	for name := range attributes {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		tb.AddAttribute(name, attributes[name], escape...)
	}
}

// RemoveAttribute drops an attribute if present.
func (tb *TagBuilder) RemoveAttribute(name string) {
	if idx := tb.index(name); idx >= 0 {
		tb.attributes = slices.Delete(tb.attributes, idx, idx+1)
	}
}

// HasAttribute reports whether name is set.
func (tb *TagBuilder) HasAttribute(name string) bool {
	return tb.index(name) >= 0
}

// Attribute returns the stored (already escaped) value of name.
func (tb *TagBuilder) Attribute(name string) (string, bool) {
	if idx := tb.index(name); idx >= 0 {
		return tb.attributes[idx].value, true
	}
	return "", false
}

// Attributes returns the attribute names in insertion order.
func (tb *TagBuilder) Attributes() []string {
	names := make([]string, 0, len(tb.attributes))
	for _, attr := range tb.attributes {
		names = append(names, attr.name)
	}
	return names
}

// Reset clears name, attributes, content and the closing tag flag.
func (tb *TagBuilder) Reset() {
	tb.tagName = ""
	tb.content = ""
	tb.attributes = nil
	tb.forceClosingTag = false
}

// Render serializes the tag. Attributes with an empty value are skipped and
// an empty tag name renders nothing.
func (tb *TagBuilder) Render() string {
	if tb.tagName == "" {
		return ""
	}
	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(tb.tagName)
	for _, attr := range tb.attributes {
		if attr.value == "" {
			continue
		}
		b.WriteByte(' ')
		b.WriteString(attr.name)
		b.WriteString(`="`)
		b.WriteString(attr.value)
		b.WriteByte('"')
	}
	if tb.HasContent() || tb.forceClosingTag {
		b.WriteByte('>')
		b.WriteString(tb.content)
		b.WriteString("</")
		b.WriteString(tb.tagName)
		b.WriteByte('>')
		return b.String()
	}
	b.WriteString(" />")
	return b.String()
}

func (tb *TagBuilder) index(name string) int {
	return slices.IndexFunc(tb.attributes, func(attr attribute) bool {
		return attr.name == name
	})
}
