package viewhelper

import (
	"errors"
	"reflect"

	"github.com/spf13/cast"

	"github.com/goliatone/go-viewhelper/pkg/tagbuilder"
)

// AdditionalAttributesArgument names the argument carrying extra tag attributes.
const AdditionalAttributesArgument = "additionalAttributes"

// TagBased is the base for helpers that render a single markup tag. Embed it
// in place of Base and construct it with NewTagBased.
type TagBased struct {
	Base
	Tag     *tagbuilder.TagBuilder
	TagName string
}

// NewTagBased creates the embedded part of a tag-based helper and declares
// the additionalAttributes argument.
func NewTagBased(tagName string) TagBased {
	if tagName == "" {
		tagName = "div"
	}
	tb := TagBased{Tag: tagbuilder.New(tagName), TagName: tagName}
	// a fresh definition set cannot hold a duplicate
	_ = tb.RegisterArgument(AdditionalAttributesArgument, TypeArray, "Additional tag attributes. They will be added directly to the resulting HTML tag.", false, nil)
	return tb
}

// Initialize resets the tag builder, applies the additionalAttributes bag and
// then every registered tag attribute that is bound to a non-empty value.
func (t *TagBased) Initialize() error {
	if err := t.Base.Initialize(); err != nil {
		return err
	}
	if t.Tag == nil {
		t.Tag = tagbuilder.New(t.TagName)
	}
	t.Tag.Reset()
	t.Tag.SetTagName(t.TagName)

	if t.HasArgument(AdditionalAttributesArgument) {
		if attributes, ok := additionalAttributes(t.Argument(AdditionalAttributesArgument)); ok {
			t.Tag.AddAttributes(attributes)
		}
	}

	if t.registry == nil {
		return nil
	}
	for _, name := range t.registry.TagAttributes().Names(t.typeKey) {
		if !t.HasArgument(name) {
			continue
		}
		value := t.Argument(name)
		if s, isString := value.(string); isString && s == "" {
			continue
		}
		t.Tag.AddAttribute(name, cast.ToString(value))
	}
	return nil
}

// RegisterTagAttribute declares an argument that is copied onto the tag.
func (t *TagBased) RegisterTagAttribute(name string, typ TypeTag, description string, required bool, defaultValue any) error {
	if t.registry == nil {
		return ErrNotAttached
	}
	if err := t.RegisterArgument(name, typ, description, required, defaultValue); err != nil {
		return err
	}
	t.registry.TagAttributes().Add(t.typeKey, name)
	return nil
}

// RegisterUniversalTagAttributes declares the common presentation attributes.
func (t *TagBased) RegisterUniversalTagAttributes() error {
	return errors.Join(
		t.RegisterTagAttribute("class", TypeString, "CSS class(es) for this element", false, nil),
		t.RegisterTagAttribute("dir", TypeString, `Text direction for this HTML element. Allowed strings: "ltr" (left to right), "rtl" (right to left)`, false, nil),
		t.RegisterTagAttribute("id", TypeString, "Unique (in this file) identifier for this HTML element.", false, nil),
		t.RegisterTagAttribute("lang", TypeString, "Language for this element. Use short names specified in RFC 1766", false, nil),
		t.RegisterTagAttribute("style", TypeString, "Individual CSS styles for this element", false, nil),
		t.RegisterTagAttribute("title", TypeString, "Tooltip text of element", false, nil),
		t.RegisterTagAttribute("accesskey", TypeString, "Keyboard shortcut to access this element", false, nil),
		t.RegisterTagAttribute("tabindex", TypeInteger, "Specifies the tab order of this element", false, nil),
		t.RegisterTagAttribute("onclick", TypeString, "JavaScript evaluated for the onclick event", false, nil),
	)
}

func additionalAttributes(value any) (map[string]string, bool) {
	if reflect.TypeOf(value).Kind() != reflect.Map {
		return nil, false
	}
	attributes, err := cast.ToStringMapStringE(value)
	if err != nil {
		return nil, false
	}
	return attributes, true
}
