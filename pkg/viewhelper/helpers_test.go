package viewhelper_test

import (
	"errors"
	"time"

	"github.com/goliatone/go-viewhelper/pkg/viewhelper"
)

// echo renders its value argument.
type echo struct {
	viewhelper.Base
	initialized *int
}

func (h *echo) RenderParameters() []viewhelper.Parameter {
	return []viewhelper.Parameter{
		{Name: "value", Type: viewhelper.TypeMixed, Optional: true, DefaultValue: "", Description: "Value to render"},
	}
}

func (h *echo) InitializeArguments() error {
	if h.initialized != nil {
		*h.initialized++
	}
	return h.RegisterArgument("class", viewhelper.TypeString, "Not a render parameter", false, nil)
}

func (h *echo) Render(args viewhelper.Arguments) (any, error) {
	return args.Get("value"), nil
}

// recorder logs the order of lifecycle hooks.
type recorder struct {
	viewhelper.Base
	calls []string
}

func (h *recorder) RenderParameters() []viewhelper.Parameter {
	return []viewhelper.Parameter{
		{Name: "items", IsCollection: true, Optional: true},
	}
}

func (h *recorder) InitializeArguments() error {
	h.calls = append(h.calls, "initializeArguments")
	return nil
}

func (h *recorder) Initialize() error {
	h.calls = append(h.calls, "initialize")
	return nil
}

func (h *recorder) Render(viewhelper.Arguments) (any, error) {
	h.calls = append(h.calls, "render")
	return "done", nil
}

// failing returns err from Render.
type failing struct {
	viewhelper.Base
	err error
}

func (h *failing) Render(viewhelper.Arguments) (any, error) {
	return nil, h.err
}

// unstable registers an argument and then fails with err.
type unstable struct {
	viewhelper.Base
	err error
}

func (h *unstable) InitializeArguments() error {
	if err := h.RegisterArgument("class", viewhelper.TypeString, "CSS class", false, nil); err != nil {
		return err
	}
	return h.err
}

func (h *unstable) Render(viewhelper.Arguments) (any, error) {
	return "", nil
}

// children renders its child content.
type children struct {
	viewhelper.Base
}

func (h *children) Render(viewhelper.Arguments) (any, error) {
	return h.RenderChildren()
}

// typed declares one argument of every checked kind.
type typed struct {
	viewhelper.Base
}

func (h *typed) InitializeArguments() error {
	return errors.Join(
		h.RegisterArgument("list", viewhelper.TypeArray, "", false, nil),
		h.RegisterArgument("flag", viewhelper.TypeBoolean, "", false, "auto"),
		h.RegisterArgument("stringer", "stringer", "", false, nil),
		h.RegisterArgument("widget", "Widget", "", false, nil),
		h.RegisterArgument("count", viewhelper.TypeInteger, "", false, 0),
	)
}

func (h *typed) Render(viewhelper.Arguments) (any, error) { return "ok", nil }

type observation struct {
	helper  string
	outcome viewhelper.Outcome
}

type observer struct {
	seen []observation
}

func (o *observer) ObserveRender(helper string, _ time.Duration, outcome viewhelper.Outcome) {
	o.seen = append(o.seen, observation{helper: helper, outcome: outcome})
}
