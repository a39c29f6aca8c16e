package helpers

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"github.com/spf13/cast"

	"github.com/goliatone/go-viewhelper/pkg/viewhelper"
)

// Raw outputs its value, or its children, without escaping.
type Raw struct {
	viewhelper.Base
}

// NewRaw is the registry factory for Raw.
func NewRaw() viewhelper.Helper {
	return &Raw{}
}

func (r *Raw) RenderParameters() []viewhelper.Parameter {
	return []viewhelper.Parameter{
		{Name: "value", Type: viewhelper.TypeMixed, Optional: true, Description: "Value to output; children are used when empty"},
	}
}

func (r *Raw) IsEscapingInterceptorEnabled() bool { return false }

func (r *Raw) Render(args viewhelper.Arguments) (any, error) {
	if args.Has("value") {
		return args.Get("value"), nil
	}
	return r.RenderChildren()
}

// Sanitize strips unsafe markup from its value or children.
type Sanitize struct {
	viewhelper.Base
}

// NewSanitize is the registry factory for Sanitize.
func NewSanitize() viewhelper.Helper {
	return &Sanitize{}
}

var (
	policiesOnce sync.Once
	policies     map[string]*bluemonday.Policy
)

func sanitizePolicy(name string) (*bluemonday.Policy, bool) {
	policiesOnce.Do(func() {
		policies = map[string]*bluemonday.Policy{
			"ugc":    bluemonday.UGCPolicy(),
			"strict": bluemonday.StrictPolicy(),
		}
	})
	policy, ok := policies[strings.ToLower(strings.TrimSpace(name))]
	return policy, ok
}

func (s *Sanitize) RenderParameters() []viewhelper.Parameter {
	return []viewhelper.Parameter{
		{Name: "value", Type: viewhelper.TypeString, Optional: true, Description: "Markup to sanitize; children are used when empty"},
		{Name: "policy", Type: viewhelper.TypeString, Optional: true, DefaultValue: "ugc", Description: `Sanitizer policy: "ugc" or "strict"`},
	}
}

func (s *Sanitize) IsEscapingInterceptorEnabled() bool { return false }

func (s *Sanitize) Render(args viewhelper.Arguments) (any, error) {
	policy, ok := sanitizePolicy(args.String("policy"))
	if !ok {
		return nil, viewhelper.NewException("unknown sanitize policy %q", args.String("policy"))
	}

	var markup string
	if args.Has("value") {
		markup = args.String("value")
	} else {
		content, err := s.RenderChildren()
		if err != nil {
			return nil, err
		}
		markup = childString(content)
	}
	return policy.Sanitize(markup), nil
}

func childString(content any) string {
	if content == nil {
		return ""
	}
	return cast.ToString(content)
}
