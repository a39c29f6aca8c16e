package helpers

import (
	"fmt"

	"github.com/goliatone/go-viewhelper/pkg/viewhelper"
)

// Case renders its children when value loosely equals the expression of the
// enclosing Switch. See LooseEqual for the comparison rules.
type Case struct {
	viewhelper.Base
}

// NewCase is the registry factory for Case.
func NewCase() viewhelper.Helper {
	return &Case{}
}

func (c *Case) RenderParameters() []viewhelper.Parameter {
	return []viewhelper.Parameter{
		{Name: "value", Type: viewhelper.TypeMixed, Description: "The value compared with the switch expression"},
	}
}

func (c *Case) Render(args viewhelper.Arguments) (any, error) {
	container := c.ViewHelperVariableContainer()
	if !container.Exists(SwitchNamespace, switchExpressionKey) {
		return nil, fmt.Errorf("helpers: the case view helper can only be used within a switch view helper: %w", viewhelper.ErrIllegalContext)
	}
	expression, err := container.Get(SwitchNamespace, switchExpressionKey)
	if err != nil {
		return nil, err
	}

	if LooseEqual(expression, args.Get("value")) {
		container.AddOrUpdate(SwitchNamespace, breakKey, true)
		return c.RenderChildren()
	}
	return "", nil
}
