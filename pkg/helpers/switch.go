package helpers

import (
	"fmt"
	"reflect"

	"github.com/goliatone/go-viewhelper/pkg/variables"
	"github.com/goliatone/go-viewhelper/pkg/viewhelper"
)

// SwitchNamespace is the view helper container namespace owned by Switch and Case.
const SwitchNamespace = "Switch"

const (
	switchExpressionKey = "switchExpression"
	breakKey            = "break"
)

var caseType = reflect.TypeOf((*Case)(nil))

// Switch renders the first Case child whose value loosely equals expression.
//
//	<switch expression="{person.gender}">
//	  <case value="male">Mr.</case>
//	  <case value="female">Mrs.</case>
//	</switch>
type Switch struct {
	viewhelper.Base

	childNodes []viewhelper.Node

	backupSwitchExpression any
	backupBreakState       bool
}

var _ viewhelper.ChildNodeAccessor = (*Switch)(nil)

// NewSwitch is the registry factory for Switch.
func NewSwitch() viewhelper.Helper {
	return &Switch{}
}

func (s *Switch) RenderParameters() []viewhelper.Parameter {
	return []viewhelper.Parameter{
		{Name: "expression", Type: viewhelper.TypeMixed, Description: "The value compared against every case"},
	}
}

// SetChildNodes receives the nodes the switch walks.
func (s *Switch) SetChildNodes(nodes []viewhelper.Node) {
	s.childNodes = nodes
}

// ResetState drops the backup of an enclosing switch.
func (s *Switch) ResetState() {
	s.backupSwitchExpression = nil
	s.backupBreakState = false
	s.childNodes = nil
}

func (s *Switch) Render(args viewhelper.Arguments) (any, error) {
	container := s.ViewHelperVariableContainer()
	if container == nil {
		return nil, fmt.Errorf("helpers: switch: %w: no view helper variable container", viewhelper.ErrIllegalContext)
	}

	s.backupSwitchState(container)
	container.AddOrUpdate(SwitchNamespace, switchExpressionKey, args.Get("expression"))
	container.AddOrUpdate(SwitchNamespace, breakKey, false)

	content, err := s.evaluateCases(container)

	// both keys were published above, removal cannot fail
	_ = container.Remove(SwitchNamespace, switchExpressionKey)
	_ = container.Remove(SwitchNamespace, breakKey)

	s.restoreSwitchState(container)
	if err != nil {
		return nil, err
	}
	return content, nil
}

func (s *Switch) evaluateCases(container *variables.Container) (any, error) {
	var content any = ""
	for _, child := range s.childNodes {
		if !isCaseNode(child) {
			continue
		}
		out, err := child.Evaluate(s.RenderingContext())
		if err != nil {
			return nil, err
		}
		content = out
		if brk, err := container.Get(SwitchNamespace, breakKey); err == nil && brk == true {
			break
		}
	}
	return content, nil
}

func (s *Switch) backupSwitchState(container *variables.Container) {
	if expression, err := container.Get(SwitchNamespace, switchExpressionKey); err == nil {
		s.backupSwitchExpression = expression
	}
	if brk, err := container.Get(SwitchNamespace, breakKey); err == nil {
		s.backupBreakState, _ = brk.(bool)
	}
}

// restoreSwitchState re-publishes the enclosing switch's state. Only a
// non-nil expression and a true break flag are restored.
func (s *Switch) restoreSwitchState(container *variables.Container) {
	if s.backupSwitchExpression != nil {
		container.AddOrUpdate(SwitchNamespace, switchExpressionKey, s.backupSwitchExpression)
	}
	if s.backupBreakState {
		container.AddOrUpdate(SwitchNamespace, breakKey, true)
	}
}

func isCaseNode(node viewhelper.Node) bool {
	helperNode, ok := node.(viewhelper.HelperNode)
	return ok && helperNode.HelperType() == caseType
}
