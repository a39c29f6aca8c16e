// Package expression evaluates object accessor expressions against template
// variables using expr-lang/expr. Compiled programs are cached by source.
package expression

import (
	"fmt"
	"strings"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Evaluator compiles and runs expressions. It is safe for concurrent use.
type Evaluator struct {
	mu       sync.RWMutex
	programs map[string]*vm.Program
}

// New creates an evaluator with an empty program cache.
func New() *Evaluator {
	return &Evaluator{programs: make(map[string]*vm.Program)}
}

// Evaluate runs source against env. Undefined variables evaluate to nil.
func (e *Evaluator) Evaluate(source string, env map[string]any) (any, error) {
	program, err := e.compile(source)
	if err != nil {
		return nil, err
	}
	if env == nil {
		env = map[string]any{}
	}
	out, err := expr.Run(program, env)
	if err != nil {
		return nil, fmt.Errorf("expression: run %q: %w", source, err)
	}
	return out, nil
}

// Compile validates source and caches the program.
func (e *Evaluator) Compile(source string) error {
	_, err := e.compile(source)
	return err
}

func (e *Evaluator) compile(source string) (*vm.Program, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return nil, fmt.Errorf("expression: source is required")
	}

	e.mu.RLock()
	program, ok := e.programs[source]
	e.mu.RUnlock()
	if ok {
		return program, nil
	}

	program, err := expr.Compile(source, expr.AllowUndefinedVariables())
	if err != nil {
		return nil, fmt.Errorf("expression: compile %q: %w", source, err)
	}

	e.mu.Lock()
	e.programs[source] = program
	e.mu.Unlock()
	return program, nil
}

// Len returns the number of cached programs.
func (e *Evaluator) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.programs)
}
