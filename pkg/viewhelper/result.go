package viewhelper

import (
	"fmt"
	"strings"
	"time"
)

// RenderResult is the outcome of CallRenderMethod: either an output value or
// a failure.
type RenderResult struct {
	Output  any
	Failure error
}

// Failed reports whether Render returned an error.
func (r RenderResult) Failed() bool {
	return r.Failure != nil
}

// RecoveryPolicy decides what happens to recoverable Render failures.
type RecoveryPolicy int

const (
	// RecoverWithMessage substitutes the failure message as the node output.
	RecoverWithMessage RecoveryPolicy = iota
	// RecoverSilently renders nothing in place of the failing node.
	RecoverSilently
	// Propagate returns the failure to the caller.
	Propagate
)

func (p RecoveryPolicy) String() string {
	switch p {
	case RecoverWithMessage:
		return "message"
	case RecoverSilently:
		return "silent"
	case Propagate:
		return "propagate"
	default:
		return fmt.Sprintf("RecoveryPolicy(%d)", int(p))
	}
}

// ParseRecoveryPolicy parses the names returned by String.
func ParseRecoveryPolicy(raw string) (RecoveryPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "message", "inline":
		return RecoverWithMessage, nil
	case "silent", "ignore":
		return RecoverSilently, nil
	case "propagate", "rethrow":
		return Propagate, nil
	default:
		return RecoverWithMessage, fmt.Errorf("viewhelper: unknown recovery policy %q", raw)
	}
}

// Outcome classifies one helper invocation for observers.
type Outcome string

const (
	OutcomeOK        Outcome = "ok"
	OutcomeRecovered Outcome = "recovered"
	OutcomeFailed    Outcome = "failed"
)

// Observer is notified after every InitializeArgumentsAndRender call.
type Observer interface {
	ObserveRender(helper string, elapsed time.Duration, outcome Outcome)
}

type noopObserver struct{}

func (noopObserver) ObserveRender(string, time.Duration, Outcome) {}
