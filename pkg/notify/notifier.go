// Package notify defines the observer of test execution and a set of ready-made observers.
package notify

import (
	"github.com/specvital/spectree/pkg/domain"
)

// Notifier receives lifecycle events of a test run.
//
// For every executed test the runner calls TestStarted, at most one TestFailed,
// zero or more HookFailed and finally TestFinished. A test that does not execute
// gets TestIgnored and nothing else. GroupFailed reports a failing afterAll hook.
// All calls come from the goroutine running the spec.
type Notifier interface {
	TestIgnored(id domain.TestID, reason error)
	TestStarted(id domain.TestID)
	TestFailed(id domain.TestID, cause error)
	TestFinished(id domain.TestID, outcome domain.Outcome)
	HookFailed(id domain.TestID, err *domain.HookError)
	GroupFailed(path []string, err *domain.HookError)
}

// Nop discards every event.
type Nop struct{}

var _ Notifier = Nop{}

func (Nop) TestIgnored(domain.TestID, error)            {}
func (Nop) TestStarted(domain.TestID)                   {}
func (Nop) TestFailed(domain.TestID, error)             {}
func (Nop) TestFinished(domain.TestID, domain.Outcome)  {}
func (Nop) HookFailed(domain.TestID, *domain.HookError) {}
func (Nop) GroupFailed([]string, *domain.HookError)     {}

// Multi forwards every event to each notifier in order.
type Multi []Notifier

var _ Notifier = Multi(nil)

// NewMulti returns a Multi over the non-nil notifiers.
func NewMulti(notifiers ...Notifier) Multi {
	m := make(Multi, 0, len(notifiers))
	for _, n := range notifiers {
		if n != nil {
			m = append(m, n)
		}
	}
	return m
}

func (m Multi) TestIgnored(id domain.TestID, reason error) {
	for _, n := range m {
		n.TestIgnored(id, reason)
	}
}

func (m Multi) TestStarted(id domain.TestID) {
	for _, n := range m {
		n.TestStarted(id)
	}
}

func (m Multi) TestFailed(id domain.TestID, cause error) {
	for _, n := range m {
		n.TestFailed(id, cause)
	}
}

func (m Multi) TestFinished(id domain.TestID, outcome domain.Outcome) {
	for _, n := range m {
		n.TestFinished(id, outcome)
	}
}

func (m Multi) HookFailed(id domain.TestID, err *domain.HookError) {
	for _, n := range m {
		n.HookFailed(id, err)
	}
}

func (m Multi) GroupFailed(path []string, err *domain.HookError) {
	for _, n := range m {
		n.GroupFailed(path, err)
	}
}
