package domain

import (
	"fmt"
	"strings"
	"time"
)

// Outcome is the final result reported once per executed test.
type Outcome struct {
	Result Result
	// Cause is the failure of the body or of a beforeEach hook, nil unless Result is failed.
	Cause error
	// Secondary holds afterEach failures. They never change Result.
	Secondary []error
	Duration  time.Duration
}

// Passed returns a passing outcome.
func Passed(d time.Duration) Outcome {
	return Outcome{Result: ResultPassed, Duration: d}
}

// Failed returns a failing outcome with the given cause.
func Failed(cause error, d time.Duration) Outcome {
	return Outcome{Result: ResultFailed, Cause: cause, Duration: d}
}

// HookKind names one of the four hook positions.
type HookKind string

const (
	HookBeforeAll  HookKind = "beforeAll"
	HookBeforeEach HookKind = "beforeEach"
	HookAfterEach  HookKind = "afterEach"
	HookAfterAll   HookKind = "afterAll"
)

// HookError reports a failing hook together with the group that registered it.
type HookError struct {
	Kind HookKind
	// Path is the path of the group that registered the hook.
	Path []string
	Err  error
}

func (e *HookError) Error() string {
	if len(e.Path) == 0 {
		return fmt.Sprintf("%s hook failed: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s hook of %q failed: %v", e.Kind, strings.Join(e.Path, PathSeparator), e.Err)
}

func (e *HookError) Unwrap() error {
	return e.Err
}
