package registry

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownSpec is returned for a name that was never registered.
	ErrUnknownSpec = errors.New("registry: unknown spec")
	// ErrDuplicate is returned when a name is registered twice.
	ErrDuplicate = errors.New("registry: spec already registered")
	// ErrInvalidName is returned for registrations without a usable name.
	ErrInvalidName = errors.New("registry: invalid spec name")
	// ErrBadPattern is returned by Match for malformed glob patterns.
	ErrBadPattern = errors.New("registry: bad pattern")
	// ErrConstruction is returned when a spec instance cannot be created.
	ErrConstruction = errors.New("registry: spec construction failed")
	// ErrNotSpec is returned when a type does not implement spec.Spec.
	ErrNotSpec = errors.New("registry: type does not implement spec.Spec")

	// ErrPlanCancelled is returned when planning is cancelled via context.
	ErrPlanCancelled = errors.New("registry: planning cancelled")
	// ErrPlanTimeout is returned when planning exceeds the timeout duration.
	ErrPlanTimeout = errors.New("registry: planning timeout")
)

// ConfigError reports a spec that cannot be instantiated or declares no suite.
// It is raised before any test of the spec runs.
type ConfigError struct {
	Spec string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("spec %q: %v", e.Spec, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// PlanError represents an error that occurred during a specific phase of planning.
type PlanError struct {
	// Err is the underlying error.
	Err error

	// Spec is the registered name of the spec.
	Spec string

	// Phase indicates which phase the error occurred in.
	// Values: "instantiate", "plan"
	Phase string
}

// Error implements the error interface.
func (e PlanError) Error() string {
	return fmt.Sprintf("[%s] %s: %v", e.Phase, e.Spec, e.Err)
}

func (e PlanError) Unwrap() error {
	return e.Err
}
