package registry

import (
	"log/slog"
	"time"

	"github.com/specvital/spectree/pkg/logging"
	"github.com/specvital/spectree/pkg/plan"
)

const (
	// DefaultWorkers indicates that the planner should use GOMAXPROCS as the worker count.
	DefaultWorkers = 0
	// DefaultTimeout is the default planning timeout duration.
	DefaultTimeout = time.Minute
	// MaxWorkers is the maximum number of concurrent workers allowed.
	MaxWorkers = 1024
)

// PlanOptions configures planner behavior.
type PlanOptions struct {
	// Registry is the spec registry to plan from.
	// If nil, uses DefaultRegistry().
	Registry *Registry

	// Timeout is the maximum duration for the entire planning operation.
	// Zero or negative values use DefaultTimeout.
	Timeout time.Duration

	// Workers specifies the number of specs planned concurrently.
	// Zero or negative values use runtime.GOMAXPROCS(0).
	Workers int

	// Logger receives per-spec failures.
	// If nil, uses logging.ForComponent("registry").
	Logger *slog.Logger

	// Locator resolves declaration spans. Nil keeps call-site lines.
	Locator plan.Locator
}

// PlanOption is a functional option for configuring Planner.
type PlanOption func(*PlanOptions)

// WithRegistry sets the registry to plan from.
func WithRegistry(r *Registry) PlanOption {
	return func(o *PlanOptions) {
		o.Registry = r
	}
}

// WithWorkers sets the number of specs planned concurrently.
// Negative values are ignored.
func WithWorkers(n int) PlanOption {
	return func(o *PlanOptions) {
		if n >= 0 {
			o.Workers = n
		}
	}
}

// WithTimeout sets the planning timeout duration.
// Negative values are ignored.
func WithTimeout(d time.Duration) PlanOption {
	return func(o *PlanOptions) {
		if d >= 0 {
			o.Timeout = d
		}
	}
}

// WithLogger sets the planner logger.
func WithLogger(logger *slog.Logger) PlanOption {
	return func(o *PlanOptions) {
		o.Logger = logger
	}
}

// WithLocator sets the span resolver passed to every plan.
func WithLocator(l plan.Locator) PlanOption {
	return func(o *PlanOptions) {
		o.Locator = l
	}
}

func applyDefaults(opts *PlanOptions) {
	if opts.Registry == nil {
		opts.Registry = DefaultRegistry()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Logger == nil {
		opts.Logger = logging.ForComponent("registry")
	}
}
