package plan

import (
	"log/slog"

	"github.com/specvital/spectree/pkg/domain"
	"github.com/specvital/spectree/pkg/logging"
)

// Locator widens a captured call site into the full span of the declaration.
type Locator interface {
	Resolve(loc domain.Location) domain.Location
}

// Options configures plan building.
type Options struct {
	// Name overrides the spec name recorded in the plan.
	// Empty means the root group description.
	Name string

	// Logger receives lint warnings such as duplicate descriptions.
	// If nil, uses logging.ForComponent("plan").
	Logger *slog.Logger

	// Locator, when set, resolves declaration spans for planned tests and groups.
	Locator Locator
}

// Option is a functional option for configuring Build.
type Option func(*Options)

// WithName sets the spec name recorded in the plan.
func WithName(name string) Option {
	return func(o *Options) {
		o.Name = name
	}
}

// WithLogger sets the logger used for lint warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithLocator sets the span resolver for declaration locations.
func WithLocator(l Locator) Option {
	return func(o *Options) {
		o.Locator = l
	}
}

func applyDefaults(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = logging.ForComponent("plan")
	}
}
