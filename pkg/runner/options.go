package runner

import (
	"log/slog"
	"time"

	"github.com/specvital/spectree/pkg/logging"
	"github.com/specvital/spectree/pkg/plan"
)

// Options configures a Runner.
type Options struct {
	// Name overrides the spec name recorded in the plan.
	Name string

	// Logger receives group entry/exit and hook failure logs.
	// If nil, uses logging.ForComponent("runner").
	Logger *slog.Logger

	// Locator resolves declaration spans of planned tests. Nil keeps call-site lines.
	Locator plan.Locator

	// Clock measures test durations.
	// Default: time.Now
	Clock func() time.Time
}

// Option is a functional option for configuring New.
type Option func(*Options)

// WithName sets the spec name recorded in the plan.
func WithName(name string) Option {
	return func(o *Options) {
		o.Name = name
	}
}

// WithLogger sets the runner logger. The planning phase logs through it as well.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithLocator sets the span resolver used when planning.
func WithLocator(l plan.Locator) Option {
	return func(o *Options) {
		o.Locator = l
	}
}

// WithClock replaces time.Now for duration measurement.
func WithClock(clock func() time.Time) Option {
	return func(o *Options) {
		o.Clock = clock
	}
}

func applyDefaults(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = logging.ForComponent("runner")
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
}
