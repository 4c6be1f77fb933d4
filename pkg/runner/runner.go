// Package runner executes a spec and reports every test to a notifier.
//
// Execution re-walks the declaration closures of the spec, one group at a time:
// entering a group records it into a tree.SpecNode, runs its beforeAll hooks, and
// pushes it onto the hook chain consulted by every test below it. Failures are
// isolated to the narrowest scope: a test, or the subtree of a failing beforeAll.
package runner

import (
	"fmt"

	"github.com/specvital/spectree/pkg/domain"
	"github.com/specvital/spectree/pkg/notify"
	"github.com/specvital/spectree/pkg/plan"
	"github.com/specvital/spectree/pkg/spec"
	"github.com/specvital/spectree/pkg/tree"
)

// Runner plans and executes one spec.
type Runner struct {
	suite spec.Suite
	opts  Options
}

// New returns a runner for s. A spec that declares no root group is a
// configuration error reported before anything runs.
func New(s spec.Spec, opts ...Option) (*Runner, error) {
	options := Options{}
	for _, opt := range opts {
		opt(&options)
	}
	applyDefaults(&options)

	if s == nil {
		return nil, spec.ErrNoSuite
	}
	suite, err := describe(s)
	if err != nil {
		return nil, err
	}
	if err := suite.Validate(); err != nil {
		return nil, err
	}
	return &Runner{suite: suite, opts: options}, nil
}

func describe(s spec.Spec) (suite spec.Suite, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: %v", spec.ErrDeclarationPanic, rec)
		}
	}()
	return s.Describes(), nil
}

// Suite returns the root group declaration.
func (r *Runner) Suite() spec.Suite {
	return r.suite
}

// TestPlan enumerates every test without invoking any hook or test body.
func (r *Runner) TestPlan() (*domain.TestPlan, error) {
	opts := []plan.Option{plan.WithLogger(r.opts.Logger)}
	if r.opts.Name != "" {
		opts = append(opts, plan.WithName(r.opts.Name))
	}
	if r.opts.Locator != nil {
		opts = append(opts, plan.WithLocator(r.opts.Locator))
	}
	return plan.Build(r.suite, opts...)
}

// ExecuteTests runs the spec once, reporting each test to n in declaration order.
// Errors and panics raised by hooks and bodies are reported, never returned; the
// returned error is a malformed declaration, detected by planning before any test runs.
// A group that only turns malformed while executing has its planned tests reported
// as ignored with the declaration error.
func (r *Runner) ExecuteTests(n notify.Notifier) error {
	p, err := r.TestPlan()
	if err != nil {
		return err
	}

	x := &executor{
		notifier: n,
		logger:   r.opts.Logger.With("spec", p.Spec),
		clock:    r.opts.Clock,
		focus:    p.HasFocused(),
	}
	x.group(nil, domain.TestStatusActive, tree.Root(r.suite), &p.Root)
	return nil
}
