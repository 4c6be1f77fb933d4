package registry

import (
	"context"
	"errors"
	"runtime"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/specvital/spectree/pkg/domain"
	"github.com/specvital/spectree/pkg/runner"
)

// Planner builds the test plans of many registered specs.
type Planner struct {
	options *PlanOptions
}

// PlanResult contains the outcome of a planning operation.
type PlanResult struct {
	// Inventory contains the plans of all specs planned successfully.
	Inventory *domain.Inventory

	// Errors contains per-spec failures. A failing spec never aborts the others.
	Errors []PlanError

	// Stats provides planning statistics.
	Stats PlanStats
}

// PlanStats provides statistics about the planning operation.
type PlanStats struct {
	// SpecsRequested is the number of names passed to PlanAll.
	SpecsRequested int

	// SpecsPlanned is the number of specs with a plan.
	SpecsPlanned int

	// SpecsFailed is the number of specs that failed to instantiate or plan.
	SpecsFailed int

	// TestsPlanned is the total number of planned tests.
	TestsPlanned int

	// Duration is the total planning duration.
	Duration time.Duration
}

// NewPlanner creates a new planner with the given options.
func NewPlanner(opts ...PlanOption) *Planner {
	options := &PlanOptions{}
	for _, opt := range opts {
		opt(options)
	}
	applyDefaults(options)
	return &Planner{options: options}
}

// PlanAll instantiates and plans every named spec concurrently.
// Planning never runs hook or test bodies, so specs are planned in parallel
// while execution stays sequential. Plans are ordered by spec name.
func (p *Planner) PlanAll(ctx context.Context, names []string) (*PlanResult, error) {
	startTime := time.Now()

	ctx, cancel := context.WithTimeout(ctx, p.options.Timeout)
	defer cancel()

	result := &PlanResult{
		Inventory: &domain.Inventory{Plans: []domain.TestPlan{}},
		Errors:    []PlanError{},
		Stats:     PlanStats{SpecsRequested: len(names)},
	}

	workers := p.options.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > MaxWorkers {
		workers = MaxWorkers
	}

	sem := semaphore.NewWeighted(int64(workers))
	g, gCtx := errgroup.WithContext(ctx)

	var mu sync.Mutex

	for _, name := range names {
		g.Go(func() error {
			if err := sem.Acquire(gCtx, 1); err != nil {
				return nil
			}
			defer sem.Release(1)

			testPlan, planErr := p.planOne(gCtx, name)

			mu.Lock()
			defer mu.Unlock()

			if planErr != nil {
				p.options.Logger.Warn("spec planning failed", "spec", name, "phase", planErr.Phase, "error", planErr.Err)
				result.Errors = append(result.Errors, *planErr)
				return nil
			}
			result.Inventory.Plans = append(result.Inventory.Plans, *testPlan)
			return nil
		})
	}

	_ = g.Wait()

	sort.Slice(result.Inventory.Plans, func(i, j int) bool {
		return result.Inventory.Plans[i].Spec < result.Inventory.Plans[j].Spec
	})
	sort.Slice(result.Errors, func(i, j int) bool {
		return result.Errors[i].Spec < result.Errors[j].Spec
	})

	result.Stats.SpecsPlanned = len(result.Inventory.Plans)
	result.Stats.SpecsFailed = len(result.Errors)
	result.Stats.TestsPlanned = result.Inventory.CountTests()
	result.Stats.Duration = time.Since(startTime)

	if err := ctx.Err(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return result, ErrPlanTimeout
		}
		if errors.Is(err, context.Canceled) {
			return result, ErrPlanCancelled
		}
	}

	return result, nil
}

// Runner instantiates the named spec and returns a runner for it, named after
// its registration.
func (p *Planner) Runner(name string, opts ...runner.Option) (*runner.Runner, error) {
	s, err := p.options.Registry.Instantiate(name)
	if err != nil {
		return nil, err
	}
	base := []runner.Option{runner.WithName(name)}
	if p.options.Locator != nil {
		base = append(base, runner.WithLocator(p.options.Locator))
	}
	r, err := runner.New(s, append(base, opts...)...)
	if err != nil {
		return nil, &ConfigError{Spec: name, Err: err}
	}
	return r, nil
}

func (p *Planner) planOne(ctx context.Context, name string) (*domain.TestPlan, *PlanError) {
	if err := ctx.Err(); err != nil {
		return nil, &PlanError{Err: err, Spec: name, Phase: "instantiate"}
	}

	r, err := p.Runner(name, runner.WithLogger(p.options.Logger.With("spec", name)))
	if err != nil {
		return nil, &PlanError{Err: err, Spec: name, Phase: "instantiate"}
	}

	testPlan, err := r.TestPlan()
	if err != nil {
		return nil, &PlanError{Err: err, Spec: name, Phase: "plan"}
	}
	return testPlan, nil
}
