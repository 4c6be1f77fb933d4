package report

import (
	"time"

	"github.com/google/uuid"

	"github.com/specvital/spectree/pkg/domain"
	"github.com/specvital/spectree/pkg/notify"
)

// Collector is a notifier building a Report. It is not safe for concurrent use.
type Collector struct {
	clock   func() time.Time
	report  Report
	current *SpecReport
}

var _ notify.Notifier = (*Collector)(nil)

// CollectorOption configures a Collector.
type CollectorOption func(*Collector)

// WithClock replaces time.Now for the run start and duration.
func WithClock(clock func() time.Time) CollectorOption {
	return func(c *Collector) {
		c.clock = clock
	}
}

// WithRunID sets the run identifier instead of a random UUID.
func WithRunID(id string) CollectorOption {
	return func(c *Collector) {
		c.report.RunID = id
	}
}

// NewCollector starts a report.
func NewCollector(opts ...CollectorOption) *Collector {
	c := &Collector{clock: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	if c.report.RunID == "" {
		c.report.RunID = uuid.New().String()
	}
	c.report.StartedAt = c.clock()
	return c
}

// Begin starts the section of the named spec. Events arriving before any Begin
// open a section named after the root group.
func (c *Collector) Begin(spec string) {
	c.report.Specs = append(c.report.Specs, SpecReport{Spec: spec, Tests: []TestResult{}})
	c.current = &c.report.Specs[len(c.report.Specs)-1]
}

// Report returns the report with its totals computed.
func (c *Collector) Report() *Report {
	r := c.report
	r.Specs = append([]SpecReport(nil), c.report.Specs...)
	r.Duration = c.clock().Sub(r.StartedAt)
	r.Stats = Stats{}
	for _, s := range r.Specs {
		r.Stats.add(s.Stats)
	}
	return &r
}

func (c *Collector) section(path []string) *SpecReport {
	if c.current == nil {
		name := ""
		if len(path) > 0 {
			name = path[0]
		}
		c.Begin(name)
	}
	return c.current
}

func (c *Collector) TestIgnored(id domain.TestID, reason error) {
	s := c.section(id.Path)
	s.Tests = append(s.Tests, TestResult{
		Path:   id.Path,
		Name:   id.Name,
		Result: domain.ResultSkipped.String(),
		Error:  errString(reason),
	})
	s.Stats.Total++
	s.Stats.Skipped++
}

func (c *Collector) TestStarted(domain.TestID) {}

func (c *Collector) TestFailed(domain.TestID, error) {}

func (c *Collector) TestFinished(id domain.TestID, outcome domain.Outcome) {
	s := c.section(id.Path)
	res := TestResult{
		Path:     id.Path,
		Name:     id.Name,
		Result:   outcome.Result.String(),
		Error:    errString(outcome.Cause),
		Duration: outcome.Duration,
	}
	for _, err := range outcome.Secondary {
		res.Hooks = append(res.Hooks, err.Error())
	}
	s.Tests = append(s.Tests, res)

	s.Stats.Total++
	switch outcome.Result {
	case domain.ResultPassed:
		s.Stats.Passed++
	case domain.ResultFailed:
		s.Stats.Failed++
	default:
		s.Stats.Skipped++
	}
}

// HookFailed only counts; the message arrives with the outcome's secondary failures.
func (c *Collector) HookFailed(id domain.TestID, _ *domain.HookError) {
	c.section(id.Path).Stats.HookFailures++
}

func (c *Collector) GroupFailed(path []string, err *domain.HookError) {
	s := c.section(path)
	s.GroupFailures = append(s.GroupFailures, GroupFailure{
		Path:  append([]string(nil), path...),
		Hook:  string(err.Kind),
		Error: errString(err.Err),
	})
	s.Stats.HookFailures++
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
