package gotest

import (
	"github.com/specvital/spectree/pkg/domain"
	"github.com/specvital/spectree/pkg/notify"
)

// result is what the runner reported for one test.
type result struct {
	ignored error
	cause   error
	hooks   []*domain.HookError
	outcome *domain.Outcome
}

// collector keeps results per test identity. Tests sharing an identity are
// queued in execution order, matching their order in the plan.
type collector struct {
	tests   map[string][]*result
	current map[string]*result
	groups  map[string][]*domain.HookError
}

var _ notify.Notifier = (*collector)(nil)

func newCollector() *collector {
	return &collector{
		tests:   map[string][]*result{},
		current: map[string]*result{},
		groups:  map[string][]*domain.HookError{},
	}
}

// next pops the oldest result for id, nil if none is left.
func (c *collector) next(id domain.TestID) *result {
	queue := c.tests[id.Key()]
	if len(queue) == 0 {
		return nil
	}
	c.tests[id.Key()] = queue[1:]
	return queue[0]
}

func (c *collector) TestIgnored(id domain.TestID, reason error) {
	c.tests[id.Key()] = append(c.tests[id.Key()], &result{ignored: reason})
}

func (c *collector) TestStarted(id domain.TestID) {
	r := &result{}
	c.tests[id.Key()] = append(c.tests[id.Key()], r)
	c.current[id.Key()] = r
}

func (c *collector) TestFailed(id domain.TestID, cause error) {
	if r := c.current[id.Key()]; r != nil {
		r.cause = cause
	}
}

func (c *collector) TestFinished(id domain.TestID, outcome domain.Outcome) {
	if r := c.current[id.Key()]; r != nil {
		r.outcome = &outcome
		delete(c.current, id.Key())
	}
}

func (c *collector) HookFailed(id domain.TestID, err *domain.HookError) {
	if r := c.current[id.Key()]; r != nil {
		r.hooks = append(r.hooks, err)
	}
}

func (c *collector) GroupFailed(path []string, err *domain.HookError) {
	c.groups[groupKey(path)] = append(c.groups[groupKey(path)], err)
}
