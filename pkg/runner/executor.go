package runner

import (
	"errors"
	"log/slog"
	"runtime/debug"
	"strings"
	"time"

	"github.com/specvital/spectree/pkg/domain"
	"github.com/specvital/spectree/pkg/notify"
	"github.com/specvital/spectree/pkg/spec"
	"github.com/specvital/spectree/pkg/tree"
)

// executor is the state of one ExecuteTests walk. It is confined to the calling goroutine.
type executor struct {
	notifier notify.Notifier
	logger   *slog.Logger
	clock    func() time.Time
	focus    bool

	// chain holds the open groups, outermost first.
	chain []*tree.SpecNode
}

// group records decl, runs its hooks and entries, and closes it.
// planned is the matching group of the plan, nil if the walk diverged from it.
func (x *executor) group(parentPath []string, parentStatus domain.TestStatus, decl *tree.GroupDecl, planned *domain.TestSuite) {
	node, err := tree.Record(parentPath, parentStatus, decl)
	if err != nil {
		x.declarationFailed(err, planned)
		return
	}

	if planned != nil && !x.anyRunnable(planned) {
		x.logger.Debug("group has nothing to run", "group", joinPath(node.Path))
		x.ignore(node, nil, planned)
		return
	}

	x.logger.Debug("entering group", "group", joinPath(node.Path))

	for _, hook := range node.BeforeAll {
		if err := call(hook); err != nil {
			herr := &domain.HookError{Kind: domain.HookBeforeAll, Path: node.Path, Err: err}
			x.logger.Error("hook failed", "group", joinPath(node.Path), "hook", string(herr.Kind), "error", err)
			x.ignore(node, herr, planned)
			return
		}
	}

	x.chain = append(x.chain, node)
	x.entries(node, planned)
	x.chain = x.chain[:len(x.chain)-1]

	for _, hook := range node.AfterAll {
		if err := call(hook); err != nil {
			herr := &domain.HookError{Kind: domain.HookAfterAll, Path: node.Path, Err: err}
			x.logger.Error("hook failed", "group", joinPath(node.Path), "hook", string(herr.Kind), "error", err)
			x.notifier.GroupFailed(node.Path, herr)
		}
	}

	x.logger.Debug("leaving group", "group", joinPath(node.Path))
}

func (x *executor) entries(node *tree.SpecNode, planned *domain.TestSuite) {
	groups := 0
	for _, e := range node.Entries {
		if e.Test != nil {
			x.test(node, e.Test)
			continue
		}
		x.group(node.Path, node.Status, e.Group, plannedChild(planned, groups))
		groups++
	}
}

// declarationFailed handles a group closure that declared something malformed while
// executing, typically because it read state set by a hook. Nothing of the group has
// been reported yet, so its planned tests are reported as ignored with err.
func (x *executor) declarationFailed(err error, planned *domain.TestSuite) {
	x.logger.Error("group declaration failed", "error", err)
	if planned != nil {
		x.ignorePlanned(planned, err)
	}
}

func (x *executor) ignorePlanned(s *domain.TestSuite, reason error) {
	for _, t := range s.Tests {
		x.notifier.TestIgnored(t.ID, reason)
	}
	for i := range s.Suites {
		x.ignorePlanned(&s.Suites[i], reason)
	}
}

func plannedChild(planned *domain.TestSuite, i int) *domain.TestSuite {
	if planned == nil || i >= len(planned.Suites) {
		return nil
	}
	return &planned.Suites[i]
}

// test runs one test against the current hook chain.
func (x *executor) test(node *tree.SpecNode, tc *tree.TestCase) {
	id := node.ID(tc)
	if reason := x.ignoreReason(tc.Status); reason != nil {
		x.notifier.TestIgnored(id, reason)
		return
	}

	x.notifier.TestStarted(id)
	start := x.clock()

	cause := x.beforeEach()
	if cause == nil {
		cause = x.body(tc)
	}
	if cause != nil {
		x.notifier.TestFailed(id, cause)
	}

	secondary := x.afterEach(id)

	outcome := domain.Passed(x.clock().Sub(start))
	if cause != nil {
		outcome = domain.Failed(cause, outcome.Duration)
	}
	outcome.Secondary = secondary
	x.notifier.TestFinished(id, outcome)
}

// beforeEach runs the chain's beforeEach hooks outermost first and stops at the first failure.
func (x *executor) beforeEach() error {
	for _, node := range x.chain {
		for _, hook := range node.BeforeEach {
			if err := call(hook); err != nil {
				return err
			}
		}
	}
	return nil
}

// afterEach runs every afterEach hook, innermost group first, and returns their failures.
func (x *executor) afterEach(id domain.TestID) []error {
	var failures []error
	for i := len(x.chain) - 1; i >= 0; i-- {
		node := x.chain[i]
		for _, hook := range node.AfterEach {
			if err := call(hook); err != nil {
				herr := &domain.HookError{Kind: domain.HookAfterEach, Path: node.Path, Err: err}
				x.logger.Warn("hook failed", "test", id.String(), "hook", string(herr.Kind), "error", err)
				x.notifier.HookFailed(id, herr)
				failures = append(failures, herr)
			}
		}
	}
	return failures
}

func (x *executor) body(tc *tree.TestCase) error {
	err := call(tc.Body)
	if tc.Expect == nil {
		return err
	}
	switch {
	case err == nil:
		return ErrExpectedError
	case tc.Expect.Target != nil && !errors.Is(err, tc.Expect.Target):
		return &UnexpectedError{Target: tc.Expect.Target, Err: err}
	default:
		return nil
	}
}

// ignore reports every test of node's subtree as ignored without running any hook.
// A nil reason uses each test's own reason for not running.
func (x *executor) ignore(node *tree.SpecNode, reason error, planned *domain.TestSuite) {
	groups := 0
	for _, e := range node.Entries {
		if e.Test != nil {
			r := reason
			if r == nil {
				r = x.ignoreReason(e.Test.Status)
			}
			if r == nil {
				r = spec.ErrIgnored
			}
			x.notifier.TestIgnored(node.ID(e.Test), r)
			continue
		}
		childPlan := plannedChild(planned, groups)
		groups++
		child, err := tree.Record(node.Path, node.Status, e.Group)
		if err != nil {
			x.declarationFailed(err, childPlan)
			continue
		}
		x.ignore(child, reason, childPlan)
	}
}

func (x *executor) ignoreReason(status domain.TestStatus) error {
	switch {
	case status == domain.TestStatusSkipped:
		return spec.ErrIgnored
	case x.focus && status != domain.TestStatusFocused:
		return spec.ErrNotFocused
	default:
		return nil
	}
}

func (x *executor) anyRunnable(s *domain.TestSuite) bool {
	for _, t := range s.Tests {
		if x.ignoreReason(t.Status) == nil {
			return true
		}
	}
	for i := range s.Suites {
		if x.anyRunnable(&s.Suites[i]) {
			return true
		}
	}
	return false
}

// call invokes fn, converting a panic into a *PanicError.
func call(fn spec.Closure) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = &PanicError{Value: rec, Stack: debug.Stack()}
		}
	}()
	return fn()
}

func joinPath(path []string) string {
	return strings.Join(path, domain.PathSeparator)
}
