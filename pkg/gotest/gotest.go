// Package gotest runs a spec under go test, one subtest per group and test.
//
//	func TestStack(t *testing.T) {
//		gotest.Run(t, &StackSpec{})
//	}
package gotest

import (
	"strings"
	"testing"

	"github.com/specvital/spectree/pkg/domain"
	"github.com/specvital/spectree/pkg/runner"
	"github.com/specvital/spectree/pkg/spec"
)

// Run executes s once and reports its tests as nested subtests of t.
// Hooks and bodies run before the subtests are created, in declaration order;
// the subtests replay their results. A spec that cannot be planned fails t.
func Run(t *testing.T, s spec.Spec, opts ...runner.Option) {
	t.Helper()

	r, err := runner.New(s, opts...)
	if err != nil {
		t.Fatalf("spec configuration: %v", err)
	}
	p, err := r.TestPlan()
	if err != nil {
		t.Fatalf("spec declaration: %v", err)
	}

	results := newCollector()
	if err := r.ExecuteTests(results); err != nil {
		t.Fatalf("spec execution: %v", err)
	}

	replay(t, p.Root, nil, results)
}

func replay(t *testing.T, suite domain.TestSuite, parent []string, results *collector) {
	path := append(append([]string(nil), parent...), suite.Name)

	t.Run(suite.Name, func(t *testing.T) {
		for _, test := range suite.Tests {
			t.Run(test.Name(), func(t *testing.T) {
				report(t, results.next(test.ID))
			})
		}
		for _, child := range suite.Suites {
			replay(t, child, path, results)
		}
		for _, herr := range results.groups[groupKey(path)] {
			t.Errorf("%v", herr)
		}
	})
}

// report fails or skips t according to r. Hook failures after a passing body
// fail the subtest too: go test has no passed-with-warnings state.
func report(t *testing.T, r *result) {
	t.Helper()

	if r == nil {
		t.Skip("not reported by the runner")
	}
	if r.ignored != nil {
		t.Skip(r.ignored.Error())
	}
	if r.cause != nil {
		t.Error(r.cause)
	}
	for _, herr := range r.hooks {
		t.Errorf("%v", herr)
	}
}

func groupKey(path []string) string {
	return strings.Join(path, "\x00")
}
