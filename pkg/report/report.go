// Package report aggregates notifier events into a run report and renders it.
package report

import (
	"time"
)

// Report is the result of one run over one or more specs.
type Report struct {
	RunID     string        `json:"runId" yaml:"runId"`
	StartedAt time.Time     `json:"startedAt" yaml:"startedAt"`
	Duration  time.Duration `json:"duration" yaml:"duration"`
	Specs     []SpecReport  `json:"specs" yaml:"specs"`
	Stats     Stats         `json:"stats" yaml:"stats"`
}

// SpecReport holds the results of one spec in execution order.
type SpecReport struct {
	Spec          string         `json:"spec" yaml:"spec"`
	Tests         []TestResult   `json:"tests" yaml:"tests"`
	GroupFailures []GroupFailure `json:"groupFailures,omitempty" yaml:"groupFailures,omitempty"`
	Stats         Stats          `json:"stats" yaml:"stats"`
}

// TestResult is the final state of one test.
type TestResult struct {
	Path     []string      `json:"path" yaml:"path"`
	Name     string        `json:"name" yaml:"name"`
	Result   string        `json:"result" yaml:"result"`
	Error    string        `json:"error,omitempty" yaml:"error,omitempty"`
	Hooks    []string      `json:"hookFailures,omitempty" yaml:"hookFailures,omitempty"`
	Duration time.Duration `json:"duration" yaml:"duration"`
}

// GroupFailure is a failing afterAll hook.
type GroupFailure struct {
	Path  []string `json:"path" yaml:"path"`
	Hook  string   `json:"hook" yaml:"hook"`
	Error string   `json:"error" yaml:"error"`
}

// Stats counts tests by result. HookFailures counts afterEach and afterAll failures.
type Stats struct {
	Total        int `json:"total" yaml:"total"`
	Passed       int `json:"passed" yaml:"passed"`
	Failed       int `json:"failed" yaml:"failed"`
	Skipped      int `json:"skipped" yaml:"skipped"`
	HookFailures int `json:"hookFailures" yaml:"hookFailures"`
}

func (s *Stats) add(o Stats) {
	s.Total += o.Total
	s.Passed += o.Passed
	s.Failed += o.Failed
	s.Skipped += o.Skipped
	s.HookFailures += o.HookFailures
}

// HasFailures reports whether any test or group failed.
func (r *Report) HasFailures() bool {
	return r.Stats.Failed > 0 || r.Stats.HookFailures > 0
}
