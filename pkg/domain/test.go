// Package domain defines the core types of spec planning and execution:
// test identities, planned tests and suites, statuses and outcomes.
package domain

import "strings"

// PathSeparator joins group descriptions and the test description in display strings.
const PathSeparator = " > "

// TestID identifies one test: the descriptions of its ancestor groups, root first,
// plus its own description. Planning and execution produce identical IDs for the same test.
type TestID struct {
	Path []string `json:"path" yaml:"path"`
	Name string   `json:"name" yaml:"name"`
}

// NewTestID copies path so later mutation of the caller's slice cannot leak into the ID.
func NewTestID(path []string, name string) TestID {
	p := make([]string, len(path))
	copy(p, path)
	return TestID{Path: p, Name: name}
}

func (id TestID) String() string {
	if len(id.Path) == 0 {
		return id.Name
	}
	return strings.Join(id.Path, PathSeparator) + PathSeparator + id.Name
}

// Key returns a value usable as a map key. Unlike String it cannot collide
// when descriptions contain the separator.
func (id TestID) Key() string {
	return strings.Join(append(append([]string{}, id.Path...), id.Name), "\x00")
}

// Equal reports whether both IDs have the same path and name.
func (id TestID) Equal(other TestID) bool {
	return id.Key() == other.Key()
}

// Test is the planning-phase projection of a declared test: identity only, no body.
type Test struct {
	ID       TestID     `json:"id" yaml:"id"`
	Location Location   `json:"location,omitempty" yaml:"location,omitempty"`
	Status   TestStatus `json:"status" yaml:"status"`
}

// Name returns the test's own description.
func (t Test) Name() string {
	return t.ID.Name
}

// TestSuite is the planned form of a group, used to render a description tree.
type TestSuite struct {
	Location Location    `json:"location,omitempty" yaml:"location,omitempty"`
	Name     string      `json:"name" yaml:"name"`
	Status   TestStatus  `json:"status" yaml:"status"`
	Suites   []TestSuite `json:"suites,omitempty" yaml:"suites,omitempty"`
	Tests    []Test      `json:"tests,omitempty" yaml:"tests,omitempty"`
}

// CountTests returns the number of tests in the suite and all nested suites.
func (s *TestSuite) CountTests() int {
	count := len(s.Tests)
	for _, sub := range s.Suites {
		count += sub.CountTests()
	}
	return count
}
