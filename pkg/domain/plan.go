package domain

// TestPlan is the ordered enumeration of every test declared by one spec.
// Tests are in depth-first declaration order; Root holds the same tests as a tree.
type TestPlan struct {
	Spec  string    `json:"spec" yaml:"spec"`
	Root  TestSuite `json:"root" yaml:"root"`
	Tests []Test    `json:"tests" yaml:"tests"`
}

// IDs returns the identities of all planned tests in plan order.
func (p *TestPlan) IDs() []TestID {
	ids := make([]TestID, len(p.Tests))
	for i, t := range p.Tests {
		ids[i] = t.ID
	}
	return ids
}

// HasFocused reports whether any planned test is focused.
func (p *TestPlan) HasFocused() bool {
	for _, t := range p.Tests {
		if t.Status == TestStatusFocused {
			return true
		}
	}
	return false
}

// Runnable reports whether t executes under this plan: skipped tests never run,
// and when any test is focused only focused tests run.
func (p *TestPlan) Runnable(t Test) bool {
	if t.Status == TestStatusSkipped {
		return false
	}
	if p.HasFocused() {
		return t.Status == TestStatusFocused
	}
	return true
}

// CountTests returns the number of planned tests.
func (p *TestPlan) CountTests() int {
	return len(p.Tests)
}
