package domain

// Inventory represents the plans of a collection of specs.
type Inventory struct {
	// Plans contains one plan per spec, ordered by spec name.
	Plans []TestPlan `json:"plans" yaml:"plans"`
}

// CountTests returns the total number of tests across all plans.
func (inv Inventory) CountTests() int {
	count := 0
	for _, p := range inv.Plans {
		count += p.CountTests()
	}
	return count
}

// Find returns the plan for the named spec.
func (inv Inventory) Find(spec string) (*TestPlan, bool) {
	for i := range inv.Plans {
		if inv.Plans[i].Spec == spec {
			return &inv.Plans[i], true
		}
	}
	return nil, false
}
