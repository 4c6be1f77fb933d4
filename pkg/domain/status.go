package domain

// TestStatus represents the declared execution behavior of a test or group.
type TestStatus string

// Declaration status values.
const (
	// TestStatusActive indicates a normal test that runs and expects success.
	TestStatusActive TestStatus = "active"
	// TestStatusSkipped indicates a test intentionally excluded from execution (XShould, XSpec).
	TestStatusSkipped TestStatus = "skipped"
	// TestStatusFocused indicates a debugging-only test (FShould, FSpec).
	// When a plan contains focused tests, only those run.
	TestStatusFocused TestStatus = "focused"
)

// Inherit returns the status a child declared with s gets inside a parent with status parent.
// Skipped wins over focused, focused wins over active.
func (s TestStatus) Inherit(parent TestStatus) TestStatus {
	switch {
	case s == TestStatusSkipped || parent == TestStatusSkipped:
		return TestStatusSkipped
	case s == TestStatusFocused || parent == TestStatusFocused:
		return TestStatusFocused
	default:
		return TestStatusActive
	}
}

// Result is the final outcome category of an executed (or skipped) test.
type Result string

const (
	ResultPassed  Result = "passed"
	ResultFailed  Result = "failed"
	ResultSkipped Result = "skipped"
)

// String provides a string representation of Result.
func (r Result) String() string {
	return string(r)
}
