package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTestSuite_CountTests(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		suite TestSuite
		want  int
	}{
		{
			name:  "should return zero for empty suite",
			suite: TestSuite{},
			want:  0,
		},
		{
			name: "should count direct tests only",
			suite: TestSuite{
				Tests: []Test{{ID: TestID{Name: "t1"}}, {ID: TestID{Name: "t2"}}},
			},
			want: 2,
		},
		{
			name: "should count deeply nested tests",
			suite: TestSuite{
				Tests: []Test{{ID: TestID{Name: "t1"}}},
				Suites: []TestSuite{
					{
						Tests: []Test{{ID: TestID{Name: "s1t1"}}},
						Suites: []TestSuite{
							{Tests: []Test{{ID: TestID{Name: "s2t1"}}, {ID: TestID{Name: "s2t2"}}}},
						},
					},
				},
			},
			want: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// When
			got := tt.suite.CountTests()

			// Then
			if got != tt.want {
				t.Errorf("CountTests() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestTestID(t *testing.T) {
	t.Parallel()

	t.Run("should join path and name for display", func(t *testing.T) {
		t.Parallel()

		id := TestID{Path: []string{"Stack", "when empty"}, Name: "is empty"}

		assert.Equal(t, "Stack > when empty > is empty", id.String())
	})

	t.Run("should not share the path slice with the caller", func(t *testing.T) {
		t.Parallel()

		// Given
		path := []string{"A", "B"}
		id := NewTestID(path, "t")

		// When
		path[0] = "changed"

		// Then
		assert.Equal(t, []string{"A", "B"}, id.Path)
	})

	t.Run("should distinguish keys that render identically", func(t *testing.T) {
		t.Parallel()

		a := TestID{Path: []string{"A > B"}, Name: "t"}
		b := TestID{Path: []string{"A", "B"}, Name: "t"}

		assert.Equal(t, a.String(), b.String())
		assert.False(t, a.Equal(b))
	})
}

func TestTestStatus_Inherit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		child  TestStatus
		parent TestStatus
		want   TestStatus
	}{
		{"should stay active", TestStatusActive, TestStatusActive, TestStatusActive},
		{"should inherit focus", TestStatusActive, TestStatusFocused, TestStatusFocused},
		{"should inherit skip", TestStatusActive, TestStatusSkipped, TestStatusSkipped},
		{"should prefer skip over focus", TestStatusFocused, TestStatusSkipped, TestStatusSkipped},
		{"should keep own focus", TestStatusFocused, TestStatusActive, TestStatusFocused},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.child.Inherit(tt.parent))
		})
	}
}

func TestTestPlan_Runnable(t *testing.T) {
	t.Parallel()

	active := Test{ID: TestID{Name: "a"}, Status: TestStatusActive}
	skipped := Test{ID: TestID{Name: "s"}, Status: TestStatusSkipped}
	focused := Test{ID: TestID{Name: "f"}, Status: TestStatusFocused}

	t.Run("should run everything but skipped without focus", func(t *testing.T) {
		t.Parallel()

		p := &TestPlan{Tests: []Test{active, skipped}}

		assert.False(t, p.HasFocused())
		assert.True(t, p.Runnable(active))
		assert.False(t, p.Runnable(skipped))
	})

	t.Run("should run only focused tests when present", func(t *testing.T) {
		t.Parallel()

		p := &TestPlan{Tests: []Test{active, skipped, focused}}

		assert.True(t, p.HasFocused())
		assert.False(t, p.Runnable(active))
		assert.True(t, p.Runnable(focused))
	})
}

func TestHookError(t *testing.T) {
	t.Parallel()

	cause := errors.New("db down")
	err := &HookError{Kind: HookBeforeAll, Path: []string{"A", "B"}, Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, `beforeAll hook of "A > B" failed: db down`, err.Error())
}
