package plan

import (
	"bytes"
	"errors"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specvital/spectree/pkg/domain"
	"github.com/specvital/spectree/pkg/logging"
	"github.com/specvital/spectree/pkg/spec"
)

func ok() error { return nil }

func quiet() Option {
	return WithLogger(logging.Discard())
}

func stackSuite(calls *int) spec.Suite {
	return spec.Describes("Stack", func(it spec.Builder) {
		it.BeforeAll(func() error { *calls++; return nil })
		it.BeforeEach(func() error { *calls++; return nil })
		it.Should("is empty when created", func() error { *calls++; return nil })
		it.Spec("when pushed", func(it spec.Builder) {
			it.AfterEach(func() error { *calls++; return nil })
			it.Should("is not empty", func() error { *calls++; return nil })
		})
		it.Should("throws on pop when empty", func() error { *calls++; return errors.New("empty") })
		it.AfterAll(func() error { *calls++; return nil })
	})
}

func TestBuild(t *testing.T) {
	t.Parallel()

	t.Run("should list tests in declaration order without running bodies", func(t *testing.T) {
		t.Parallel()

		// Given
		calls := 0

		// When
		p, err := Build(stackSuite(&calls), quiet())

		// Then
		require.NoError(t, err)
		assert.Zero(t, calls)
		assert.Equal(t, "Stack", p.Spec)
		assert.Equal(t, []domain.TestID{
			{Path: []string{"Stack"}, Name: "is empty when created"},
			{Path: []string{"Stack", "when pushed"}, Name: "is not empty"},
			{Path: []string{"Stack"}, Name: "throws on pop when empty"},
		}, p.IDs())
	})

	t.Run("should mirror the plan as a suite tree", func(t *testing.T) {
		t.Parallel()

		calls := 0
		p, err := Build(stackSuite(&calls), quiet())

		require.NoError(t, err)
		assert.Equal(t, "Stack", p.Root.Name)
		assert.Len(t, p.Root.Tests, 2)
		require.Len(t, p.Root.Suites, 1)
		assert.Equal(t, "when pushed", p.Root.Suites[0].Name)
		assert.Equal(t, 3, p.Root.CountTests())
	})

	t.Run("should be idempotent", func(t *testing.T) {
		t.Parallel()

		calls := 0
		s := stackSuite(&calls)

		first, err := Build(s, quiet())
		require.NoError(t, err)
		second, err := Build(s, quiet())
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Zero(t, calls)
	})

	t.Run("should use the configured spec name", func(t *testing.T) {
		t.Parallel()

		calls := 0
		p, err := Build(stackSuite(&calls), quiet(), WithName("stack_spec"))

		require.NoError(t, err)
		assert.Equal(t, "stack_spec", p.Spec)
		assert.Equal(t, "Stack", p.Root.Name)
	})

	t.Run("should capture declaration locations", func(t *testing.T) {
		t.Parallel()

		calls := 0
		p, err := Build(stackSuite(&calls), quiet())

		require.NoError(t, err)
		for _, test := range p.Tests {
			assert.Equal(t, "plan_test.go", filepath.Base(test.Location.File), test.ID.String())
			assert.Positive(t, test.Location.StartLine)
		}
		assert.Equal(t, "plan_test.go", filepath.Base(p.Root.Location.File))
	})
}

func TestBuild_Status(t *testing.T) {
	t.Parallel()

	// Given
	s := spec.Describes("Root", func(it spec.Builder) {
		it.Should("active", ok)
		it.XShould("ignored", ok)
		it.FSpec("focused group", func(it spec.Builder) {
			it.Should("inherits focus", ok)
			it.XSpec("ignored group", func(it spec.Builder) {
				it.FShould("skip beats focus", ok)
			})
		})
	})

	// When
	p, err := Build(s, quiet())

	// Then
	require.NoError(t, err)
	got := map[string]domain.TestStatus{}
	for _, test := range p.Tests {
		got[test.Name()] = test.Status
	}
	assert.Equal(t, map[string]domain.TestStatus{
		"active":           domain.TestStatusActive,
		"ignored":          domain.TestStatusSkipped,
		"inherits focus":   domain.TestStatusFocused,
		"skip beats focus": domain.TestStatusSkipped,
	}, got)
	assert.True(t, p.HasFocused())
}

func TestBuild_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		suite    spec.Suite
		wantErr  error
		wantPath []string
	}{
		{
			name:    "should reject a missing suite",
			suite:   spec.Suite{},
			wantErr: spec.ErrNoSuite,
		},
		{
			name: "should reject empty test description in nested group",
			suite: spec.Describes("A", func(it spec.Builder) {
				it.Spec("B", func(it spec.Builder) {
					it.Should("", ok)
				})
			}),
			wantErr:  spec.ErrEmptyDescription,
			wantPath: []string{"A", "B"},
		},
		{
			name: "should reject empty group description",
			suite: spec.Describes("A", func(it spec.Builder) {
				it.Spec("", func(spec.Builder) {})
			}),
			wantErr:  spec.ErrEmptyDescription,
			wantPath: []string{"A"},
		},
		{
			name: "should reject nil body",
			suite: spec.Describes("A", func(it spec.Builder) {
				it.Should("t", nil)
			}),
			wantErr:  spec.ErrNilBody,
			wantPath: []string{"A"},
		},
		{
			name: "should convert declaration panics",
			suite: spec.Describes("A", func(it spec.Builder) {
				it.Spec("B", func(spec.Builder) { panic("oops") })
			}),
			wantErr:  spec.ErrDeclarationPanic,
			wantPath: []string{"A", "B"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// When
			p, err := Build(tt.suite, quiet())

			// Then
			assert.Nil(t, p)
			require.ErrorIs(t, err, tt.wantErr)
			if tt.wantPath != nil {
				var declErr *spec.DeclarationError
				require.ErrorAs(t, err, &declErr)
				assert.Equal(t, tt.wantPath, declErr.Path)
			}
		})
	}
}

func TestBuild_DuplicateDescriptions(t *testing.T) {
	t.Parallel()

	// Given
	var buf bytes.Buffer
	logger := logging.New(logging.Config{Level: slog.LevelWarn, Output: &buf})
	s := spec.Describes("A", func(it spec.Builder) {
		it.Should("same", ok)
		it.Should("same", ok)
	})

	// When
	p, err := Build(s, WithLogger(logger))

	// Then
	require.NoError(t, err)
	assert.Len(t, p.Tests, 2)
	assert.Equal(t, p.Tests[0].ID, p.Tests[1].ID)
	assert.Contains(t, buf.String(), "duplicate test description")
}

type shiftLocator struct{}

func (shiftLocator) Resolve(loc domain.Location) domain.Location {
	loc.EndLine = loc.StartLine + 2
	return loc
}

func TestBuild_Locator(t *testing.T) {
	t.Parallel()

	s := spec.Describes("A", func(it spec.Builder) {
		it.Should("t", ok)
	})

	p, err := Build(s, quiet(), WithLocator(shiftLocator{}))

	require.NoError(t, err)
	loc := p.Tests[0].Location
	assert.Equal(t, loc.StartLine+2, loc.EndLine)
}
