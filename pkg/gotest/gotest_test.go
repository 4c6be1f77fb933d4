package gotest

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specvital/spectree/pkg/domain"
	"github.com/specvital/spectree/pkg/logging"
	"github.com/specvital/spectree/pkg/runner"
	"github.com/specvital/spectree/pkg/spec"
)

func TestRun(t *testing.T) {
	var stack []int

	Run(t, spec.Describes("Stack", func(it spec.Builder) {
		it.BeforeEach(func() error {
			stack = nil
			return nil
		})
		it.Should("is empty when created", func() error {
			if len(stack) != 0 {
				return errors.New("not empty")
			}
			return nil
		})
		it.Spec("when pushed", func(it spec.Builder) {
			it.BeforeEach(func() error {
				stack = append(stack, 1)
				return nil
			})
			it.Should("is not empty", func() error {
				if len(stack) != 1 {
					return errors.New("empty")
				}
				return nil
			})
			it.XShould("is skipped in go test", func() error { return nil })
		})
	}), runner.WithLogger(logging.Discard()))
}

func TestCollector(t *testing.T) {
	t.Parallel()

	// Given
	errBoom := errors.New("boom")
	id := domain.NewTestID([]string{"G"}, "same")
	herr := &domain.HookError{Kind: domain.HookAfterEach, Path: []string{"G"}, Err: errBoom}
	c := newCollector()

	// When
	c.TestStarted(id)
	c.TestFailed(id, errBoom)
	c.TestFinished(id, domain.Failed(errBoom, 0))
	c.TestStarted(id)
	c.HookFailed(id, herr)
	c.TestFinished(id, domain.Passed(0))
	c.TestIgnored(id, spec.ErrIgnored)
	c.GroupFailed([]string{"G"}, herr)

	// Then
	first := c.next(id)
	require.NotNil(t, first)
	assert.Same(t, errBoom, first.cause)
	require.NotNil(t, first.outcome)
	assert.Equal(t, domain.ResultFailed, first.outcome.Result)

	second := c.next(id)
	require.NotNil(t, second)
	assert.NoError(t, second.cause)
	assert.Equal(t, []*domain.HookError{herr}, second.hooks)

	third := c.next(id)
	require.NotNil(t, third)
	assert.ErrorIs(t, third.ignored, spec.ErrIgnored)

	assert.Nil(t, c.next(id))
	assert.Len(t, c.groups[groupKey([]string{"G"})], 1)
}
