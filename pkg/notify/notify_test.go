package notify

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specvital/spectree/pkg/domain"
	"github.com/specvital/spectree/pkg/logging"
)

var (
	errBoom = errors.New("boom")
	idEmpty = domain.NewTestID([]string{"Stack"}, "is empty")
	idPop   = domain.NewTestID([]string{"Stack", "when pushed"}, "pops")
	hookErr = &domain.HookError{Kind: domain.HookAfterEach, Path: []string{"Stack"}, Err: errBoom}
)

// replay drives n through one passing, one failing and one ignored test plus a group failure.
func replay(n Notifier) {
	n.TestStarted(idEmpty)
	n.TestFinished(idEmpty, domain.Passed(time.Millisecond))

	n.TestStarted(idPop)
	n.TestFailed(idPop, errBoom)
	n.HookFailed(idPop, hookErr)
	n.TestFinished(idPop, domain.Failed(errBoom, 2*time.Millisecond))

	n.TestIgnored(domain.NewTestID([]string{"Stack"}, "later"), errors.New("ignored"))
	n.GroupFailed([]string{"Stack"}, &domain.HookError{Kind: domain.HookAfterAll, Path: []string{"Stack"}, Err: errBoom})
}

func TestRecorder(t *testing.T) {
	t.Parallel()

	// Given
	r := NewRecorder()

	// When
	replay(r)

	// Then
	assert.Equal(t, []string{
		"started(is empty)",
		"finished(is empty)",
		"started(pops)",
		"failed(pops)",
		"hookFailed(pops)",
		"finished(pops)",
		"ignored(later)",
		"groupFailed(Stack)",
	}, r.Trace())
	assert.Equal(t, []domain.TestID{idEmpty, idPop}, r.Started())
	assert.Len(t, r.Of(idPop), 4)

	outcomes := r.Outcomes()
	assert.Equal(t, domain.ResultPassed, outcomes[idEmpty.String()].Result)
	assert.ErrorIs(t, outcomes[idPop.String()].Cause, errBoom)
}

func TestMulti(t *testing.T) {
	t.Parallel()

	t.Run("should forward events to every notifier in order", func(t *testing.T) {
		t.Parallel()

		a, b := NewRecorder(), NewRecorder()
		m := NewMulti(a, nil, b)

		replay(m)

		assert.Len(t, m, 2)
		assert.Equal(t, a.Trace(), b.Trace())
		assert.Len(t, a.Events, 8)
	})

	t.Run("should accept no notifiers", func(t *testing.T) {
		t.Parallel()

		assert.NotPanics(t, func() { replay(NewMulti()) })
	})
}

func TestNop(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() { replay(Nop{}) })
}

func TestConsole(t *testing.T) {
	t.Parallel()

	t.Run("should print one indented line per result", func(t *testing.T) {
		t.Parallel()

		// Given
		var buf bytes.Buffer
		c := NewConsole(&buf, false)

		// When
		replay(c)

		// Then
		lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
		require.Len(t, lines, 6)
		assert.Equal(t, "  ✓ is empty (1ms)", lines[0])
		assert.Equal(t, "      boom", lines[1])
		assert.Contains(t, lines[2], "! afterEach hook of \"Stack\" failed: boom")
		assert.Equal(t, "    ✗ pops (2ms)", lines[3])
		assert.Equal(t, "  - later (ignored)", lines[4])
		assert.Contains(t, lines[5], "✗ Stack: afterAll hook")
	})

	t.Run("should keep the text when colored", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		c := NewConsole(&buf, true)

		c.TestFinished(idEmpty, domain.Passed(0))

		assert.Contains(t, buf.String(), "✓ is empty")
	})
}

func TestLogging(t *testing.T) {
	t.Parallel()

	// Given
	var buf bytes.Buffer
	logger := logging.New(logging.Config{Level: slog.LevelDebug, Format: logging.FormatJSON, Output: &buf})
	l := NewLogging(logger)

	// When
	replay(l)

	// Then
	out := buf.String()
	assert.Contains(t, out, `"msg":"test started"`)
	assert.Contains(t, out, `"msg":"test failed"`)
	assert.Contains(t, out, `"msg":"hook failed"`)
	assert.Contains(t, out, `"msg":"group failed"`)
	assert.Contains(t, out, `"test":"Stack > when pushed > pops"`)
	assert.Contains(t, out, `"result":"failed"`)
}

func TestLogging_NilLogger(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() { replay(NewLogging(nil)) })
}

func TestMetrics(t *testing.T) {
	t.Parallel()

	// Given
	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg)
	require.NoError(t, err)

	// When
	replay(m.For("samples/StackSpec"))

	// Then
	assert.InDelta(t, 1, testutil.ToFloat64(m.testsTotal.WithLabelValues("samples/StackSpec", "passed")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.testsTotal.WithLabelValues("samples/StackSpec", "failed")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.ignoredTotal.WithLabelValues("samples/StackSpec")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.hookFailuresTotal.WithLabelValues("samples/StackSpec", "afterEach")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.hookFailuresTotal.WithLabelValues("samples/StackSpec", "afterAll")), 0)
	assert.Equal(t, 1, testutil.CollectAndCount(m.testDuration))

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.Len(t, families, 4)
}

func TestMetrics_LabelsByRegisteredName(t *testing.T) {
	t.Parallel()

	// Given two specs whose root groups share a description
	m, err := NewMetrics(prometheus.NewRegistry())
	require.NoError(t, err)
	id := domain.NewTestID([]string{"Calc"}, "adds")

	// When
	m.For("unit/Calc").TestFinished(id, domain.Passed(time.Millisecond))
	m.For("integration/Calc").TestFinished(id, domain.Passed(time.Millisecond))
	m.For("integration/Calc").TestFinished(id, domain.Passed(time.Millisecond))

	// Then
	assert.InDelta(t, 1, testutil.ToFloat64(m.testsTotal.WithLabelValues("unit/Calc", "passed")), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(m.testsTotal.WithLabelValues("integration/Calc", "passed")), 0)
	assert.Equal(t, 2, testutil.CollectAndCount(m.testsTotal))
}

func TestNewMetrics_NilRegisterer(t *testing.T) {
	t.Parallel()

	m, err := NewMetrics(nil)

	assert.ErrorIs(t, err, ErrNilRegisterer)
	assert.Nil(t, m)
}
