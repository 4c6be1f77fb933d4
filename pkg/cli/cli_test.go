package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specvital/spectree/internal/samples"
	"github.com/specvital/spectree/pkg/config"
	"github.com/specvital/spectree/pkg/domain"
	"github.com/specvital/spectree/pkg/registry"
	"github.com/specvital/spectree/pkg/report"
	"github.com/specvital/spectree/pkg/spec"
)

func newRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	r := registry.NewRegistry()
	require.NoError(t, samples.Register(r))
	require.NoError(t, r.Register("passing/Calc", func() spec.Spec {
		return spec.Describes("Calc", func(it spec.Builder) {
			it.Should("add", func() error { return nil })
		})
	}))
	return r
}

// execute runs the root command with an empty config file so the working
// directory never leaks into the test.
func execute(t *testing.T, r *registry.Registry, args ...string) (string, string, error) {
	t.Helper()
	cfg := filepath.Join(t.TempDir(), "spectree.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("color: false\nlog:\n  level: error\n"), 0o644))

	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd(r, "1.2.3")
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", cfg}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// Not parallel: commands install the process default logger.
func TestVersion(t *testing.T) {
	out, _, err := execute(t, newRegistry(t), "version")

	require.NoError(t, err)
	assert.Equal(t, "spectree version 1.2.3\n", out)
}

func TestList(t *testing.T) {
	t.Run("should print the description tree", func(t *testing.T) {
		out, _, err := execute(t, newRegistry(t), "list", "samples/Stack*")

		require.NoError(t, err)
		assert.Contains(t, out, "samples/StackSpec (8 tests)")
		assert.Contains(t, out, "after a push")
		assert.Contains(t, out, "should hold 100 values")
		assert.NotContains(t, out, "Lifecycle")
	})

	t.Run("should count runnable tests apart", func(t *testing.T) {
		out, _, err := execute(t, newRegistry(t), "list", "samples/Lifecycle*")

		require.NoError(t, err)
		assert.Contains(t, out, "samples/LifecycleSpec (4 tests, 3 runnable)")
	})

	t.Run("should encode the inventory", func(t *testing.T) {
		out, _, err := execute(t, newRegistry(t), "list", "-o", "json")

		require.NoError(t, err)
		var inv domain.Inventory
		require.NoError(t, json.Unmarshal([]byte(out), &inv))
		require.Len(t, inv.Plans, 3)
		assert.Equal(t, "passing/Calc", inv.Plans[0].Spec)
		assert.Equal(t, 13, inv.CountTests())
	})

	t.Run("should mark skipped tests", func(t *testing.T) {
		out, _, err := execute(t, newRegistry(t), "list", "**/Lifecycle*")

		require.NoError(t, err)
		assert.Contains(t, out, "should be ignored [skipped]")
	})

	t.Run("should reject an unknown output", func(t *testing.T) {
		_, _, err := execute(t, newRegistry(t), "list", "-o", "xml")

		assert.ErrorIs(t, err, config.ErrInvalidOutput)
	})

	t.Run("should reject bad patterns", func(t *testing.T) {
		_, _, err := execute(t, newRegistry(t), "list", "[")

		assert.ErrorIs(t, err, registry.ErrBadPattern)
	})
}

func TestRun(t *testing.T) {
	t.Run("should succeed when every test passes", func(t *testing.T) {
		out, _, err := execute(t, newRegistry(t), "run", "passing/*")

		require.NoError(t, err)
		assert.Contains(t, out, "✓ add")
		assert.Contains(t, out, "TOTAL")
	})

	t.Run("should fail when a hook fails", func(t *testing.T) {
		out, _, err := execute(t, newRegistry(t), "run", "samples/Lifecycle*", "--show-tests")

		assert.ErrorIs(t, err, ErrTestsFailed)
		assert.Contains(t, out, "never run")
		assert.Contains(t, out, "FAIL")
	})

	t.Run("should reject an unknown output before running", func(t *testing.T) {
		ran := false
		r := newRegistry(t)
		require.NoError(t, r.Register("sideEffect/Spec", func() spec.Spec {
			return spec.Describes("side effect", func(it spec.Builder) {
				it.Should("run", func() error { ran = true; return nil })
			})
		}))

		_, _, err := execute(t, r, "run", "sideEffect/*", "-o", "xml")

		assert.ErrorIs(t, err, config.ErrInvalidOutput)
		assert.False(t, ran)
	})

	t.Run("should encode the report and write metrics", func(t *testing.T) {
		metrics := filepath.Join(t.TempDir(), "spectree.prom")
		cfg := filepath.Join(t.TempDir(), "spectree.yaml")
		require.NoError(t, os.WriteFile(cfg, []byte("log:\n  level: error\nmetricsFile: "+metrics+"\n"), 0o644))

		var stdout bytes.Buffer
		cmd := NewRootCmd(newRegistry(t), "test")
		cmd.SetOut(&stdout)
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"--config", cfg, "run", "samples/StackSpec", "-o", "json"})

		require.NoError(t, cmd.Execute())

		var rep report.Report
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &rep))
		assert.Equal(t, 8, rep.Stats.Passed)
		assert.False(t, rep.HasFailures())

		data, err := os.ReadFile(metrics)
		require.NoError(t, err)
		assert.Contains(t, string(data), `spectree_tests_total{result="passed",spec="samples/StackSpec"} 8`)
	})
}
