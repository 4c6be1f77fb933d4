package callsite

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCaller(t *testing.T) {
	t.Parallel()

	// When
	_, _, line, _ := runtime.Caller(0)
	loc := Caller()

	// Then
	assert.Equal(t, "callsite_test.go", filepath.Base(loc.File))
	assert.Equal(t, line+1, loc.StartLine)
}

func TestInternal(t *testing.T) {
	t.Parallel()

	assert.True(t, internal("github.com/specvital/spectree/pkg/spec.Params1[...]"))
	assert.True(t, internal("github.com/specvital/spectree/pkg/plan.(*builder).Should"))
	assert.True(t, internal("github.com/specvital/spectree/pkg/tree.(*recorder).test"))
	assert.False(t, internal("github.com/specvital/spectree/pkg/plan.TestBuild.func1"))
	assert.False(t, internal("github.com/specvital/spectree/pkg/runner.TestRunner_HookOrder.func1"))
	assert.False(t, internal("main.main"))
}
