// Package callsite finds the user code location of a declaration call.
package callsite

import (
	"runtime"
	"strings"

	"github.com/specvital/spectree/pkg/domain"
)

const maxDepth = 32

// frames of the declaration machinery itself; the first frame outside them is the user's call.
var skipPrefixes = []string{
	"github.com/specvital/spectree/pkg/spec.",
	"github.com/specvital/spectree/pkg/plan.(*",
	"github.com/specvital/spectree/pkg/tree.(*",
}

// Caller returns the file and line of the nearest caller outside the declaration machinery.
// It returns the zero Location when no such frame exists.
func Caller() domain.Location {
	pcs := make([]uintptr, maxDepth)
	n := runtime.Callers(2, pcs)
	frames := runtime.CallersFrames(pcs[:n])
	for {
		f, more := frames.Next()
		if f.Function != "" && !internal(f.Function) {
			return domain.Location{File: f.File, StartLine: f.Line, EndLine: f.Line}
		}
		if !more {
			return domain.Location{}
		}
	}
}

func internal(function string) bool {
	for _, p := range skipPrefixes {
		if strings.HasPrefix(function, p) {
			return true
		}
	}
	return false
}
