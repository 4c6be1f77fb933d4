package spec

import (
	"fmt"
	"strings"
)

// Pair holds the arguments of one case of a two-parameter test.
type Pair[A, B any] struct {
	A A
	B B
}

// P2 builds a Pair.
func P2[A, B any](a A, b B) Pair[A, B] {
	return Pair[A, B]{A: a, B: b}
}

// Params1 declares one test per parameter. Every "%1" in description is replaced
// with the parameter formatted by fmt.Sprint.
func Params1[P any](b Builder, description string, body func(P) error, params ...P) {
	for _, p := range params {
		var closure Closure
		if body != nil {
			closure = func() error { return body(p) }
		}
		b.Should(formatDescription(description, p), closure)
	}
}

// Params2 declares one test per parameter pair, replacing "%1" and "%2".
func Params2[A, B any](b Builder, description string, body func(A, B) error, params ...Pair[A, B]) {
	for _, p := range params {
		var closure Closure
		if body != nil {
			closure = func() error { return body(p.A, p.B) }
		}
		b.Should(formatDescription(description, p.A, p.B), closure)
	}
}

func formatDescription(description string, args ...any) string {
	pairs := make([]string, 0, 2*len(args))
	for i, arg := range args {
		pairs = append(pairs, fmt.Sprintf("%%%d", i+1), fmt.Sprint(arg))
	}
	// one pass, so inserted values are never substituted again
	return strings.NewReplacer(pairs...).Replace(description)
}
