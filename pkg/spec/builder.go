// Package spec defines the declaration surface used by spec authors.
//
// A spec type implements [Spec] and returns its root group from Describes:
//
//	type StackSpec struct{ stack *Stack }
//
//	func (s *StackSpec) Describes() spec.Suite {
//		return spec.Describes("Stack", func(it spec.Builder) {
//			it.BeforeEach(func() error {
//				s.stack = NewStack()
//				return nil
//			})
//			it.Should("be empty when created", func() error {
//				if !s.stack.Empty() {
//					return errors.New("not empty")
//				}
//				return nil
//			})
//			it.Spec("when pushed to", func(it spec.Builder) { ... })
//		})
//	}
//
// The same declaration closure is walked twice: once by a planning builder that
// only records names, and once by an executing builder that runs hooks and bodies.
// Declaration closures must therefore only declare; side effects belong in hooks
// and test bodies.
package spec

// Closure is the body of a hook or a test. Returning a non-nil error or panicking
// marks the hook or test as failed.
type Closure func() error

// Builder is the set of operations available inside a group closure.
type Builder interface {
	// BeforeAll registers a hook run once when the current group is entered.
	BeforeAll(fn Closure)
	// BeforeEach registers a hook run before every test of the current group
	// and its nested groups, outermost group first.
	BeforeEach(fn Closure)
	// AfterEach registers a hook run after every test of the current group
	// and its nested groups, innermost group first. It runs even when the test failed.
	AfterEach(fn Closure)
	// AfterAll registers a hook run once after all tests and groups of the current group.
	AfterAll(fn Closure)

	// Should declares a test in the current group.
	Should(description string, body Closure)
	// ShouldThrow declares a test that passes only when body fails with an error
	// matching target (errors.Is). A nil target accepts any error.
	ShouldThrow(target error, description string, body Closure)
	// Spec declares a nested group. fn is invoked with a builder scoped to it.
	Spec(description string, fn func(Builder))

	// FShould declares a focused test. When a spec contains focused tests,
	// only focused tests run and all others are reported as ignored.
	FShould(description string, body Closure)
	// FSpec declares a group whose tests are all focused.
	FSpec(description string, fn func(Builder))
	// XShould declares an ignored test; its body never runs.
	XShould(description string, body Closure)
	// XSpec declares a group whose tests are all ignored.
	XSpec(description string, fn func(Builder))
	// FShouldThrow is the focused form of ShouldThrow.
	FShouldThrow(target error, description string, body Closure)
	// XShouldThrow is the ignored form of ShouldThrow.
	XShouldThrow(target error, description string, body Closure)
}

// Spec is implemented by user spec types.
type Spec interface {
	// Describes returns the root group of the spec.
	Describes() Suite
}
