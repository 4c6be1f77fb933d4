package tree

import (
	"fmt"

	"github.com/specvital/spectree/internal/callsite"
	"github.com/specvital/spectree/pkg/domain"
	"github.com/specvital/spectree/pkg/spec"
)

var _ spec.Builder = (*recorder)(nil)

// Record walks the closure of decl, declared under parentPath, and returns the resulting node.
// Hook and test bodies are stored, never invoked; nested group closures are stored for
// the caller to Record when the group is entered. The first malformed declaration aborts
// the node with a *spec.DeclarationError.
func Record(parentPath []string, parentStatus domain.TestStatus, decl *GroupDecl) (node *SpecNode, err error) {
	path := make([]string, len(parentPath), len(parentPath)+1)
	copy(path, parentPath)
	path = append(path, decl.Description)

	if decl.Description == "" {
		return nil, &spec.DeclarationError{Path: parentPath, Err: spec.ErrEmptyDescription}
	}
	if decl.Closure == nil {
		return nil, &spec.DeclarationError{Path: parentPath, Description: decl.Description, Err: spec.ErrNilClosure}
	}

	r := &recorder{
		node: &SpecNode{
			Description: decl.Description,
			Path:        path,
			Status:      decl.Status.Inherit(parentStatus),
		},
	}

	defer func() {
		r.sealed = true
		if rec := recover(); rec != nil {
			node = nil
			err = &spec.DeclarationError{Path: path, Err: fmt.Errorf("%w: %v", spec.ErrDeclarationPanic, rec)}
		}
	}()

	decl.Closure(r)
	if r.err != nil {
		return nil, r.err
	}
	return r.node, nil
}

type recorder struct {
	node   *SpecNode
	err    error
	sealed bool
}

func (r *recorder) BeforeAll(fn spec.Closure) {
	r.hook(&r.node.BeforeAll, fn)
}

func (r *recorder) BeforeEach(fn spec.Closure) {
	r.hook(&r.node.BeforeEach, fn)
}

func (r *recorder) AfterEach(fn spec.Closure) {
	r.hook(&r.node.AfterEach, fn)
}

func (r *recorder) AfterAll(fn spec.Closure) {
	r.hook(&r.node.AfterAll, fn)
}

func (r *recorder) Should(description string, body spec.Closure) {
	r.test(description, body, domain.TestStatusActive, nil)
}

func (r *recorder) ShouldThrow(target error, description string, body spec.Closure) {
	r.test(description, body, domain.TestStatusActive, &Expectation{Target: target})
}

func (r *recorder) FShouldThrow(target error, description string, body spec.Closure) {
	r.test(description, body, domain.TestStatusFocused, &Expectation{Target: target})
}

func (r *recorder) XShouldThrow(target error, description string, body spec.Closure) {
	r.test(description, body, domain.TestStatusSkipped, &Expectation{Target: target})
}

func (r *recorder) FShould(description string, body spec.Closure) {
	r.test(description, body, domain.TestStatusFocused, nil)
}

func (r *recorder) XShould(description string, body spec.Closure) {
	r.test(description, body, domain.TestStatusSkipped, nil)
}

func (r *recorder) Spec(description string, fn func(spec.Builder)) {
	r.group(description, fn, domain.TestStatusActive)
}

func (r *recorder) FSpec(description string, fn func(spec.Builder)) {
	r.group(description, fn, domain.TestStatusFocused)
}

func (r *recorder) XSpec(description string, fn func(spec.Builder)) {
	r.group(description, fn, domain.TestStatusSkipped)
}

func (r *recorder) hook(hooks *[]spec.Closure, fn spec.Closure) {
	if !r.accept() {
		return
	}
	if fn == nil {
		r.fail("", spec.ErrNilHook)
		return
	}
	*hooks = append(*hooks, fn)
}

func (r *recorder) test(description string, body spec.Closure, status domain.TestStatus, expect *Expectation) {
	if !r.accept() {
		return
	}
	switch {
	case description == "":
		r.fail("", spec.ErrEmptyDescription)
		return
	case body == nil:
		r.fail(description, spec.ErrNilBody)
		return
	}
	r.node.Entries = append(r.node.Entries, Entry{Test: &TestCase{
		Description: description,
		Body:        body,
		Status:      status.Inherit(r.node.Status),
		Expect:      expect,
		Location:    callsite.Caller(),
	}})
}

func (r *recorder) group(description string, fn func(spec.Builder), status domain.TestStatus) {
	if !r.accept() {
		return
	}
	switch {
	case description == "":
		r.fail("", spec.ErrEmptyDescription)
		return
	case fn == nil:
		r.fail(description, spec.ErrNilClosure)
		return
	}
	r.node.Entries = append(r.node.Entries, Entry{Group: &GroupDecl{
		Description: description,
		Closure:     fn,
		Status:      status,
		Location:    callsite.Caller(),
	}})
}

// accept reports whether declarations are still recorded. Using a builder after its
// closure returned is a programming error and panics.
func (r *recorder) accept() bool {
	if r.sealed {
		panic(&spec.DeclarationError{Path: r.node.Path, Err: spec.ErrSealed})
	}
	return r.err == nil
}

func (r *recorder) fail(description string, err error) {
	r.err = &spec.DeclarationError{Path: r.node.Path, Description: description, Err: err}
}
