// Package plan enumerates the tests of a spec without running any hook or test body.
package plan

import (
	"fmt"

	"github.com/specvital/spectree/internal/callsite"
	"github.com/specvital/spectree/pkg/domain"
	"github.com/specvital/spectree/pkg/spec"
)

// Build walks the declaration closures of s and returns its test plan.
// Only structure is recorded: hook registrations are discarded and no body is invoked,
// so Build is side-effect free and returns identical plans on every call for the same spec.
// A malformed declaration aborts the walk with a *spec.DeclarationError and no plan.
func Build(s spec.Suite, opts ...Option) (*domain.TestPlan, error) {
	options := Options{}
	for _, opt := range opts {
		opt(&options)
	}
	applyDefaults(&options)

	if err := s.Validate(); err != nil {
		return nil, err
	}

	name := options.Name
	if name == "" {
		name = s.Description
	}

	b := &builder{
		opts: options,
		plan: &domain.TestPlan{Spec: name, Tests: []domain.Test{}},
	}
	b.plan.Root = domain.TestSuite{
		Name:     s.Description,
		Status:   s.StatusOrActive(),
		Location: b.locate(s.Location),
	}
	if err := b.walkRoot(s); err != nil {
		return nil, err
	}
	return b.plan, nil
}

var _ spec.Builder = (*builder)(nil)

type builder struct {
	opts Options
	plan *domain.TestPlan

	path   []string
	status domain.TestStatus
	suite  *domain.TestSuite
	seen   *descriptions

	err    error
	sealed bool
}

// descriptions tracks what one group declared, to flag duplicates.
type descriptions struct {
	tests  map[string]struct{}
	groups map[string]struct{}
}

func newDescriptions() *descriptions {
	return &descriptions{tests: map[string]struct{}{}, groups: map[string]struct{}{}}
}

func (b *builder) walkRoot(s spec.Suite) (err error) {
	b.path = []string{s.Description}
	b.status = s.StatusOrActive()
	b.suite = &b.plan.Root
	b.seen = newDescriptions()

	defer func() {
		b.sealed = true
		if rec := recover(); rec != nil {
			err = &spec.DeclarationError{Path: b.path, Err: fmt.Errorf("%w: %v", spec.ErrDeclarationPanic, rec)}
		}
	}()

	s.Closure(b)
	return b.err
}

func (b *builder) BeforeAll(spec.Closure)  { b.accept() }
func (b *builder) BeforeEach(spec.Closure) { b.accept() }
func (b *builder) AfterEach(spec.Closure)  { b.accept() }
func (b *builder) AfterAll(spec.Closure)   { b.accept() }

func (b *builder) Should(description string, body spec.Closure) {
	b.test(description, body, domain.TestStatusActive)
}

func (b *builder) ShouldThrow(_ error, description string, body spec.Closure) {
	b.test(description, body, domain.TestStatusActive)
}

func (b *builder) FShouldThrow(_ error, description string, body spec.Closure) {
	b.test(description, body, domain.TestStatusFocused)
}

func (b *builder) XShouldThrow(_ error, description string, body spec.Closure) {
	b.test(description, body, domain.TestStatusSkipped)
}

func (b *builder) FShould(description string, body spec.Closure) {
	b.test(description, body, domain.TestStatusFocused)
}

func (b *builder) XShould(description string, body spec.Closure) {
	b.test(description, body, domain.TestStatusSkipped)
}

func (b *builder) Spec(description string, fn func(spec.Builder)) {
	b.group(description, fn, domain.TestStatusActive)
}

func (b *builder) FSpec(description string, fn func(spec.Builder)) {
	b.group(description, fn, domain.TestStatusFocused)
}

func (b *builder) XSpec(description string, fn func(spec.Builder)) {
	b.group(description, fn, domain.TestStatusSkipped)
}

func (b *builder) test(description string, body spec.Closure, status domain.TestStatus) {
	if !b.accept() {
		return
	}
	switch {
	case description == "":
		b.fail("", spec.ErrEmptyDescription)
		return
	case body == nil:
		b.fail(description, spec.ErrNilBody)
		return
	}

	if _, dup := b.seen.tests[description]; dup {
		b.opts.Logger.Warn("duplicate test description",
			"spec", b.plan.Spec,
			"group", b.joinedPath(),
			"description", description)
	}
	b.seen.tests[description] = struct{}{}

	t := domain.Test{
		ID:       domain.NewTestID(b.path, description),
		Status:   status.Inherit(b.status),
		Location: b.locate(callsite.Caller()),
	}
	b.suite.Tests = append(b.suite.Tests, t)
	b.plan.Tests = append(b.plan.Tests, t)
}

func (b *builder) group(description string, fn func(spec.Builder), status domain.TestStatus) {
	if !b.accept() {
		return
	}
	switch {
	case description == "":
		b.fail("", spec.ErrEmptyDescription)
		return
	case fn == nil:
		b.fail(description, spec.ErrNilClosure)
		return
	}

	if _, dup := b.seen.groups[description]; dup {
		b.opts.Logger.Warn("duplicate group description",
			"spec", b.plan.Spec,
			"group", b.joinedPath(),
			"description", description)
	}
	b.seen.groups[description] = struct{}{}

	child := domain.TestSuite{
		Name:     description,
		Status:   status.Inherit(b.status),
		Location: b.locate(callsite.Caller()),
	}

	parentPath, parentStatus, parentSuite, parentSeen := b.path, b.status, b.suite, b.seen
	b.path = append(append(make([]string, 0, len(parentPath)+1), parentPath...), description)
	b.status = child.Status
	b.suite = &child
	b.seen = newDescriptions()

	fn(b)

	b.path, b.status, b.suite, b.seen = parentPath, parentStatus, parentSuite, parentSeen
	if b.err == nil {
		b.suite.Suites = append(b.suite.Suites, child)
	}
}

// accept reports whether the walk still records declarations. A builder used after
// Build returned panics, as the declaration escaped its closure.
func (b *builder) accept() bool {
	if b.sealed {
		panic(&spec.DeclarationError{Path: b.path, Err: spec.ErrSealed})
	}
	return b.err == nil
}

func (b *builder) fail(description string, err error) {
	b.err = &spec.DeclarationError{Path: append([]string{}, b.path...), Description: description, Err: err}
	b.opts.Logger.Debug("declaration rejected", "error", b.err)
}

func (b *builder) locate(loc domain.Location) domain.Location {
	if b.opts.Locator == nil || loc.IsZero() {
		return loc
	}
	return b.opts.Locator.Resolve(loc)
}

func (b *builder) joinedPath() string {
	return domain.TestID{Path: b.path[:len(b.path)-1], Name: b.path[len(b.path)-1]}.String()
}
