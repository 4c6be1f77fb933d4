// Package tree holds the suite tree model: one immutable node per declared group,
// built by running the group's declaration closure against a recording builder.
package tree

import (
	"github.com/specvital/spectree/pkg/domain"
	"github.com/specvital/spectree/pkg/spec"
)

// TestCase is a declared test with its deferred body.
type TestCase struct {
	Description string
	Body        spec.Closure
	// Status is the effective status, including the status inherited from ancestor groups.
	Status   domain.TestStatus
	Expect   *Expectation
	Location domain.Location
}

// Expectation marks a test declared with ShouldThrow.
type Expectation struct {
	// Target is matched with errors.Is; nil accepts any error.
	Target error
}

// GroupDecl is a nested group whose closure has not been walked yet.
type GroupDecl struct {
	Description string
	Closure     func(spec.Builder)
	Status      domain.TestStatus
	Location    domain.Location
}

// Entry is one declaration of a group, either a test or a nested group.
type Entry struct {
	Test  *TestCase
	Group *GroupDecl
}

// SpecNode is one group of the suite tree.
type SpecNode struct {
	Description string
	// Path is the path of ancestor descriptions including this group's own.
	Path   []string
	Status domain.TestStatus

	BeforeAll  []spec.Closure
	BeforeEach []spec.Closure
	AfterEach  []spec.Closure
	AfterAll   []spec.Closure

	// Entries keeps tests and nested groups in declaration order.
	Entries []Entry
}

// Hooks returns the hooks registered for kind.
func (n *SpecNode) Hooks(kind domain.HookKind) []spec.Closure {
	switch kind {
	case domain.HookBeforeAll:
		return n.BeforeAll
	case domain.HookBeforeEach:
		return n.BeforeEach
	case domain.HookAfterEach:
		return n.AfterEach
	case domain.HookAfterAll:
		return n.AfterAll
	default:
		return nil
	}
}

// ID returns the identity of a test declared directly in this node.
func (n *SpecNode) ID(tc *TestCase) domain.TestID {
	return domain.NewTestID(n.Path, tc.Description)
}

// ChildPath returns the path of a nested group declared in this node.
func (n *SpecNode) ChildPath(g *GroupDecl) []string {
	p := make([]string, len(n.Path), len(n.Path)+1)
	copy(p, n.Path)
	return append(p, g.Description)
}

// Root converts a suite into the declaration of the root group.
func Root(s spec.Suite) *GroupDecl {
	return &GroupDecl{
		Description: s.Description,
		Closure:     s.Closure,
		Status:      s.StatusOrActive(),
	}
}
