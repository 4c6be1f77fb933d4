package spec

import (
	"errors"
	"fmt"
	"strings"

	"github.com/specvital/spectree/pkg/domain"
)

var (
	// ErrNoSuite is returned when a spec does not declare a root group.
	ErrNoSuite = errors.New("spec: no suite declared")
	// ErrEmptyDescription is returned for a test or group with an empty description.
	ErrEmptyDescription = errors.New("spec: empty description")
	// ErrNilBody is returned for a test without a body.
	ErrNilBody = errors.New("spec: nil test body")
	// ErrNilClosure is returned for a group without a declaration closure.
	ErrNilClosure = errors.New("spec: nil group closure")
	// ErrNilHook is returned for a hook registered without a body.
	ErrNilHook = errors.New("spec: nil hook")
	// ErrSealed is returned when a builder is used after its group closure returned.
	ErrSealed = errors.New("spec: group already declared")
	// ErrDeclarationPanic wraps a panic raised by a declaration closure.
	ErrDeclarationPanic = errors.New("spec: declaration closure panicked")

	// ErrIgnored is the skip reason of tests declared with XShould or inside XSpec.
	ErrIgnored = errors.New("spec: test ignored")
	// ErrNotFocused is the skip reason of unfocused tests in a spec with focused tests.
	ErrNotFocused = errors.New("spec: test not focused")
)

// DeclarationError reports a malformed declaration together with the path of
// the group it was declared in.
type DeclarationError struct {
	Path        []string
	Description string
	Err         error
}

func (e *DeclarationError) Error() string {
	where := strings.Join(e.Path, domain.PathSeparator)
	switch {
	case where == "" && e.Description == "":
		return e.Err.Error()
	case e.Description == "":
		return fmt.Sprintf("%v (in %q)", e.Err, where)
	default:
		return fmt.Sprintf("%v: %q (in %q)", e.Err, e.Description, where)
	}
}

func (e *DeclarationError) Unwrap() error {
	return e.Err
}
