package spec

import (
	"github.com/specvital/spectree/internal/callsite"
	"github.com/specvital/spectree/pkg/domain"
)

// Suite is the root group declared by a [Spec].
type Suite struct {
	Description string
	Closure     func(Builder)
	Status      domain.TestStatus
	Location    domain.Location
}

var _ Spec = Suite{}

// Describes declares the root group of a spec.
func Describes(description string, fn func(Builder)) Suite {
	return Suite{Description: description, Closure: fn, Status: domain.TestStatusActive, Location: callsite.Caller()}
}

// FDescribes declares a root group whose tests are all focused.
func FDescribes(description string, fn func(Builder)) Suite {
	return Suite{Description: description, Closure: fn, Status: domain.TestStatusFocused, Location: callsite.Caller()}
}

// XDescribes declares a root group whose tests are all ignored.
func XDescribes(description string, fn func(Builder)) Suite {
	return Suite{Description: description, Closure: fn, Status: domain.TestStatusSkipped, Location: callsite.Caller()}
}

// Describes returns s, so an inline suite can be used wherever a [Spec] is expected.
func (s Suite) Describes() Suite {
	return s
}

// IsZero reports whether no suite was declared.
func (s Suite) IsZero() bool {
	return s.Description == "" && s.Closure == nil
}

// Validate checks that the suite can be walked.
func (s Suite) Validate() error {
	if s.IsZero() {
		return ErrNoSuite
	}
	if s.Description == "" {
		return &DeclarationError{Err: ErrEmptyDescription}
	}
	if s.Closure == nil {
		return &DeclarationError{Path: []string{s.Description}, Err: ErrNilClosure}
	}
	return nil
}

// StatusOrActive returns the suite status, treating the zero value as active.
func (s Suite) StatusOrActive() domain.TestStatus {
	if s.Status == "" {
		return domain.TestStatusActive
	}
	return s.Status
}
