package samples

import (
	"errors"

	"github.com/specvital/spectree/pkg/spec"
)

var errUnavailable = errors.New("connection unavailable")

// LifecycleSpec shows how hook failures are reported: a failing beforeAll skips
// its group, a failing afterEach is reported next to a passing test.
type LifecycleSpec struct{}

func (LifecycleSpec) Describes() spec.Suite {
	return spec.Describes("Lifecycle", func(it spec.Builder) {
		it.Should("run a plain test", func() error { return nil })

		it.Spec("with unavailable fixture", func(it spec.Builder) {
			it.BeforeAll(func() error { return errUnavailable })
			it.Should("never run", func() error { return nil })
		})

		it.Spec("with leaky teardown", func(it spec.Builder) {
			it.AfterEach(func() error { return errors.New("cleanup failed") })
			it.Should("still pass", func() error { return nil })
		})

		it.XShould("be ignored", func() error { return nil })
	})
}
