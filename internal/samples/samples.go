package samples

import (
	"github.com/specvital/spectree/pkg/registry"
)

// Register adds every sample spec to r.
func Register(r *registry.Registry) error {
	if err := r.RegisterType(&StackSpec{}); err != nil {
		return err
	}
	return r.RegisterType(LifecycleSpec{})
}
