package registry

import (
	"fmt"
	"path"
	"reflect"

	"github.com/specvital/spectree/pkg/spec"
)

var specType = reflect.TypeFor[spec.Spec]()

// InstantiateType builds a zero value of t as a spec. A struct type whose
// Describes method has a pointer receiver is instantiated as a pointer.
func InstantiateType(t reflect.Type) (spec.Spec, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: nil type", ErrNotSpec)
	}

	switch {
	case t.Kind() == reflect.Pointer && t.Implements(specType):
		return reflect.New(t.Elem()).Interface().(spec.Spec), nil
	case t.Kind() != reflect.Pointer && t.Implements(specType):
		return reflect.New(t).Elem().Interface().(spec.Spec), nil
	case t.Kind() != reflect.Pointer && reflect.PointerTo(t).Implements(specType):
		return reflect.New(t).Interface().(spec.Spec), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrNotSpec, t)
	}
}

// TypeName returns the registration name of a spec type: the last element of
// its package path and its type name, pointers dereferenced.
func TypeName(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.PkgPath() == "" {
		return t.Name()
	}
	return path.Base(t.PkgPath()) + "/" + t.Name()
}

func isNil(s spec.Spec) bool {
	if s == nil {
		return true
	}
	v := reflect.ValueOf(s)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return v.IsNil()
	default:
		return false
	}
}
