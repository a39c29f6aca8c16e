package viewhelper

import (
	"iter"
	"reflect"
)

// Traversable lets custom collection types satisfy TypeArray arguments.
type Traversable interface {
	All() iter.Seq2[any, any]
}

// conforms reports whether value satisfies typ. Only array, boolean and
// registered class/interface tags are checked; every other tag accepts any
// value.
func conforms(types *TypeRegistry, typ TypeTag, value any) bool {
	switch typ {
	case TypeArray:
		return isCollection(value)
	case TypeBoolean:
		_, ok := value.(bool)
		return ok
	}
	if typ.IsBuiltin() {
		return true
	}
	target, ok := types.Lookup(typ)
	if !ok {
		return true
	}
	return isInstanceOf(value, target)
}

func isCollection(value any) bool {
	switch value.(type) {
	case Traversable, iter.Seq[any], iter.Seq2[any, any]:
		return true
	}
	switch reflect.TypeOf(value).Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return true
	default:
		return false
	}
}

func isInstanceOf(value any, target reflect.Type) bool {
	actual := reflect.TypeOf(value)
	if target.Kind() == reflect.Interface {
		return actual.Implements(target)
	}
	if actual.AssignableTo(target) {
		return true
	}
	return actual.Kind() == reflect.Pointer && actual.Elem() == target
}
