package argbind

import (
	"reflect"
)

// Scalar is the set of Go types a coerced value can be stored in.
// Enum values are delivered as strings.
type Scalar interface {
	~string | ~bool | ~int | ~uint
}

// Var returns a setter that stores a scalar value in *p.
func Var[T Scalar](p *T) func(any) {
	return func(v any) {
		*p = convert[T](v)
	}
}

// SliceVar returns a setter that stores collected values in *p. The
// slice is replaced, never appended to.
func SliceVar[T Scalar](p *[]T) func(any) {
	return func(v any) {
		vs, _ := v.([]any)
		out := make([]T, len(vs))
		for i, e := range vs {
			out[i] = convert[T](e)
		}
		*p = out
	}
}

func convert[T Scalar](v any) T {
	var t T
	reflect.ValueOf(&t).Elem().Set(reflect.ValueOf(v).Convert(reflect.TypeOf(t)))
	return t
}

// setField returns a setter for the struct field at index i of v. Scalar
// fields are assigned; slice fields are replaced by a new slice of the
// collected values.
func setField(v reflect.Value, i int) func(any) {
	return func(value any) {
		field := v.Field(i)

		if field.Kind() != reflect.Slice {
			field.Set(reflect.ValueOf(value).Convert(field.Type()))
			return
		}

		values, _ := value.([]any)
		elem := field.Type().Elem()
		slice := reflect.MakeSlice(field.Type(), 0, len(values))
		for _, e := range values {
			slice = reflect.Append(slice, reflect.ValueOf(e).Convert(elem))
		}
		field.Set(slice)
	}
}
