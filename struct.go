package argbind

import (
	"fmt"
	"reflect"
	"strings"
)

const (
	tagName       = "arg-name"
	tagShort      = "arg-short"
	tagCompat     = "arg-compat"
	tagHelp       = "arg-help"
	tagDefault    = "arg-default"
	tagFlags      = "arg-flags"
	tagEnum       = "arg-enum"
	tagPositional = "arg-positional"
	tagIgnore     = "arg-ignore"
)

// listSeparator separates values in arg-flags, arg-enum and collection
// defaults.
const listSeparator = ","

var flagNames = map[string]Flags{
	"required": Required,
	"multiple": Multiple,
	"unique":   Unique,
	"once":     AtMostOnce,
}

// unwrap takes an argument, which must be a pointer to a struct, and
// returns a reflect.Value of the pointed to struct.
func unwrap(s any) (reflect.Value, error) {
	v := reflect.ValueOf(s)

	if v.Kind() != reflect.Pointer || v.IsNil() {
		return reflect.Value{}, configError("arg must be ptr to struct")
	}
	v = v.Elem()

	if v.Kind() != reflect.Struct {
		return reflect.Value{}, configError("arg must be ptr to struct")
	}

	return v, nil
}

// FromStruct builds the field specifications for the exported fields of
// the struct pointed to by dst. The setters write into that struct.
//
// Field types may be string, bool, int, uint, types based on them, and
// slices of any of these. The struct tags are:
//
//	arg-name       : long name (default: the field name)
//	arg-short      : short name (default: first letter of the long name)
//	arg-compat     : alternative long name
//	arg-help       : help text shown by Usage
//	arg-default    : default value; collections take a comma-separated list
//	arg-flags      : comma-separated list of required, multiple, unique, once
//	arg-enum       : comma-separated members; makes a string field an enum
//	arg-positional : the field receives bare tokens
//	arg-ignore     : skip the field
func FromStruct(dst any) ([]Field, error) {
	v, err := unwrap(dst)
	if err != nil {
		return nil, err
	}

	typeInfo := v.Type()
	fields := []Field{}

	for i := 0; i < v.NumField(); i++ {
		sf := typeInfo.Field(i)

		if _, ok := sf.Tag.Lookup(tagIgnore); ok || !sf.IsExported() {
			continue
		}

		f, err := makeField(sf)
		if err != nil {
			return nil, err
		}
		f.Set = setField(v, i)

		fields = append(fields, f)
	}

	return fields, nil
}

// makeField reads the type and tags of one struct field.
func makeField(sf reflect.StructField) (Field, error) {
	f := Field{
		Name:   sf.Name,
		Short:  sf.Tag.Get(tagShort),
		Compat: sf.Tag.Get(tagCompat),
		Help:   sf.Tag.Get(tagHelp),
	}

	if name := sf.Tag.Get(tagName); name != "" {
		f.Name = name
	}
	_, f.Positional = sf.Tag.Lookup(tagPositional)

	kind, err := kindOf(sf)
	if err != nil {
		return Field{}, err
	}
	f.Kind = kind

	for _, name := range splitList(sf.Tag.Get(tagFlags)) {
		flag, ok := flagNames[strings.ToLower(name)]
		if !ok {
			return Field{}, configError("field %s: unknown flag %q in %s tag",
				sf.Name, name, tagFlags)
		}
		f.Flags |= flag
	}

	if text, ok := sf.Tag.Lookup(tagDefault); ok && text != "" {
		def, err := parseDefault(kind, text)
		if err != nil {
			return Field{}, configError("field %s: %s tag: %v", sf.Name, tagDefault, err)
		}
		f.Default = def
	}

	return f, nil
}

// kindOf maps the Go type of a struct field onto a Kind.
func kindOf(sf reflect.StructField) (Kind, error) {
	t := sf.Type
	isSlice := t.Kind() == reflect.Slice
	if isSlice {
		t = t.Elem()
	}

	var k Kind
	switch t.Kind() {
	case reflect.String:
		k = String()
		if members := splitList(sf.Tag.Get(tagEnum)); len(members) > 0 {
			k = Enum(members...)
		}
	case reflect.Bool:
		k = Bool()
	case reflect.Int:
		k = Int()
	case reflect.Uint:
		k = Uint()
	default:
		return Kind{}, configError("field %s: %s not permitted in struct, maybe use %s tag",
			sf.Name, sf.Type, tagIgnore)
	}

	if isSlice {
		k = k.Collection()
	}
	return k, nil
}

// parseDefault coerces the text of an arg-default tag.
func parseDefault(k Kind, text string) (any, error) {
	if !k.IsCollection() {
		return k.Parse(text)
	}

	out := []any{}
	for _, s := range splitList(text) {
		v, err := k.Element().Parse(s)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", s, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func splitList(s string) []string {
	out := []string{}
	for _, e := range strings.Split(s, listSeparator) {
		if e = strings.TrimSpace(e); e != "" {
			out = append(out, e)
		}
	}
	return out
}
