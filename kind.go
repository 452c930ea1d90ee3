package argbind

import (
	"fmt"
	"strconv"
	"strings"
)

type baseKind int

const (
	invalidKind baseKind = iota
	stringKind
	boolKind
	intKind
	uintKind
	enumKind
)

var baseKindNames = [...]string{
	invalidKind: "invalid",
	stringKind:  "string",
	boolKind:    "bool",
	intKind:     "int",
	uintKind:    "uint",
	enumKind:    "enum",
}

// helpMember is the enum member selected by the token "?".
const helpMember = "help"

// Kind describes the type of value a field accepts. A Kind is built with
// String, Bool, Int, Uint or Enum, and turned into a collection kind with
// Collection. The zero Kind is invalid.
type Kind struct {
	base       baseKind
	members    []string
	collection bool
}

// String returns the kind for plain text values.
func String() Kind { return Kind{base: stringKind} }

// Bool returns the kind for boolean switches.
func Bool() Kind { return Kind{base: boolKind} }

// Int returns the kind for base-10 signed integers.
func Int() Kind { return Kind{base: intKind} }

// Uint returns the kind for base-10 unsigned integers.
func Uint() Kind { return Kind{base: uintKind} }

// Enum returns the kind for a closed set of named members. Members are
// matched case-insensitively and rendered in the given order.
func Enum(members ...string) Kind {
	return Kind{base: enumKind, members: append([]string(nil), members...)}
}

// Collection returns the collection kind whose elements are of kind k.
func (k Kind) Collection() Kind {
	k.collection = true
	return k
}

// CollectionOf is shorthand for k.Collection().
func CollectionOf(k Kind) Kind { return k.Collection() }

// IsCollection reports whether k accepts a sequence of values.
func (k Kind) IsCollection() bool { return k.collection }

// IsBool reports whether k (or its element kind) is Bool.
func (k Kind) IsBool() bool { return k.base == boolKind }

// IsEnum reports whether k (or its element kind) is an Enum.
func (k Kind) IsEnum() bool { return k.base == enumKind }

// Element returns the element kind of a collection, or k itself.
func (k Kind) Element() Kind {
	k.collection = false
	return k
}

// Members returns the enum members in declaration order, or nil.
func (k Kind) Members() []string {
	return append([]string(nil), k.members...)
}

func (k Kind) String() string {
	name := baseKindNames[k.base]
	if k.collection {
		return "[]" + name
	}
	return name
}

func (k Kind) valid() error {
	switch k.base {
	case stringKind, boolKind, intKind, uintKind:
		return nil

	case enumKind:
		if len(k.members) == 0 {
			return fmt.Errorf("enum kind has no members")
		}
		seen := map[string]struct{}{}
		for _, m := range k.members {
			if m == "" {
				return fmt.Errorf("enum kind has an empty member")
			}
			l := strings.ToLower(m)
			if _, ok := seen[l]; ok {
				return fmt.Errorf("enum kind has duplicate member %q", m)
			}
			seen[l] = struct{}{}
		}
		return nil

	default:
		return fmt.Errorf("invalid kind")
	}
}

// Parse converts a single token into a value of the element kind of k.
// The result is a string, bool, int, uint, or (for enums) the declared
// spelling of the matched member. Empty text is never valid.
func (k Kind) Parse(text string) (any, error) {
	if text == "" {
		return nil, fmt.Errorf("empty value")
	}

	switch k.base {
	case stringKind:
		return text, nil

	case boolKind:
		switch {
		case strings.EqualFold(text, "true"):
			return true, nil
		case strings.EqualFold(text, "false"):
			return false, nil
		}
		return nil, fmt.Errorf("%q is not a boolean", text)

	case intKind:
		i, err := strconv.ParseInt(text, 10, strconv.IntSize)
		if err != nil {
			return nil, err
		}
		return int(i), nil

	case uintKind:
		u, err := strconv.ParseUint(text, 10, strconv.IntSize)
		if err != nil {
			return nil, err
		}
		return uint(u), nil

	case enumKind:
		if text == "?" {
			text = helpMember
		}
		for _, m := range k.members {
			if strings.EqualFold(m, text) {
				return m, nil
			}
		}
		return nil, fmt.Errorf("%q is not one of %s", text,
			strings.Join(k.members, ", "))

	default:
		return nil, fmt.Errorf("invalid kind")
	}
}

// Check verifies that v is acceptable as a value of k. Collection kinds
// accept a []any, or a slice of the element's Go type, whose members all
// pass Check against the element kind. Check returns the value in
// canonical form: a []any for collections, the declared member spelling
// for enums.
func (k Kind) Check(v any) (any, error) {
	if k.collection {
		elems, ok := toAnySlice(v)
		if !ok {
			return nil, fmt.Errorf("%v is not a %s", v, k)
		}

		out := make([]any, 0, len(elems))
		for _, e := range elems {
			c, err := k.Element().Check(e)
			if err != nil {
				return nil, err
			}
			out = append(out, c)
		}
		return out, nil
	}

	ok := false
	switch k.base {
	case stringKind:
		_, ok = v.(string)
	case boolKind:
		_, ok = v.(bool)
	case intKind:
		_, ok = v.(int)
	case uintKind:
		_, ok = v.(uint)
	case enumKind:
		if s, isString := v.(string); isString && s != "" && s != "?" {
			return k.Parse(s)
		}
	}

	if !ok {
		return nil, fmt.Errorf("%v (%T) is not a %s", v, v, k)
	}
	return v, nil
}

func toAnySlice(v any) ([]any, bool) {
	switch s := v.(type) {
	case []any:
		return s, true
	case []string:
		return anySlice(s), true
	case []bool:
		return anySlice(s), true
	case []int:
		return anySlice(s), true
	case []uint:
		return anySlice(s), true
	default:
		return nil, false
	}
}

func anySlice[T any](s []T) []any {
	out := make([]any, len(s))
	for i, e := range s {
		out[i] = e
	}
	return out
}

// format renders a value of k the way it appears in help text.
func (k Kind) format(v any) string {
	if k.collection {
		elems, _ := v.([]any)
		parts := make([]string, len(elems))
		for i, e := range elems {
			parts[i] = fmt.Sprint(e)
		}
		return strings.Join(parts, ",")
	}
	return fmt.Sprint(v)
}
