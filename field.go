package argbind

import (
	"strings"
	"unicode/utf8"
)

// Flags control how often a field may be given and whether it must be.
type Flags uint

const (
	// Required fields must be set at least once.
	Required Flags = 1 << iota

	// Multiple fields may be given more than once. A scalar field that
	// allows multiple occurrences keeps the last value.
	Multiple

	// Unique collection fields reject a value they already hold.
	Unique

	// AtMostOnce turns off the Multiple|Unique default of collections.
	AtMostOnce
)

// negationPrefix turns a boolean name into its "false" spelling.
const negationPrefix = "no"

// Field specifies one bindable destination field.
//
// Set receives the coerced value of a scalar field, or a []any holding
// the collected values of a collection field, in the order given. Set is
// called at most once per field per parse for collections, and once per
// occurrence for scalars.
type Field struct {
	Name       string // long name
	Short      string // explicit short name; empty means the first letter of Name
	Compat     string // alternative long name
	Help       string
	Kind       Kind
	Default    any
	Flags      Flags
	Positional bool
	Set        func(value any)
}

// descriptor is the binding state of one Field during a parse.
type descriptor struct {
	long, short, compat string
	explicitShort       bool
	help                string

	kind       Kind
	def        any
	hasDefault bool
	flags      Flags
	positional bool
	set        func(any)

	// Per-parse state
	seen      bool
	collected []any
}

func newDescriptor(f Field) (*descriptor, error) {
	if f.Name == "" {
		return nil, configError("field has no name")
	}
	if err := f.Kind.valid(); err != nil {
		return nil, configError("field %s: %v", f.Name, err)
	}
	if f.Set == nil {
		return nil, configError("field %s has no setter", f.Name)
	}

	d := &descriptor{
		long:       f.Name,
		short:      f.Short,
		compat:     f.Compat,
		help:       f.Help,
		kind:       f.Kind,
		flags:      f.Flags,
		positional: f.Positional,
		set:        f.Set,
	}

	if d.short != "" {
		d.explicitShort = true
	} else if !d.positional {
		_, size := utf8.DecodeRuneInString(d.long)
		d.short = d.long[:size]
	}

	if d.kind.IsCollection() && d.flags&(Multiple|AtMostOnce) == 0 {
		d.flags |= Multiple | Unique
	}

	switch {
	case d.flags&Unique != 0 && !d.kind.IsCollection():
		return nil, configError("field %s: unique requires a collection", f.Name)

	case d.flags&Required != 0 && f.Default != nil:
		return nil, configError("field %s: required field cannot have a default",
			f.Name)

	case d.positional && d.kind.IsBool():
		return nil, configError("field %s: positional field cannot be boolean",
			f.Name)

	case d.positional && d.explicitShort:
		return nil, configError("field %s: positional field cannot have a short name",
			f.Name)
	}

	if d.kind.IsBool() {
		for _, name := range []string{d.long, d.short, d.compat} {
			if hasNegationPrefix(name) {
				return nil, configError("field %s: boolean name %q starts with %q",
					f.Name, name, negationPrefix)
			}
		}
	}

	if f.Default != nil {
		def, err := d.kind.Check(f.Default)
		if err != nil {
			return nil, configError("field %s: default: %v", f.Name, err)
		}
		d.def, d.hasDefault = def, true
	}

	return d, nil
}

func hasNegationPrefix(name string) bool {
	return len(name) >= len(negationPrefix) &&
		strings.EqualFold(name[:len(negationPrefix)], negationPrefix)
}

func (d *descriptor) reset() {
	d.seen = false
	d.collected = nil
}

func (d *descriptor) isCollection() bool { return d.kind.IsCollection() }

// setValue records one occurrence of the field with the given text.
// Failures are passed to report and leave the destination untouched.
func (d *descriptor) setValue(text string, report func(*ArgumentError)) bool {
	if d.seen && d.flags&Multiple == 0 {
		report(&ArgumentError{Kind: DuplicateArgument, Arg: d.long})
		return false
	}
	d.seen = true

	v, err := d.kind.Element().Parse(text)
	if err != nil {
		report(&ArgumentError{Kind: BadArgumentValue, Arg: d.long, Value: text, Err: err})
		return false
	}

	if !d.isCollection() {
		d.set(v)
		return true
	}

	if d.flags&Unique != 0 {
		for _, c := range d.collected {
			if c == v {
				report(&ArgumentError{Kind: DuplicateArgumentValue, Arg: d.long, Value: text})
				return false
			}
		}
	}
	d.collected = append(d.collected, v)

	return true
}

// finish applies the default, hands collected values to the setter and
// checks that a required field was seen. It returns true on error.
func (d *descriptor) finish(report func(*ArgumentError)) bool {
	if !d.seen && d.hasDefault {
		if d.isCollection() {
			d.collected = append([]any(nil), d.def.([]any)...)
		} else {
			d.set(d.def)
		}
	}

	if d.isCollection() {
		d.set(append(make([]any, 0, len(d.collected)), d.collected...))
	}

	if d.flags&Required != 0 && !d.seen {
		report(&ArgumentError{
			Kind:       MissingRequiredArgument,
			Arg:        d.long,
			Positional: d.positional,
		})
		return true
	}

	return false
}

// syntax renders how the field is written on the command line.
func (d *descriptor) syntax() string {
	if d.positional {
		return "<" + d.long + ">"
	}

	elem := d.kind.Element()
	switch {
	case elem.IsBool():
		return "/[" + negationPrefix + "]" + d.long
	case elem.IsEnum():
		return "/" + d.long + ":{" + strings.Join(elem.members, "|") + "}"
	default:
		return "/" + d.long + ":<" + elem.String() + ">"
	}
}

// helpText renders the configured help, the default and the short form.
func (d *descriptor) helpText() string {
	parts := []string{}

	if d.help != "" {
		parts = append(parts, d.help)
	}
	if d.hasDefault {
		parts = append(parts, "Default value: '"+d.kind.format(d.def)+"'")
	}
	if d.short != "" {
		parts = append(parts, "(short form /"+d.short+")")
	}

	return strings.Join(parts, " ")
}
