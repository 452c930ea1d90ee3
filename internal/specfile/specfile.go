// Package specfile reads argument specifications from YAML and binds
// them onto a map, for tools that do not know their fields at compile
// time.
package specfile

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/janert/argbind"
)

// Table is a decoded specification file.
type Table struct {
	Fields []Entry `yaml:"fields"`
}

// Entry describes one field.
type Entry struct {
	Name       string   `yaml:"name"`
	Short      string   `yaml:"short,omitempty"`
	Compat     string   `yaml:"compat,omitempty"`
	Help       string   `yaml:"help,omitempty"`
	Kind       string   `yaml:"kind"`
	Collection bool     `yaml:"collection,omitempty"`
	Members    []string `yaml:"members,omitempty"`
	Default    any      `yaml:"default,omitempty"`
	Flags      []string `yaml:"flags,omitempty"`
	Positional bool     `yaml:"positional,omitempty"`
}

// Values holds bound values keyed by long field name.
type Values map[string]any

var flagNames = map[string]argbind.Flags{
	"required": argbind.Required,
	"multiple": argbind.Multiple,
	"unique":   argbind.Unique,
	"once":     argbind.AtMostOnce,
}

// Decode reads a Table from r.
func Decode(r io.Reader) (*Table, error) {
	var t Table

	dec := yaml.NewDecoder(r, yaml.DisallowUnknownField())
	if err := dec.Decode(&t); err != nil {
		return nil, fmt.Errorf("specfile: %w", err)
	}

	return &t, nil
}

// Load reads a Table from the named file.
func Load(name string) (*Table, error) {
	b, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}

	return Decode(bytes.NewReader(b))
}

// Bind returns field specifications whose setters store into values.
func (t *Table) Bind(values Values) ([]argbind.Field, error) {
	fields := make([]argbind.Field, 0, len(t.Fields))

	for _, e := range t.Fields {
		f, err := e.field(values)
		if err != nil {
			return nil, fmt.Errorf("specfile: field %q: %w", e.Name, err)
		}
		fields = append(fields, f)
	}

	return fields, nil
}

func (e Entry) kind() (argbind.Kind, error) {
	var k argbind.Kind

	switch strings.ToLower(e.Kind) {
	case "", "string":
		k = argbind.String()
	case "bool":
		k = argbind.Bool()
	case "int":
		k = argbind.Int()
	case "uint":
		k = argbind.Uint()
	case "enum":
		k = argbind.Enum(e.Members...)
	default:
		return argbind.Kind{}, fmt.Errorf("unknown kind %q", e.Kind)
	}

	if e.Collection {
		k = k.Collection()
	}
	return k, nil
}

func (e Entry) field(values Values) (argbind.Field, error) {
	k, err := e.kind()
	if err != nil {
		return argbind.Field{}, err
	}

	f := argbind.Field{
		Name:       e.Name,
		Short:      e.Short,
		Compat:     e.Compat,
		Help:       e.Help,
		Kind:       k,
		Positional: e.Positional,
	}

	for _, name := range e.Flags {
		flag, ok := flagNames[strings.ToLower(name)]
		if !ok {
			return argbind.Field{}, fmt.Errorf("unknown flag %q", name)
		}
		f.Flags |= flag
	}

	if e.Default != nil {
		if f.Default, err = defaultValue(k, e.Default); err != nil {
			return argbind.Field{}, err
		}
	}

	name := e.Name
	f.Set = func(v any) {
		values[name] = v
	}

	return f, nil
}

// defaultValue coerces a decoded YAML default through the field's kind,
// so that numbers decoded as int64 or uint64 end up as int or uint.
func defaultValue(k argbind.Kind, v any) (any, error) {
	if !k.IsCollection() {
		return k.Parse(fmt.Sprint(v))
	}

	list, ok := v.([]any)
	if !ok {
		list = []any{v}
	}

	out := make([]any, 0, len(list))
	for _, e := range list {
		c, err := k.Element().Parse(fmt.Sprint(e))
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
