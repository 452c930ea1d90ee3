package argbind

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// DefaultColumns is the usage width used when the terminal width is
// unknown.
const DefaultColumns = 80

// ConsoleWidth returns the width of the terminal attached to standard
// error, or DefaultColumns.
func ConsoleWidth() int {
	w, _, err := term.GetSize(int(os.Stderr.Fd()))
	if err != nil || w <= 0 {
		return DefaultColumns
	}
	return w
}

// FromSlice takes a pointer to a struct and populates the struct by
// processing a slice of string tokens. See FromStruct for the struct
// tags. Diagnostics go to standard error unless WithReporter says
// otherwise; the returned error holds them all.
func FromSlice(tokens []string, data any, opts ...Option) error {
	fields, err := FromStruct(data)
	if err != nil {
		return err
	}

	p, err := New(fields, opts...)
	if err != nil {
		return err
	}

	return p.Parse(tokens)
}

// FromCommandLine takes a pointer to a struct and populates the struct
// with the command-line arguments. If help is requested or an argument
// is bad, usage is written to standard error and false is returned.
func FromCommandLine(data any, opts ...Option) bool {
	fields, err := FromStruct(data)
	if err != nil {
		makeConfig(opts...).reporter(err.Error())
		return false
	}

	return ParseWithUsage(os.Args[1:], fields, opts...)
}

// PrintUsage takes a pointer to a struct and writes the usage of its
// fields to standard error, wrapped to the terminal width.
func PrintUsage(data any) error {
	return WriteUsage(os.Stderr, data, ConsoleWidth())
}

// WriteUsage takes a pointer to a struct and writes the usage of its
// fields to w, wrapped to columns.
func WriteUsage(w io.Writer, data any, columns int) error {
	fields, err := FromStruct(data)
	if err != nil {
		return err
	}

	p, err := New(fields, WithReporter(Discard))
	if err != nil {
		return err
	}

	return p.writeUsage(w, columns)
}

// WriteValues takes a pointer to a populated struct and writes the
// names and types of its fields, together with their current values,
// to w.
func WriteValues(w io.Writer, data any) error {
	return writeValues(w, data, false)
}

// WriteValuesWithTags is like WriteValues, but also writes the struct
// tags of each field.
func WriteValuesWithTags(w io.Writer, data any) error {
	return writeValues(w, data, true)
}

func writeValues(w io.Writer, data any, withTags bool) error {
	v, err := unwrap(data)
	if err != nil {
		return err
	}

	typeInfo := v.Type()

	// Find max length of field names, types, and values
	mxName, mxType, mxVal := 0, 0, 0
	for i := 0; i < v.NumField(); i++ {
		field := typeInfo.Field(i)
		mxName = max(mxName, len(field.Name))
		mxType = max(mxType, len(field.Type.String()))
		mxVal = max(mxVal, len(fmt.Sprintf("%v", v.Field(i))))
	}

	for i := 0; i < v.NumField(); i++ {
		field := typeInfo.Field(i)
		if !field.IsExported() {
			continue
		}

		line := fmt.Sprintf("%-*s   %-*s   %v",
			mxName, field.Name, mxType, field.Type.String(), v.Field(i))
		if withTags {
			line = fmt.Sprintf("%-*s   %-*s   %-*v   %s",
				mxName, field.Name, mxType, field.Type.String(), mxVal, v.Field(i), field.Tag)
		}

		_, err := fmt.Fprintln(w, strings.TrimRight(line, " "))
		if err != nil {
			return err
		}
	}

	return nil
}
