package argbind

import (
	"errors"
	"fmt"
	"strings"
)

// ErrConfig is wrapped by every error New returns for an invalid field
// specification. Such errors describe a programming mistake, not bad
// user input.
var ErrConfig = errors.New("invalid argument specification")

// ErrorKind classifies an ArgumentError.
type ErrorKind int

const (
	UnrecognizedArgument ErrorKind = iota + 1
	DuplicateArgument
	DuplicateArgumentValue
	BadArgumentValue
	MissingRequiredArgument
	CannotOpenFile
	UnbalancedQuotes
	ResponseFileTooDeep
)

var errorKindNames = map[ErrorKind]string{
	UnrecognizedArgument:    "unrecognized argument",
	DuplicateArgument:       "duplicate argument",
	DuplicateArgumentValue:  "duplicate argument value",
	BadArgumentValue:        "bad argument value",
	MissingRequiredArgument: "missing required argument",
	CannotOpenFile:          "cannot open file",
	UnbalancedQuotes:        "unbalanced quotes",
	ResponseFileTooDeep:     "response file nested too deeply",
}

func (k ErrorKind) String() string {
	if s, ok := errorKindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// ArgumentError is one diagnostic produced while parsing. Its Error
// method returns the message that is also passed to the Reporter.
type ArgumentError struct {
	Kind ErrorKind

	Arg   string // field name or offending token
	Value string // offending value, if any
	File  string // response file, if any

	Positional bool  // MissingRequiredArgument for the positional field
	Err        error // underlying cause, if any
}

func (e *ArgumentError) Error() string {
	switch e.Kind {
	case UnrecognizedArgument:
		return fmt.Sprintf("Unrecognized command line argument '%s'", e.Arg)

	case DuplicateArgument:
		return fmt.Sprintf("Duplicate '%s' argument", e.Arg)

	case DuplicateArgumentValue:
		return fmt.Sprintf("Duplicate '%s' argument '%s'", e.Arg, e.Value)

	case BadArgumentValue:
		return fmt.Sprintf("'%s' is not a valid value for the '%s' command line option",
			e.Value, e.Arg)

	case MissingRequiredArgument:
		if e.Positional {
			return fmt.Sprintf("Missing required argument '<%s>'.", e.Arg)
		}
		return fmt.Sprintf("Missing required argument '/%s'.", e.Arg)

	case CannotOpenFile:
		return fmt.Sprintf("Error: Can't open command line argument file '%s' : '%v'",
			e.File, e.Err)

	case UnbalancedQuotes:
		return fmt.Sprintf("Error: Unbalanced '\"' in command line argument file '%s'",
			e.File)

	case ResponseFileTooDeep:
		return fmt.Sprintf("Error: Command line argument file '%s' is nested too deeply",
			e.File)

	default:
		return e.Kind.String()
	}
}

func (e *ArgumentError) Unwrap() error { return e.Err }

// Is reports whether target is an *ArgumentError of the same Kind, so
// that errors.Is(err, &ArgumentError{Kind: DuplicateArgument}) works.
func (e *ArgumentError) Is(target error) bool {
	t, ok := target.(*ArgumentError)
	return ok && t.Kind == e.Kind
}

// Errors is the list of diagnostics collected during one parse, in the
// order they were reported.
type Errors []error

func (e Errors) Error() string {
	var sb strings.Builder

	for i, err := range e {
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(err.Error())
	}

	return sb.String()
}

// Unwrap returns the diagnostics held by e.
func (e Errors) Unwrap() []error {
	return e
}

// Count returns the number of diagnostics of the given kind.
func (e Errors) Count(kind ErrorKind) int {
	n := 0
	for _, err := range e {
		var ae *ArgumentError
		if errors.As(err, &ae) && ae.Kind == kind {
			n++
		}
	}
	return n
}

func configError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConfig, fmt.Sprintf(format, args...))
}
