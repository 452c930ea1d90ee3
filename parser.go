package argbind

import (
	"errors"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

const (
	dashPrefix  = '-'
	slashPrefix = '/'
)

// Parser binds tokens onto the fields it was built from. A Parser may be
// reused for successive parses, but not for concurrent ones; Usage and
// Fields are safe to call concurrently.
type Parser struct {
	config

	fields     []*descriptor // named fields, declaration order
	positional *descriptor   // nil if none
	names      map[string]*descriptor
}

// New validates the field specifications and builds the name table.
// It returns an error wrapping ErrConfig if the specification is invalid.
func New(fields []Field, opts ...Option) (*Parser, error) {
	p := &Parser{
		config: makeConfig(opts...),
		names:  map[string]*descriptor{},
	}

	for _, f := range fields {
		d, err := newDescriptor(f)
		if err != nil {
			return nil, err
		}

		if d.positional {
			if p.positional != nil {
				return nil, configError("fields %s and %s are both positional",
					p.positional.long, d.long)
			}
			p.positional = d
			continue
		}
		p.fields = append(p.fields, d)
	}

	if err := p.buildNames(); err != nil {
		return nil, err
	}

	return p, nil
}

// buildNames fills the name table in three passes: long names, then
// explicit short and compatibility names, then implicit short names.
// Collisions in the first two passes are errors; an implicit short name
// that collides is dropped.
func (p *Parser) buildNames() error {
	for _, d := range p.fields {
		if err := p.claim(d.long, d); err != nil {
			return err
		}
	}

	for _, d := range p.fields {
		if d.explicitShort {
			if err := p.claim(d.short, d); err != nil {
				return err
			}
		}
		if d.compat != "" {
			if err := p.claim(d.compat, d); err != nil {
				return err
			}
		}
	}

	for _, d := range p.fields {
		if d.explicitShort || d.short == "" {
			continue
		}
		if p.taken(d.short, d) {
			d.short = ""
			continue
		}
		p.add(d.short, d)
	}

	return nil
}

// variants returns the table keys for name: the name itself and, for
// boolean fields, its negated spelling.
func variants(name string, d *descriptor) []string {
	name = strings.ToLower(name)
	if d.kind.IsBool() {
		return []string{name, negationPrefix + name}
	}
	return []string{name}
}

func (p *Parser) taken(name string, d *descriptor) bool {
	for _, key := range variants(name, d) {
		if _, ok := p.names[key]; ok {
			return true
		}
	}
	return false
}

func (p *Parser) add(name string, d *descriptor) {
	for _, key := range variants(name, d) {
		p.names[key] = d
	}
}

func (p *Parser) claim(name string, d *descriptor) error {
	for _, key := range variants(name, d) {
		if other, ok := p.names[key]; ok {
			return configError("name %q of field %s is already used by field %s",
				key, d.long, other.long)
		}
	}
	p.add(name, d)
	return nil
}

// parseState carries one parse's diagnostics and unrecognized tokens.
type parseState struct {
	*Parser

	errs  Errors
	sink  *[]string
	depth int
}

func (s *parseState) report(err *ArgumentError) {
	s.errs = append(s.errs, err)
	s.reporter(err.Error())
	s.logger.Debug("argument error",
		zap.Stringer("kind", err.Kind), zap.String("message", err.Error()))
}

// unrecognized handles a token no field claims. It returns true if the
// token is an error.
func (s *parseState) unrecognized(token string) bool {
	if s.sink != nil {
		*s.sink = append(*s.sink, token)
		return false
	}
	s.report(&ArgumentError{Kind: UnrecognizedArgument, Arg: token})
	return true
}

// chopOption splits "-name:value" into the option name and the inline
// value. The value is empty when absent.
func chopOption(token string) (string, string) {
	rest := token[1:]
	if i := strings.IndexAny(rest, ":="); i >= 0 {
		return rest[:i], rest[i+1:]
	}
	return rest, ""
}

// parseTokens dispatches every token in turn and reports whether any of
// them failed. Scanning never stops early.
func (s *parseState) parseTokens(tokens []string) bool {
	hadError := false

	for i := 0; i < len(tokens); i++ {
		token := tokens[i]
		if token == "" {
			continue
		}

		switch token[0] {
		case dashPrefix, slashPrefix:
			name, value := chopOption(token)

			d, ok := s.names[strings.ToLower(name)]
			if !ok {
				hadError = s.unrecognized(token) || hadError
				continue
			}

			switch {
			case d.kind.IsBool():
				if value != "" {
					s.report(&ArgumentError{Kind: BadArgumentValue, Arg: d.long, Value: value})
					hadError = true
					continue
				}
				value = strconv.FormatBool(!s.negated(name, d))

			case value == "" && i+1 < len(tokens):
				i++
				value = tokens[i]
			}

			hadError = !d.setValue(value, s.report) || hadError

		case responseFilePrefix:
			hadError = s.parseResponseFile(token[1:]) || hadError

		default:
			if s.positional == nil {
				hadError = s.unrecognized(token) || hadError
				continue
			}
			hadError = !s.positional.setValue(token, s.report) || hadError
		}
	}

	return hadError
}

// negated reports whether name is the "no"-prefixed spelling of one of
// the boolean field's names.
func (s *parseState) negated(name string, d *descriptor) bool {
	for _, n := range []string{d.long, d.short, d.compat} {
		if n != "" && strings.EqualFold(name, n) {
			return false
		}
	}
	return true
}

func (s *parseState) parseResponseFile(name string) bool {
	if s.depth >= s.maxDepth {
		s.report(&ArgumentError{Kind: ResponseFileTooDeep, File: name})
		return true
	}

	b, err := s.readFile(name)
	if err != nil {
		s.report(&ArgumentError{Kind: CannotOpenFile, File: name, Err: err})
		return true
	}

	tokens, err := Lex(name, string(b))
	if err != nil {
		var ae *ArgumentError
		if !errors.As(err, &ae) {
			ae = &ArgumentError{Kind: UnbalancedQuotes, File: name, Err: err}
		}
		s.report(ae)
		return true
	}

	s.logger.Debug("expanding response file",
		zap.String("file", name), zap.Int("tokens", len(tokens)), zap.Int("depth", s.depth+1))

	s.depth++
	defer func() { s.depth-- }()

	return s.parseTokens(tokens)
}

// run performs one complete parse: token dispatch, then finishing every
// field.
func (p *Parser) run(tokens []string, sink *[]string) error {
	for _, d := range p.fields {
		d.reset()
	}
	if p.positional != nil {
		p.positional.reset()
	}

	s := &parseState{Parser: p, sink: sink}

	hadError := s.parseTokens(tokens)

	for _, d := range p.fields {
		hadError = d.finish(s.report) || hadError
	}
	if p.positional != nil {
		hadError = p.positional.finish(s.report) || hadError
	}

	p.logger.Debug("parse finished",
		zap.Int("tokens", len(tokens)), zap.Int("errors", len(s.errs)))

	if hadError {
		return s.errs
	}
	return nil
}

// Parse binds tokens onto the fields. Every token and every field is
// processed even after a failure, so that all diagnostics are reported
// in one pass. It returns nil on success, or Errors holding every
// diagnostic that was also passed to the Reporter.
func (p *Parser) Parse(tokens []string) error {
	return p.run(tokens, nil)
}

// ParseUnrecognized is like Parse, but tokens that match no field are
// returned instead of being reported.
func (p *Parser) ParseUnrecognized(tokens []string) ([]string, error) {
	rest := []string{}
	err := p.run(tokens, &rest)
	return rest, err
}

// FieldInfo describes a field as the Parser resolved it.
type FieldInfo struct {
	Name       string
	Short      string // empty if none, or if the implicit short name was dropped
	Compat     string
	Kind       Kind
	Positional bool
	Syntax     string
	Help       string
}

// Fields returns the resolved fields in declaration order, with the
// positional field last.
func (p *Parser) Fields() []FieldInfo {
	out := make([]FieldInfo, 0, len(p.fields)+1)
	for _, d := range p.all() {
		out = append(out, FieldInfo{
			Name:       d.long,
			Short:      d.short,
			Compat:     d.compat,
			Kind:       d.kind,
			Positional: d.positional,
			Syntax:     d.syntax(),
			Help:       d.helpText(),
		})
	}
	return out
}

func (p *Parser) all() []*descriptor {
	all := append([]*descriptor(nil), p.fields...)
	if p.positional != nil {
		all = append(all, p.positional)
	}
	return all
}

// ParseHelp reports whether tokens ask for help with "/help", "-help",
// "/?" or "-?". Other tokens are ignored and nothing is reported.
func ParseHelp(tokens []string, opts ...Option) bool {
	help := false

	opts = append(opts, WithReporter(Discard))
	p, err := New([]Field{{
		Name:  "help",
		Short: "?",
		Kind:  Bool(),
		Set:   func(v any) { help = v.(bool) },
	}}, opts...)
	if err != nil {
		return false
	}

	_, _ = p.ParseUnrecognized(tokens)

	return help
}

// ParseWithUsage parses tokens onto fields. If help is requested, or if
// parsing fails, usage text for the terminal width is written to the
// usage writer and false is returned.
func ParseWithUsage(tokens []string, fields []Field, opts ...Option) bool {
	p, err := New(fields, opts...)
	if err != nil {
		makeConfig(opts...).reporter(err.Error())
		return false
	}

	if ParseHelp(tokens, WithReadFile(p.readFile), WithMaxDepth(p.maxDepth)) {
		p.writeUsage(p.usage, ConsoleWidth())
		return false
	}

	if err := p.Parse(tokens); err != nil {
		p.writeUsage(p.usage, ConsoleWidth())
		return false
	}

	return true
}
