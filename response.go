package argbind

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	responseFilePrefix = '@'
	commentPrefix      = '#'
)

// lexer is a cursor over the contents of a response file.
type lexer struct {
	text string
	pos  int
}

// atEnd reports whether the cursor has consumed all input.
func (l *lexer) atEnd() bool { return l.pos >= len(l.text) }

// peek returns the rune under the cursor and its width; ok is false at
// the end of input.
func (l *lexer) peek() (r rune, width int, ok bool) {
	if l.atEnd() {
		return 0, 0, false
	}
	r, width = utf8.DecodeRuneInString(l.text[l.pos:])
	return r, width, true
}

func (l *lexer) skipSpace() {
	for {
		r, w, ok := l.peek()
		if !ok || !unicode.IsSpace(r) {
			return
		}
		l.pos += w
	}
}

// skipLine moves past the next line feed, or to the end of input.
func (l *lexer) skipLine() {
	if i := strings.IndexByte(l.text[l.pos:], '\n'); i >= 0 {
		l.pos += i + 1
	} else {
		l.pos = len(l.text)
	}
}

// backslashes counts the run of backslashes starting at the cursor.
func (l *lexer) backslashes() int {
	n := 0
	for l.pos+n < len(l.text) && l.text[l.pos+n] == '\\' {
		n++
	}
	return n
}

// token accumulates one token. It returns false if the input ended
// inside a quoted span.
func (l *lexer) token() (string, bool) {
	var sb strings.Builder
	inQuotes := false

	for {
		r, w, ok := l.peek()
		if !ok {
			return sb.String(), !inQuotes
		}

		switch {
		case r == '"':
			inQuotes = !inQuotes
			l.pos += w

		case r == '\\':
			n := l.backslashes()
			l.pos += n

			if next, _, ok := l.peek(); ok && next == '"' {
				sb.WriteString(strings.Repeat(`\`, n/2))
				if n%2 == 1 {
					sb.WriteByte('"')
				} else {
					inQuotes = !inQuotes
				}
				l.pos++
			} else {
				sb.WriteString(strings.Repeat(`\`, n))
			}

		case unicode.IsSpace(r) && !inQuotes:
			return sb.String(), true

		default:
			sb.WriteString(l.text[l.pos : l.pos+w])
			l.pos += w
		}
	}
}

// Lex splits the contents of a response file into tokens. Tokens are
// separated by whitespace; '#' starts a comment that runs to the end of
// the line; double quotes group whitespace into one token; a run of
// backslashes followed by a quote is halved, and an odd run yields a
// literal quote. The name is only used in the error returned when the
// contents end inside a quoted span.
func Lex(name, contents string) ([]string, error) {
	l := &lexer{text: contents}
	tokens := []string{}

	for {
		l.skipSpace()

		r, _, ok := l.peek()
		if !ok {
			return tokens, nil
		}

		if r == commentPrefix {
			l.skipLine()
			continue
		}

		tok, balanced := l.token()
		if !balanced {
			return tokens, &ArgumentError{Kind: UnbalancedQuotes, File: name}
		}
		tokens = append(tokens, tok)
	}
}
