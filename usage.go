package argbind

import (
	"io"
	"strings"
)

const (
	// Help text starts at least two columns after the longest syntax.
	spaceBeforeHelp = 2

	minimumHelpColumn = 5
	minimumHelpChars  = 10

	responseFileSyntax = "@<file>"
	responseFileHelp   = "Read response file for more options"
)

type helpStrings struct {
	syntax, help string
}

// helpStrings lists every entry of the usage text: named fields in
// declaration order, the response file entry, then the positional field.
func (p *Parser) helpStrings() []helpStrings {
	out := make([]helpStrings, 0, len(p.fields)+2)

	for _, d := range p.fields {
		out = append(out, helpStrings{d.syntax(), d.helpText()})
	}

	out = append(out, helpStrings{responseFileSyntax, responseFileHelp})

	if p.positional != nil {
		out = append(out, helpStrings{p.positional.syntax(), p.positional.helpText()})
	}

	return out
}

// Usage renders the syntax and help of every field, wrapping help text
// so that no line is longer than columns.
func (p *Parser) Usage(columns int) string {
	entries := p.helpStrings()

	longest := 0
	for _, e := range entries {
		longest = max(longest, len(e.syntax))
	}

	columns = max(columns, minimumHelpColumn+minimumHelpChars)

	helpColumn := max(longest+spaceBeforeHelp, minimumHelpColumn)
	if columns < helpColumn+minimumHelpChars {
		helpColumn = minimumHelpColumn
	}
	width := columns - helpColumn

	var sb strings.Builder

	for _, e := range entries {
		sb.WriteString(e.syntax)

		column := len(e.syntax)
		if column >= helpColumn {
			sb.WriteByte('\n')
			column = 0
		}

		for _, line := range wrap(e.help, width) {
			sb.WriteString(strings.Repeat(" ", helpColumn-column))
			sb.WriteString(line)
			sb.WriteByte('\n')
			column = 0
		}

		if e.help == "" {
			sb.WriteByte('\n')
		}
	}

	return sb.String()
}

func (p *Parser) writeUsage(w io.Writer, columns int) error {
	_, err := io.WriteString(w, p.Usage(columns))
	return err
}

// wrap breaks text into lines of at most width bytes. Lines break at
// the last space that keeps the line within width; a word is split only
// if no such space exists. Leading spaces of the text and of every
// continuation line are dropped.
func wrap(text string, width int) []string {
	lines := []string{}

	i := 0
	for i < len(text) && text[i] == ' ' {
		i++
	}

	for i < len(text) {
		end := i + width
		var line string
		if end >= len(text) {
			end = len(text)
			line = text[i:end]
		} else if sp := strings.LastIndexByte(text[i+1:end+1], ' '); sp >= 0 {
			end = i + 1 + sp
			line = strings.TrimRight(text[i:end], " ")
		} else {
			line = text[i:end]
		}

		lines = append(lines, line)
		i = end

		for i < len(text) && text[i] == ' ' {
			i++
		}
	}

	return lines
}
