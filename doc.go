/*
Package argbind binds command-line tokens onto the fields of a
destination. Each field is described by a Field: its names, the kind of
value it takes, whether it is required or may be repeated, and a default.
The package also renders usage text and expands "@file" response files.


# Kinds

A field takes values of one of five kinds, or a collection of one of them:

  String   plain text
  Bool     a switch, set with /name and cleared with /noname
  Int      a base-10 signed integer
  Uint     a base-10 unsigned integer
  Enum     one of a fixed set of member names, matched case-insensitively

The token "?" given to an enum field selects the member named "help".


# Fields

Fields can be built by hand, with Var and SliceVar providing setters:

    var count int
    var tags []string

    p, err := argbind.New([]argbind.Field{
        {Name: "count", Kind: argbind.Int(), Flags: argbind.Required, Set: argbind.Var(&count)},
        {Name: "tags", Kind: argbind.String().Collection(), Set: argbind.SliceVar(&tags)},
    })

or from the exported fields of a struct with FromStruct:

    type Config struct {
        Count   int      `arg-short:"c" arg-flags:"required"`
        Verbose bool     `arg-help:"Print more."`
        Tags    []string `arg-default:"a,b"`
        Files   []string `arg-positional:""`
    }

Scalar fields may be given at most once, unless Multiple is set, in which
case the last value wins. Collection fields may be given any number of
times and reject duplicate values, unless AtMostOnce is set.


# Names

Every field has a long name (case-insensitive) and an optional
compatibility name. A field also gets a short name: either the one set
explicitly, or the first letter of its long name. Long, explicit short
and compatibility names must all be distinct; an implicit short name that
collides with another name is silently dropped. Boolean names must not
start with "no", since "/noname" sets a boolean to false.

At most one field may be positional: it receives every token that does
not start with "-", "/" or "@".


# Tokens

  -name, /name         boolean true, or a value in the next token
  -noname              boolean false
  -name:value          inline value; "=" may be used instead of ":"
  @file                read more tokens from file
  anything else        a value for the positional field

Parsing never stops at the first problem. Every token and every field is
processed, each diagnostic is passed to the Reporter, and Parse returns
them all in an Errors value.


# Response Files

A response file holds whitespace-separated tokens. "#" at the start of a
token begins a comment that runs to the end of the line. Double quotes
group text containing whitespace into a single token. Backslashes are
literal, except before a double quote: 2n backslashes followed by a quote
produce n backslashes and toggle quoting, 2n+1 backslashes followed by a
quote produce n backslashes and a literal quote. Response files may refer
to other response files, up to WithMaxDepth levels deep.
*/
package argbind
