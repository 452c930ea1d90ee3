// Command argbind inspects response files and field specifications.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/janert/argbind"
	"github.com/janert/argbind/internal/specfile"
)

var logLevels = []string{
	zap.DebugLevel.String(),
	zap.InfoLevel.String(),
	zap.WarnLevel.String(),
	zap.ErrorLevel.String(),
}

// cli represents all command-line flags and commands.
type cli struct {
	LogLevel string `default:"warn" enum:"${enum_log_level}" help:"${help_log_level}"`

	Lex   lexCmd   `cmd:"" help:"Print the tokens of response files."`
	Usage usageCmd `cmd:"" help:"Print usage text for a field specification."`
	Parse parseCmd `cmd:"" help:"Bind arguments onto a field specification and print the values."`
}

type lexCmd struct {
	Format string   `default:"lines" enum:"lines,yaml,json" help:"Output format."`
	Files  []string `arg:"" help:"Response files."`
}

func (c *lexCmd) Run(w io.Writer, l *zap.Logger) error {
	tokens := map[string][]string{}

	for _, name := range c.Files {
		b, err := os.ReadFile(name)
		if err != nil {
			return err
		}

		t, err := argbind.Lex(name, string(b))
		if err != nil {
			return err
		}
		l.Debug("lexed response file", zap.String("file", name), zap.Int("tokens", len(t)))

		if c.Format == "lines" {
			for _, tok := range t {
				fmt.Fprintln(w, tok)
			}
			continue
		}
		tokens[name] = t
	}

	if c.Format == "lines" {
		return nil
	}
	return encode(w, c.Format, tokens)
}

type usageCmd struct {
	Spec    string `required:"" type:"existingfile" help:"YAML field specification."`
	Columns int    `default:"0" help:"Wrap width; 0 uses the terminal width."`
}

func (c *usageCmd) Run(w io.Writer, l *zap.Logger) error {
	p, _, err := load(c.Spec, l, argbind.Discard)
	if err != nil {
		return err
	}

	columns := c.Columns
	if columns <= 0 {
		columns = argbind.ConsoleWidth()
	}

	_, err = io.WriteString(w, p.Usage(columns))
	return err
}

type parseCmd struct {
	Spec   string   `required:"" type:"existingfile" help:"YAML field specification."`
	Format string   `default:"yaml" enum:"yaml,json" help:"Output format."`
	Rest   bool     `help:"Collect unrecognized arguments instead of reporting them."`
	Args   []string `arg:"" optional:"" passthrough:"" help:"Arguments to bind; separate them with '--'."`
}

func (c *parseCmd) Run(w io.Writer, l *zap.Logger) error {
	p, values, err := load(c.Spec, l, argbind.WriterReporter(os.Stderr))
	if err != nil {
		return err
	}

	out := map[string]any{"values": values}

	var perr error
	if c.Rest {
		var rest []string
		rest, perr = p.ParseUnrecognized(c.Args)
		out["unrecognized"] = rest
	} else {
		perr = p.Parse(c.Args)
	}

	if err := encode(w, c.Format, out); err != nil {
		return err
	}

	var errs argbind.Errors
	if errors.As(perr, &errs) {
		return fmt.Errorf("%d argument error(s)", len(errs))
	}
	return nil
}

func load(name string, l *zap.Logger, r argbind.Reporter) (*argbind.Parser, specfile.Values, error) {
	t, err := specfile.Load(name)
	if err != nil {
		return nil, nil, err
	}

	values := specfile.Values{}
	fields, err := t.Bind(values)
	if err != nil {
		return nil, nil, err
	}

	p, err := argbind.New(fields, argbind.WithReporter(r), argbind.WithLogger(l))
	if err != nil {
		return nil, nil, err
	}

	return p, values, nil
}

func encode(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	default:
		return yaml.NewEncoder(w).Encode(v)
	}
}

// setupLogger returns a console logger writing to stderr at the given level.
func setupLogger(level string) *zap.Logger {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zap.WarnLevel
	}

	config := zap.Config{
		Level:             zap.NewAtomicLevelAt(lvl),
		DisableCaller:     true,
		DisableStacktrace: true,
		Encoding:          "console",
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "T",
			LevelKey:       "L",
			NameKey:        "N",
			MessageKey:     "M",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.CapitalLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
		},
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}

	logger, err := config.Build()
	if err != nil {
		log.Fatal(err)
	}

	return logger
}

// run parses args and executes the selected command, writing its output
// to w.
func run(args []string, w io.Writer, exit func(int)) error {
	var c cli

	parser, err := kong.New(&c,
		kong.Name("argbind"),
		kong.Description("Inspect response files and argument specifications."),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.Writers(w, os.Stderr),
		kong.Vars{
			"enum_log_level": strings.Join(logLevels, ","),
			"help_log_level": fmt.Sprintf("Log level: '%s'.", strings.Join(logLevels, "', '")),
		},
	)
	if err != nil {
		return err
	}

	ctx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	logger := setupLogger(c.LogLevel)
	defer logger.Sync() //nolint:errcheck // stderr may not support sync

	ctx.BindTo(w, (*io.Writer)(nil))
	ctx.Bind(logger)

	return ctx.Run()
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Exit); err != nil {
		fmt.Fprintln(os.Stderr, "argbind:", err)
		os.Exit(1)
	}
}
