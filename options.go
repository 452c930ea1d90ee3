package argbind

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
)

// DefaultMaxDepth is the default limit on nested response files.
const DefaultMaxDepth = 64

// Reporter receives one human-readable message per diagnostic.
type Reporter func(message string)

// Discard is a Reporter that drops every message.
func Discard(string) {}

// WriterReporter returns a Reporter that writes each message, followed
// by a newline, to w.
func WriterReporter(w io.Writer) Reporter {
	return func(message string) {
		fmt.Fprintln(w, message)
	}
}

type config struct {
	reporter Reporter
	logger   *zap.Logger
	readFile func(string) ([]byte, error)
	maxDepth int
	usage    io.Writer
}

func makeConfig(opts ...Option) config {
	cfg := config{
		reporter: WriterReporter(os.Stderr),
		logger:   zap.NewNop(),
		readFile: os.ReadFile,
		maxDepth: DefaultMaxDepth,
		usage:    os.Stderr,
	}

	for _, opt := range opts {
		cfg = opt(cfg)
	}

	return cfg
}

// Option configures a Parser.
type Option func(config) config

// WithReporter sets the sink for diagnostic messages. The default
// writes to standard error. A nil Reporter is the same as Discard.
func WithReporter(r Reporter) Option {
	return func(cfg config) config {
		if r == nil {
			r = Discard
		}
		cfg.reporter = r
		return cfg
	}
}

// WithLogger sets a logger for debug records about response-file
// expansion and diagnostics. Nothing is logged by default.
func WithLogger(l *zap.Logger) Option {
	return func(cfg config) config {
		if l == nil {
			l = zap.NewNop()
		}
		cfg.logger = l
		return cfg
	}
}

// WithReadFile replaces the function used to read response files.
func WithReadFile(f func(name string) ([]byte, error)) Option {
	return func(cfg config) config {
		if f != nil {
			cfg.readFile = f
		}
		return cfg
	}
}

// WithMaxDepth limits how deeply response files may include other
// response files. Values below 1 select DefaultMaxDepth.
func WithMaxDepth(n int) Option {
	return func(cfg config) config {
		if n < 1 {
			n = DefaultMaxDepth
		}
		cfg.maxDepth = n
		return cfg
	}
}

// WithUsageWriter sets where ParseWithUsage writes usage text.
func WithUsageWriter(w io.Writer) Option {
	return func(cfg config) config {
		if w == nil {
			w = io.Discard
		}
		cfg.usage = w
		return cfg
	}
}
