// Package logger holds the process-wide zerolog logger. Each binary calls Init
// once with its service name; code that has no logger injected uses Get.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Options configures the process logger.
type Options struct {
	Level   string    // trace, debug, info, warn, error; anything else is info
	Pretty  bool      // console output instead of JSON
	Output  io.Writer // os.Stdout when nil
	Service string    // "service" field on every line
}

var (
	mu     sync.Mutex
	global *zerolog.Logger
)

// Init builds the process logger on the first call and returns it. Later
// calls return the existing logger unchanged.
func Init(opts Options) zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if global == nil {
		l := build(opts)
		global = &l
	}
	return *global
}

// Get returns the logger built by Init.
func Get() zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if global == nil {
		panic("logger: Get called before Init")
	}
	return *global
}

// Reset forgets the process logger. Tests only.
func Reset() {
	mu.Lock()
	global = nil
	mu.Unlock()
}

func build(opts Options) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	var w io.Writer = os.Stdout
	if opts.Output != nil {
		w = opts.Output
	}
	if opts.Pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	level := parseLevel(opts.Level)
	zerolog.SetGlobalLevel(level)

	c := zerolog.New(w).Level(level).With().Timestamp().Caller()
	if opts.Service != "" {
		c = c.Str("service", opts.Service)
	}
	return c.Logger()
}

func parseLevel(s string) zerolog.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		s = "warn"
	}
	switch level, err := zerolog.ParseLevel(s); {
	case err != nil, s == "", level > zerolog.ErrorLevel:
		return zerolog.InfoLevel
	default:
		return level
	}
}
