// Package sysutil holds small process-level helpers shared by the CLI
// commands: global logger setup and env string parsing.
package sysutil

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ParseLevel maps a configured level name to a zerolog level. Matching is
// case-insensitive, "warning" is accepted for warn, and anything unknown
// selects info.
func ParseLevel(lvl string) zerolog.Level {
	s := strings.ToLower(strings.TrimSpace(lvl))
	if s == "warning" {
		s = "warn"
	}
	switch l, err := zerolog.ParseLevel(s); {
	case err != nil, s == "", l == zerolog.NoLevel, l == zerolog.Disabled, l == zerolog.TraceLevel:
		return zerolog.InfoLevel
	default:
		return l
	}
}

// LogOptions configures SetupLogger.
type LogOptions struct {
	Level   string
	Pretty  bool      // console writer instead of JSON lines
	Out     io.Writer // defaults to stderr
	Service string    // attached as "service" when set
	Version string    // attached as "version" when set
}

// SetupLogger installs the global logger and level. Colour in pretty mode
// is disabled when NO_COLOR is set to any non-empty value.
func SetupLogger(opts LogOptions) zerolog.Logger {
	w := opts.Out
	if w == nil {
		w = os.Stderr
	}
	zerolog.SetGlobalLevel(ParseLevel(opts.Level))
	zerolog.TimeFieldFormat = time.RFC3339Nano

	if opts.Pretty {
		w = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.RFC3339,
			NoColor:    os.Getenv("NO_COLOR") != "",
		}
	}
	ctx := zerolog.New(w).With().Timestamp()
	if opts.Service != "" {
		ctx = ctx.Str("service", opts.Service)
	}
	if opts.Version != "" {
		ctx = ctx.Str("version", opts.Version)
	}
	log.Logger = ctx.Logger()
	return log.Logger
}

// FirstNonEmpty returns the first value that is not blank, or "".
func FirstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
