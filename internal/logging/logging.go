// Package logging builds the zerolog loggers used by the command line tool.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

const (
	FormatConsole = "console"
	FormatPretty  = "pretty"
	FormatJSON    = "json"
)

// Config controls how log output is rendered.
type Config struct {
	Level   string
	Format  string
	NoColor bool
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.Level == "" {
		c.Level = "warn"
	}
	if c.Format == "" {
		c.Format = FormatConsole
	}
}

// ParseLevel parses a level name, falling back to warn for unknown names.
func ParseLevel(name string) zerolog.Level {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(name)))
	if err != nil || name == "" {
		return zerolog.WarnLevel
	}
	return level
}

// New creates a logger writing to w. A nil writer means stderr.
func New(cfg Config, w io.Writer) zerolog.Logger {
	cfg.ApplyDefaults()
	if w == nil {
		w = os.Stderr
	}

	var zl zerolog.Logger
	switch strings.ToLower(cfg.Format) {
	case FormatConsole, FormatPretty:
		zl = zerolog.New(zerolog.ConsoleWriter{
			Out:         w,
			TimeFormat:  "15:04:05",
			NoColor:     cfg.NoColor,
			FormatLevel: formatLevel(cfg.NoColor),
		})
	default:
		zl = zerolog.New(w)
	}

	return zl.Level(ParseLevel(cfg.Level)).With().Timestamp().Logger()
}

func formatLevel(noColor bool) zerolog.Formatter {
	return func(i interface{}) string {
		lvl := strings.ToUpper(fmt.Sprintf("%s", i))
		var tag, code string
		switch lvl {
		case "TRACE":
			tag, code = "[TRC]", "\033[90m"
		case "DEBUG":
			tag, code = "[DBG]", "\033[36m"
		case "INFO":
			tag, code = "[INF]", "\033[32m"
		case "WARN":
			tag, code = "[WRN]", "\033[33m"
		case "ERROR":
			tag, code = "[ERR]", "\033[31m"
		case "FATAL":
			tag, code = "[FTL]", "\033[35m"
		default:
			return fmt.Sprintf("[%s]", lvl)
		}
		if noColor {
			return tag
		}
		return code + tag + "\033[0m"
	}
}
