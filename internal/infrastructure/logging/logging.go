// Package logging configures the global zerolog logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SetDefault gives a readable console output before the configuration is loaded.
func SetDefault() {
	log.Logger = log.Output(ConsoleWriter(os.Stderr))
}

// Setup applies level and format. An empty format means console on a TTY, JSON otherwise.
func Setup(level, format string) {
	zerolog.SetGlobalLevel(ParseLevel(level))

	var w io.Writer = os.Stderr
	switch format {
	case "json":
	case "console":
		w = ConsoleWriter(os.Stderr)
	default:
		if isTerminal(os.Stderr) {
			w = ConsoleWriter(os.Stderr)
		}
	}
	log.Logger = zerolog.New(w).With().Timestamp().Logger()
}

func ParseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd())
}

// ConsoleWriter returns a writer for zerolog that has NoColor:isTerminal(f).
func ConsoleWriter(f *os.File) io.Writer {
	noColor := !isTerminal(f)

	w := zerolog.ConsoleWriter{Out: f, NoColor: noColor, TimeFormat: time.DateTime}

	if !noColor {
		w.FormatPrepare = func(m map[string]any) error {
			// requêtes HTTP sur une seule ligne
			if sys, ok := m["sys"]; ok && sys == "http" {
				m["message"] = fmt.Sprintf("%v %-5v %v", m["status"], m["method"], m["path"])
				delete(m, "sys")
				delete(m, "method")
				delete(m, "status")
				delete(m, "path")
			}
			return nil
		}
	}

	return w
}
