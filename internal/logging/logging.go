package logging

import (
	"io"
	"log/slog"
	"strings"

	clog "github.com/charmbracelet/log"
)

// New returns an slog logger backed by a charm log handler. format is
// "text" or "json"; unknown levels fall back to info.
func New(w io.Writer, level, format string) *slog.Logger {
	lvl, err := clog.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = clog.InfoLevel
	}

	formatter := clog.TextFormatter
	if strings.EqualFold(format, "json") {
		formatter = clog.JSONFormatter
	}

	handler := clog.NewWithOptions(w, clog.Options{
		ReportTimestamp: true,
		Level:           lvl,
		Formatter:       formatter,
	})
	return slog.New(handler)
}

// Discard drops everything, for tests and quiet commands.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
