package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/labstack/gommon/log"
)

const header = "${time_rfc3339} ${level} ${prefix}"

// ParseLevel maps debug, info, warn, error and off to gommon levels.
// An empty string means info.
func ParseLevel(s string) (log.Lvl, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return log.DEBUG, nil
	case "", "info":
		return log.INFO, nil
	case "warn", "warning":
		return log.WARN, nil
	case "error":
		return log.ERROR, nil
	case "off":
		return log.OFF, nil
	}
	return log.INFO, fmt.Errorf("unknown log level %q", s)
}

// New returns a logger writing plain-text lines to w.
func New(prefix, level string, w io.Writer) (*log.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	l := log.New(prefix)
	l.SetOutput(w)
	l.SetHeader(header)
	l.SetLevel(lvl)
	return l, nil
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	l := log.New("")
	l.SetOutput(io.Discard)
	l.SetLevel(log.OFF)
	return l
}
