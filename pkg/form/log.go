package form

import (
	"fmt"
	"log"
	"strings"
)

// Logger receives scan diagnostics. The variadic arguments are alternating
// key/value pairs.
type Logger interface {
	Debug(msg string, kv ...any)
	Error(msg string, kv ...any)
}

// StdLogger writes through the standard library logger.
type StdLogger struct {
	Logger *log.Logger
}

// Debug implements Logger.
func (l StdLogger) Debug(msg string, kv ...any) { l.print("DEB ", msg, kv) }

// Error implements Logger.
func (l StdLogger) Error(msg string, kv ...any) { l.print("ERR ", msg, kv) }

func (l StdLogger) print(level, msg string, kv []any) {
	line := formatLine(level, msg, kv)
	if l.Logger != nil {
		l.Logger.Print(line)
		return
	}
	log.Print(line)
}

func formatLine(level, msg string, kv []any) string {
	var b strings.Builder
	b.WriteString(level)
	b.WriteString(msg)
	for i, v := range kv {
		if i%2 == 0 {
			b.WriteByte(' ')
		} else {
			b.WriteByte('=')
		}
		b.WriteString(fmt.Sprint(v))
	}
	return b.String()
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Error(string, ...any) {}

// NopLogger discards every entry.
func NopLogger() Logger { return nopLogger{} }
