// Package logging turns the logging configuration into the context logger the
// solve pipeline writes its diagnostics through.
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/andrescamacho/zoneplanner-go/internal/infrastructure/config"
)

var levelRank = map[string]int{
	"debug": 0,
	"info":  1,
	"warn":  2,
	"error": 3,
}

// Logger writes leveled entries in the configured format, dropping anything
// below the configured minimum level. It satisfies the application layer's
// Logger interface.
type Logger struct {
	min    int
	format string
	out    io.Writer
}

// New builds a logger from the logging config, resolving the output stream.
func New(cfg *config.LoggingConfig) *Logger {
	var out io.Writer = os.Stderr
	if cfg.Output == "stdout" {
		out = os.Stdout
	}
	return NewWithOutput(cfg, out)
}

// NewWithOutput is New with an explicit destination.
func NewWithOutput(cfg *config.LoggingConfig, out io.Writer) *Logger {
	min, ok := levelRank[cfg.Level]
	if !ok {
		min = levelRank["info"]
	}
	return &Logger{min: min, format: cfg.Format, out: out}
}

// Log writes one entry. Unknown levels are treated as info.
func (l *Logger) Log(level, message string, metadata map[string]interface{}) {
	rank, ok := levelRank[level]
	if !ok {
		rank = levelRank["info"]
	}
	if rank < l.min {
		return
	}

	if l.format == "json" {
		entry := map[string]interface{}{
			"time":    time.Now().Format(time.RFC3339),
			"level":   level,
			"message": message,
		}
		for k, v := range metadata {
			entry[k] = v
		}
		_ = json.NewEncoder(l.out).Encode(entry)
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s [%s] %s", time.Now().Format(time.RFC3339), strings.ToUpper(level), message)
	for k, v := range metadata {
		fmt.Fprintf(&b, " %s=%v", k, v)
	}
	b.WriteByte('\n')
	_, _ = io.WriteString(l.out, b.String())
}
