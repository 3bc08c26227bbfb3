// Package obslog is the structured-logging home for every observability
// event the simulator's error-handling design (spec.md §7) calls for:
// recoverable conditions are reported as events with fields, never as
// typed failures crossing the access-processing boundary.
package obslog

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Logger wraps a *logrus.Logger with the event helpers the engine, trace
// reader, and config loader call. Fields are attached per-event rather
// than baked into the logger, so one Logger instance serves the whole
// simulator.
type Logger struct {
	*logrus.Logger
}

// New returns a Logger writing to stderr at the given level (e.g. "info",
// "debug", "warn"). An unrecognized level falls back to info.
func New(level string) *Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	l.SetLevel(parsed)

	return &Logger{Logger: l}
}

// OutOfBounds reports an out-of-bounds DRAM or Flash access (spec.md
// §4.1): the access is still counted, but no tier state was mutated.
func (l *Logger) OutOfBounds(tier string, address uint64) {
	l.WithFields(logrus.Fields{
		"event":   "out_of_bounds",
		"tier":    tier,
		"address": address,
	}).Warn("address out of bounds")
}

// MalformedTraceLine reports a trace line that failed to parse.
func (l *Logger) MalformedTraceLine(lineNum int, text string) {
	l.WithFields(logrus.Fields{
		"event": "malformed_trace_line",
		"line":  lineNum,
		"text":  text,
	}).Warn("invalid trace line")
}

// UnknownOperation reports an operation character that is neither 'R' nor
// 'W'.
func (l *Logger) UnknownOperation(op byte, address uint64) {
	l.WithFields(logrus.Fields{
		"event":   "unknown_operation",
		"op":      string(op),
		"address": address,
	}).Warn("unknown operation character")
}

// UnknownConfigKey reports a config key this simulator does not
// recognize. Per spec.md §7 this is purely informational.
func (l *Logger) UnknownConfigKey(key, value string) {
	l.WithFields(logrus.Fields{
		"event": "unknown_config_key",
		"key":   key,
		"value": value,
	}).Debug("ignoring unrecognized config key")
}

// MalformedConfigValue reports a recognized key whose value could not be
// parsed; the default for that key is kept.
func (l *Logger) MalformedConfigValue(key, value string) {
	l.WithFields(logrus.Fields{
		"event": "malformed_config_value",
		"key":   key,
		"value": value,
	}).Warn("could not parse config value, keeping default")
}

// RefreshCycle reports a periodic refresh injection (debug-level; this is
// routine, not a warning).
func (l *Logger) RefreshCycle(totalAccesses uint64) {
	l.WithFields(logrus.Fields{
		"event":          "refresh",
		"total_accesses": totalAccesses,
	}).Debug("refresh cycle injected")
}

// GenerationProgress reports synthetic trace generator progress, adapted
// from original_source's 10%-increment console banner.
func (l *Logger) GenerationProgress(done, total uint64) {
	l.WithFields(logrus.Fields{
		"event": "trace_generation_progress",
		"done":  done,
		"total": total,
	}).Info("generating synthetic trace")
}
