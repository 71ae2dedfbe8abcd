// Package logging provides the structured logger shared by every runtime in
// this module, built on log/slog. Loggers are immutable; the With* builders
// return children carrying the execution-scoped fields (execution id,
// workspace, task, node, agent) that make interleaved runs separable in
// output.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Config holds logging configuration.
type Config struct {
	// Level is the minimum level emitted: "debug", "info", "warn", "error".
	Level string
	// Output receives log lines; defaults to os.Stdout.
	Output io.Writer
	// Pretty switches from JSON lines to human-readable text.
	Pretty bool
	// IncludeCaller adds source file:line to each record.
	IncludeCaller bool
}

// DefaultConfig returns the production defaults: info-level JSON to stdout.
func DefaultConfig() Config {
	return Config{Level: "info", Output: os.Stdout}
}

// Logger wraps a slog.Logger with the module's field vocabulary.
type Logger struct {
	logger *slog.Logger
}

// New creates a Logger from cfg. An unknown level falls back to info.
func New(cfg Config) *Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}

	opts := &slog.HandlerOptions{
		Level:     parseLevel(cfg.Level),
		AddSource: cfg.IncludeCaller,
	}

	var handler slog.Handler
	if cfg.Pretty {
		handler = slog.NewTextHandler(out, opts)
	} else {
		handler = slog.NewJSONHandler(out, opts)
	}
	return &Logger{logger: slog.New(handler)}
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (l *Logger) with(args ...any) *Logger {
	return &Logger{logger: l.logger.With(args...)}
}

// WithExecutionID scopes the logger to one execution.
func (l *Logger) WithExecutionID(id string) *Logger {
	return l.with(slog.String("execution_id", id))
}

// WithWorkspaceID scopes the logger to one workspace.
func (l *Logger) WithWorkspaceID(id string) *Logger {
	return l.with(slog.String("workspace_id", id))
}

// WithTaskID scopes the logger to one task of the task graph.
func (l *Logger) WithTaskID(id string) *Logger {
	return l.with(slog.String("task_id", id))
}

// WithNodeID scopes the logger to one workflow node.
func (l *Logger) WithNodeID(id string) *Logger {
	return l.with(slog.String("node_id", id))
}

// WithAgentID scopes the logger to one agent.
func (l *Logger) WithAgentID(id string) *Logger {
	return l.with(slog.String("agent_id", id))
}

// WithField attaches an arbitrary key/value pair.
func (l *Logger) WithField(key string, value interface{}) *Logger {
	return l.with(slog.Any(key, value))
}

// WithFields attaches several key/value pairs at once.
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	args := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, slog.Any(k, v))
	}
	return l.with(args...)
}

// WithError attaches err's message under the "error" key. The message is
// captured as a string so the JSON handler renders it regardless of the
// concrete error type.
func (l *Logger) WithError(err error) *Logger {
	if err == nil {
		return l
	}
	return l.with(slog.String("error", err.Error()))
}

func (l *Logger) Debug(msg string) { l.logger.Debug(msg) }
func (l *Logger) Info(msg string)  { l.logger.Info(msg) }
func (l *Logger) Warn(msg string)  { l.logger.Warn(msg) }
func (l *Logger) Error(msg string) { l.logger.Error(msg) }

func (l *Logger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

func (l *Logger) Infof(format string, args ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, args...))
}

func (l *Logger) Warnf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *Logger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}
