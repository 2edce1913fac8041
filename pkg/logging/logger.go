// Package logging provides structured logging for the orrery.
// It wraps Go's slog package with context-first helpers, a per-session
// identifier carried in the context and compact formatting of vector values.
package logging

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// LevelEnvVar names the environment variable that selects the log level.
const LevelEnvVar = "ORRERY_LOG_LEVEL"

// Logger wraps slog.Logger with context-first logging methods.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a Logger writing JSON to stdout.
// The level is read from ORRERY_LOG_LEVEL (DEBUG, INFO, WARN, ERROR); INFO by default.
func NewLogger() *Logger {
	return NewLoggerWithWriter(os.Stdout)
}

// NewLoggerWithWriter creates a Logger writing JSON to w.
// The terminal frontend uses it to keep log lines off the screen it draws on.
func NewLoggerWithWriter(w io.Writer) *Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       getLogLevelFromEnv(),
		ReplaceAttr: formatAttributes,
	})
	return &Logger{slog.New(handler)}
}

// NewDiscardLogger returns a Logger that drops every record.
func NewDiscardLogger() *Logger {
	return &Logger{slog.New(slog.NewJSONHandler(io.Discard, nil))}
}

// LogWithContext logs msg and appends the session ID found in ctx, if any.
func (l *Logger) LogWithContext(ctx context.Context, level slog.Level, msg string, args ...any) {
	if sessionID := GetSessionID(ctx); sessionID != "" {
		args = append(args, "session_id", sessionID)
	}
	l.Log(ctx, level, msg, args...)
}

// Info logs an informational message.
func (l *Logger) Info(ctx context.Context, msg string, args ...any) {
	l.LogWithContext(ctx, slog.LevelInfo, msg, args...)
}

// Warn logs a warning.
func (l *Logger) Warn(ctx context.Context, msg string, args ...any) {
	l.LogWithContext(ctx, slog.LevelWarn, msg, args...)
}

// Error logs err under the "error" key together with msg.
func (l *Logger) Error(ctx context.Context, msg string, err error, args ...any) {
	if err != nil {
		args = append(args, "error", err.Error())
	}
	l.LogWithContext(ctx, slog.LevelError, msg, args...)
}

// Debug logs a debug message.
func (l *Logger) Debug(ctx context.Context, msg string, args ...any) {
	l.LogWithContext(ctx, slog.LevelDebug, msg, args...)
}

type sessionIDKey struct{}

// WithSessionID stores a session ID in ctx, generating one when id is empty.
func WithSessionID(ctx context.Context, id string) context.Context {
	if id == "" {
		id = GenerateSessionID()
	}
	return context.WithValue(ctx, sessionIDKey{}, id)
}

// GetSessionID returns the session ID stored in ctx or an empty string.
func GetSessionID(ctx context.Context) string {
	if id, ok := ctx.Value(sessionIDKey{}).(string); ok {
		return id
	}
	return ""
}

// GenerateSessionID returns 8 random bytes hex encoded.
func GenerateSessionID() string {
	bytes := make([]byte, 8)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

func getLogLevelFromEnv() slog.Level {
	switch strings.ToUpper(os.Getenv(LevelEnvVar)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// formatAttributes renders vector and quaternion values as short strings so
// JSON output stays readable.
func formatAttributes(groups []string, a slog.Attr) slog.Attr {
	if a.Value.Kind() != slog.KindAny {
		return a
	}
	switch v := a.Value.Any().(type) {
	case mgl32.Vec3:
		return slog.String(a.Key, fmt.Sprintf("(%.3f, %.3f, %.3f)", v[0], v[1], v[2]))
	case mgl32.Quat:
		return slog.String(a.Key, fmt.Sprintf("(%.3f; %.3f, %.3f, %.3f)", v.W, v.V[0], v.V[1], v.V[2]))
	}
	return a
}

// WrapError wraps err with a formatted context message.
func WrapError(err error, context string, args ...any) error {
	if err == nil {
		return nil
	}
	if len(args) > 0 {
		context = fmt.Sprintf(context, args...)
	}
	return fmt.Errorf("%s: %w", context, err)
}
