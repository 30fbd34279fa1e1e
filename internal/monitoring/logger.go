package monitoring

import (
	"log/slog"
	"os"
	"time"
)

// Logger provides structured JSON logging for the assessment service.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new structured logger writing JSON to stdout.
func NewLogger() *Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:     slog.LevelInfo,
		AddSource: true,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{
					Key:   "timestamp",
					Value: slog.StringValue(a.Value.Time().Format(time.RFC3339)),
				}
			}
			return a
		},
	})

	return &Logger{
		Logger: slog.New(handler),
	}
}

// RequestLogger logs HTTP request details.
func (l *Logger) RequestLogger(method, path, ip string, statusCode int, duration time.Duration) {
	l.Info("HTTP Request",
		"method", method,
		"path", path,
		"ip", ip,
		"status_code", statusCode,
		"duration_ms", duration.Milliseconds(),
	)
}

// ScoringLogger logs a completed scoring run. Only ids and derived values,
// never answer data.
func (l *Logger) ScoringLogger(instrumentID, subjectID string, dimensions int, duration time.Duration) {
	l.Info("Scoring Completed",
		"instrument_id", instrumentID,
		"subject_id", subjectID,
		"dimensions", dimensions,
		"duration_ms", duration.Milliseconds(),
	)
}

// AggregationLogger logs a board report aggregation.
func (l *Logger) AggregationLogger(evaluationID string, sampleSize int, duration time.Duration) {
	l.Info("Aggregation Completed",
		"evaluation_id", evaluationID,
		"sample_size", sampleSize,
		"duration_ms", duration.Milliseconds(),
	)
}

// APIErrorLogger logs API errors with request context.
func (l *Logger) APIErrorLogger(err error, method, path, ip string, statusCode int) {
	l.Error("API Error",
		"error", err.Error(),
		"method", method,
		"path", path,
		"ip", ip,
		"status_code", statusCode,
	)
}

// SystemLogger logs system-level events.
func (l *Logger) SystemLogger(event, details string) {
	l.Info("System Event",
		"event", event,
		"details", details,
		"uptime", time.Since(startTime).String(),
	)
}

// SetLevel replaces the handler with one at the given level.
func (l *Logger) SetLevel(level slog.Level) {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:     level,
		AddSource: true,
	})
	l.Logger = slog.New(handler)
}

var startTime = time.Now()
