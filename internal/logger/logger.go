package logger

import (
	"context"
	"log/slog"
	"os"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
)

// Logger emits structured JSON logs with the service-wide fields attached.
type Logger struct {
	service  string
	hostname string
	handler  *slog.Logger
}

func New(service string) *Logger {
	hostname, _ := os.Hostname()

	handler := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	return &Logger{
		service:  service,
		hostname: hostname,
		handler:  handler,
	}
}

// GenerateRequestID returns a unique identifier for correlating log lines.
func GenerateRequestID() string {
	return uuid.NewString()
}

func (l *Logger) Info(action, message, requestID string, extra map[string]interface{}) {
	l.log(slog.LevelInfo, action, message, requestID, extra, nil)
}

func (l *Logger) Debug(action, message, requestID string, extra map[string]interface{}) {
	l.log(slog.LevelDebug, action, message, requestID, extra, nil)
}

func (l *Logger) Error(action, message, requestID string, err error, extra map[string]interface{}) {
	l.log(slog.LevelError, action, message, requestID, extra, err)
}

func (l *Logger) log(level slog.Level, action, message, requestID string, extra map[string]interface{}, err error) {
	attrs := []slog.Attr{
		slog.String("timestamp", time.Now().UTC().Format(time.RFC3339)),
		slog.String("service", l.service),
		slog.String("hostname", l.hostname),
		slog.String("action", action),
		slog.String("request_id", requestID),
	}

	for key, value := range extra {
		attrs = append(attrs, slog.Any(key, value))
	}

	if err != nil {
		attrs = append(attrs, slog.Group("error",
			slog.String("msg", err.Error()),
			slog.String("stack", string(debug.Stack())),
		))
	}

	l.handler.LogAttrs(context.TODO(), level, message, attrs...)
}
