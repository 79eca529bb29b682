package logger

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// Logger is a logrus entry pre-tagged with request fields
type Logger struct {
	*logrus.Entry
}

// context keys copied onto every entry, mapped to their log field names
var contextFields = []struct {
	key   string
	field string
}{
	{key: "user_name", field: "user"},
	{key: "user_id", field: "user_id"},
	{key: "request_id", field: "request_id"},
}

// WithContext returns a logger tagged with the caller and request id stored in ctx.
// A *gin.Context qualifies since it exposes its keys through Value.
func WithContext(ctx context.Context) *Logger {
	fields := logrus.Fields{"user": "anonymous"}
	if ctx != nil {
		for _, cf := range contextFields {
			switch v := ctx.Value(cf.key).(type) {
			case string:
				if v != "" {
					fields[cf.field] = v
				}
			case uint:
				if v != 0 {
					fields[cf.field] = v
				}
			}
		}
	}
	return &Logger{Entry: logrus.WithFields(fields)}
}

// Setup configures the global logrus logger; unknown levels fall back to info
func Setup(level string) {
	logrus.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logrus.SetLevel(parsed)
}
