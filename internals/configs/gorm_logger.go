package configs

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

type requestIDKey struct{}

// WithRequestID tags ctx so SQL log lines can be matched to the HTTP request.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func RequestIDFrom(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// GormLogger writes SQL logs through the standard logger with the same
// bracketed prefixes as the rest of the service.
type GormLogger struct {
	SlowThreshold time.Duration
	Level         gormLogger.LogLevel
}

// NewGormLogger reads DB_SLOW_MS (default 200) and DB_LOG_QUERIES (development only).
func NewGormLogger() gormLogger.Interface {
	l := &GormLogger{
		SlowThreshold: time.Duration(GetEnvInt("DB_SLOW_MS", 200)) * time.Millisecond,
		Level:         gormLogger.Warn,
	}
	if AppEnv == "development" && GetEnvBool("DB_LOG_QUERIES", false) {
		l.Level = gormLogger.Info
	}
	return l
}

func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	cp := *l
	cp.Level = level
	return &cp
}

func (l *GormLogger) printf(ctx context.Context, prefix, format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	if id := RequestIDFrom(ctx); id != "" {
		line = "reqid=" + id + " " + line
	}
	log.Println(prefix + " " + line)
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...any) {
	if l.Level >= gormLogger.Info {
		l.printf(ctx, "[SQL]", msg, data...)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...any) {
	if l.Level >= gormLogger.Warn {
		l.printf(ctx, "[WARN]", msg, data...)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...any) {
	if l.Level >= gormLogger.Error {
		l.printf(ctx, "[ERROR]", msg, data...)
	}
}

// Trace logs failed statements, slow statements and, at Info, everything.
// Missing rows are an expected outcome and are not logged.
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.Level <= gormLogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	failed := err != nil && !errors.Is(err, gorm.ErrRecordNotFound)
	slow := l.SlowThreshold > 0 && elapsed > l.SlowThreshold

	if !(failed && l.Level >= gormLogger.Error) && !(slow && l.Level >= gormLogger.Warn) && l.Level < gormLogger.Info {
		return
	}

	sql, rows := fc()
	switch {
	case failed:
		l.printf(ctx, "[ERROR]", "%s %v (%s, %d rows) %s", utils.FileWithLineNum(), err, elapsed, rows, sql)
	case slow:
		l.printf(ctx, "[SLOW SQL]", "%s (%s, %d rows) %s", utils.FileWithLineNum(), elapsed, rows, sql)
	default:
		l.printf(ctx, "[SQL]", "%s (%s, %d rows) %s", utils.FileWithLineNum(), elapsed, rows, sql)
	}
}
