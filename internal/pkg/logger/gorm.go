package logger

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"gorm.io/gorm/logger"
)

const maxSQLLength = 2048

// SlogGormLogger 将 gorm 的 SQL 日志写入 slog，慢查询以 Warn 输出
type SlogGormLogger struct {
	LogLevel      logger.LogLevel
	SlowThreshold time.Duration
}

func NewGormLogger(slowThreshold time.Duration) *SlogGormLogger {
	if slowThreshold <= 0 {
		slowThreshold = 200 * time.Millisecond
	}
	return &SlogGormLogger{LogLevel: logger.Info, SlowThreshold: slowThreshold}
}

func (l *SlogGormLogger) LogMode(level logger.LogLevel) logger.Interface {
	nl := *l
	nl.LogLevel = level
	return &nl
}

func (l *SlogGormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= logger.Info {
		slog.InfoContext(ctx, msg, "data", data)
	}
}

func (l *SlogGormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= logger.Warn {
		slog.WarnContext(ctx, msg, "data", data)
	}
}

func (l *SlogGormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= logger.Error {
		slog.ErrorContext(ctx, msg, "data", data)
	}
}

func (l *SlogGormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()
	msg := "SQL " + sqlOperation(sql)

	if len(sql) > maxSQLLength {
		sql = sql[:maxSQLLength] + "..."
	}
	fields := []any{
		slog.String("sql", sql),
		slog.Duration("latency", elapsed),
		slog.Int64("rows", rows),
	}

	switch {
	case err != nil && !errors.Is(err, logger.ErrRecordNotFound) && l.LogLevel >= logger.Error:
		slog.ErrorContext(ctx, msg+" Error", append(fields, slog.Any("err", err))...)
	case elapsed > l.SlowThreshold && l.LogLevel >= logger.Warn:
		slog.WarnContext(ctx, msg+" Slow", append(fields, slog.Duration("threshold", l.SlowThreshold))...)
	case l.LogLevel >= logger.Info:
		slog.DebugContext(ctx, msg, fields...)
	}
}

// sqlOperation 取 SQL 第一个关键字，如 SELECT / UPDATE
func sqlOperation(sql string) string {
	op, _, _ := strings.Cut(strings.TrimSpace(sql), " ")
	if op == "" {
		return "Query"
	}
	return strings.ToUpper(op)
}
