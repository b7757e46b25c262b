package logger

import (
	"fmt"
	"strings"
	"time"

	gormlogger "gorm.io/gorm/logger"
)

type gormWriter struct{}

func (gormWriter) Printf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if strings.Contains(msg, "[error]") {
		sugar.Error(msg)
		return
	}
	sugar.Info(msg)
}

// NewGormLogger routes gorm's sql log through the service logger.
func NewGormLogger(level string) gormlogger.Interface {
	l := gormlogger.Warn
	switch strings.ToLower(level) {
	case "debug":
		l = gormlogger.Info
	case "error", "fatal":
		l = gormlogger.Error
	}
	return gormlogger.New(gormWriter{}, gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  l,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}
