package database

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm/logger"
)

type gormWriter struct {
	log *zap.SugaredLogger
}

func (w gormWriter) Printf(format string, args ...any) {
	w.log.Warnf(format, args...)
}

// newGormLogger sends slow queries and failed statements to zap. Bound values
// are left out of the logged SQL since they include password hashes.
func newGormLogger(log *zap.SugaredLogger) logger.Interface {
	return logger.New(gormWriter{log: log}, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
		ParameterizedQueries:      true,
	})
}
