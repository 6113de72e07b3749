package log

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// GormLogger sends gorm logs to logrus. SQL traces go out at debug level.
type GormLogger struct {
	logger *logrus.Logger
	level  logger.LogLevel
}

func NewGormLogger(log *logrus.Logger) *GormLogger {
	return &GormLogger{logger: log, level: logger.Warn}
}

// LogMode returns a copy filtering at level; the logrus logger is shared and
// keeps its own level.
func (l *GormLogger) LogMode(level logger.LogLevel) logger.Interface {
	newLogger := *l
	newLogger.level = level
	return &newLogger
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.level >= logger.Info {
		l.logger.WithContext(ctx).Infof(msg, data...)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.level >= logger.Warn {
		l.logger.WithContext(ctx).Warnf(msg, data...)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.level >= logger.Error {
		l.logger.WithContext(ctx).Errorf(msg, data...)
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= logger.Silent {
		return
	}
	elapsed := time.Since(begin)
	sql, rows := fc()
	fields := logrus.Fields{
		"duration": elapsed,
		"rows":     rows,
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		fields["error"] = err
		l.logger.WithContext(ctx).WithFields(fields).Error(sql)
		return
	}
	l.logger.WithContext(ctx).WithFields(fields).Debug(sql)
}
