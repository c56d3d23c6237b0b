package gormstore

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// slowQuery is the threshold above which statements are logged at warn level.
const slowQuery = 200 * time.Millisecond

// zerologAdapter routes GORM's logging into zerolog.
type zerologAdapter struct {
	log   zerolog.Logger
	level gormlogger.LogLevel
}

func newLogger(log zerolog.Logger) gormlogger.Interface {
	return &zerologAdapter{log: log.With().Str("component", "gorm").Logger(), level: gormlogger.Warn}
}

func (a *zerologAdapter) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *a
	clone.level = level
	return &clone
}

func (a *zerologAdapter) Info(ctx context.Context, msg string, args ...interface{}) {
	if a.level >= gormlogger.Info {
		a.log.Info().Msgf(msg, args...)
	}
}

func (a *zerologAdapter) Warn(ctx context.Context, msg string, args ...interface{}) {
	if a.level >= gormlogger.Warn {
		a.log.Warn().Msgf(msg, args...)
	}
}

func (a *zerologAdapter) Error(ctx context.Context, msg string, args ...interface{}) {
	if a.level >= gormlogger.Error {
		a.log.Error().Msgf(msg, args...)
	}
}

func (a *zerologAdapter) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if a.level <= gormlogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && a.level >= gormlogger.Error:
		sql, rows := fc()
		a.log.Error().Err(err).Dur("elapsed", elapsed).Int64("rows", rows).Str("sql", sql).Msg("query failed")
	case elapsed > slowQuery && a.level >= gormlogger.Warn:
		sql, rows := fc()
		a.log.Warn().Dur("elapsed", elapsed).Int64("rows", rows).Str("sql", sql).Msg("slow query")
	case a.level >= gormlogger.Info:
		sql, rows := fc()
		a.log.Debug().Dur("elapsed", elapsed).Int64("rows", rows).Str("sql", sql).Msg("query")
	}
}
