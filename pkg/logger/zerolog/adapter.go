package zerolog

import (
	"fmt"

	"github.com/raykavin/backview/pkg/logger"
	"github.com/rs/zerolog"
)

var _ logger.Logger = (*Adapter)(nil)

// Adapter exposes a zerolog.Logger as logger.Logger
type Adapter struct {
	log *zerolog.Logger
}

// NewAdapter wraps an existing zerolog logger
func NewAdapter(log *zerolog.Logger) *Adapter {
	return &Adapter{log: log}
}

// Nop returns a logger that discards every message
func Nop() *Adapter {
	log := zerolog.Nop()
	return &Adapter{log: &log}
}

func (a *Adapter) Trace(args ...any) { a.log.Trace().Msg(fmt.Sprint(args...)) }
func (a *Adapter) Debug(args ...any) { a.log.Debug().Msg(fmt.Sprint(args...)) }
func (a *Adapter) Info(args ...any)  { a.log.Info().Msg(fmt.Sprint(args...)) }
func (a *Adapter) Warn(args ...any)  { a.log.Warn().Msg(fmt.Sprint(args...)) }
func (a *Adapter) Error(args ...any) { a.log.Error().Msg(fmt.Sprint(args...)) }

func (a *Adapter) Tracef(format string, args ...any) { a.log.Trace().Msgf(format, args...) }
func (a *Adapter) Debugf(format string, args ...any) { a.log.Debug().Msgf(format, args...) }
func (a *Adapter) Infof(format string, args ...any)  { a.log.Info().Msgf(format, args...) }
func (a *Adapter) Warnf(format string, args ...any)  { a.log.Warn().Msgf(format, args...) }
func (a *Adapter) Errorf(format string, args ...any) { a.log.Error().Msgf(format, args...) }

// WithError implements logger.Logger.
func (a *Adapter) WithError(err error) logger.Logger {
	child := a.log.With().Err(err).Logger()
	return &Adapter{log: &child}
}

// WithField implements logger.Logger.
func (a *Adapter) WithField(key string, value any) logger.Logger {
	child := a.log.With().Interface(key, value).Logger()
	return &Adapter{log: &child}
}

// WithFields implements logger.Logger.
func (a *Adapter) WithFields(fields map[string]any) logger.Logger {
	child := a.log.With().Fields(fields).Logger()
	return &Adapter{log: &child}
}

// GetLevel implements logger.Logger.
func (a *Adapter) GetLevel() logger.Level {
	for level, zl := range levels {
		if zl == a.log.GetLevel() {
			return level
		}
	}
	return logger.NoLevel
}

// SetLevel implements logger.Logger. Only this adapter is affected.
func (a *Adapter) SetLevel(level logger.Level) {
	zl, ok := levels[level]
	if !ok {
		zl = zerolog.NoLevel
	}
	child := a.log.Level(zl)
	a.log = &child
}

var levels = map[logger.Level]zerolog.Level{
	logger.Disabled:   zerolog.Disabled,
	logger.NoLevel:    zerolog.NoLevel,
	logger.TraceLevel: zerolog.TraceLevel,
	logger.DebugLevel: zerolog.DebugLevel,
	logger.InfoLevel:  zerolog.InfoLevel,
	logger.WarnLevel:  zerolog.WarnLevel,
	logger.ErrorLevel: zerolog.ErrorLevel,
}
