// Package logrus adapts a sirupsen/logrus entry to logger.Logger, for hosts
// that already standardize on logrus.
package logrus

import (
	"io"

	"github.com/raykavin/backview/pkg/logger"
	"github.com/sirupsen/logrus"
)

type Adapter struct {
	entry *logrus.Entry
}

// New creates a logrus backed logger writing text or JSON to out
func New(out io.Writer, level string, json bool) (*Adapter, error) {
	log := logrus.New()
	log.SetOutput(out)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	log.SetLevel(lvl)

	if json {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return &Adapter{entry: logrus.NewEntry(log)}, nil
}

// NewAdapter wraps an existing logrus logger
func NewAdapter(log *logrus.Logger) *Adapter {
	return &Adapter{entry: logrus.NewEntry(log)}
}

func (a *Adapter) Trace(args ...any) { a.entry.Trace(args...) }
func (a *Adapter) Debug(args ...any) { a.entry.Debug(args...) }
func (a *Adapter) Info(args ...any)  { a.entry.Info(args...) }
func (a *Adapter) Warn(args ...any)  { a.entry.Warn(args...) }
func (a *Adapter) Error(args ...any) { a.entry.Error(args...) }

func (a *Adapter) Tracef(format string, args ...any) { a.entry.Tracef(format, args...) }
func (a *Adapter) Debugf(format string, args ...any) { a.entry.Debugf(format, args...) }
func (a *Adapter) Infof(format string, args ...any)  { a.entry.Infof(format, args...) }
func (a *Adapter) Warnf(format string, args ...any)  { a.entry.Warnf(format, args...) }
func (a *Adapter) Errorf(format string, args ...any) { a.entry.Errorf(format, args...) }

func (a *Adapter) WithField(key string, value any) logger.Logger {
	return &Adapter{entry: a.entry.WithField(key, value)}
}

func (a *Adapter) WithFields(fields map[string]any) logger.Logger {
	return &Adapter{entry: a.entry.WithFields(fields)}
}

func (a *Adapter) WithError(err error) logger.Logger {
	return &Adapter{entry: a.entry.WithError(err)}
}

// SetLevel changes the level of the underlying logrus logger, shared by
// every adapter derived from it.
func (a *Adapter) SetLevel(level logger.Level) {
	switch level {
	case logger.Disabled:
		a.entry.Logger.SetOutput(io.Discard)
	case logger.TraceLevel:
		a.entry.Logger.SetLevel(logrus.TraceLevel)
	case logger.DebugLevel:
		a.entry.Logger.SetLevel(logrus.DebugLevel)
	case logger.InfoLevel:
		a.entry.Logger.SetLevel(logrus.InfoLevel)
	case logger.WarnLevel:
		a.entry.Logger.SetLevel(logrus.WarnLevel)
	case logger.ErrorLevel:
		a.entry.Logger.SetLevel(logrus.ErrorLevel)
	}
}

func (a *Adapter) GetLevel() logger.Level {
	switch a.entry.Logger.GetLevel() {
	case logrus.TraceLevel:
		return logger.TraceLevel
	case logrus.DebugLevel:
		return logger.DebugLevel
	case logrus.InfoLevel:
		return logger.InfoLevel
	case logrus.WarnLevel:
		return logger.WarnLevel
	case logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel:
		return logger.ErrorLevel
	default:
		return logger.NoLevel
	}
}
