// Package logger defines the logging contract shared by the chart engine,
// the storage layer and the plot server.
package logger

type Level int8

const (
	Disabled   Level = -1   // Disabled turns logging off.
	TraceLevel Level = iota // TraceLevel reports every gesture event.
	DebugLevel              // DebugLevel reports viewport decisions (clamps, no-op zooms).
	InfoLevel               // InfoLevel reports lifecycle messages.
	WarnLevel               // WarnLevel reports recoverable data problems.
	ErrorLevel              // ErrorLevel reports failed I/O.
	NoLevel                 // NoLevel is used when the level is unknown.
)

// Logger is implemented by the zerolog and logrus adapters
type Logger interface {
	WithField(key string, value any) Logger
	WithFields(fields map[string]any) Logger
	WithError(err error) Logger

	Trace(args ...any)
	Debug(args ...any)
	Info(args ...any)
	Warn(args ...any)
	Error(args ...any)

	Tracef(format string, args ...any)
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)

	SetLevel(level Level)
	GetLevel() Level
}

// ParseLevel converts a level name into a Level, unknown names map to NoLevel
func ParseLevel(name string) Level {
	switch name {
	case "disabled", "off":
		return Disabled
	case "trace":
		return TraceLevel
	case "debug":
		return DebugLevel
	case "info":
		return InfoLevel
	case "warn", "warning":
		return WarnLevel
	case "error":
		return ErrorLevel
	default:
		return NoLevel
	}
}
