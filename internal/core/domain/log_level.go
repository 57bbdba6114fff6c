package domain

// LogLevel represents the severity of a log message, mirroring the standard slog levels.
type LogLevel int

const (
	// LogLevelTrace represents the most verbose level, below debug.
	LogLevelTrace LogLevel = -8
	// LogLevelDebug represents debug-level verbosity.
	LogLevelDebug LogLevel = -4
	// LogLevelInfo represents informational verbosity.
	LogLevelInfo LogLevel = 0
	// LogLevelWarn represents warning verbosity.
	LogLevelWarn LogLevel = 4
	// LogLevelError represents error verbosity.
	LogLevelError LogLevel = 8
)

// String returns the string representation of the LogLevel.
func (l LogLevel) String() string {
	switch l {
	case LogLevelTrace:
		return "TRACE"
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// LevelFromVerbosity maps the number of -v flags to a log level.
func LevelFromVerbosity(n int) LogLevel {
	switch {
	case n <= 0:
		return LogLevelError
	case n == 1:
		return LogLevelWarn
	case n == 2:
		return LogLevelInfo
	case n == 3:
		return LogLevelDebug
	default:
		return LogLevelTrace
	}
}
