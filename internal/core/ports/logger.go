package ports

import "go.trai.ch/darkmagic/internal/core/domain"

// Logger defines the interface for logging.
//
//go:generate go run go.uber.org/mock/mockgen -source=logger.go -destination=mocks/mock_logger.go -package=mocks
type Logger interface {
	// Trace logs below debug, for per-entry decode details.
	Trace(msg string)
	Debug(msg string)
	Info(msg string)
	Warn(msg string)
	Error(err error)
	// SetLevel changes the minimum level that is written.
	SetLevel(level domain.LogLevel)
}
