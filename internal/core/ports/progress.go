package ports

import "context"

//go:generate go run go.uber.org/mock/mockgen -source=progress.go -destination=mocks/mock_progress.go -package=mocks

// ProgressView renders live progress of a run from the telemetry stream.
type ProgressView interface {
	// Interactive reports whether the view can draw to its output.
	Interactive() bool
	// Start begins rendering. The returned function blocks until the telemetry
	// session is closed and the view has drawn its final frame.
	Start(ctx context.Context) (wait func() error)
}
