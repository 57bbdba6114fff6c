package progrock

import (
	"fmt"
	"sync"

	"github.com/vito/progrock"
	"go.trai.ch/darkmagic/internal/core/ports"
)

// LogWriter is a progrock.Writer that reports each completed vertex once at debug level.
type LogWriter struct {
	logger ports.Logger

	mu   sync.Mutex
	done map[string]bool
}

// NewLogWriter creates a LogWriter reporting to logger.
func NewLogWriter(logger ports.Logger) *LogWriter {
	return &LogWriter{
		logger: logger,
		done:   make(map[string]bool),
	}
}

// WriteStatus implements progrock.Writer.
func (w *LogWriter) WriteStatus(update *progrock.StatusUpdate) error {
	for _, v := range update.Vertexes {
		if v.Completed == nil || !w.markDone(v.Id) {
			continue
		}

		switch {
		case v.Error != nil:
			w.logger.Debug(fmt.Sprintf("%s: failed: %s", v.Name, *v.Error))
		case v.Cached:
			w.logger.Debug(v.Name + ": cached")
		case v.Started != nil:
			w.logger.Debug(fmt.Sprintf("%s: read in %s", v.Name, v.Completed.AsTime().Sub(v.Started.AsTime())))
		default:
			w.logger.Debug(v.Name + ": read")
		}
	}
	return nil
}

// Close implements progrock.Writer.
func (w *LogWriter) Close() error {
	return nil
}

func (w *LogWriter) markDone(id string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.done[id] {
		return false
	}
	w.done[id] = true
	return true
}
