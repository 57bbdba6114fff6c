// Package progrock provides the Progrock implementation of the telemetry adapter.
package progrock

import (
	"context"
	"strconv"
	"sync/atomic"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.trai.ch/darkmagic/internal/core/ports"
)

var _ ports.Telemetry = (*Recorder)(nil)

// Recorder implements the ports.Telemetry interface using the vito/progrock library.
type Recorder struct {
	w   progrock.Writer
	rec *progrock.Recorder
	seq atomic.Uint64
}

// New creates a new Recorder whose vertices are reported through logger and
// queued on feed.
func New(logger ports.Logger, feed *Feed) *Recorder {
	return NewRecorder(multiWriter{NewLogWriter(logger), feed})
}

// NewRecorder creates a new Recorder with the given writer.
func NewRecorder(w progrock.Writer) *Recorder {
	return &Recorder{
		w:   w,
		rec: progrock.NewRecorder(w),
	}
}

// Record starts recording a new vertex. Every call gets its own vertex, so a
// file named twice is reported twice.
func (r *Recorder) Record(ctx context.Context, name string) (context.Context, ports.Vertex) {
	id := digest.FromString(strconv.FormatUint(r.seq.Add(1), 10) + ":" + name)
	v := r.rec.Vertex(id, name)
	return ctx, newVertex(v)
}

// Close flushes and closes the recording session.
func (r *Recorder) Close() error {
	return r.w.Close()
}
