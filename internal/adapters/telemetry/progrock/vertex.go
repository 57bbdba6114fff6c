package progrock

import (
	"io"
	"sync"

	"github.com/vito/progrock"
	"go.trai.ch/darkmagic/internal/core/ports"
)

var _ ports.Vertex = (*Vertex)(nil)

// Vertex is one image file on the progrock tape. It finishes at most once.
type Vertex struct {
	rec *progrock.VertexRecorder

	mu       sync.Mutex
	finished bool
}

func newVertex(rec *progrock.VertexRecorder) *Vertex {
	return &Vertex{rec: rec}
}

// Stdout returns the vertex log stream.
func (v *Vertex) Stdout() io.Writer {
	return v.rec.Stdout()
}

// Cached flags the file as served from the metadata store. Ignored once finished.
func (v *Vertex) Cached() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.finished {
		return
	}
	v.rec.Cached()
}

// Complete finishes the vertex with err. Later calls are ignored.
func (v *Vertex) Complete(err error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.finished {
		return
	}
	v.finished = true
	v.rec.Done(err)
}
