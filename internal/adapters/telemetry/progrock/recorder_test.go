package progrock_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vito/progrock"
	dmprogrock "go.trai.ch/darkmagic/internal/adapters/telemetry/progrock"
)

// recordingWriter keeps the latest state of every vertex written to it.
type recordingWriter struct {
	mu       sync.Mutex
	vertices map[string]*progrock.Vertex
	closed   bool
}

func newRecordingWriter() *recordingWriter {
	return &recordingWriter{vertices: make(map[string]*progrock.Vertex)}
}

func (w *recordingWriter) WriteStatus(update *progrock.StatusUpdate) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, v := range update.Vertexes {
		w.vertices[v.Name] = v
	}
	return nil
}

func (w *recordingWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	return nil
}

func (w *recordingWriter) vertex(name string) *progrock.Vertex {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.vertices[name]
}

func TestRecorder_Record(t *testing.T) {
	w := newRecordingWriter()
	recorder := dmprogrock.NewRecorder(w)

	_, read := recorder.Record(context.Background(), "IMG_0001.CR2")
	_, err := read.Stdout().Write([]byte("hash ef46db3751d8e999\n"))
	require.NoError(t, err)
	read.Complete(nil)

	_, cached := recorder.Record(context.Background(), "IMG_0002.CR2")
	cached.Cached()
	cached.Complete(nil)

	_, failed := recorder.Record(context.Background(), "IMG_0003.CR2")
	failed.Complete(errors.New("boom"))

	require.NoError(t, recorder.Close())
	assert.True(t, w.closed)

	v := w.vertex("IMG_0001.CR2")
	require.NotNil(t, v)
	assert.NotNil(t, v.Completed)
	assert.False(t, v.Cached)
	assert.Nil(t, v.Error)

	v = w.vertex("IMG_0002.CR2")
	require.NotNil(t, v)
	assert.True(t, v.Cached)

	v = w.vertex("IMG_0003.CR2")
	require.NotNil(t, v)
	require.NotNil(t, v.Error)
	assert.Equal(t, "boom", *v.Error)
}

func TestVertex_FinishesOnce(t *testing.T) {
	w := newRecordingWriter()
	recorder := dmprogrock.NewRecorder(w)

	_, v := recorder.Record(context.Background(), "IMG_0004.CR2")
	v.Complete(errors.New("truncated IFD"))
	v.Complete(nil)
	v.Cached()
	require.NoError(t, recorder.Close())

	got := w.vertex("IMG_0004.CR2")
	require.NotNil(t, got)
	require.NotNil(t, got.Error)
	assert.Equal(t, "truncated IFD", *got.Error)
	assert.False(t, got.Cached)
}
