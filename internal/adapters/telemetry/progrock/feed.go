package progrock

import (
	"errors"
	"io"
	"sync"

	"github.com/vito/progrock"
)

// Feed is a progrock.Writer that queues status updates for a single reader,
// such as a progress view. Updates written before Activate are dropped.
type Feed struct {
	mu     sync.Mutex
	cond   *sync.Cond
	queue  []*progrock.StatusUpdate
	active bool
	closed bool
}

// NewFeed creates an inactive Feed.
func NewFeed() *Feed {
	f := &Feed{}
	f.cond = sync.NewCond(&f.mu)
	return f
}

// Activate starts queueing updates.
func (f *Feed) Activate() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.active = true
}

// WriteStatus implements progrock.Writer.
func (f *Feed) WriteStatus(update *progrock.StatusUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.active || f.closed {
		return nil
	}
	f.queue = append(f.queue, update)
	f.cond.Signal()
	return nil
}

// Read blocks until an update is available. It returns io.EOF once the feed
// is closed and drained.
func (f *Feed) Read() (*progrock.StatusUpdate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for len(f.queue) == 0 && !f.closed {
		f.cond.Wait()
	}
	if len(f.queue) == 0 {
		return nil, io.EOF
	}
	update := f.queue[0]
	f.queue[0] = nil
	f.queue = f.queue[1:]
	return update, nil
}

// Close implements progrock.Writer. Pending updates can still be read.
func (f *Feed) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.closed = true
	f.cond.Broadcast()
	return nil
}

// multiWriter fans status updates out to several writers.
type multiWriter []progrock.Writer

func (ws multiWriter) WriteStatus(update *progrock.StatusUpdate) error {
	var errs []error
	for _, w := range ws {
		if err := w.WriteStatus(update); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (ws multiWriter) Close() error {
	var errs []error
	for _, w := range ws {
		if err := w.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
