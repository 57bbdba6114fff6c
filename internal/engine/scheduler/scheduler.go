// Package scheduler reads image metadata for many files in parallel.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"go.trai.ch/darkmagic/internal/core/domain"
	"go.trai.ch/darkmagic/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// FileStatus represents the status of a file within a run.
type FileStatus string

const (
	// StatusPending indicates the file is waiting to be read.
	StatusPending FileStatus = "Pending"
	// StatusRunning indicates the file is currently being read.
	StatusRunning FileStatus = "Running"
	// StatusCompleted indicates the metadata was extracted from the file.
	StatusCompleted FileStatus = "Completed"
	// StatusFailed indicates the file could not be read.
	StatusFailed FileStatus = "Failed"
	// StatusCached indicates the metadata came from the cache.
	StatusCached FileStatus = "Cached"
)

// Options control a single run.
type Options struct {
	// Parallelism bounds the number of files read at once. Zero or less means one per CPU.
	Parallelism int
	// ReadCache allows metadata to be served from the store when the content hash matches.
	ReadCache bool
	// WriteCache stores freshly read metadata.
	WriteCache bool
}

// Scheduler manages reading metadata for a list of files.
type Scheduler struct {
	reader    ports.MetadataReader
	hasher    ports.Hasher
	telemetry ports.Telemetry
	logger    ports.Logger
	now       func() time.Time

	mu         sync.RWMutex
	fileStatus map[string]FileStatus
}

// NewScheduler creates a new Scheduler.
func NewScheduler(
	reader ports.MetadataReader,
	hasher ports.Hasher,
	telemetry ports.Telemetry,
	logger ports.Logger,
) *Scheduler {
	return &Scheduler{
		reader:     reader,
		hasher:     hasher,
		telemetry:  telemetry,
		logger:     logger,
		now:        time.Now,
		fileStatus: make(map[string]FileStatus),
	}
}

func (s *Scheduler) updateStatus(path string, status FileStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fileStatus[path] = status
}

// Run reads every path and returns one result per path, in input order.
//
// A failing file does not stop the others. Once ctx is done no new files are
// started and the remaining results carry the context error. store may be nil,
// which disables caching. The returned error joins domain.ErrExtractionFailed
// with every per-file error.
func (s *Scheduler) Run(
	ctx context.Context,
	paths []string,
	store ports.MetadataStore,
	opts Options,
) ([]domain.Result, error) {
	results := make([]domain.Result, len(paths))
	started := make([]bool, len(paths))
	for i, path := range paths {
		results[i].Path = path
		s.updateStatus(path, StatusPending)
	}

	parallelism := opts.Parallelism
	if parallelism <= 0 {
		parallelism = runtime.NumCPU()
	}
	s.logger.Debug(fmt.Sprintf("reading %d files, %d at a time", len(paths), parallelism))

	var g errgroup.Group
	g.SetLimit(parallelism)

	for i, path := range paths {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			started[i] = true
			results[i] = s.process(ctx, path, store, opts)
			return nil
		})
	}
	_ = g.Wait()

	var errs []error
	for i := range results {
		if !started[i] {
			results[i].Err = ctx.Err()
			continue
		}
		if results[i].Err != nil {
			errs = append(errs, results[i].Err)
		}
	}
	if err := ctx.Err(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return results, errors.Join(append([]error{domain.ErrExtractionFailed}, errs...)...)
	}
	return results, nil
}

func (s *Scheduler) process(ctx context.Context, path string, store ports.MetadataStore, opts Options) domain.Result {
	s.updateStatus(path, StatusRunning)
	ctx, vertex := s.telemetry.Record(ctx, path)

	md, cached, err := s.read(ctx, vertex, path, store, opts)
	vertex.Complete(err)

	switch {
	case err != nil:
		s.updateStatus(path, StatusFailed)
	case cached:
		s.updateStatus(path, StatusCached)
	default:
		s.updateStatus(path, StatusCompleted)
	}

	return domain.Result{Path: path, Metadata: md, Cached: cached, Err: err}
}

func (s *Scheduler) read(
	ctx context.Context,
	vertex ports.Vertex,
	path string,
	store ports.MetadataStore,
	opts Options,
) (*domain.ImageMetadata, bool, error) {
	if store == nil || (!opts.ReadCache && !opts.WriteCache) {
		md, err := s.reader.Read(ctx, path)
		return md, false, err
	}

	hash, err := s.hasher.ComputeFileHash(path)
	if err != nil {
		return nil, false, err
	}
	_, _ = fmt.Fprintf(vertex.Stdout(), "content hash %s\n", hash)

	if opts.ReadCache {
		if entry := s.checkCacheHit(store, path, hash); entry != nil {
			vertex.Cached()
			return &entry.Metadata, true, nil
		}
	}

	md, err := s.reader.Read(ctx, path)
	if err != nil {
		return nil, false, err
	}

	if opts.WriteCache {
		s.updateCache(store, path, hash, md)
	}
	return md, false, nil
}

// checkCacheHit returns the stored entry when it was recorded for the same content.
func (s *Scheduler) checkCacheHit(store ports.MetadataStore, path, hash string) *domain.CacheEntry {
	entry, err := store.Get(path)
	if err != nil {
		s.logger.Warn(fmt.Sprintf("failed to look up %s in metadata cache: %v", path, err))
		return nil
	}
	if entry == nil || entry.ContentHash != hash {
		return nil
	}
	return entry
}

// updateCache stores md. Failures are logged, not returned.
func (s *Scheduler) updateCache(store ports.MetadataStore, path, hash string, md *domain.ImageMetadata) {
	entry := domain.CacheEntry{
		Path:        path,
		ContentHash: hash,
		Metadata:    *md,
		Timestamp:   s.now(),
	}
	if err := store.Put(entry); err != nil {
		s.logger.Warn(zerr.With(zerr.Wrap(err, "failed to update metadata cache"), "path", path).Error())
	}
}
