package audit

import (
	"context"
	"sync"
	"time"
)

// AsyncOptions configures batching for the async writer.
type AsyncOptions struct {
	BufferSize     int           // records queued in memory before falling back to sync writes
	BatchSize      int           // target records per storage batch
	BatchTimeout   time.Duration // max wait for a partial batch
	StorageTimeout time.Duration // per-batch storage timeout
}

// BatchStorage persists audit records in bulk. Batches must be atomic:
// all records stored or none.
type BatchStorage interface {
	StoreBatch(ctx context.Context, recs []Record) error
}

// AsyncWriter is a Storage that batches records through a background
// worker. When the buffer is full it writes synchronously instead of
// dropping - audit completeness wins over latency.
type AsyncWriter struct {
	batch   BatchStorage
	queue   chan pending
	done    chan struct{}
	wg      sync.WaitGroup
	options AsyncOptions
}

type pending struct {
	rec    Record
	result chan error
}

// NewAsyncWriter creates an async writer over batch storage. The
// returned close function flushes outstanding records and must be
// called on shutdown.
func NewAsyncWriter(batch BatchStorage, opts AsyncOptions) (*AsyncWriter, func(context.Context) error) {
	if batch == nil {
		panic("audit: batch storage cannot be nil")
	}

	if opts.BufferSize == 0 {
		opts.BufferSize = 1000
	}
	if opts.BatchSize == 0 {
		opts.BatchSize = 100
	}
	if opts.BatchTimeout == 0 {
		opts.BatchTimeout = 100 * time.Millisecond
	}
	if opts.StorageTimeout == 0 {
		opts.StorageTimeout = 5 * time.Second
	}

	w := &AsyncWriter{
		batch:   batch,
		queue:   make(chan pending, opts.BufferSize),
		done:    make(chan struct{}),
		options: opts,
	}

	w.wg.Add(1)
	go w.worker()

	return w, w.Close
}

// Store queues the record and waits for its batch to be written, so
// callers still get at-least-once confirmation.
func (w *AsyncWriter) Store(ctx context.Context, rec Record) error {
	select {
	case <-w.done:
		return ErrStorageClosed
	default:
	}

	result := make(chan error, 1)

	select {
	case w.queue <- pending{rec: rec, result: result}:
		select {
		case err := <-result:
			return err
		case <-ctx.Done():
			return ctx.Err()
		}
	case <-ctx.Done():
		return ctx.Err()
	case <-w.done:
		return ErrStorageClosed
	default:
		// Buffer full: bypass batching rather than lose the record.
		return w.batch.StoreBatch(ctx, []Record{rec})
	}
}

func (w *AsyncWriter) worker() {
	defer w.wg.Done()

	recs := make([]Record, 0, w.options.BatchSize)
	waiters := make([]chan error, 0, w.options.BatchSize)
	ticker := time.NewTicker(w.options.BatchTimeout)
	defer ticker.Stop()

	flush := func() {
		if len(recs) == 0 {
			return
		}
		// Storage gets its own deadline so a cancelled request context
		// cannot abandon records already accepted into a batch.
		ctx, cancel := context.WithTimeout(context.Background(), w.options.StorageTimeout)
		err := w.batch.StoreBatch(ctx, recs)
		cancel()

		for _, ch := range waiters {
			ch <- err
		}
		recs = recs[:0]
		waiters = waiters[:0]
	}

	for {
		select {
		case p := <-w.queue:
			recs = append(recs, p.rec)
			waiters = append(waiters, p.result)
			if len(recs) >= w.options.BatchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-w.done:
			// Drain whatever is still queued before exiting.
			for {
				select {
				case p := <-w.queue:
					recs = append(recs, p.rec)
					waiters = append(waiters, p.result)
				default:
					flush()
					return
				}
			}
		}
	}
}

// Close stops the worker and flushes outstanding records.
func (w *AsyncWriter) Close(ctx context.Context) error {
	close(w.done)

	finished := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(finished)
	}()

	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
