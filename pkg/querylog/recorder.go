package querylog

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// Recorder writes records to a Store asynchronously so the request pipeline
// never blocks on storage. When the buffer is full, records are dropped and
// counted rather than stalling evaluation.
type Recorder struct {
	store   Store
	records chan *Record
	dropped atomic.Int64
	logger  *slog.Logger

	closeOnce sync.Once
	done      chan struct{}
	wg        sync.WaitGroup
}

// NewRecorder starts a recorder draining into store with the given buffer
// size.
func NewRecorder(store Store, bufferSize int) *Recorder {
	if bufferSize <= 0 {
		bufferSize = 1024
	}

	r := &Recorder{
		store:   store,
		records: make(chan *Record, bufferSize),
		logger:  slog.Default().With("component", "querylog.recorder"),
		done:    make(chan struct{}),
	}

	r.wg.Add(1)
	go r.drain()

	return r
}

// Record enqueues a record for writing. It never blocks; a full buffer
// drops the record.
func (r *Recorder) Record(rec *Record) {
	select {
	case r.records <- rec:
	default:
		if r.dropped.Add(1)%1000 == 1 {
			r.logger.Warn("query log buffer full, dropping records",
				"dropped_total", r.dropped.Load())
		}
	}
}

// Dropped returns the number of records dropped due to a full buffer.
func (r *Recorder) Dropped() int64 {
	return r.dropped.Load()
}

// Close stops the recorder after flushing any buffered records.
func (r *Recorder) Close() error {
	r.closeOnce.Do(func() {
		close(r.done)
		r.wg.Wait()
	})
	return nil
}

func (r *Recorder) drain() {
	defer r.wg.Done()

	for {
		select {
		case rec := <-r.records:
			r.write(rec)
		case <-r.done:
			// Flush whatever is still buffered.
			for {
				select {
				case rec := <-r.records:
					r.write(rec)
				default:
					return
				}
			}
		}
	}
}

func (r *Recorder) write(rec *Record) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := r.store.Write(ctx, rec); err != nil {
		r.logger.Error("failed to write query log record",
			"record_id", rec.ID, "error", err)
	}
}
