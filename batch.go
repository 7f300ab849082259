package influxc

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// BatchStats tracks batching writer statistics.
type BatchStats struct {
	PointsQueued   uint64    `json:"points_queued"`
	PointsWritten  uint64    `json:"points_written"`
	PointsDropped  uint64    `json:"points_dropped"`
	BatchesSent    uint64    `json:"batches_sent"`
	BatchesFailed  uint64    `json:"batches_failed"`
	BatchesSpooled uint64    `json:"batches_spooled"`
	LastFlushTime  time.Time `json:"last_flush_time"`
	LastError      string    `json:"last_error,omitempty"`
	QueueDepth     int       `json:"queue_depth"`
}

// BatchWriter queues points and writes them in the background in batches.
// The writer makes one delivery attempt per batch; failed batches go to the
// spool when one is configured, otherwise they are dropped and counted.
type BatchWriter struct {
	client *Client
	params WriteParams
	config BatchConfig
	spool  *Spool

	queue chan Point
	stats BatchStats

	mu     sync.RWMutex
	done   chan struct{}
	wg     sync.WaitGroup
	closed bool
}

// NewBatchWriter creates a batching writer delivering through client with
// the given write parameters. spool may be nil.
func NewBatchWriter(client *Client, params WriteParams, config BatchConfig, spool *Spool) (*BatchWriter, error) {
	if params.Database.IsZero() {
		return nil, newBadRequestError("batch writer requires a database", "", 0, ErrEmptyIdentifier)
	}
	if config.BatchSize <= 0 {
		config.BatchSize = 1000
	}
	if config.FlushInterval <= 0 {
		config.FlushInterval = 10 * time.Second
	}
	if config.MaxQueueSize <= 0 {
		config.MaxQueueSize = 100_000
	}
	w := &BatchWriter{
		client: client,
		params: params,
		config: config,
		spool:  spool,
		queue:  make(chan Point, config.MaxQueueSize),
		done:   make(chan struct{}),
	}
	w.wg.Add(1)
	go w.flushLoop()
	return w, nil
}

// Enqueue adds a point to the queue. It fails when the queue is full or the
// writer is stopped; it never blocks.
func (w *BatchWriter) Enqueue(p Point) error {
	// The send happens under the read lock: Stop takes the write lock
	// before its final drain, so a point admitted here is always flushed.
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.closed {
		return ErrClosed
	}
	select {
	case w.queue <- p:
		atomic.AddUint64(&w.stats.PointsQueued, 1)
		return nil
	default:
		atomic.AddUint64(&w.stats.PointsDropped, 1)
		return newBadRequestError("batch queue full", "", 0, nil)
	}
}

// Flush synchronously drains and delivers everything currently queued.
func (w *BatchWriter) Flush(ctx context.Context) error {
	var lastErr error
	for {
		batch := w.collectBatch()
		if len(batch) == 0 {
			return lastErr
		}
		if err := w.sendBatch(ctx, batch); err != nil {
			lastErr = err
		}
	}
}

// Stop shuts the writer down, delivering any remaining queued points.
func (w *BatchWriter) Stop() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return ErrClosed
	}
	w.closed = true
	close(w.done)
	w.mu.Unlock()

	w.wg.Wait()
	return w.Flush(context.Background())
}

// Stats returns a snapshot of writer statistics.
func (w *BatchWriter) Stats() BatchStats {
	w.mu.RLock()
	defer w.mu.RUnlock()
	s := BatchStats{
		PointsQueued:   atomic.LoadUint64(&w.stats.PointsQueued),
		PointsWritten:  atomic.LoadUint64(&w.stats.PointsWritten),
		PointsDropped:  atomic.LoadUint64(&w.stats.PointsDropped),
		BatchesSent:    atomic.LoadUint64(&w.stats.BatchesSent),
		BatchesFailed:  atomic.LoadUint64(&w.stats.BatchesFailed),
		BatchesSpooled: atomic.LoadUint64(&w.stats.BatchesSpooled),
		LastFlushTime:  w.stats.LastFlushTime,
		LastError:      w.stats.LastError,
		QueueDepth:     len(w.queue),
	}
	return s
}

func (w *BatchWriter) flushLoop() {
	defer w.wg.Done()
	ticker := time.NewTicker(w.config.FlushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.done:
			return
		case <-ticker.C:
			_ = w.Flush(context.Background())
		}
	}
}

func (w *BatchWriter) collectBatch() []Point {
	batch := make([]Point, 0, w.config.BatchSize)
	for len(batch) < w.config.BatchSize {
		select {
		case p := <-w.queue:
			batch = append(batch, p)
		default:
			return batch
		}
	}
	return batch
}

func (w *BatchWriter) sendBatch(ctx context.Context, points []Point) error {
	lines, err := MarshalLineProtocol(points, w.params.Precision)
	if err != nil {
		// The batch itself is malformed; spooling would replay the same
		// failure forever.
		atomic.AddUint64(&w.stats.BatchesFailed, 1)
		atomic.AddUint64(&w.stats.PointsDropped, uint64(len(points)))
		w.recordError(err.Error())
		return err
	}

	if err := w.client.writeLines(ctx, w.params, lines); err != nil {
		atomic.AddUint64(&w.stats.BatchesFailed, 1)
		w.recordError(err.Error())
		if w.spool != nil {
			if serr := w.spool.Enqueue(w.params, lines); serr == nil {
				atomic.AddUint64(&w.stats.BatchesSpooled, 1)
				return err
			}
		}
		atomic.AddUint64(&w.stats.PointsDropped, uint64(len(points)))
		return err
	}

	atomic.AddUint64(&w.stats.BatchesSent, 1)
	atomic.AddUint64(&w.stats.PointsWritten, uint64(len(points)))
	w.mu.Lock()
	w.stats.LastFlushTime = time.Now()
	w.mu.Unlock()
	return nil
}

func (w *BatchWriter) recordError(msg string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.stats.LastError = msg
}
