// Package queue carries product change events from request handlers to a
// pool of background workers.
package queue

import (
	"context"
	"sync"
	"time"

	"github.com/fairyhunter13/versioned-product-api/internal/model"
	"github.com/fairyhunter13/versioned-product-api/internal/obs"
)

// Sink consumes events on worker goroutines.
type Sink interface {
	Record(ev model.Event)
}

// Manager owns the queue, assigns sequence numbers and runs the workers.
type Manager struct {
	q       *Queue
	sink    Sink
	seq     Sequencer
	workers int

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewManager returns a Manager running workers goroutines into sink.
func NewManager(q *Queue, sink Sink, workers int) *Manager {
	if workers <= 0 {
		workers = 1
	}
	return &Manager{q: q, sink: sink, workers: workers}
}

// Start launches the broker and workers in the background.
func (m *Manager) Start(parent context.Context) {
	ctx, cancel := context.WithCancel(parent)
	m.cancel = cancel
	m.q.Start(ctx)
	for i := 0; i < m.workers; i++ {
		m.wg.Add(1)
		go m.worker(ctx)
	}
	obs.Logger.Info("change_feed_started", "worker_count", m.workers)
}

// Stop cancels the broker and waits for workers to exit.
func (m *Manager) Stop() {
	if m.cancel != nil {
		m.cancel()
	}
	m.wg.Wait()
}

func (m *Manager) worker(ctx context.Context) {
	defer m.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-m.q.Out():
			m.sink.Record(ev)
			m.q.Done()
		}
	}
}

// Publish stamps ev with the next sequence number and queues it. Events
// published after CloseIntake are dropped.
func (m *Manager) Publish(ev model.Event) {
	ev.Sequence = m.seq.Next()
	if !m.q.Enqueue(ev) {
		obs.Logger.Warn("change_event_dropped",
			"kind", ev.Kind,
			"product_id", ev.ProductID,
			"sequence", ev.Sequence,
		)
	}
}

func (m *Manager) Stats() Stats { return m.q.Stats() }

func (m *Manager) WorkerCount() int { return m.workers }

// CloseIntake stops accepting events.
func (m *Manager) CloseIntake() { m.q.CloseIntake() }

func (m *Manager) IsShuttingDown() bool { return m.q.IsClosed() }

// DrainUntil blocks until every queued event has been handled or ctx is done.
func (m *Manager) DrainUntil(ctx context.Context) bool {
	for {
		st := m.q.Stats()
		if st.Depth == 0 && st.Enqueued == st.Processed {
			return true
		}
		select {
		case <-ctx.Done():
			return false
		case <-time.After(brokerTick):
		}
	}
}
