package queue

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fairyhunter13/versioned-product-api/internal/model"
)

const brokerTick = 50 * time.Millisecond

// Queue buffers change events without ever blocking the publisher. A broker
// goroutine moves the backlog into a bounded channel read by workers.
type Queue struct {
	mu      sync.Mutex
	backlog []model.Event
	wake    chan struct{}
	out     chan model.Event
	closed  atomic.Bool

	enqueued  atomic.Uint64
	processed atomic.Uint64
}

// Stats is a point-in-time view of the queue counters.
type Stats struct {
	Enqueued  uint64 `json:"events_enqueued"`
	Processed uint64 `json:"events_processed"`
	Backlog   int    `json:"backlog_size"`
	Depth     int    `json:"queue_depth"`
}

// New creates a Queue whose worker channel holds outBuffer events.
func New(outBuffer int) *Queue {
	if outBuffer <= 0 {
		outBuffer = 64
	}
	return &Queue{
		wake: make(chan struct{}, 1),
		out:  make(chan model.Event, outBuffer),
	}
}

// Start runs the broker until ctx is done.
func (q *Queue) Start(ctx context.Context) {
	go q.broker(ctx)
}

func (q *Queue) broker(ctx context.Context) {
	ticker := time.NewTicker(brokerTick)
	defer ticker.Stop()
	for {
		q.flush()
		select {
		case <-ctx.Done():
			return
		case <-q.wake:
		case <-ticker.C:
		}
	}
}

// flush moves as much backlog as fits into the worker channel.
func (q *Queue) flush() {
	q.mu.Lock()
	defer q.mu.Unlock()
	n := 0
	for n < len(q.backlog) && len(q.out) < cap(q.out) {
		q.out <- q.backlog[n]
		n++
	}
	q.backlog = q.backlog[n:]
}

// Enqueue appends ev to the backlog. It reports false once intake is closed.
func (q *Queue) Enqueue(ev model.Event) bool {
	if q.closed.Load() {
		return false
	}
	q.enqueued.Add(1)
	q.mu.Lock()
	q.backlog = append(q.backlog, ev)
	q.mu.Unlock()
	select {
	case q.wake <- struct{}{}:
	default:
	}
	return true
}

// Out is read by workers.
func (q *Queue) Out() <-chan model.Event { return q.out }

// Done marks one event as handled.
func (q *Queue) Done() { q.processed.Add(1) }

func (q *Queue) Stats() Stats {
	q.mu.Lock()
	backlog := len(q.backlog)
	q.mu.Unlock()
	return Stats{
		Enqueued:  q.enqueued.Load(),
		Processed: q.processed.Load(),
		Backlog:   backlog,
		Depth:     backlog + len(q.out),
	}
}

// CloseIntake makes every later Enqueue fail.
func (q *Queue) CloseIntake() { q.closed.Store(true) }

func (q *Queue) IsClosed() bool { return q.closed.Load() }
