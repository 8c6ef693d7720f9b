package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/fairyhunter13/versioned-product-api/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type collectSink struct {
	mu     sync.Mutex
	events []model.Event
}

func (c *collectSink) Record(ev model.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, ev)
}

func (c *collectSink) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.events)
}

func TestQueueNonBlockingEnqueue(t *testing.T) {
	q := New(1)
	for i := 0; i < 1000; i++ {
		require.True(t, q.Enqueue(model.Event{ProductID: i}), "enqueue %d", i)
	}
	st := q.Stats()
	assert.Equal(t, uint64(1000), st.Enqueued)
	assert.Equal(t, 1000, st.Backlog, "no broker running")
}

func TestQueueCloseIntake(t *testing.T) {
	q := New(1)
	q.CloseIntake()
	assert.True(t, q.IsClosed())
	assert.False(t, q.Enqueue(model.Event{ProductID: 1}))
	assert.Equal(t, uint64(0), q.Stats().Enqueued)
}

func TestManagerDrainsIntoSink(t *testing.T) {
	sink := &collectSink{}
	mgr := NewManager(New(4), sink, 3)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	mgr.Start(ctx)
	defer mgr.Stop()

	for i := 0; i < 100; i++ {
		mgr.Publish(model.Event{Kind: model.EventProductCreated, ProductID: i})
	}
	drainCtx, drainCancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer drainCancel()
	require.True(t, mgr.DrainUntil(drainCtx), "drain timeout")
	assert.Equal(t, 100, sink.len())

	seen := map[uint64]bool{}
	sink.mu.Lock()
	for _, ev := range sink.events {
		assert.NotZero(t, ev.Sequence)
		assert.False(t, seen[ev.Sequence], "duplicate sequence %d", ev.Sequence)
		seen[ev.Sequence] = true
	}
	sink.mu.Unlock()
	assert.Equal(t, 3, mgr.WorkerCount())
}

func TestManagerPublishAfterClose(t *testing.T) {
	sink := &collectSink{}
	mgr := NewManager(New(4), sink, 1)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	mgr.Start(ctx)
	defer mgr.Stop()

	mgr.CloseIntake()
	assert.True(t, mgr.IsShuttingDown())
	mgr.Publish(model.Event{ProductID: 1})

	drainCtx, drainCancel := context.WithTimeout(context.Background(), time.Second)
	defer drainCancel()
	require.True(t, mgr.DrainUntil(drainCtx))
	assert.Equal(t, 0, sink.len())
}

func TestSequencer(t *testing.T) {
	var s Sequencer
	assert.Equal(t, uint64(1), s.Next())
	assert.Equal(t, uint64(2), s.Next())
}
