package queue

import "sync/atomic"

// Sequencer numbers change events in publication order, starting at 1.
type Sequencer struct{ n atomic.Uint64 }

func (s *Sequencer) Next() uint64 { return s.n.Add(1) }
