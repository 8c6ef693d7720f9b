// Package catalog implements the product resource handlers for each API
// version on top of a shared product store.
//
// V1 is the legacy contract: three fields and no rules beyond id
// consistency. V2 adds descriptive fields, stock rules and audit
// timestamps. Both versions read and write the canonical model.Product
// through a Projector, so a store may back one version or both.
package catalog

import (
	"time"

	"github.com/fairyhunter13/versioned-product-api/internal/model"
	"github.com/fairyhunter13/versioned-product-api/internal/version"
)

// Publisher receives an event for every successful mutation.
type Publisher interface {
	Publish(ev model.Event)
}

type nopPublisher struct{}

func (nopPublisher) Publish(model.Event) {}

type options struct {
	now func() time.Time
	pub Publisher
}

// Option configures a handler.
type Option func(*options)

// WithClock overrides the time source used for audit timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithPublisher sets where change events go.
func WithPublisher(p Publisher) Option {
	return func(o *options) { o.pub = p }
}

func newOptions(opts []Option) options {
	o := options{
		now: func() time.Time { return time.Now().UTC() },
		pub: nopPublisher{},
	}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// touch returns the modification time for an entity last modified at prev.
// It never moves backwards.
func (o options) touch(prev time.Time) time.Time {
	now := o.now()
	if now.Before(prev) {
		return prev
	}
	return now
}

func (o options) publish(kind model.EventKind, v version.Version, p model.Product, delta int, at time.Time) {
	o.pub.Publish(model.Event{
		Kind:       kind,
		ProductID:  p.ID,
		APIVersion: v.String(),
		Stock:      p.StockQuantity,
		StockDelta: delta,
		OccurredAt: at,
	})
}
