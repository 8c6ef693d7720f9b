package model

import "time"

// EventKind names a product change.
type EventKind string

const (
	EventProductCreated       EventKind = "product_created"
	EventProductReplaced      EventKind = "product_replaced"
	EventProductStockAdjusted EventKind = "product_stock_adjusted"
	EventProductDeleted       EventKind = "product_deleted"
)

// Event describes a successful product mutation.
type Event struct {
	Kind       EventKind `json:"kind"`
	ProductID  int       `json:"product_id"`
	APIVersion string    `json:"api_version"`
	Stock      int       `json:"stock"`
	StockDelta int       `json:"stock_delta,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
	Sequence   uint64    `json:"sequence"`
}
