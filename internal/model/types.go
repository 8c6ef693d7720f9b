// Package model defines domain types used by the service.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Prices go over the wire as JSON numbers, matching the published contract.
	decimal.MarshalJSONWithoutQuotes = true
}

// Product is the canonical product entity. Every API version reads and
// writes a projection of it.
type Product struct {
	ID               int
	Name             string
	Price            decimal.Decimal
	Description      string
	Category         string
	StockQuantity    int
	CreatedDate      time.Time
	LastModifiedDate time.Time
}

// ProductV1 is the V1 wire shape.
type ProductV1 struct {
	ID    int             `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// ProductV2 is the V2 wire shape.
type ProductV2 struct {
	ID               int             `json:"id"`
	Name             string          `json:"name"`
	Price            decimal.Decimal `json:"price"`
	Description      string          `json:"description"`
	Category         string          `json:"category"`
	StockQuantity    int             `json:"stockQuantity"`
	CreatedDate      time.Time       `json:"createdDate"`
	LastModifiedDate time.Time       `json:"lastModifiedDate"`
}
