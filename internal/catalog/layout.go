package catalog

import (
	"strings"
	"time"

	"github.com/fairyhunter13/versioned-product-api/internal/model"
	"github.com/fairyhunter13/versioned-product-api/internal/store"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// Layout decides whether API versions share one store.
type Layout string

const (
	// LayoutShared backs every version with one canonical store.
	LayoutShared Layout = "shared"
	// LayoutSplit gives each version its own independently seeded store.
	LayoutSplit Layout = "split"
)

func ParseLayout(s string) (Layout, error) {
	switch l := Layout(strings.ToLower(strings.TrimSpace(s))); l {
	case LayoutShared, LayoutSplit:
		return l, nil
	}
	return "", errors.Errorf("unknown store layout %q (want %q or %q)", s, LayoutShared, LayoutSplit)
}

// Stores holds the store behind each version. In the shared layout both
// fields point at the same store.
type Stores struct {
	V1 *store.Store
	V2 *store.Store
}

func NewStores(l Layout) Stores {
	if l == LayoutSplit {
		return Stores{V1: store.New(), V2: store.New()}
	}
	st := store.New()
	return Stores{V1: st, V2: st}
}

func (s Stores) Shared() bool { return s.V1 == s.V2 }

// Seed loads the starter catalog. A shared store only receives the V2
// products since they carry every field.
func (s Stores) Seed(now time.Time) {
	if !s.Shared() {
		s.V1.Insert(model.Product{
			Name:             "Classic Product",
			Price:            decimal.RequireFromString("19.99"),
			CreatedDate:      now,
			LastModifiedDate: now,
		})
	}
	s.V2.Insert(model.Product{
		Name:             "Enhanced Product",
		Price:            decimal.RequireFromString("29.99"),
		Description:      "An enhanced version of our classic product",
		Category:         "Premium",
		StockQuantity:    100,
		CreatedDate:      now,
		LastModifiedDate: now,
	})
	s.V2.Insert(model.Product{
		Name:             "Premium Product",
		Price:            decimal.RequireFromString("39.99"),
		Description:      "Our premium offering with advanced features",
		Category:         "Luxury",
		StockQuantity:    50,
		CreatedDate:      now,
		LastModifiedDate: now,
	})
}
