package catalog

import (
	"strings"

	"github.com/fairyhunter13/versioned-product-api/internal/model"
	"github.com/fairyhunter13/versioned-product-api/internal/store"
	"github.com/fairyhunter13/versioned-product-api/internal/version"
)

// V2 serves the extended product contract with stock rules and audit
// timestamps.
//
// Per product the lifecycle is Created, then any number of full updates and
// stock adjustments, then Deleted once stock is back to zero. Deleted ids
// are never handed out again.
type V2 struct {
	st   *store.Store
	proj Projector[model.ProductV2]
	opts options
}

func NewV2(st *store.Store, opts ...Option) *V2 {
	return &V2{st: st, proj: v2Projector{}, opts: newOptions(opts)}
}

// List returns all products, or only those whose category equals category
// ignoring case. A blank category means no filter.
func (h *V2) List(category string) []model.ProductV2 {
	var keep func(model.Product) bool
	if strings.TrimSpace(category) != "" {
		keep = func(p model.Product) bool { return strings.EqualFold(p.Category, category) }
	}
	return projectAll(h.proj, h.st.List(keep))
}

func (h *V2) Get(id int) (model.ProductV2, error) {
	p, ok := h.st.Get(id)
	if !ok {
		return model.ProductV2{}, wrapID(ErrNotFound, id)
	}
	return h.proj.Project(p), nil
}

// Create validates and stores in under a fresh id with both timestamps set
// to now. Body id and timestamps are ignored.
func (h *V2) Create(in model.ProductV2) (model.ProductV2, error) {
	if in.StockQuantity < 0 {
		return model.ProductV2{}, invalid(ReasonNegativeStock)
	}
	now := h.opts.now()
	p := h.proj.Apply(model.Product{CreatedDate: now, LastModifiedDate: now}, in)
	p = h.st.Insert(p)
	h.opts.publish(model.EventProductCreated, version.V2, p, 0, now)
	return h.proj.Project(p), nil
}

// Update fully replaces product id. The original createdDate is kept.
func (h *V2) Update(id int, in model.ProductV2) error {
	if in.ID != id {
		return invalid(ReasonIDMismatch)
	}
	p, err := h.st.Replace(id, func(cur model.Product) (model.Product, error) {
		if in.StockQuantity < 0 {
			return cur, invalid(ReasonNegativeStock)
		}
		next := h.proj.Apply(cur, in)
		next.CreatedDate = cur.CreatedDate
		next.LastModifiedDate = h.opts.touch(cur.LastModifiedDate)
		return next, nil
	})
	if err != nil {
		return wrapID(err, id)
	}
	h.opts.publish(model.EventProductReplaced, version.V2, p, 0, p.LastModifiedDate)
	return nil
}

// Delete removes product id once its stock is zero.
func (h *V2) Delete(id int) error {
	p, err := h.st.Remove(id, func(cur model.Product) error {
		if cur.StockQuantity > 0 {
			return forbidden(ReasonStockRemaining)
		}
		return nil
	})
	if err != nil {
		return wrapID(err, id)
	}
	h.opts.publish(model.EventProductDeleted, version.V2, p, 0, h.opts.now())
	return nil
}

// AdjustStock adds adj.Delta to the stock of product id and returns the
// updated product. The stock never drops below zero.
func (h *V2) AdjustStock(id int, adj model.StockAdjustment) (model.ProductV2, error) {
	p, err := h.st.Replace(id, func(cur model.Product) (model.Product, error) {
		if cur.StockQuantity+adj.Delta < 0 {
			return cur, invalid(ReasonStockBelowZero)
		}
		cur.StockQuantity += adj.Delta
		cur.LastModifiedDate = h.opts.touch(cur.LastModifiedDate)
		return cur, nil
	})
	if err != nil {
		return model.ProductV2{}, wrapID(err, id)
	}
	h.opts.publish(model.EventProductStockAdjusted, version.V2, p, adj.Delta, p.LastModifiedDate)
	return h.proj.Project(p), nil
}
