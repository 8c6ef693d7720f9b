package catalog

import (
	"github.com/fairyhunter13/versioned-product-api/internal/model"
	"github.com/fairyhunter13/versioned-product-api/internal/store"
	"github.com/fairyhunter13/versioned-product-api/internal/version"
)

// V1 serves the legacy product contract.
type V1 struct {
	st   *store.Store
	proj Projector[model.ProductV1]
	opts options
}

func NewV1(st *store.Store, opts ...Option) *V1 {
	return &V1{st: st, proj: v1Projector{}, opts: newOptions(opts)}
}

func (h *V1) List() []model.ProductV1 {
	return projectAll(h.proj, h.st.List(nil))
}

func (h *V1) Get(id int) (model.ProductV1, error) {
	p, ok := h.st.Get(id)
	if !ok {
		return model.ProductV1{}, wrapID(ErrNotFound, id)
	}
	return h.proj.Project(p), nil
}

// Create stores in under a fresh id. Any id in the body is ignored.
func (h *V1) Create(in model.ProductV1) model.ProductV1 {
	now := h.opts.now()
	p := h.proj.Apply(model.Product{CreatedDate: now, LastModifiedDate: now}, in)
	p = h.st.Insert(p)
	h.opts.publish(model.EventProductCreated, version.V1, p, 0, p.LastModifiedDate)
	return h.proj.Project(p)
}

// Update overwrites the V1 fields of product id.
func (h *V1) Update(id int, in model.ProductV1) error {
	if in.ID != id {
		return invalid(ReasonIDMismatch)
	}
	p, err := h.st.Replace(id, func(cur model.Product) (model.Product, error) {
		next := h.proj.Apply(cur, in)
		next.LastModifiedDate = h.opts.touch(cur.LastModifiedDate)
		return next, nil
	})
	if err != nil {
		return wrapID(err, id)
	}
	h.opts.publish(model.EventProductReplaced, version.V1, p, 0, p.LastModifiedDate)
	return nil
}

// Delete removes product id unconditionally. V1 has no notion of stock, so
// the V2 remaining-stock rule does not apply here.
func (h *V1) Delete(id int) error {
	p, err := h.st.Remove(id, nil)
	if err != nil {
		return wrapID(err, id)
	}
	h.opts.publish(model.EventProductDeleted, version.V1, p, 0, h.opts.now())
	return nil
}
