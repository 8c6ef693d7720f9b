package catalog

import "github.com/fairyhunter13/versioned-product-api/internal/model"

// Projector maps the canonical product to one version's wire shape and back.
type Projector[V any] interface {
	// Project renders p in the version's shape.
	Project(p model.Product) V
	// Apply writes the fields the version owns from v onto p. Fields the
	// version does not know about are left alone.
	Apply(p model.Product, v V) model.Product
}

type v1Projector struct{}

func (v1Projector) Project(p model.Product) model.ProductV1 {
	return model.ProductV1{ID: p.ID, Name: p.Name, Price: p.Price}
}

func (v1Projector) Apply(p model.Product, v model.ProductV1) model.Product {
	p.Name = v.Name
	p.Price = v.Price
	return p
}

type v2Projector struct{}

func (v2Projector) Project(p model.Product) model.ProductV2 {
	return model.ProductV2{
		ID:               p.ID,
		Name:             p.Name,
		Price:            p.Price,
		Description:      p.Description,
		Category:         p.Category,
		StockQuantity:    p.StockQuantity,
		CreatedDate:      p.CreatedDate,
		LastModifiedDate: p.LastModifiedDate,
	}
}

// Apply copies the client-writable V2 fields. Timestamps are owned by the
// handler and never taken from the body.
func (v2Projector) Apply(p model.Product, v model.ProductV2) model.Product {
	p.Name = v.Name
	p.Price = v.Price
	p.Description = v.Description
	p.Category = v.Category
	p.StockQuantity = v.StockQuantity
	return p
}

func projectAll[V any](pr Projector[V], ps []model.Product) []V {
	out := make([]V, 0, len(ps))
	for _, p := range ps {
		out = append(out, pr.Project(p))
	}
	return out
}
