// Package store holds products in memory for the lifetime of the process.
package store

import (
	"sync"

	"github.com/fairyhunter13/versioned-product-api/internal/model"
	"github.com/pkg/errors"
)

// ErrNotFound is returned when no product has the requested id.
var ErrNotFound = errors.New("product not found")

// Store is an ordered collection of products keyed by id. Every method is
// atomic with respect to the others.
type Store struct {
	mu     sync.RWMutex
	lastID int
	order  []int
	m      map[int]model.Product
}

func New() *Store {
	return &Store{m: make(map[int]model.Product)}
}

func (s *Store) Get(id int) (model.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.m[id]
	return p, ok
}

// List returns products in insertion order. A nil keep returns everything.
func (s *Store) List(keep func(model.Product) bool) []model.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Product, 0, len(s.order))
	for _, id := range s.order {
		p := s.m[id]
		if keep == nil || keep(p) {
			out = append(out, p)
		}
	}
	return out
}

// Insert assigns the next id to p, appends it and returns the stored value.
// Ids are never handed out twice, even after the product that held one is
// removed.
func (s *Store) Insert(p model.Product) model.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastID++
	p.ID = s.lastID
	s.m[p.ID] = p
	s.order = append(s.order, p.ID)
	return p
}

// Replace computes a new value for id from the current one and stores it in
// place. An error from next leaves the entry untouched and is returned as is.
func (s *Store) Replace(id int, next func(cur model.Product) (model.Product, error)) (model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.m[id]
	if !ok {
		return model.Product{}, errors.WithStack(ErrNotFound)
	}
	p, err := next(cur)
	if err != nil {
		return cur, err
	}
	p.ID = id
	s.m[id] = p
	return p, nil
}

// Remove deletes id. A non-nil guard can veto the removal by returning an error.
func (s *Store) Remove(id int, guard func(model.Product) error) (model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.m[id]
	if !ok {
		return model.Product{}, errors.WithStack(ErrNotFound)
	}
	if guard != nil {
		if err := guard(p); err != nil {
			return p, err
		}
	}
	delete(s.m, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return p, nil
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.m)
}
