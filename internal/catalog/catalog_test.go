package catalog

import (
	"sync"
	"testing"
	"time"

	"github.com/fairyhunter13/versioned-product-api/internal/model"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tickingClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *tickingClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Second)
	return c.t
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []model.Event
}

func (r *recordingPublisher) Publish(ev model.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recordingPublisher) kinds() []model.EventKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.EventKind, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Kind)
	}
	return out
}

func setup(t *testing.T, layout Layout, seed bool) (*V1, *V2, Stores, *recordingPublisher) {
	t.Helper()
	clock := &tickingClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	pub := &recordingPublisher{}
	stores := NewStores(layout)
	if seed {
		stores.Seed(clock.Now())
	}
	v1 := NewV1(stores.V1, WithClock(clock.Now), WithPublisher(pub))
	v2 := NewV2(stores.V2, WithClock(clock.Now), WithPublisher(pub))
	return v1, v2, stores, pub
}

func price(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func requireValidation(t *testing.T, err error, reason string) {
	t.Helper()
	var ve *ValidationError
	require.True(t, errors.As(err, &ve), "want ValidationError, got %v", err)
	assert.Equal(t, reason, ve.Reason)
}

func TestV2CreateRejectsNegativeStock(t *testing.T) {
	_, v2, stores, pub := setup(t, LayoutShared, false)
	_, err := v2.Create(model.ProductV2{Name: "X", Price: price("1"), StockQuantity: -5})
	requireValidation(t, err, ReasonNegativeStock)
	assert.Equal(t, 0, stores.V2.Len(), "store unchanged")
	assert.Empty(t, pub.kinds())
}

func TestV2CreateAssignsIDAndTimestamps(t *testing.T) {
	_, v2, _, pub := setup(t, LayoutShared, true)
	in := model.ProductV2{
		ID:            77,
		Name:          "X",
		Price:         price("9.99"),
		StockQuantity: 10,
		CreatedDate:   time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	got, err := v2.Create(in)
	require.NoError(t, err)
	assert.Equal(t, 3, got.ID)
	assert.Equal(t, got.CreatedDate, got.LastModifiedDate)
	assert.NotEqual(t, in.CreatedDate, got.CreatedDate, "client timestamps ignored")
	assert.True(t, got.Price.Equal(price("9.99")))
	assert.Equal(t, []model.EventKind{model.EventProductCreated}, pub.kinds())
}

func TestV2AdjustStock(t *testing.T) {
	_, v2, _, pub := setup(t, LayoutShared, true)

	_, err := v2.AdjustStock(1, model.StockAdjustment{Delta: -200})
	requireValidation(t, err, ReasonStockBelowZero)
	cur, err := v2.Get(1)
	require.NoError(t, err)
	assert.Equal(t, 100, cur.StockQuantity, "stock unchanged after rejected adjustment")

	got, err := v2.AdjustStock(1, model.StockAdjustment{Delta: -100})
	require.NoError(t, err)
	assert.Equal(t, 0, got.StockQuantity)
	assert.True(t, got.LastModifiedDate.After(cur.LastModifiedDate))
	assert.Equal(t, cur.CreatedDate, got.CreatedDate)

	got, err = v2.AdjustStock(1, model.StockAdjustment{Delta: 7})
	require.NoError(t, err)
	assert.Equal(t, 7, got.StockQuantity)

	_, err = v2.AdjustStock(99, model.StockAdjustment{Delta: 1})
	assert.ErrorIs(t, err, ErrNotFound)

	require.Len(t, pub.events, 2)
	assert.Equal(t, -100, pub.events[0].StockDelta)
	assert.Equal(t, 7, pub.events[1].Stock)
}

func TestV2UpdateRules(t *testing.T) {
	_, v2, _, _ := setup(t, LayoutShared, true)
	before, err := v2.Get(2)
	require.NoError(t, err)

	err = v2.Update(2, model.ProductV2{ID: 1, Name: "x"})
	requireValidation(t, err, ReasonIDMismatch)

	err = v2.Update(9, model.ProductV2{ID: 9, StockQuantity: -1})
	assert.ErrorIs(t, err, ErrNotFound, "not found is reported before stock validation")

	err = v2.Update(2, model.ProductV2{ID: 2, Name: "x", StockQuantity: -1})
	requireValidation(t, err, ReasonNegativeStock)
	after, _ := v2.Get(2)
	assert.Equal(t, before, after)

	err = v2.Update(2, model.ProductV2{
		ID:            2,
		Name:          "Renamed",
		Price:         price("1.50"),
		Category:      "Budget",
		StockQuantity: 3,
		CreatedDate:   time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	after, _ = v2.Get(2)
	assert.Equal(t, "Renamed", after.Name)
	assert.Equal(t, "", after.Description, "full overwrite")
	assert.Equal(t, 3, after.StockQuantity)
	assert.Equal(t, before.CreatedDate, after.CreatedDate)
	assert.True(t, after.LastModifiedDate.After(before.LastModifiedDate))
}

func TestV2TimestampsAcrossMutations(t *testing.T) {
	_, v2, _, _ := setup(t, LayoutShared, false)
	created, err := v2.Create(model.ProductV2{Name: "a", StockQuantity: 5})
	require.NoError(t, err)

	last := created.LastModifiedDate
	for i := 0; i < 5; i++ {
		if i%2 == 0 {
			require.NoError(t, v2.Update(created.ID, model.ProductV2{ID: created.ID, Name: "a", StockQuantity: i}))
		} else {
			_, err := v2.AdjustStock(created.ID, model.StockAdjustment{Delta: 1})
			require.NoError(t, err)
		}
		cur, err := v2.Get(created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.CreatedDate, cur.CreatedDate)
		assert.False(t, cur.LastModifiedDate.Before(last))
		assert.GreaterOrEqual(t, cur.StockQuantity, 0)
		last = cur.LastModifiedDate
	}
}

func TestTouchNeverMovesBackwards(t *testing.T) {
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	o := newOptions([]Option{WithClock(func() time.Time { return at })})
	later := at.Add(time.Hour)
	assert.Equal(t, later, o.touch(later))
	assert.Equal(t, at, o.touch(at.Add(-time.Hour)))
}

func TestV2DeleteStockGuard(t *testing.T) {
	_, v2, stores, _ := setup(t, LayoutShared, true)

	err := v2.Delete(1)
	var rv *RuleViolationError
	require.True(t, errors.As(err, &rv))
	assert.Equal(t, ReasonStockRemaining, rv.Reason)
	assert.Equal(t, 2, stores.V2.Len())

	_, err = v2.AdjustStock(1, model.StockAdjustment{Delta: -100})
	require.NoError(t, err)
	require.NoError(t, v2.Delete(1))

	assert.ErrorIs(t, v2.Delete(1), ErrNotFound)
	assert.ErrorIs(t, v2.Delete(1), ErrNotFound)
	_, err = v2.Get(1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestV2ListCategoryFilter(t *testing.T) {
	_, v2, _, _ := setup(t, LayoutShared, true)

	assert.Len(t, v2.List(""), 2)
	assert.Len(t, v2.List("   "), 2)

	got := v2.List("premium")
	require.Len(t, got, 1)
	assert.Equal(t, "Enhanced Product", got[0].Name)

	assert.Len(t, v2.List("LUXURY"), 1)
	assert.Empty(t, v2.List("Prem"), "exact match only")
}

func TestV1DeleteIgnoresStock(t *testing.T) {
	v1, v2, _, pub := setup(t, LayoutShared, true)
	p, err := v2.Get(1)
	require.NoError(t, err)
	require.Equal(t, 100, p.StockQuantity)

	require.NoError(t, v1.Delete(1))
	assert.ErrorIs(t, v1.Delete(1), ErrNotFound)
	assert.ErrorIs(t, v1.Delete(1), ErrNotFound)
	_, err = v2.Get(1)
	assert.ErrorIs(t, err, ErrNotFound, "shared store sees the removal")
	assert.Equal(t, []model.EventKind{model.EventProductDeleted}, pub.kinds())
}

func TestV1UpdateKeepsV2Fields(t *testing.T) {
	v1, v2, _, _ := setup(t, LayoutShared, true)
	before, _ := v2.Get(2)

	err := v1.Update(2, model.ProductV1{ID: 2, Name: "Legacy", Price: price("5")})
	require.NoError(t, err)

	after, _ := v2.Get(2)
	assert.Equal(t, "Legacy", after.Name)
	assert.True(t, after.Price.Equal(price("5")))
	assert.Equal(t, before.Category, after.Category)
	assert.Equal(t, before.StockQuantity, after.StockQuantity)
	assert.Equal(t, before.CreatedDate, after.CreatedDate)
	assert.True(t, after.LastModifiedDate.After(before.LastModifiedDate))

	requireValidation(t, v1.Update(2, model.ProductV1{ID: 3}), ReasonIDMismatch)
	assert.ErrorIs(t, v1.Update(8, model.ProductV1{ID: 8}), ErrNotFound)
}

func TestV1Create(t *testing.T) {
	v1, v2, _, _ := setup(t, LayoutShared, false)
	got := v1.Create(model.ProductV1{ID: 5, Name: "Plain", Price: price("2.25")})
	assert.Equal(t, 1, got.ID)

	list := v1.List()
	require.Len(t, list, 1)
	assert.Equal(t, got, list[0])

	full, err := v2.Get(1)
	require.NoError(t, err)
	assert.Equal(t, 0, full.StockQuantity)
	assert.False(t, full.CreatedDate.IsZero())
}

func TestSplitLayoutSeedsIndependently(t *testing.T) {
	v1, v2, stores, _ := setup(t, LayoutSplit, true)
	assert.False(t, stores.Shared())

	list := v1.List()
	require.Len(t, list, 1)
	assert.Equal(t, "Classic Product", list[0].Name)
	assert.Len(t, v2.List(""), 2)

	require.NoError(t, v1.Delete(1))
	_, err := v2.Get(1)
	assert.NoError(t, err, "V2 store untouched by V1 delete")
}

func TestSharedLayoutSeed(t *testing.T) {
	v1, _, stores, _ := setup(t, LayoutShared, true)
	assert.True(t, stores.Shared())
	names := []string{}
	for _, p := range v1.List() {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"Enhanced Product", "Premium Product"}, names)
}

func TestParseLayout(t *testing.T) {
	l, err := ParseLayout(" Split ")
	require.NoError(t, err)
	assert.Equal(t, LayoutSplit, l)
	l, err = ParseLayout("shared")
	require.NoError(t, err)
	assert.Equal(t, LayoutShared, l)
	_, err = ParseLayout("sharded")
	assert.Error(t, err)
}

func TestProjectorRoundTrip(t *testing.T) {
	p := model.Product{ID: 4, Name: "n", Price: price("3"), Category: "c", StockQuantity: 2}
	var pr Projector[model.ProductV1] = v1Projector{}
	v := pr.Project(p)
	assert.Equal(t, model.ProductV1{ID: 4, Name: "n", Price: price("3")}, v)

	v.Name = "m"
	back := pr.Apply(p, v)
	assert.Equal(t, "m", back.Name)
	assert.Equal(t, "c", back.Category)
	assert.Equal(t, 2, back.StockQuantity)
}
