package audit

import (
	"sync"
	"testing"

	"github.com/fairyhunter13/versioned-product-api/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJournalRecentNewestFirst(t *testing.T) {
	j := NewJournal(3)
	assert.Empty(t, j.Recent(10))

	for i := 1; i <= 5; i++ {
		j.Record(model.Event{Kind: model.EventProductCreated, ProductID: i})
	}
	got := j.Recent(0)
	require.Len(t, got, 3)
	assert.Equal(t, []int{5, 4, 3}, []int{got[0].ProductID, got[1].ProductID, got[2].ProductID})

	two := j.Recent(2)
	require.Len(t, two, 2)
	assert.Equal(t, 5, two[0].ProductID)
}

func TestJournalPartialFill(t *testing.T) {
	j := NewJournal(4)
	j.Record(model.Event{ProductID: 1})
	j.Record(model.Event{ProductID: 2})
	got := j.Recent(10)
	require.Len(t, got, 2)
	assert.Equal(t, 2, got[0].ProductID)
	assert.Equal(t, 1, got[1].ProductID)
}

func TestJournalCounts(t *testing.T) {
	j := NewJournal(2)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			kind := model.EventProductCreated
			if i%2 == 0 {
				kind = model.EventProductDeleted
			}
			j.Record(model.Event{Kind: kind, ProductID: i})
		}(i)
	}
	wg.Wait()
	c := j.Counts()
	assert.Equal(t, uint64(25), c[model.EventProductCreated])
	assert.Equal(t, uint64(25), c[model.EventProductDeleted])
	assert.Len(t, j.Recent(0), 2)
}
