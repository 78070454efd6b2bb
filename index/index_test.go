package index

import (
	"sort"
	"testing"

	"github.com/mikenye/polyarc/aabb"
	"github.com/stretchr/testify/assert"
)

func TestIndex_Query(t *testing.T) {
	ix := New()
	ix.Insert(aabb.New(0, 0, 1, 1), 0)
	ix.Insert(aabb.New(2, 2, 3, 3), 1)
	ix.Insert(aabb.New(0.5, 0.5, 2.5, 2.5), 2)

	assert.Equal(t, 3, ix.Count())

	results := ix.Query(aabb.New(0.75, 0.75, 1.25, 1.25), nil)
	sort.Ints(results)
	assert.Equal(t, []int{0, 2}, results)

	results = ix.Query(aabb.New(10, 10, 11, 11), nil)
	assert.Empty(t, results)
}

func TestIndex_VisitQueryEarlyStop(t *testing.T) {
	ix := New()
	ix.Insert(aabb.New(0, 0, 10, 10), 0)
	ix.Insert(aabb.New(0, 0, 10, 10), 1)
	ix.Insert(aabb.New(0, 0, 10, 10), 2)

	visits := 0
	ix.VisitQuery(aabb.New(1, 1, 2, 2), func(item int) bool {
		visits++
		return false
	})
	assert.Equal(t, 1, visits)
}

func TestIndex_VisitItemBoxes(t *testing.T) {
	ix := New()
	ix.Insert(aabb.New(0, 0, 1, 1), 7)
	ix.Insert(aabb.New(1, 1, 2, 2), 8)

	var items []int
	ix.VisitItemBoxes(func(box aabb.AABB, item int) bool {
		items = append(items, item)
		return true
	})
	assert.Equal(t, []int{7, 8}, items)
}
