// Package index provides the spatial index used for broad-phase bounding box
// queries by the intersect, offset and boolean engines.
//
// # Overview
//
// The index maps axis-aligned bounding boxes to integer items (for polyline
// segment indexes the item is the segment's starting vertex index). It is a
// thin wrapper around the R-tree from github.com/tidwall/rtree; only the
// query contract matters to the rest of the library: insert boxes, then visit
// the items whose boxes overlap a query box, with optional early termination.
package index

import (
	"github.com/mikenye/polyarc/aabb"
	"github.com/tidwall/rtree"
)

// Index is a spatial index of axis-aligned bounding boxes mapped to integer
// items. The zero value is an empty index ready for use.
//
// An Index is not safe for concurrent mutation; the engines in this library
// only ever read from a shared index.
type Index struct {
	tree  rtree.RTreeG[int]
	boxes []aabb.AABB
	items []int
}

// New creates an empty index. Equivalent to new(Index); provided for
// symmetry with the other package constructors.
func New() *Index {
	return &Index{}
}

// Insert adds a bounding box with its associated item to the index.
func (ix *Index) Insert(box aabb.AABB, item int) {
	ix.tree.Insert([2]float64{box.MinX, box.MinY}, [2]float64{box.MaxX, box.MaxY}, item)
	ix.boxes = append(ix.boxes, box)
	ix.items = append(ix.items, item)
}

// Count returns the number of boxes in the index.
func (ix *Index) Count() int {
	return ix.tree.Len()
}

// VisitQuery visits every item whose bounding box overlaps the query box.
// Returning false from the visitor stops the query early.
func (ix *Index) VisitQuery(box aabb.AABB, visitor func(item int) bool) {
	ix.tree.Search(
		[2]float64{box.MinX, box.MinY},
		[2]float64{box.MaxX, box.MaxY},
		func(_, _ [2]float64, item int) bool {
			return visitor(item)
		},
	)
}

// Query returns all items whose bounding box overlaps the query box. The
// results slice is appended to and returned; pass a reused slice (length
// zero) to avoid allocation in hot loops.
func (ix *Index) Query(box aabb.AABB, results []int) []int {
	ix.VisitQuery(box, func(item int) bool {
		results = append(results, item)
		return true
	})
	return results
}

// VisitItemBoxes visits every (box, item) pair in insertion order. Returning
// false from the visitor stops iteration early.
func (ix *Index) VisitItemBoxes(visitor func(box aabb.AABB, item int) bool) {
	for i, box := range ix.boxes {
		if !visitor(box, ix.items[i]) {
			return
		}
	}
}
