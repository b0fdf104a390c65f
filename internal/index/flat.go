// Package index owns the in-memory vector index and its on-disk artifacts.
package index

import (
	"fmt"
	"sort"
)

// Flat is an exact nearest-neighbor index over fixed-dimension vectors.
// Distances are squared Euclidean (no square root), matching a flat L2
// index: ordering is identical and the root is never needed.
type Flat struct {
	dim     int
	vectors [][]float32
}

// NewFlat creates an empty index for vectors of the given dimension.
func NewFlat(dim int) *Flat {
	return &Flat{dim: dim}
}

// Add appends vectors to the index. Position i of the index corresponds
// to the i-th added vector forever; there is no removal.
func (f *Flat) Add(vectors [][]float32) error {
	for i, v := range vectors {
		if len(v) != f.dim {
			return fmt.Errorf("vector %d: dimension %d, index expects %d", i, len(v), f.dim)
		}
	}
	f.vectors = append(f.vectors, vectors...)
	return nil
}

// Len returns the number of indexed vectors.
func (f *Flat) Len() int { return len(f.vectors) }

// Dim returns the vector dimension.
func (f *Flat) Dim() int { return f.dim }

// Vectors exposes the raw vector slice for persistence.
func (f *Flat) Vectors() [][]float32 { return f.vectors }

// Search returns the ids and squared L2 distances of the k nearest
// vectors, ascending by distance, ties broken by lower id. Fewer than k
// results are returned when the index holds fewer vectors.
func (f *Flat) Search(query []float32, k int) ([]int, []float32) {
	if k <= 0 || len(f.vectors) == 0 {
		return nil, nil
	}
	if k > len(f.vectors) {
		k = len(f.vectors)
	}

	type scored struct {
		id   int
		dist float32
	}
	all := make([]scored, len(f.vectors))
	for i, v := range f.vectors {
		all[i] = scored{id: i, dist: squaredL2(query, v)}
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].dist != all[j].dist {
			return all[i].dist < all[j].dist
		}
		return all[i].id < all[j].id
	})

	ids := make([]int, k)
	dists := make([]float32, k)
	for i := 0; i < k; i++ {
		ids[i] = all[i].id
		dists[i] = all[i].dist
	}
	return ids, dists
}

func squaredL2(a, b []float32) float32 {
	var sum float32
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
