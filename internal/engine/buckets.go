package engine

import (
	"fmt"
	"math"
)

// ExperienceBucket is a named half-open range [Lo, Hi). The last bucket of a
// set has Hi = +Inf and is closed only from below.
type ExperienceBucket struct {
	Label string
	Lo    float64
	Hi    float64
}

// Contains uses half-open membership: the lower bound belongs to the bucket,
// the upper bound belongs to the next one. Exactly 1.0 years lands in 1-2,
// not 0-1.
func (b ExperienceBucket) Contains(years float64) bool {
	return years >= b.Lo && years < b.Hi
}

// BucketSet partitions [0, +Inf) into contiguous half-open buckets.
type BucketSet []ExperienceBucket

// DefaultBucketEdges are the lower bounds of the standard experience bands.
var DefaultBucketEdges = []float64{0, 1, 2, 5, 10, 20}

// DefaultBuckets returns the standard partition:
// [0,1) [1,2) [2,5) [5,10) [10,20) [20,inf).
func DefaultBuckets() BucketSet {
	bs, _ := NewBucketSet(DefaultBucketEdges)
	return bs
}

// NewBucketSet builds a partition from ascending lower-bound edges. The first
// edge must be 0 so every non-negative experience value maps to exactly one
// bucket; the final bucket is unbounded above.
func NewBucketSet(edges []float64) (BucketSet, error) {
	if len(edges) == 0 {
		return nil, fmt.Errorf("bucket edges: empty")
	}
	if edges[0] != 0 {
		return nil, fmt.Errorf("bucket edges: must start at 0, got %g", edges[0])
	}
	for i := 1; i < len(edges); i++ {
		if edges[i] <= edges[i-1] {
			return nil, fmt.Errorf("bucket edges: not strictly increasing at %g", edges[i])
		}
	}

	bs := make(BucketSet, len(edges))
	for i, lo := range edges {
		hi := math.Inf(1)
		label := fmt.Sprintf("%g+ yrs", lo)
		if i+1 < len(edges) {
			hi = edges[i+1]
			label = fmt.Sprintf("%g-%g yrs", lo, hi)
		}
		bs[i] = ExperienceBucket{Label: label, Lo: lo, Hi: hi}
	}
	return bs, nil
}

// Locate returns the index of the bucket containing years, or -1 for
// negative input (which the loader rejects before it gets here).
func (bs BucketSet) Locate(years float64) int {
	if years < 0 {
		return -1
	}
	for i := len(bs) - 1; i >= 0; i-- {
		if years >= bs[i].Lo {
			return i
		}
	}
	return -1
}

// Labels returns the bucket labels in range order.
func (bs BucketSet) Labels() []string {
	labels := make([]string, len(bs))
	for i, b := range bs {
		labels[i] = b.Label
	}
	return labels
}
