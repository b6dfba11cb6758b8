package retrieval

import (
	"container/heap"

	"github.com/siherrmann/moviegraph/model"
)

// candidate is a recommendation with the position its node was finalized at
type candidate struct {
	rec   model.Recommendation
	order int
}

// worse reports whether a ranks after b
func (a candidate) worse(b candidate) bool {
	if a.rec.Distance != b.rec.Distance {
		return a.rec.Distance > b.rec.Distance
	}
	return a.order > b.order
}

// boundedHeap keeps the worst retained candidate at the root
type boundedHeap []candidate

func (h boundedHeap) Len() int            { return len(h) }
func (h boundedHeap) Less(i, j int) bool  { return h[i].worse(h[j]) } // max-heap
func (h boundedHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *boundedHeap) Push(x interface{}) { *h = append(*h, x.(candidate)) }
func (h *boundedHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// selectTopK returns the k best candidates in ascending (distance, order)
// without sorting the whole input.
func selectTopK(candidates []candidate, k int) model.RecommendationResult {
	if k <= 0 || len(candidates) == 0 {
		return model.RecommendationResult{}
	}

	h := make(boundedHeap, 0, min(k, len(candidates)))
	for _, c := range candidates {
		if h.Len() < k {
			heap.Push(&h, c)
		} else if h[0].worse(c) {
			h[0] = c
			heap.Fix(&h, 0)
		}
	}

	// Pop worst first, fill from the back
	result := make(model.RecommendationResult, h.Len())
	for i := len(result) - 1; i >= 0; i-- {
		result[i] = heap.Pop(&h).(candidate).rec
	}
	return result
}
