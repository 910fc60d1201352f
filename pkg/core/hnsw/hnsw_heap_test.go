package hnsw

import (
	"container/heap"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sanonone/kektorvec/pkg/core/types"
)

func cand(id string, d float64) candidate {
	return candidate{node: &node{record: types.VectorRecord{ID: id}}, distance: d}
}

func popIDs[H heap.Interface](h H) []string {
	var ids []string
	for h.Len() > 0 {
		ids = append(ids, heap.Pop(h).(candidate).node.id())
	}
	return ids
}

func TestMinHeapOrder(t *testing.T) {
	h := newMinHeap(4, cand("a", 5))
	heap.Push(h, cand("d", 2))
	heap.Push(h, cand("c", 8))
	heap.Push(h, cand("b", 2))

	// Equal distances pop in id order.
	assert.Equal(t, []string{"b", "d", "a", "c"}, popIDs(h))
}

func TestMaxHeapOrder(t *testing.T) {
	h := newMaxHeap(4, cand("a", 5))
	heap.Push(h, cand("b", 8))
	heap.Push(h, cand("c", 2))
	heap.Push(h, cand("d", 8))

	assert.Equal(t, "d", h.worst().node.id())
	assert.Equal(t, []string{"d", "b", "a", "c"}, popIDs(h))
}

func TestMaxHeapEvictsWorst(t *testing.T) {
	const ef = 3
	h := newMaxHeap(ef, cand("a", 0.4))
	for _, c := range []candidate{cand("b", 0.1), cand("c", 0.9), cand("d", 0.3), cand("e", 0.2)} {
		heap.Push(h, c)
		if h.Len() > ef {
			heap.Pop(h)
		}
	}
	assert.Equal(t, []string{"d", "e", "b"}, popIDs(h))
}
