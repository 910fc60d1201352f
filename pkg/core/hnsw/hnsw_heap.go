// This file defines the min-heap and max-heap used during graph traversal.
// Both are built on container/heap and order candidates by distance, breaking
// ties by id so that traversals are reproducible.

package hnsw

import (
	"cmp"
	"container/heap"
	"strings"
)

// candidate is a node reached during a traversal with its distance to the
// target vector.
type candidate struct {
	node     *node
	distance float64
}

// compareCandidates orders by ascending distance, then by id.
func compareCandidates(a, b candidate) int {
	return cmp.Or(cmp.Compare(a.distance, b.distance), strings.Compare(a.node.id(), b.node.id()))
}

// minHeap keeps the nearest unexplored candidate on top. It drives the
// expansion order of searchLayer.
type minHeap []candidate

func (h minHeap) Len() int           { return len(h) }
func (h minHeap) Less(i, j int) bool { return compareCandidates(h[i], h[j]) < 0 }
func (h minHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *minHeap) Push(x any)        { *h = append(*h, x.(candidate)) }
func (h *minHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	old[n-1] = candidate{}
	*h = old[:n-1]
	return x
}

// maxHeap keeps the worst of the best candidates on top, ready to be evicted
// when a closer one is found.
type maxHeap []candidate

func (h maxHeap) Len() int           { return len(h) }
func (h maxHeap) Less(i, j int) bool { return compareCandidates(h[i], h[j]) > 0 }
func (h maxHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *maxHeap) Push(x any)        { *h = append(*h, x.(candidate)) }
func (h *maxHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	old[n-1] = candidate{}
	*h = old[:n-1]
	return x
}

// worst returns the top of a non-empty max-heap.
func (h maxHeap) worst() candidate { return h[0] }

func newMinHeap(capacity int, first candidate) *minHeap {
	h := make(minHeap, 0, capacity)
	heap.Push(&h, first)
	return &h
}

func newMaxHeap(capacity int, first candidate) *maxHeap {
	h := make(maxHeap, 0, capacity+1)
	heap.Push(&h, first)
	return &h
}
