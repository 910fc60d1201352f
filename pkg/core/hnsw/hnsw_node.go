package hnsw

import (
	"slices"

	"github.com/sanonone/kektorvec/pkg/core/types"
)

// neighborSet is a deduplicated set of node ids kept sorted, so iteration
// order (and therefore every traversal) is deterministic.
type neighborSet []string

func (s neighborSet) contains(id string) bool {
	_, ok := slices.BinarySearch(s, id)
	return ok
}

// add inserts id and reports whether it was absent.
func (s *neighborSet) add(id string) bool {
	i, ok := slices.BinarySearch(*s, id)
	if ok {
		return false
	}
	*s = slices.Insert(*s, i, id)
	return true
}

// remove deletes id and reports whether it was present.
func (s *neighborSet) remove(id string) bool {
	i, ok := slices.BinarySearch(*s, id)
	if !ok {
		return false
	}
	*s = slices.Delete(*s, i, i+1)
	return true
}

// Node is a vertex of the graph: one stored record plus its adjacency.
//
// Neighbour sets hold ids, never pointers; the Index map is the only owner of
// nodes. inbound counts, per referring node, how many levels link to this
// node, which lets removal find every back-reference without scanning the
// whole graph. Edges are added on both endpoints together, but trimming
// only shrinks one side, so inbound is not simply the mirror of neighbors.
type node struct {
	record types.VectorRecord
	// level is the layer sampled at creation. neighbors may later grow past
	// it through ensureLevel.
	level     int
	neighbors []neighborSet
	inbound   map[string]int
}

func newNode(record types.VectorRecord, level int) *node {
	return &node{
		record:    record,
		level:     level,
		neighbors: make([]neighborSet, level+1),
		inbound:   make(map[string]int),
	}
}

func (n *node) id() string { return n.record.ID }

// neighborsAt returns the set at level, clamped to the highest allocated
// level when level is above it.
func (n *node) neighborsAt(level int) neighborSet {
	if level >= len(n.neighbors) {
		return n.neighbors[len(n.neighbors)-1]
	}
	return n.neighbors[level]
}

// ensureLevel allocates empty sets up to target. A node picked as a
// neighbour at a layer above its own sampled level grows here.
func (n *node) ensureLevel(target int) {
	for len(n.neighbors) <= target {
		n.neighbors = append(n.neighbors, nil)
	}
}

// degree is the number of level-0 neighbours.
func (n *node) degree() int { return len(n.neighbors[0]) }

// link adds to into from's set at level and records the back-reference.
func link(from, to *node, level int) {
	if from.neighbors[level].add(to.id()) {
		to.inbound[from.id()]++
	}
}

// unlink removes to from from's set at level and drops the back-reference
// once no level links them any more.
func unlink(from, to *node, level int) {
	if !from.neighbors[level].remove(to.id()) {
		return
	}
	if to.inbound[from.id()]--; to.inbound[from.id()] <= 0 {
		delete(to.inbound, from.id())
	}
}
