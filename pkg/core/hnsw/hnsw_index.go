// Package hnsw implements a Hierarchical Navigable Small World graph for
// approximate nearest neighbour search over fixed-dimension vectors.
//
// An Index owns every node of one graph. A single reader-writer lock guards
// the whole graph: Search holds it shared, so any number of searches run in
// parallel, while Upsert and Delete hold it exclusively. Mutations touch an
// unbounded set of nodes transitively, so there is no finer-grained locking.
// Nothing inside the index observes deadlines; callers bound the call
// themselves.
package hnsw

import (
	"container/heap"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/sanonone/kektorvec/pkg/core/distance"
	"github.com/sanonone/kektorvec/pkg/core/types"
)

// ErrClosed is returned by writes to an index that has been closed. It
// reports types.ErrNotFound through errors.Is.
var ErrClosed = fmt.Errorf("index closed: %w", types.ErrNotFound)

// Index is the graph of one namespace.
type Index struct {
	mu sync.RWMutex

	dimension      int
	m              int
	efConstruction int
	efSearch       int
	distanceFunc   distance.Func
	source         Source

	nodes map[string]*node
	// entry is where every descent starts; nil when the index is empty.
	entry *node
	// maxLevel equals entry.level while entry is set, and 0 otherwise.
	maxLevel int
	// closed rejects every later Upsert and Delete.
	closed bool
}

// New creates an empty index for vectors of the given dimension.
func New(dimension int, cfg Config) (*Index, error) {
	if dimension <= 0 {
		return nil, types.Validationf("dimension must be positive, got %d", dimension)
	}
	cfg = cfg.withDefaults()

	return &Index{
		dimension:      dimension,
		m:              cfg.M,
		efConstruction: cfg.EfConstruction,
		efSearch:       cfg.EfSearch,
		distanceFunc:   cfg.Distance,
		source:         cfg.Source,
		nodes:          make(map[string]*node),
	}, nil
}

// Dimension returns the vector length this index accepts.
func (h *Index) Dimension() int { return h.dimension }

// Params returns the tunables of the index.
func (h *Index) Params() Params {
	return Params{M: h.m, EfConstruction: h.efConstruction, EfSearch: h.efSearch}
}

// Len returns the number of stored records.
func (h *Index) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.nodes)
}

// MaxLevel returns the level descents currently start from.
func (h *Index) MaxLevel() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.maxLevel
}

// EntryPoint returns the id of the entry node, if any.
func (h *Index) EntryPoint() (string, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.entry == nil {
		return "", false
	}
	return h.entry.id(), true
}

// Close makes every later Upsert and Delete fail with ErrClosed. Writes
// already holding the lock complete first. Searches keep working on the
// final graph.
func (h *Index) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
}

// Closed reports whether Close has been called.
func (h *Index) Closed() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.closed
}

// Upsert inserts record, replacing any record with the same id. A
// replacement fully unlinks the old node and inserts the new one from
// scratch, so its level is sampled again.
func (h *Index) Upsert(record types.VectorRecord) error {
	if record.Dimension() != h.dimension {
		return &types.DimensionMismatchError{Expected: h.dimension, Actual: record.Dimension()}
	}
	if strings.TrimSpace(record.ID) == "" {
		return types.Validationf("vector id must be provided")
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return ErrClosed
	}

	if existing, ok := h.nodes[record.ID]; ok {
		if err := h.remove(existing); err != nil {
			return err
		}
	}
	return h.insert(record)
}

// Delete removes the record with the given id and reports whether it existed.
func (h *Index) Delete(id string) (bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false, ErrClosed
	}

	n, ok := h.nodes[id]
	if !ok {
		return false, nil
	}
	if err := h.remove(n); err != nil {
		return false, err
	}
	return true, nil
}

// Search returns up to topK records closest to query, nearest first. An
// empty index returns no results for any topK; otherwise a non-positive
// topK is a ValidationError.
func (h *Index) Search(query []float32, topK int) ([]types.SearchResult, error) {
	if len(query) != h.dimension {
		return nil, &types.DimensionMismatchError{Expected: h.dimension, Actual: len(query)}
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	// An empty graph answers every topK with no results.
	if h.entry == nil {
		return []types.SearchResult{}, nil
	}
	if topK <= 0 {
		return nil, types.Validationf("topK must be positive, got %d", topK)
	}

	curr, currDist, err := h.greedyDescent(query, h.maxLevel, 1)
	if err != nil {
		return nil, err
	}
	best, err := h.searchLayer(query, curr, currDist, 0, h.efSearch)
	if err != nil {
		return nil, err
	}
	slices.SortFunc(best, compareCandidates)

	results := make([]types.SearchResult, min(topK, len(best)))
	for i := range results {
		results[i] = types.SearchResult{Record: best[i].node.record, Distance: best[i].distance}
	}
	return results, nil
}

// insert adds a new node. The caller holds the write lock and has removed
// any previous node with the same id.
func (h *Index) insert(record types.VectorRecord) error {
	level := sampleLevel(h.source)
	n := newNode(record, level)
	h.nodes[record.ID] = n

	if h.entry == nil {
		h.entry = n
		h.maxLevel = level
		return nil
	}

	curr, currDist, err := h.greedyDescent(record.Values, h.maxLevel, level+1)
	if err != nil {
		return err
	}

	for l := min(level, h.maxLevel); l >= 0; l-- {
		best, err := h.searchLayer(record.Values, curr, currDist, l, h.efConstruction)
		if err != nil {
			return err
		}
		// connect sorts best, so best[0] is the closest node at this level.
		if err := h.connect(n, best, l); err != nil {
			return err
		}
		curr, currDist = best[0].node, best[0].distance
	}

	if level > h.maxLevel {
		h.maxLevel = level
		h.entry = n
	}
	return nil
}

// greedyDescent walks from the entry point through levels top..bottom,
// moving to any strictly closer neighbour until none is left at each level.
func (h *Index) greedyDescent(target []float32, top, bottom int) (*node, float64, error) {
	curr := h.entry
	currDist, err := h.distanceFunc(target, curr.record.Values)
	if err != nil {
		return nil, 0, err
	}

	for l := top; l >= bottom; l-- {
		for changed := true; changed; {
			changed = false
			for _, id := range curr.neighborsAt(l) {
				nb, err := h.lookup(id)
				if err != nil {
					return nil, 0, err
				}
				d, err := h.distanceFunc(target, nb.record.Values)
				if err != nil {
					return nil, 0, err
				}
				if d < currDist {
					curr, currDist = nb, d
					changed = true
				}
			}
		}
	}
	return curr, currDist, nil
}

// searchLayer runs a best-first expansion at level from entry, keeping the
// ef closest nodes seen. The result is unordered.
func (h *Index) searchLayer(target []float32, entry *node, entryDist float64, level, ef int) ([]candidate, error) {
	first := candidate{node: entry, distance: entryDist}
	candidates := newMinHeap(ef, first)
	best := newMaxHeap(ef, first)
	visited := map[string]struct{}{entry.id(): {}}

	for candidates.Len() > 0 {
		c := heap.Pop(candidates).(candidate)
		if best.Len() >= ef && c.distance > best.worst().distance {
			break
		}

		for _, id := range c.node.neighborsAt(level) {
			if _, seen := visited[id]; seen {
				continue
			}
			visited[id] = struct{}{}

			nb, err := h.lookup(id)
			if err != nil {
				return nil, err
			}
			d, err := h.distanceFunc(target, nb.record.Values)
			if err != nil {
				return nil, err
			}
			if best.Len() < ef || d < best.worst().distance {
				next := candidate{node: nb, distance: d}
				heap.Push(candidates, next)
				heap.Push(best, next)
				if best.Len() > ef {
					heap.Pop(best)
				}
			}
		}
	}
	return *best, nil
}

// connect links n bidirectionally to up to M candidates at level, nearest
// first, trimming each touched neighbour set. best is sorted in place.
func (h *Index) connect(n *node, best []candidate, level int) error {
	slices.SortFunc(best, compareCandidates)

	added := 0
	for _, c := range best {
		if c.node == n {
			continue
		}
		n.ensureLevel(level)
		c.node.ensureLevel(level)
		link(n, c.node, level)
		link(c.node, n, level)
		if err := h.trim(c.node, level); err != nil {
			return err
		}
		if added++; added >= h.m {
			break
		}
	}
	return h.trim(n, level)
}

// trim shrinks owner's set at level to M members. Members are ranked by
// their own level-0 degree and the highest-degree member is discarded first;
// equal degrees discard the larger id first. Distance plays no part.
func (h *Index) trim(owner *node, level int) error {
	set := owner.neighbors[level]
	if len(set) <= h.m {
		return nil
	}

	ranked := make([]*node, 0, len(set))
	for _, id := range set {
		nb, err := h.lookup(id)
		if err != nil {
			return err
		}
		ranked = append(ranked, nb)
	}
	slices.SortFunc(ranked, func(a, b *node) int {
		if a.degree() != b.degree() {
			return a.degree() - b.degree()
		}
		return strings.Compare(a.id(), b.id())
	})

	for _, nb := range ranked[h.m:] {
		unlink(owner, nb, level)
	}
	return nil
}

// remove unlinks n from every node that references it, at every level, and
// deletes it. Removing the entry point promotes the smallest remaining id and
// takes that node's sampled level as maxLevel, even when a node with a higher
// level remains.
func (h *Index) remove(n *node) error {
	id := n.id()

	for refID := range n.inbound {
		ref, err := h.lookup(refID)
		if err != nil {
			return err
		}
		for l := range ref.neighbors {
			ref.neighbors[l].remove(id)
		}
	}
	for _, set := range n.neighbors {
		for _, nbID := range set {
			if nb, ok := h.nodes[nbID]; ok {
				delete(nb.inbound, id)
			}
		}
	}
	delete(h.nodes, id)

	if h.entry == n {
		h.entry = nil
		h.maxLevel = 0
		for _, other := range h.nodes {
			if h.entry == nil || other.id() < h.entry.id() {
				h.entry = other
			}
		}
		if h.entry != nil {
			h.maxLevel = h.entry.level
		}
	}
	return nil
}

// lookup resolves a neighbour id. A miss means the graph references a node
// it no longer owns.
func (h *Index) lookup(id string) (*node, error) {
	n, ok := h.nodes[id]
	if !ok {
		return nil, types.Internalf("neighbour %q is not in the index", id)
	}
	return n, nil
}
