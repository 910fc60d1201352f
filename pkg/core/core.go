// Package core provides the namespace registry of the engine.
//
// A Registry maps tenant names to their HNSW indexes. Indexes are created
// lazily on first write with the dimension of that write, and the dimension
// is enforced for the lifetime of the namespace. The registry lock only
// guards the name table; once an index is resolved, every graph operation
// runs under that index's own lock, so namespaces never block each other.
package core

import (
	"strings"
	"sync"

	"github.com/tidwall/btree"

	"github.com/sanonone/kektorvec/pkg/core/distance"
	"github.com/sanonone/kektorvec/pkg/core/hnsw"
	"github.com/sanonone/kektorvec/pkg/core/types"
)

// IndexConfig holds the parameters applied to every index the registry creates.
type IndexConfig struct {
	Metric         distance.Metric
	M              int
	EfConstruction int
	EfSearch       int

	// NewSource, when set, supplies the level source of each new index.
	// Tests use it to pin level assignment.
	NewSource func() hnsw.Source
}

// NamespaceInfo is the public description of one namespace, intended for
// serialization in API responses.
type NamespaceInfo struct {
	Name           string `json:"name"`
	Dimension      int    `json:"dimension"`
	VectorCount    int    `json:"vector_count"`
	M              int    `json:"m"`
	EfConstruction int    `json:"ef_construction"`
	EfSearch       int    `json:"ef_search"`
}

// namespaceItem is the element stored in the name table.
type namespaceItem struct {
	name  string
	index *hnsw.Index
}

func namespaceItemLess(a, b namespaceItem) bool { return a.name < b.name }

// Registry is the namespace table. The zero value is not usable; call NewRegistry.
type Registry struct {
	mu         sync.RWMutex
	namespaces *btree.BTreeG[namespaceItem]

	distanceFunc distance.Func
	config       IndexConfig
}

// NewRegistry creates an empty registry. An empty metric selects cosine; an
// unknown one is a validation error.
func NewRegistry(cfg IndexConfig) (*Registry, error) {
	if cfg.Metric == "" {
		cfg.Metric = distance.Cosine
	}
	fn, err := distance.Get(cfg.Metric)
	if err != nil {
		return nil, err
	}
	return &Registry{
		namespaces:   btree.NewBTreeG[namespaceItem](namespaceItemLess),
		distanceFunc: fn,
		config:       cfg,
	}, nil
}

// GetOrCreate returns the index of namespace, creating it with dimension if
// it does not exist yet. created reports whether this call created it. An
// existing namespace with a different dimension is left untouched and a
// validation error is returned.
func (r *Registry) GetOrCreate(namespace string, dimension int) (idx *hnsw.Index, created bool, err error) {
	if strings.TrimSpace(namespace) == "" {
		return nil, false, types.Validationf("namespace must be provided")
	}
	if dimension <= 0 {
		return nil, false, types.Validationf("dimension must be positive, got %d", dimension)
	}

	// Fast path: most writes target an existing namespace.
	if idx, ok := r.Get(namespace); ok {
		if idx.Dimension() != dimension {
			return nil, false, &types.DimensionMismatchError{Expected: idx.Dimension(), Actual: dimension}
		}
		return idx, false, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Another writer may have created it between the two locks.
	if item, ok := r.namespaces.Get(namespaceItem{name: namespace}); ok {
		if item.index.Dimension() != dimension {
			return nil, false, &types.DimensionMismatchError{Expected: item.index.Dimension(), Actual: dimension}
		}
		return item.index, false, nil
	}

	cfg := hnsw.Config{
		M:              r.config.M,
		EfConstruction: r.config.EfConstruction,
		EfSearch:       r.config.EfSearch,
		Distance:       r.distanceFunc,
	}
	if r.config.NewSource != nil {
		cfg.Source = r.config.NewSource()
	}
	idx, err = hnsw.New(dimension, cfg)
	if err != nil {
		return nil, false, err
	}
	r.namespaces.Set(namespaceItem{name: namespace, index: idx})
	return idx, true, nil
}

// Get returns the index of namespace, if it exists.
func (r *Registry) Get(namespace string) (*hnsw.Index, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.namespaces.Get(namespaceItem{name: namespace})
	if !ok {
		return nil, false
	}
	return item.index, true
}

// Drop removes namespace and its whole index. It reports whether the
// namespace existed.
func (r *Registry) Drop(namespace string) bool {
	r.mu.Lock()
	item, ok := r.namespaces.Delete(namespaceItem{name: namespace})
	r.mu.Unlock()

	if ok {
		// Writers that resolved the index before the drop fail with
		// hnsw.ErrClosed instead of writing into an orphan.
		item.index.Close()
	}
	return ok
}

// Len returns the number of namespaces.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.namespaces.Len()
}

// Describe returns a snapshot of namespace name to vector count.
func (r *Registry) Describe() map[string]int {
	out := make(map[string]int)
	for _, item := range r.items() {
		out[item.name] = item.index.Len()
	}
	return out
}

// Namespaces returns every namespace ordered by name.
func (r *Registry) Namespaces() []NamespaceInfo {
	items := r.items()
	infos := make([]NamespaceInfo, 0, len(items))
	for _, item := range items {
		params := item.index.Params()
		infos = append(infos, NamespaceInfo{
			Name:           item.name,
			Dimension:      item.index.Dimension(),
			VectorCount:    item.index.Len(),
			M:              params.M,
			EfConstruction: params.EfConstruction,
			EfSearch:       params.EfSearch,
		})
	}
	return infos
}

// items copies the name table so that per-index locks are never taken
// while the registry lock is held.
func (r *Registry) items() []namespaceItem {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]namespaceItem, 0, r.namespaces.Len())
	r.namespaces.Scan(func(item namespaceItem) bool {
		items = append(items, item)
		return true
	})
	return items
}
