// This file implements the operational methods of the Engine, wrapping
// registry and index calls with request defaults, validation and metrics.

package engine

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/sanonone/kektorvec/pkg/core"
	"github.com/sanonone/kektorvec/pkg/core/hnsw"
	"github.com/sanonone/kektorvec/pkg/core/types"
	"github.com/sanonone/kektorvec/pkg/metrics"
)

func namespaceOrDefault(ns string) string {
	if strings.TrimSpace(ns) == "" {
		return DefaultNamespace
	}
	return ns
}

// Upsert writes a batch of vectors.
//
// Every vector is checked for a non-blank id and non-empty values before any
// is applied. The namespace is then resolved (or created) with the dimension
// of the first vector and the vectors are applied in order. A dimension
// mismatch stops the batch: vectors applied before it stay committed and
// the response reports how many there were. A namespace dropped while the
// batch runs stops it with a NotFoundError.
func (e *Engine) Upsert(req UpsertRequest) (UpsertResponse, error) {
	ns := namespaceOrDefault(req.Namespace)

	records := make([]types.VectorRecord, len(req.Vectors))
	for i, v := range req.Vectors {
		rec, err := types.NewVectorRecord(v.ID, v.Values, v.Metadata)
		if err != nil {
			e.logger.Debug("Upsert rejected", "namespace", ns, "position", i, "error", err)
			return UpsertResponse{}, fmt.Errorf("vectors[%d]: %w", i, err)
		}
		rec.Values = e.precision.Apply(rec.Values)
		records[i] = rec
	}
	if len(records) == 0 {
		return UpsertResponse{}, nil
	}

	idx, created, err := e.Registry.GetOrCreate(ns, records[0].Dimension())
	if err != nil {
		return UpsertResponse{}, err
	}
	if created {
		e.logger.Info("Namespace created", "namespace", ns, "dimension", idx.Dimension())
		metrics.Namespaces.Set(float64(e.Registry.Len()))
	}

	applied := 0
	defer func() {
		metrics.UpsertedVectorsTotal.WithLabelValues(ns).Add(float64(applied))
		if !idx.Closed() {
			metrics.TotalVectors.WithLabelValues(ns).Set(float64(idx.Len()))
		}
	}()

	for i, rec := range records {
		if err := idx.Upsert(rec); err != nil {
			if errors.Is(err, hnsw.ErrClosed) {
				// Dropped concurrently: nothing from here on is stored.
				return UpsertResponse{UpsertedCount: applied}, &types.NotFoundError{Namespace: ns}
			}
			e.logger.Debug("Upsert stopped", "namespace", ns, "position", i, "applied", applied, "error", err)
			return UpsertResponse{UpsertedCount: applied}, fmt.Errorf("vectors[%d]: %w", i, err)
		}
		applied++
	}
	return UpsertResponse{UpsertedCount: applied}, nil
}

// Query returns the nearest neighbours of req.Vector. Querying a namespace
// that was never written is a NotFoundError.
func (e *Engine) Query(req QueryRequest) (QueryResponse, error) {
	ns := namespaceOrDefault(req.Namespace)
	topK := req.TopK
	if topK <= 0 {
		topK = DefaultTopK
	}
	if len(req.Vector) == 0 {
		return QueryResponse{}, types.Validationf("query vector must not be empty")
	}

	idx, err := e.index(ns)
	if err != nil {
		return QueryResponse{}, err
	}

	start := time.Now()
	results, err := idx.Search(req.Vector, topK)
	metrics.QueryDuration.WithLabelValues(ns).Observe(time.Since(start).Seconds())
	if err != nil {
		return QueryResponse{}, err
	}

	matches := make([]Match, len(results))
	for i, res := range results {
		m := Match{ID: res.Record.ID, Score: 1 - res.Distance}
		if req.IncludeValues {
			m.Values = slices.Clone(res.Record.Values)
		}
		if req.IncludeMetadata {
			m.Metadata = maps.Clone(res.Record.Metadata)
		}
		matches[i] = m
	}
	return QueryResponse{Matches: matches}, nil
}

// Delete removes the given ids from a namespace. Ids that do not exist are
// skipped.
func (e *Engine) Delete(req DeleteRequest) (DeleteResponse, error) {
	ns := namespaceOrDefault(req.Namespace)
	idx, err := e.index(ns)
	if err != nil {
		return DeleteResponse{}, err
	}

	deleted := 0
	defer func() {
		if !idx.Closed() {
			metrics.TotalVectors.WithLabelValues(ns).Set(float64(idx.Len()))
		}
	}()
	for _, id := range req.IDs {
		ok, err := idx.Delete(id)
		if err != nil {
			if errors.Is(err, hnsw.ErrClosed) {
				return DeleteResponse{DeletedCount: deleted}, &types.NotFoundError{Namespace: ns}
			}
			return DeleteResponse{DeletedCount: deleted}, err
		}
		if ok {
			deleted++
		}
	}
	return DeleteResponse{DeletedCount: deleted}, nil
}

// DropNamespace discards a namespace and all of its vectors.
func (e *Engine) DropNamespace(namespace string) error {
	ns := namespaceOrDefault(namespace)
	if !e.Registry.Drop(ns) {
		return &types.NotFoundError{Namespace: ns}
	}

	metrics.TotalVectors.DeleteLabelValues(ns)
	metrics.QueryDuration.DeleteLabelValues(ns)
	metrics.Namespaces.Set(float64(e.Registry.Len()))
	e.logger.Info("Namespace dropped", "namespace", ns)
	return nil
}

// Describe returns the vector count of every namespace.
func (e *Engine) Describe() map[string]int {
	return e.Registry.Describe()
}

// Namespaces returns every namespace ordered by name.
func (e *Engine) Namespaces() []core.NamespaceInfo {
	return e.Registry.Namespaces()
}

func (e *Engine) index(ns string) (*hnsw.Index, error) {
	idx, ok := e.Registry.Get(ns)
	if !ok {
		return nil, &types.NotFoundError{Namespace: ns}
	}
	return idx, nil
}
