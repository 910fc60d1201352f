// Package engine provides the high-level, embedded interface for kektorvec.
//
// It applies the request semantics of the service (default namespace and
// topK, batch validation, scoring) on top of the namespace registry, and
// keeps the prometheus gauges in sync. The engine holds everything in
// memory; a restart starts from an empty registry.
//
// Basic usage:
//
//	eng, err := engine.New(engine.DefaultOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	_, err = eng.Upsert(engine.UpsertRequest{Vectors: []engine.Vector{{ID: "a", Values: []float32{1, 0}}}})
package engine

import (
	"log/slog"

	"github.com/sanonone/kektorvec/pkg/core"
	"github.com/sanonone/kektorvec/pkg/core/distance"
	"github.com/sanonone/kektorvec/pkg/core/hnsw"
)

const (
	// DefaultNamespace is used by every request that names no namespace.
	DefaultNamespace = "default"
	// DefaultTopK is used by queries with a non-positive topK.
	DefaultTopK = 5
)

// Options configures the indexes the engine creates.
type Options struct {
	// Metric scores vectors in every namespace. Default: cosine.
	Metric distance.Metric

	// Precision is applied to stored components on upsert. Default: float32.
	Precision distance.Precision

	// HNSW parameters. Non-positive values fall back to 16/200/64.
	M              int
	EfConstruction int
	EfSearch       int

	// NewSource overrides the level source of new indexes. Nil uses crypto/rand.
	NewSource func() hnsw.Source

	// Logger receives engine events. Nil uses slog.Default().
	Logger *slog.Logger
}

// DefaultOptions returns the standard configuration.
//
// Defaults:
//   - Metric: cosine
//   - Precision: float32
//   - M: 16, EfConstruction: 200, EfSearch: 64
func DefaultOptions() Options {
	return Options{
		Metric:         distance.Cosine,
		Precision:      distance.Float32,
		M:              hnsw.DefaultM,
		EfConstruction: hnsw.DefaultEfConstruction,
		EfSearch:       hnsw.DefaultEfSearch,
	}
}

// Engine is the main entry point for kektorvec. It is safe for concurrent use.
type Engine struct {
	// Registry is the underlying namespace table. It is exported for
	// embedding; Engine methods also maintain metrics and defaults.
	Registry *core.Registry

	precision distance.Precision
	logger    *slog.Logger
}

// New builds an Engine from opts. An unknown metric or precision is a
// validation error.
func New(opts Options) (*Engine, error) {
	precision, err := distance.ParsePrecision(string(opts.Precision))
	if err != nil {
		return nil, err
	}
	registry, err := core.NewRegistry(core.IndexConfig{
		Metric:         opts.Metric,
		M:              opts.M,
		EfConstruction: opts.EfConstruction,
		EfSearch:       opts.EfSearch,
		NewSource:      opts.NewSource,
	})
	if err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		Registry:  registry,
		precision: precision,
		logger:    logger,
	}, nil
}
