package hnsw

import "github.com/sanonone/kektorvec/pkg/core/distance"

// Default HNSW parameters, used for any non-positive Config field.
const (
	DefaultM              = 16
	DefaultEfConstruction = 200
	DefaultEfSearch       = 64
)

// Config holds the tunables of an Index.
type Config struct {
	// M is the maximum number of neighbours retained per node per level.
	M int
	// EfConstruction is the beam width used while inserting.
	EfConstruction int
	// EfSearch is the beam width used while querying.
	EfSearch int
	// Distance scores two vectors. Nil selects cosine distance.
	Distance distance.Func
	// Source drives level sampling. Nil selects NewSource().
	Source Source
}

// Params is the read-only view of an index's tunables.
type Params struct {
	M              int `json:"m"`
	EfConstruction int `json:"ef_construction"`
	EfSearch       int `json:"ef_search"`
}

// withDefaults fills in every unset field.
func (c Config) withDefaults() Config {
	if c.M <= 0 {
		c.M = DefaultM
	}
	if c.EfConstruction <= 0 {
		c.EfConstruction = DefaultEfConstruction
	}
	if c.EfSearch <= 0 {
		c.EfSearch = DefaultEfSearch
	}
	if c.Distance == nil {
		c.Distance = distance.CosineDistance
	}
	if c.Source == nil {
		c.Source = NewSource()
	}
	return c
}
