// Package types holds the value types shared by the index, the registry and
// the request layer: the vector record itself, search results and the error
// taxonomy used to classify failures.
package types

import (
	"maps"
	"slices"
	"strings"
)

// VectorRecord is an immutable vector with its identifier and attributes.
//
// Records are values: the constructor copies the caller's slices and maps so
// later mutations by the caller cannot reach a record stored in an index.
// Code holding a record must treat Values and Metadata as read-only.
type VectorRecord struct {
	ID       string
	Values   []float32
	Metadata map[string]string
}

// NewVectorRecord validates and copies the given data into a record.
// A blank id or an empty vector is a ValidationError. A nil metadata map
// becomes an empty one.
func NewVectorRecord(id string, values []float32, metadata map[string]string) (VectorRecord, error) {
	if strings.TrimSpace(id) == "" {
		return VectorRecord{}, Validationf("vector id must be provided")
	}
	if len(values) == 0 {
		return VectorRecord{}, Validationf("vector %q: values must not be empty", id)
	}

	meta := make(map[string]string, len(metadata))
	maps.Copy(meta, metadata)

	return VectorRecord{
		ID:       id,
		Values:   slices.Clone(values),
		Metadata: meta,
	}, nil
}

// Dimension returns the number of components of the record.
func (r VectorRecord) Dimension() int { return len(r.Values) }

// SearchResult pairs a stored record with its distance to the query.
// Smaller distances are more similar.
type SearchResult struct {
	Record   VectorRecord
	Distance float64
}
