package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVectorRecord(t *testing.T) {
	t.Run("copies caller data", func(t *testing.T) {
		values := []float32{1, 2, 3}
		meta := map[string]string{"lang": "it"}

		rec, err := NewVectorRecord("doc-1", values, meta)
		require.NoError(t, err)

		values[0] = 42
		meta["lang"] = "en"

		assert.Equal(t, []float32{1, 2, 3}, rec.Values)
		assert.Equal(t, "it", rec.Metadata["lang"])
		assert.Equal(t, 3, rec.Dimension())
	})

	t.Run("nil metadata becomes empty", func(t *testing.T) {
		rec, err := NewVectorRecord("doc-1", []float32{1}, nil)
		require.NoError(t, err)
		assert.NotNil(t, rec.Metadata)
		assert.Empty(t, rec.Metadata)
	})

	tests := []struct {
		name   string
		id     string
		values []float32
	}{
		{"empty id", "", []float32{1}},
		{"blank id", "   ", []float32{1}},
		{"nil values", "a", nil},
		{"empty values", "a", []float32{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewVectorRecord(tt.id, tt.values, nil)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"validation", Validationf("bad %s", "input"), ErrValidation},
		{"dimension", &DimensionMismatchError{Expected: 3, Actual: 4}, ErrValidation},
		{"not found", &NotFoundError{Namespace: "A"}, ErrNotFound},
		{"internal", Internalf("dangling edge %q", "x"), ErrInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("upsert: %w", tt.err)
			assert.ErrorIs(t, wrapped, tt.sentinel)
			for _, other := range []error{ErrValidation, ErrNotFound, ErrInternal} {
				if other != tt.sentinel {
					assert.False(t, errors.Is(wrapped, other))
				}
			}
		})
	}

	assert.EqualError(t, &DimensionMismatchError{Expected: 3, Actual: 4}, "dimension mismatch: expected 3, got 4")
}
