package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanonone/kektorvec/pkg/core/types"
	"github.com/sanonone/kektorvec/pkg/engine"
)

func newService(t *testing.T) *Service {
	t.Helper()
	eng, err := engine.New(engine.DefaultOptions())
	require.NoError(t, err)
	return NewService(eng)
}

func TestService_UpsertAndQuery(t *testing.T) {
	ctx := context.Background()
	s := newService(t)

	_, up, err := s.Upsert(ctx, nil, UpsertArgs{Namespace: "docs", Vectors: []VectorArg{
		{ID: "a", Values: []float32{1, 0}, Metadata: map[string]string{"title": "A"}},
		{ID: "b", Values: []float32{0, 1}},
	}})
	require.NoError(t, err)
	assert.Equal(t, 2, up.UpsertedCount)

	_, out, err := s.Query(ctx, nil, QueryArgs{Namespace: "docs", Vector: []float32{1, 0}, TopK: 2, IncludeMetadata: true})
	require.NoError(t, err)
	require.Len(t, out.Matches, 2)
	assert.Equal(t, "a", out.Matches[0].ID)
	assert.InDelta(t, 1.0, out.Matches[0].Score, 1e-9)
	assert.Equal(t, map[string]string{"title": "A"}, out.Matches[0].Metadata)
	assert.Nil(t, out.Matches[0].Values)
}

func TestService_Errors(t *testing.T) {
	ctx := context.Background()
	s := newService(t)

	t.Run("query unknown namespace", func(t *testing.T) {
		_, _, err := s.Query(ctx, nil, QueryArgs{Namespace: "nope", Vector: []float32{1}})
		require.Error(t, err)
		assert.ErrorIs(t, err, types.ErrNotFound)
		assert.Contains(t, err.Error(), "query failed")
	})

	t.Run("partial upsert reports count", func(t *testing.T) {
		_, up, err := s.Upsert(ctx, nil, UpsertArgs{Vectors: []VectorArg{
			{ID: "x", Values: []float32{1, 2}},
			{ID: "y", Values: []float32{1, 2, 3}},
		}})
		require.Error(t, err)
		assert.ErrorIs(t, err, types.ErrValidation)
		assert.Equal(t, 1, up.UpsertedCount)
	})
}

func TestService_ListNamespaces(t *testing.T) {
	ctx := context.Background()
	s := newService(t)

	_, empty, err := s.ListNamespaces(ctx, nil, ListNamespacesArgs{})
	require.NoError(t, err)
	assert.Empty(t, empty.Namespaces)

	for _, ns := range []string{"b", "a"} {
		_, _, err := s.Upsert(ctx, nil, UpsertArgs{Namespace: ns, Vectors: []VectorArg{{ID: "v", Values: []float32{1, 2, 3}}}})
		require.NoError(t, err)
	}

	_, out, err := s.ListNamespaces(ctx, nil, ListNamespacesArgs{})
	require.NoError(t, err)
	assert.Equal(t, []NamespaceResult{
		{Name: "a", Dimension: 3, VectorCount: 1},
		{Name: "b", Dimension: 3, VectorCount: 1},
	}, out.Namespaces)
}

func TestNewMCPServer(t *testing.T) {
	eng, err := engine.New(engine.DefaultOptions())
	require.NoError(t, err)
	assert.NotNil(t, NewMCPServer(eng))
	assert.NotNil(t, NewHTTPHandler(eng))
}
