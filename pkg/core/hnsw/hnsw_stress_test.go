package hnsw

import (
	"fmt"
	"math/rand"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/sanonone/kektorvec/pkg/core/types"
)

func TestConcurrentSearchIsDeterministic(t *testing.T) {
	const (
		numVectors = 300
		dim        = 32
		readers    = 16
		rounds     = 20
	)
	rng := rand.New(rand.NewSource(9))
	idx := mustNew(t, dim, Config{M: 8, EfConstruction: 64, EfSearch: 32})
	for i := range numVectors {
		require.NoError(t, idx.Upsert(record(t, fmt.Sprintf("s-%03d", i), randomVector(rng, dim)...)))
	}

	queries := make([][]float32, 10)
	for i := range queries {
		queries[i] = randomVector(rng, dim)
	}
	want := make([][]types.SearchResult, len(queries))
	for i, q := range queries {
		res, err := idx.Search(q, 10)
		require.NoError(t, err)
		want[i] = res
	}

	var g errgroup.Group
	for range readers {
		g.Go(func() error {
			for range rounds {
				for i, q := range queries {
					res, err := idx.Search(q, 10)
					if err != nil {
						return err
					}
					if !assert.Equal(t, want[i], res) {
						return fmt.Errorf("query %d diverged", i)
					}
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}

// TestConcurrentMutations mixes writers, deleters and readers on one index.
// Run with -race.
func TestConcurrentMutations(t *testing.T) {
	const (
		dim     = 16
		writers = 6
		readers = 10
		perTask = 60
	)
	idx := mustNew(t, dim, Config{M: 6, EfConstruction: 32, EfSearch: 16})

	var deleted atomic.Int64
	var g errgroup.Group
	for w := range writers {
		g.Go(func() error {
			rng := rand.New(rand.NewSource(int64(w)))
			for i := range perTask {
				rec, err := types.NewVectorRecord(fmt.Sprintf("w%d-%d", w, i%20), randomVector(rng, dim), nil)
				if err != nil {
					return err
				}
				if err := idx.Upsert(rec); err != nil {
					return err
				}
				if i%7 == 0 {
					ok, err := idx.Delete(fmt.Sprintf("w%d-%d", w, i%20))
					if err != nil {
						return err
					}
					if ok {
						deleted.Add(1)
					}
				}
			}
			return nil
		})
	}
	for r := range readers {
		g.Go(func() error {
			rng := rand.New(rand.NewSource(int64(100 + r)))
			for range perTask {
				res, err := idx.Search(randomVector(rng, dim), 5)
				if err != nil {
					return err
				}
				if len(res) > 5 {
					return fmt.Errorf("got %d results for topK 5", len(res))
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.Positive(t, deleted.Load())
	assert.LessOrEqual(t, idx.Len(), writers*20)
	assertGraphConsistent(t, idx)
}
