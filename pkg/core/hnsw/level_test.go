package hnsw

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSampleLevel(t *testing.T) {
	for want := range 6 {
		assert.Equal(t, want, sampleLevel(levels(want)), "level %d", want)
	}

	// Samples of exactly zero are drawn again.
	src := &seqSource{samples: []float64{0, 0, uniformForLevel(3)}}
	assert.Equal(t, 3, sampleLevel(src))
	assert.Equal(t, 3, src.next)

	// Anything above e^-2 stays on the ground layer.
	assert.Equal(t, 0, sampleLevel(&seqSource{samples: []float64{0.999999}}))
	assert.Equal(t, 0, sampleLevel(&seqSource{samples: []float64{0.14}}))
	assert.Equal(t, 1, sampleLevel(&seqSource{samples: []float64{0.13}}))
}

func TestSampleLevelDistribution(t *testing.T) {
	const n = 20000
	src := rand.New(rand.NewSource(11))

	upper := 0
	for range n {
		if sampleLevel(src) > 0 {
			upper++
		}
	}
	// P(level >= 1) = P(U < e^-2) ~ 0.135.
	assert.InDelta(t, 0.135, float64(upper)/n, 0.01)
}

func TestCryptoSourceRange(t *testing.T) {
	src := NewSource()
	for range 1000 {
		u := src.Float64()
		assert.GreaterOrEqual(t, u, 0.0)
		assert.Less(t, u, 1.0)
	}
}
