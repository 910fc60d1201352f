package hnsw

import (
	crand "crypto/rand"
	"encoding/binary"
	"math"
)

// levelScale multiplies -ln(U) when sampling a node's level.
const levelScale = 0.5

// Source yields uniform samples in [0, 1). *math/rand.Rand and
// *math/rand/v2.Rand satisfy it, which lets tests pin level assignment.
type Source interface {
	Float64() float64
}

// NewSource returns the production level source, backed by crypto/rand.
func NewSource() Source { return cryptoSource{} }

type cryptoSource struct{}

func (cryptoSource) Float64() float64 {
	var b [8]byte
	// crypto/rand.Read never fails on supported platforms.
	_, _ = crand.Read(b[:])
	return float64(binary.LittleEndian.Uint64(b[:])>>11) / (1 << 53)
}

// sampleLevel draws floor(-ln(U) * levelScale) with U in (0, 1).
func sampleLevel(src Source) int {
	u := src.Float64()
	for u <= 0 {
		u = src.Float64()
	}
	return int(math.Floor(-math.Log(u) * levelScale))
}
