package distance

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanonone/kektorvec/pkg/core/types"
)

const tolerance = 1e-6

func randomVector(rng *rand.Rand, dim int) []float32 {
	v := make([]float32, dim)
	for i := range v {
		v[i] = rng.Float32()*2 - 1
	}
	return v
}

func negate(v []float32) []float32 {
	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = -x
	}
	return out
}

// implementations lists every cosine kernel so both dispatch targets are
// covered whatever the host CPU selected.
var cosineImpls = map[string]Func{
	"go":    cosineGo,
	"gonum": cosineGonum,
}

func TestCosine(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for name, fn := range cosineImpls {
		t.Run(name, func(t *testing.T) {
			for range 20 {
				v := randomVector(rng, 128)

				d, err := fn(v, v)
				require.NoError(t, err)
				assert.InDelta(t, 0.0, d, tolerance, "distance(v, v)")

				d, err = fn(v, negate(v))
				require.NoError(t, err)
				assert.InDelta(t, 2.0, d, tolerance, "distance(v, -v)")
			}

			d, err := fn([]float32{1, 0}, []float32{0, 1})
			require.NoError(t, err)
			assert.InDelta(t, 1.0, d, tolerance)
		})
	}
}

func TestCosineZeroVector(t *testing.T) {
	zero := []float32{0, 0, 0}
	v := []float32{1, 2, 3}

	for name, fn := range cosineImpls {
		t.Run(name, func(t *testing.T) {
			for _, pair := range [][2][]float32{{zero, v}, {v, zero}, {zero, zero}} {
				d, err := fn(pair[0], pair[1])
				require.NoError(t, err)
				assert.Equal(t, 1.0, d)
			}
		})
	}
}

func TestDimensionMismatch(t *testing.T) {
	fns := map[string]Func{
		"cosine-go":       cosineGo,
		"cosine-gonum":    cosineGonum,
		"euclidean-go":    squaredEuclideanGo,
		"euclidean-gonum": squaredEuclideanGonum,
	}
	for name, fn := range fns {
		t.Run(name, func(t *testing.T) {
			_, err := fn([]float32{1, 2}, []float32{1, 2, 3})
			require.Error(t, err)
			assert.ErrorIs(t, err, types.ErrValidation)

			var mismatch *types.DimensionMismatchError
			require.ErrorAs(t, err, &mismatch)
			assert.Equal(t, 2, mismatch.Expected)
			assert.Equal(t, 3, mismatch.Actual)
		})
	}
}

func TestSquaredEuclidean(t *testing.T) {
	for name, fn := range map[string]Func{"go": squaredEuclideanGo, "gonum": squaredEuclideanGonum} {
		t.Run(name, func(t *testing.T) {
			d, err := fn([]float32{1, 2}, []float32{3, 4})
			require.NoError(t, err)
			assert.InDelta(t, 8.0, d, tolerance)
		})
	}

	// Vectors longer than the pooled workspace force a reallocation.
	rng := rand.New(rand.NewSource(7))
	a, b := randomVector(rng, 2048), randomVector(rng, 2048)
	want, err := squaredEuclideanGo(a, b)
	require.NoError(t, err)
	got, err := squaredEuclideanGonum(a, b)
	require.NoError(t, err)
	assert.InEpsilon(t, want, got, 1e-4)
}

func TestGetAndParseMetric(t *testing.T) {
	fn, err := Get(Cosine)
	require.NoError(t, err)
	d, err := fn([]float32{1, 0}, []float32{1, 0})
	require.NoError(t, err)
	assert.InDelta(t, 0.0, d, tolerance)

	_, err = Get("manhattan")
	assert.ErrorIs(t, err, types.ErrValidation)

	m, err := ParseMetric("")
	require.NoError(t, err)
	assert.Equal(t, Cosine, m)

	m, err = ParseMetric("euclidean")
	require.NoError(t, err)
	assert.Equal(t, Euclidean, m)

	_, err = ParseMetric("hamming")
	assert.ErrorIs(t, err, types.ErrValidation)

	assert.NotEmpty(t, Backend())
}

func TestPrecision(t *testing.T) {
	p, err := ParsePrecision("")
	require.NoError(t, err)
	assert.Equal(t, Float32, p)

	_, err = ParsePrecision("int8")
	assert.ErrorIs(t, err, types.ErrValidation)

	in := []float32{0.1, 1, 65504, 1.0009765625}
	assert.Equal(t, in, Float32.Apply(in))

	out := Float16.Apply(in)
	require.Len(t, out, len(in))
	assert.Equal(t, float32(0.1), in[0], "input must not be modified")
	assert.InDelta(t, 0.1, out[0], 1e-4)
	assert.NotEqual(t, float32(0.1), out[0])
	assert.Equal(t, float32(1), out[1])
	assert.Equal(t, float32(65504), out[2])
	assert.Equal(t, float32(1.0009765625), out[3])
}
