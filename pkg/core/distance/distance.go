// Package distance provides the metrics used to score dissimilarity between
// two vectors. Smaller values mean more similar.
//
// The package dispatches at init time between a pure Go reference
// implementation and Gonum's BLAS kernels, which carry SIMD paths on the
// architectures cpuid reports support for.
package distance

import (
	"fmt"
	"math"
	"sync"

	"github.com/klauspost/cpuid/v2"
	"gonum.org/v1/gonum/blas/gonum"

	"github.com/sanonone/kektorvec/pkg/core/types"
)

// Func scores two vectors of equal length. It fails with a
// *types.DimensionMismatchError when the lengths differ.
type Func func(a, b []float32) (float64, error)

// Metric names a distance function.
type Metric string

const (
	// Cosine is 1 - cosine similarity, in [0, 2]. It is the default metric.
	Cosine Metric = "cosine"
	// Euclidean is the squared Euclidean distance.
	Euclidean Metric = "euclidean"
)

var gonumEngine = gonum.Implementation{}

// backend records which implementation init selected.
var backend = "pure-go"

func init() {
	if cpuid.CPU.Supports(cpuid.SSE2) || cpuid.CPU.Supports(cpuid.ASIMD) {
		funcs[Cosine] = cosineGonum
		funcs[Euclidean] = squaredEuclideanGonum
		backend = "gonum"
	}
}

// funcs maps a metric to its current implementation.
var funcs = map[Metric]Func{
	Cosine:    cosineGo,
	Euclidean: squaredEuclideanGo,
}

// Get returns the distance function for metric.
func Get(metric Metric) (Func, error) {
	fn, ok := funcs[metric]
	if !ok {
		return nil, types.Validationf("metric %q not supported", metric)
	}
	return fn, nil
}

// ParseMetric converts a configuration string to a Metric. The empty string
// selects Cosine.
func ParseMetric(s string) (Metric, error) {
	if s == "" {
		return Cosine, nil
	}
	m := Metric(s)
	if _, ok := funcs[m]; !ok {
		return "", types.Validationf("metric %q not supported", s)
	}
	return m, nil
}

// CosineDistance is the default metric, exposed for callers that do not go
// through Get.
func CosineDistance(a, b []float32) (float64, error) {
	return funcs[Cosine](a, b)
}

// Backend describes the selected compute path, for startup logging.
func Backend() string {
	return fmt.Sprintf("%s (cpu=%q avx2=%t)", backend, cpuid.CPU.BrandName, cpuid.CPU.Supports(cpuid.AVX2))
}

// --- pure Go reference implementations ---

func cosineGo(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, &types.DimensionMismatchError{Expected: len(a), Actual: len(b)}
	}
	var dot, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}
	return cosineFromParts(dot, normA, normB), nil
}

func squaredEuclideanGo(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, &types.DimensionMismatchError{Expected: len(a), Actual: len(b)}
	}
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return sum, nil
}

// --- Gonum-based implementations ---

func cosineGonum(a, b []float32) (float64, error) {
	n := len(a)
	if n != len(b) {
		return 0, &types.DimensionMismatchError{Expected: len(a), Actual: len(b)}
	}
	dot := float64(gonumEngine.Sdot(n, a, 1, b, 1))
	normA := float64(gonumEngine.Sdot(n, a, 1, a, 1))
	normB := float64(gonumEngine.Sdot(n, b, 1, b, 1))
	return cosineFromParts(dot, normA, normB), nil
}

// diffWorkspace pools scratch slices for the difference vector so the hot
// path does not allocate.
var diffWorkspace = sync.Pool{
	New: func() any {
		s := make([]float32, 1536)
		return &s
	},
}

func squaredEuclideanGonum(a, b []float32) (float64, error) {
	n := len(a)
	if n != len(b) {
		return 0, &types.DimensionMismatchError{Expected: len(a), Actual: len(b)}
	}

	diffPtr := diffWorkspace.Get().(*[]float32)
	defer diffWorkspace.Put(diffPtr)
	if cap(*diffPtr) < n {
		*diffPtr = make([]float32, n)
	}
	diff := (*diffPtr)[:n]

	copy(diff, a)
	gonumEngine.Saxpy(n, -1, b, 1, diff, 1)
	return float64(gonumEngine.Sdot(n, diff, 1, diff, 1)), nil
}

// cosineFromParts turns a dot product and two squared norms into a cosine
// distance. A zero norm on either side yields exactly 1.
func cosineFromParts(dot, normA, normB float64) float64 {
	if normA == 0 || normB == 0 {
		return 1.0
	}
	similarity := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	// Rounding can push the ratio a hair outside [-1, 1].
	similarity = max(-1, min(1, similarity))
	return 1.0 - similarity
}
