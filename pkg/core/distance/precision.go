package distance

import (
	"github.com/x448/float16"

	"github.com/sanonone/kektorvec/pkg/core/types"
)

// Precision is the resolution stored vectors are kept at.
type Precision string

const (
	// Float32 keeps components exactly as received.
	Float32 Precision = "float32"
	// Float16 rounds every stored component through IEEE 754 half precision.
	// Distances are still computed in float32 arithmetic.
	Float16 Precision = "float16"
)

// ParsePrecision converts a configuration string to a Precision. The empty
// string selects Float32.
func ParsePrecision(s string) (Precision, error) {
	switch Precision(s) {
	case "", Float32:
		return Float32, nil
	case Float16:
		return Float16, nil
	default:
		return "", types.Validationf("precision %q not supported", s)
	}
}

// Apply returns v at precision p. Float32 returns v itself; Float16 returns a
// rounded copy and leaves v untouched.
func (p Precision) Apply(v []float32) []float32 {
	if p != Float16 {
		return v
	}
	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = float16.Fromfloat32(x).Float32()
	}
	return out
}
