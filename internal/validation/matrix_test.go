package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatrixCompletePasses(t *testing.T) {
	units := []string{"g", "kg"}
	conversions := map[string]any{
		"g":  map[string]any{"g": 1.0, "kg": 0.001},
		"kg": map[string]any{"g": 1000.0, "kg": 1.0},
	}

	assert.Empty(t, checkConversionMatrix(units, conversions))
}

// Self-conversion factors must equal the literal number 1; approximately
// one is not accepted.
func TestSelfConversionExactness(t *testing.T) {
	units := []string{"g"}

	errs := checkConversionMatrix(units, map[string]any{"g": map[string]any{"g": 1.0}})
	assert.Empty(t, errs)

	errs = checkConversionMatrix(units, map[string]any{"g": map[string]any{"g": 0.999999}})
	require.Len(t, errs, 1)
	assert.Equal(t, "conversions.g.g must equal 1 (got 0.999999)", errs[0])
}

// Completeness is an ordered-pair sweep: with units {a,b,c} and only
// a→b and b→a authored, exactly the seven other pairs are reported as
// distinct missing entries.
func TestMatrixCompletenessSweep(t *testing.T) {
	units := []string{"a", "b", "c"}
	conversions := map[string]any{
		"a": map[string]any{"b": 2.0},
		"b": map[string]any{"a": 0.5},
	}

	errs := checkConversionMatrix(units, conversions)

	expected := []string{
		"conversions.a.a is missing",
		"conversions.a.c is missing",
		"conversions.b.b is missing",
		"conversions.b.c is missing",
		"conversions.c.a is missing",
		"conversions.c.b is missing",
		"conversions.c.c is missing",
	}
	assert.ElementsMatch(t, expected, errs)
	assert.Len(t, errs, 7)
}

func TestMatrixNonNumericFactor(t *testing.T) {
	units := []string{"g"}
	conversions := map[string]any{"g": map[string]any{"g": "1"}}

	errs := checkConversionMatrix(units, conversions)

	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "conversions.g.g must be numeric")
}

// Reciprocal values are not inferred: b→a authored does not satisfy a→b.
func TestMatrixNoReciprocalInference(t *testing.T) {
	units := []string{"a", "b"}
	conversions := map[string]any{
		"a": map[string]any{"a": 1.0},
		"b": map[string]any{"a": 2.0, "b": 1.0},
	}

	errs := checkConversionMatrix(units, conversions)
	assert.Contains(t, errs, "conversions.a.b is missing")
}
