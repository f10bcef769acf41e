package ts

import (
	"slices"

	"golang.org/x/exp/constraints"
)

//////
// Helper functions.
//////

// toFloats converts a slice of any numeric type to float64 values.
//
// Important notes:
// - Creates a new slice; doesn't modify the input
// - Preserves order of elements
// - Returns an empty slice for nil or empty input.
func toFloats[T constraints.Integer | constraints.Float](values []T) []float64 {
	floats := make([]float64, len(values))

	for i, v := range values {
		floats[i] = float64(v)
	}

	return floats
}

// tags returns the sorted keys of a tagged collection. Used only for error
// messages, so the output is stable across runs.
func tags[V any](collection map[Tag]V) []Tag {
	out := make([]Tag, 0, len(collection))

	for tag := range collection {
		out = append(out, tag)
	}

	slices.Sort(out)

	return out
}
