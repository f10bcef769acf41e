package ts

import (
	"gonum.org/v1/gonum/mat"
)

//////
// Const, vars, types.
//////

// Tag is a symbolic role attached to a posterior or a dataset in the
// collections handed to the utility-function builder. Collections are keyed
// by Tag so a single build call can carry the objective model alongside
// auxiliary models (e.g. constraints) without positional coupling.
//
// Important notes:
// - Keys within a collection are unique (enforced by the map type)
// - Ordering of tags is irrelevant
// - Only the reserved Objective tag is consumed by this package; auxiliary
//   tags are validated for presence but their content never reaches the
//   numerical core.
type Tag string

// Objective is the reserved tag denoting the quantity being optimized.
//
// Both the posterior collection and the dataset collection passed to
// ThompsonSampling.BuildUtilityFunction must contain this tag; a missing
// objective in either collection fails the build with ErrMissingObjective
// before any numerical work begins.
const Objective Tag = "OBJECTIVE"

// UtilityFunction is the artifact produced by a successful build: a pure
// mapping from a batch of query points to their scalar utilities. The point
// that maximizes this surface is the next point the outer optimization loop
// should evaluate.
//
// Parameters:
// - x: Query points, one per row (M x D, where D matches the training data)
//
// Returns:
// - *mat.Dense: Utilities, one per query point (M x 1)
// - error: Non-nil if the query dimensionality does not match the model
//
// Usage example:
//
//	utility, err := builder.BuildUtilityFunction(posteriors, datasets, seed)
//	if err != nil {
//	    return err
//	}
//
//	values, err := utility(queryPoints) // (M x 1)
//
// Important notes:
// - Pure function: the same input always yields the same output
// - Owns its sampled frequencies, phases, weights and correction term by
//   value; it shares no mutable state with the builder that produced it
// - Safe for concurrent calls
//
// Thread safety:
// - The closure only reads captured state, never mutates it
// - Multiple goroutines may evaluate the same function in parallel.
type UtilityFunction func(x *mat.Dense) (*mat.Dense, error)

// PosteriorKind discriminates the posterior variants this package can
// encounter. The eligibility check in BuildUtilityFunction is a single
// comparison on this kind rather than runtime type inspection.
type PosteriorKind int

const (
	// KindConjugate marks posteriors with closed-form predictive moments
	// (Gaussian observation noise). Only this kind supports the approximate
	// sample-path construction used for Thompson sampling.
	KindConjugate PosteriorKind = iota

	// KindNonConjugate marks posteriors whose likelihood requires iterative
	// or variational inference (e.g. Poisson counts). No closed form is
	// available, so these are rejected with ErrUnsupportedPosteriorKind.
	KindNonConjugate
)

// String returns a human-readable name for the posterior kind.
func (k PosteriorKind) String() string {
	switch k {
	case KindConjugate:
		return "conjugate"
	case KindNonConjugate:
		return "non-conjugate"
	default:
		return "unknown"
	}
}
