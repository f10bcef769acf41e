package ts

import (
	"fmt"
)

//////
// Exported functionalities.
//////

// ThompsonSampling builds utility functions for Bayesian optimization by
// drawing one approximate sample from the objective posterior via random
// Fourier features. The sampled function itself is the acquisition surface:
// no explicit acquisition formula is computed, and the point that maximizes
// the sample is the next point to evaluate.
//
// The number of random features is fixed at construction and reused across
// every build; each build call draws its own frequencies, phases and weights
// from the seed it is given, so successive builds are independent.
//
// Usage example:
//
//	builder, err := ts.NewThompsonSampling(100)
//	if err != nil {
//	    return err
//	}
//
//	posteriors := map[ts.Tag]ts.Posterior{ts.Objective: posterior}
//	datasets := map[ts.Tag]*ts.Dataset{ts.Objective: dataset}
//
//	utility, err := builder.BuildUtilityFunction(posteriors, datasets, ts.NewSeed(42))
//	if err != nil {
//	    return err
//	}
//
//	values, err := utility(queryPoints) // (M x 1)
//
// How it works:
// 1. Validates that the Objective tag is present in both collections
// 2. Validates that the objective posterior is of the conjugate kind
// 3. Validates the feature count (defensively; already checked at construction)
// 4. Draws an approximate posterior sample and returns it as a pure function
//
// Important notes:
// - Stateless across builds except for the fixed feature count
// - Safe to call BuildUtilityFunction concurrently, provided each call gets
//   an independently split seed
// - Auxiliary tags (e.g. constraints) are ignored: their content never
//   reaches the numerical core.
type ThompsonSampling struct {
	// numFeatures is the dimensionality of the random-feature approximation.
	numFeatures int
}

// NewThompsonSampling creates a builder with the given number of random
// features. More features give a better approximation to a true posterior
// sample at linearly higher cost per build and per evaluation.
//
// Parameters:
// - numFeatures: Number of cosine features (must be positive; 100 is typical)
//
// Returns:
// - *ThompsonSampling: The builder
// - error: ErrInvalidFeatureCount when numFeatures <= 0.
func NewThompsonSampling(numFeatures int) (*ThompsonSampling, error) {
	if err := validateNumFeatures(numFeatures); err != nil {
		return nil, err
	}

	return &ThompsonSampling{numFeatures: numFeatures}, nil
}

// NumFeatures returns the fixed number of random features.
func (b *ThompsonSampling) NumFeatures() int {
	return b.numFeatures
}

// BuildUtilityFunction validates the tagged collections, draws one
// approximate sample from the objective posterior and returns it as the
// utility function.
//
// Parameters:
// - posteriors: Posterior per tag; must contain Objective
// - datasets: Dataset per tag, keyed identically; must contain Objective
// - seed: Randomness for this build and no other; split it, never reuse it
//
// Returns:
// - UtilityFunction: A pure function from query points (M x D) to utilities (M x 1)
// - error: See below
//
// Errors:
// - ErrMissingObjective: Objective tag absent from either collection
// - ErrUnsupportedPosteriorKind: objective posterior is not conjugate
// - ErrInvalidFeatureCount: the builder carries a non-positive feature count
// - Numerical failure: the Gram matrix solve failed; propagated with
//   context, never retried or degraded
//
// Important notes:
// - Validation is fail-fast, in the order listed, and completes before any
//   randomness is consumed: a failed build never advances seed state
// - Two builds with the same seed and inputs produce pointwise-identical
//   functions; builds with different seeds produce functions that differ at
//   essentially every point.
func (b *ThompsonSampling) BuildUtilityFunction(
	posteriors map[Tag]Posterior,
	datasets map[Tag]*Dataset,
	seed Seed,
) (UtilityFunction, error) {
	if err := validateObjectivePresent(posteriors, datasets); err != nil {
		return nil, err
	}

	objective, err := validateConjugate(posteriors[Objective])
	if err != nil {
		return nil, err
	}

	if err := validateNumFeatures(b.numFeatures); err != nil {
		return nil, err
	}

	path, err := newSamplePath(objective, datasets[Objective], b.numFeatures, seed)
	if err != nil {
		return nil, err
	}

	return path.evaluate, nil
}

//////
// Validator chain.
//////

// validateObjectivePresent fails with ErrMissingObjective when the reserved
// Objective tag is absent from either collection. Pure check, run first so
// malformed input never reaches the numerical path.
func validateObjectivePresent(posteriors map[Tag]Posterior, datasets map[Tag]*Dataset) error {
	if _, ok := posteriors[Objective]; !ok {
		return fmt.Errorf("%w: posterior collection has tags %v", ErrMissingObjective, tags(posteriors))
	}

	if _, ok := datasets[Objective]; !ok {
		return fmt.Errorf("%w: dataset collection has tags %v", ErrMissingObjective, tags(datasets))
	}

	return nil
}

// validateConjugate fails with ErrUnsupportedPosteriorKind unless the
// posterior is of the conjugate (closed-form) kind.
func validateConjugate(posterior Posterior) (*ConjugatePosterior, error) {
	if posterior.Kind() != KindConjugate {
		return nil, fmt.Errorf("%w: got %s", ErrUnsupportedPosteriorKind, posterior.Kind())
	}

	conjugate, ok := posterior.(*ConjugatePosterior)
	if !ok {
		return nil, fmt.Errorf("%w: got %T", ErrUnsupportedPosteriorKind, posterior)
	}

	return conjugate, nil
}

// validateNumFeatures fails with ErrInvalidFeatureCount when the feature
// count is zero or negative.
func validateNumFeatures(numFeatures int) error {
	if numFeatures <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidFeatureCount, numFeatures)
	}

	return nil
}
