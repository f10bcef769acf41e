package ts

import "errors"

//////
// Error taxonomy.
//
// Every failure mode of the builder is a sentinel value so callers can branch
// with errors.Is. All of them are detected synchronously inside
// BuildUtilityFunction, before any randomness is consumed: a failed build
// never advances seed state.
//////

var (
	// ErrMissingObjective indicates that the reserved Objective tag is absent
	// from the posterior collection, the dataset collection, or both.
	ErrMissingObjective = errors.New("ts: no objective tag in collection")

	// ErrUnsupportedPosteriorKind indicates that the objective posterior is
	// not of the conjugate (closed-form) kind. The sample-path construction
	// needs an explicit posterior mean and covariance, which non-conjugate
	// likelihoods cannot provide; the build is never silently downgraded to
	// an approximate inference scheme.
	ErrUnsupportedPosteriorKind = errors.New("ts: objective posterior is not conjugate")

	// ErrInvalidFeatureCount indicates a zero or negative number of random
	// features. Checked at builder construction and, defensively, again at
	// build time since the count is supplied once and reused.
	ErrInvalidFeatureCount = errors.New("ts: number of features must be a positive integer")
)
