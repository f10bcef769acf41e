// Package ts provides the decision-making step of a sequential Bayesian
// optimization loop: Thompson sampling via random Fourier features. Given a
// fitted Gaussian process posterior and its observed dataset, it draws one
// approximate sample from the posterior over functions and returns that
// sample as the utility function whose maximizer is the next point to
// evaluate.
//
// # Features
//
// The package includes the following key features:
//
//   - Thompson Sampling Utility Builder: Converts a conjugate GP posterior
//     into a finite-dimensional, differentiable, re-evaluable approximate
//     sample function
//   - Strict Validation Chain: Tagged posterior/dataset collections are
//     checked up front (objective presence, posterior eligibility, feature
//     count) before any numerical work begins
//   - Deterministic Sampling: An explicit, splittable Seed type makes
//     identical seeds produce bit-identical utility functions and distinct
//     seeds produce distinct functions
//   - Vectorized Evaluation: Query batches are evaluated with dense matrix
//     products (gonum), returning one utility per query point
//   - Pathwise Conditioning: Prior samples are corrected onto the observed
//     data with a single Cholesky solve of the kernel Gram matrix
//   - Pluggable Priors: RBF and Matérn 5/2 kernels with ARD lengthscales,
//     zero and constant mean functions, Gaussian and Poisson likelihoods
//
// # Building a utility function
//
// The builder is constructed once with a fixed number of random features and
// may then be used for any number of independent builds:
//
//	builder, err := ts.NewThompsonSampling(100)
//	if err != nil {
//	    return err
//	}
//
//	kernel, err := ts.NewRBF([]float64{1.0}, 1.0)
//	if err != nil {
//	    return err
//	}
//
//	prior := ts.NewPrior(kernel, ts.Zero{})
//	posterior := prior.Posterior(ts.NewGaussian(dataset.N()))
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
// # Determinism and seeds
//
// Randomness is threaded explicitly through Seed values rather than global
// state. A Seed supports splitting into two independent children:
//
//	buildSeed, rest := seed.Split()
//
// Two independently constructed builders given the same seed and identical
// inputs produce pointwise-identical utility functions. Seeds must never be
// reused across concurrent builds; split them instead.
//
// # Errors
//
// All failure modes are sentinel errors checked with errors.Is:
//
//   - ErrMissingObjective: the reserved Objective tag is absent from the
//     posterior or dataset collection
//   - ErrUnsupportedPosteriorKind: the objective posterior is not of the
//     conjugate (closed-form) kind
//   - ErrInvalidFeatureCount: the feature count is zero or negative
//
// Validation completes before any randomness is consumed, so a failed build
// never advances seed state. Numerical failures (a non-positive-definite
// Gram matrix) are fatal and propagated with context; they are never patched
// over with jitter or degraded approximations.
//
// # Scope
//
// The package does not fit posterior hyperparameters, does not search the
// utility surface for its maximizer, and does not combine multiple
// objectives or constraints. Those belong to the outer optimization loop
// that consumes the produced UtilityFunction.
//
// # Thread Safety
//
// The builder is stateless across builds except for its fixed feature
// count. Produced utility functions close over immutable state and are safe
// for concurrent evaluation. Concurrent builds are safe as long as each call
// receives its own split of the seed.
package ts
