package ts

import (
	"fmt"
)

//////
// Const, vars, types.
//////

// Likelihood describes how observations relate to the latent function. The
// likelihood determines whether the resulting posterior has closed-form
// predictive moments: Gaussian observation noise does, count likelihoods do
// not.
type Likelihood interface {
	// NumDatapoints returns the number of observations the likelihood is
	// sized for.
	NumDatapoints() int

	// conjugate reports whether pairing this likelihood with a Gaussian
	// process prior yields a closed-form posterior.
	conjugate() bool
}

// Gaussian is an observation model with homoscedastic Gaussian noise. It is
// the conjugate likelihood: pairing it with a GP prior yields a posterior
// with closed-form mean and covariance.
type Gaussian struct {
	// numDatapoints is the number of observations the likelihood is sized for.
	numDatapoints int

	// obsStddev is the standard deviation of the observation noise.
	obsStddev float64
}

// Poisson is a count observation model. It is non-conjugate: the posterior
// it induces has no closed form and requires iterative inference, which this
// package does not perform.
type Poisson struct {
	numDatapoints int
}

// Prior bundles the two components of a Gaussian process prior: a covariance
// kernel and a mean function.
type Prior struct {
	// Kernel is the covariance function of the process.
	Kernel Kernel

	// Mean is the prior mean function of the process.
	Mean MeanFunction
}

// Posterior is a fitted probabilistic surrogate model. The concrete variant
// is discriminated by Kind; only KindConjugate posteriors expose the
// closed-form moments the sample-path construction needs.
type Posterior interface {
	// Kind returns the variant of the posterior.
	Kind() PosteriorKind

	// Prior returns the prior the posterior was formed from.
	Prior() Prior

	// Likelihood returns the observation model of the posterior.
	Likelihood() Likelihood
}

// ConjugatePosterior is a Gaussian process posterior under Gaussian
// observation noise. Its predictive mean and covariance have closed forms,
// making it eligible for Thompson sampling via random features.
type ConjugatePosterior struct {
	prior      Prior
	likelihood *Gaussian
}

// NonConjugatePosterior is a Gaussian process posterior under a
// non-Gaussian likelihood. It carries the same structural information as the
// conjugate variant but offers no closed-form moments.
type NonConjugatePosterior struct {
	prior      Prior
	likelihood Likelihood
}

// LikelihoodBuilder sizes a likelihood for a given number of datapoints.
// Used by PosteriorHandler to re-form a posterior when the dataset grows.
type LikelihoodBuilder func(numDatapoints int) Likelihood

// PosteriorHandler re-forms a posterior as new data is observed. The
// likelihood is sized by the number of datapoints, so every change in
// dataset size needs a fresh prior-times-likelihood pairing.
//
// Important notes:
// - The handler never fits hyperparameters; the new posterior carries the
//   prior of the previous one unchanged
// - Stateless across calls; safe for concurrent use.
type PosteriorHandler struct {
	prior             Prior
	likelihoodBuilder LikelihoodBuilder
}

//////
// Methods.
//////

// NumDatapoints returns the number of observations the likelihood is sized for.
func (l *Gaussian) NumDatapoints() int {
	return l.numDatapoints
}

// ObsStddev returns the standard deviation of the observation noise.
func (l *Gaussian) ObsStddev() float64 {
	return l.obsStddev
}

func (l *Gaussian) conjugate() bool { return true }

// NumDatapoints returns the number of observations the likelihood is sized for.
func (l *Poisson) NumDatapoints() int {
	return l.numDatapoints
}

func (l *Poisson) conjugate() bool { return false }

// Posterior forms the posterior induced by the prior and the given
// likelihood. The variant depends on the likelihood: Gaussian noise yields a
// *ConjugatePosterior, anything else a *NonConjugatePosterior.
//
// Usage example:
//
//	prior := ts.NewPrior(kernel, ts.Zero{})
//	posterior := prior.Posterior(ts.NewGaussian(dataset.N()))
func (p Prior) Posterior(likelihood Likelihood) Posterior {
	if gaussian, ok := likelihood.(*Gaussian); ok && likelihood.conjugate() {
		return &ConjugatePosterior{prior: p, likelihood: gaussian}
	}

	return &NonConjugatePosterior{prior: p, likelihood: likelihood}
}

// Kind returns KindConjugate.
func (p *ConjugatePosterior) Kind() PosteriorKind {
	return KindConjugate
}

// Prior returns the prior the posterior was formed from.
func (p *ConjugatePosterior) Prior() Prior {
	return p.prior
}

// Likelihood returns the Gaussian observation model of the posterior.
func (p *ConjugatePosterior) Likelihood() Likelihood {
	return p.likelihood
}

// Kind returns KindNonConjugate.
func (p *NonConjugatePosterior) Kind() PosteriorKind {
	return KindNonConjugate
}

// Prior returns the prior the posterior was formed from.
func (p *NonConjugatePosterior) Prior() Prior {
	return p.prior
}

// Likelihood returns the observation model of the posterior.
func (p *NonConjugatePosterior) Likelihood() Likelihood {
	return p.likelihood
}

// Posterior forms a posterior for the given dataset by pairing the handler's
// prior with a likelihood sized for the dataset.
func (h *PosteriorHandler) Posterior(dataset *Dataset) Posterior {
	return h.prior.Posterior(h.likelihoodBuilder(dataset.N()))
}

// UpdatePosterior re-forms a posterior after the dataset has changed size.
// The prior hyperparameters of the previous posterior are kept; only the
// likelihood is re-sized.
//
// Parameters:
// - dataset: The grown dataset
// - previous: The posterior being replaced
//
// Returns:
// - Posterior: A fresh posterior over the same prior, sized for dataset.
func (h *PosteriorHandler) UpdatePosterior(dataset *Dataset, previous Posterior) Posterior {
	return previous.Prior().Posterior(h.likelihoodBuilder(dataset.N()))
}

//////
// Factories.
//////

// NewGaussian creates a Gaussian likelihood sized for numDatapoints
// observations with unit observation-noise standard deviation.
func NewGaussian(numDatapoints int) *Gaussian {
	return &Gaussian{
		numDatapoints: numDatapoints,
		obsStddev:     1.0, // Default observation noise
	}
}

// NewGaussianWithStddev creates a Gaussian likelihood with an explicit
// observation-noise standard deviation. The stddev must be non-negative;
// zero is allowed and means noise-free observations, at the caller's own
// numerical risk (the Gram matrix may become singular for repeated inputs).
func NewGaussianWithStddev(numDatapoints int, obsStddev float64) (*Gaussian, error) {
	if obsStddev < 0 {
		return nil, fmt.Errorf("ts: observation noise stddev must be non-negative, got %v", obsStddev)
	}

	return &Gaussian{numDatapoints: numDatapoints, obsStddev: obsStddev}, nil
}

// NewPoisson creates a Poisson likelihood sized for numDatapoints
// observations.
func NewPoisson(numDatapoints int) *Poisson {
	return &Poisson{numDatapoints: numDatapoints}
}

// NewPrior creates a Gaussian process prior from a kernel and a mean
// function. A nil mean function defaults to Zero.
func NewPrior(kernel Kernel, mean MeanFunction) Prior {
	if mean == nil {
		mean = Zero{}
	}

	return Prior{Kernel: kernel, Mean: mean}
}

// NewPosteriorHandler creates a handler that re-forms posteriors over the
// given prior as datasets grow.
//
// Parameters:
// - prior: Prior to pair with each likelihood
// - builder: Sizes a likelihood for a number of datapoints
//
// Returns:
// - *PosteriorHandler: The handler
// - error: Non-nil when builder is nil.
func NewPosteriorHandler(prior Prior, builder LikelihoodBuilder) (*PosteriorHandler, error) {
	if builder == nil {
		return nil, fmt.Errorf("ts: a likelihood builder is required")
	}

	return &PosteriorHandler{prior: prior, likelihoodBuilder: builder}, nil
}
