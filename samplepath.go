package ts

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

//////
// Random-feature approximate sample paths.
//
// An approximate draw from a GP posterior is built in two stages (Bochner's
// theorem plus the pathwise update):
//
//  1. Prior sample: L frequencies drawn from the kernel's spectral density
//     and L uniform phases define a cosine feature map phi; a standard
//     normal weight vector w turns it into the function
//     g(x) = m(x) + phi(x)' w, an approximate draw from the prior.
//  2. Conditioning: one Cholesky solve of (K + noise*I) v = y - g(X_train)
//     yields coefficients v such that
//     f(x) = g(x) + k(x, X_train) v
//     matches the exact posterior mean at the training inputs.
//
// Everything random is drawn once at construction; evaluation is
// deterministic thereafter.
//////

// samplePath is one realized approximate draw from the posterior over
// functions. All fields are written once at construction and only read
// afterwards, which is what makes the produced UtilityFunction pure.
type samplePath struct {
	kernel spectralKernel
	mean   MeanFunction

	// scale is the feature amplitude sqrt(2 * variance / L).
	scale float64

	// freqs holds the L x D spectral frequencies of the feature map.
	freqs *mat.Dense

	// phases holds the L uniform phase offsets in [0, 2*pi).
	phases []float64

	// weights is the standard normal coefficient vector of length L.
	weights *mat.VecDense

	// trainX is a copy of the conditioning inputs (N x D). Nil when the
	// dataset was empty, in which case the path is an unconditioned prior
	// draw.
	trainX *mat.Dense

	// coeffs is the pathwise correction solution of length N.
	coeffs *mat.VecDense
}

//////
// Methods.
//////

// priorSample evaluates the prior stage g(x) = m(x) + phi(x)' w over a batch
// of query points, vectorized as one M x L matrix product.
func (sp *samplePath) priorSample(x *mat.Dense) *mat.VecDense {
	// Project the batch onto the frequencies: (M x D) * (D x L).
	var features mat.Dense
	features.Mul(x, sp.freqs.T())

	// Cosine basis expansion.
	features.Apply(func(_, j int, v float64) float64 {
		return sp.scale * math.Cos(v+sp.phases[j])
	}, &features)

	m, _ := x.Dims()

	out := mat.NewVecDense(m, nil)
	out.MulVec(&features, sp.weights)

	for i := 0; i < m; i++ {
		out.SetVec(i, out.AtVec(i)+sp.mean.Eval(x.RawRowView(i)))
	}

	return out
}

// evaluate computes the sample path over a batch of query points.
//
// Parameters:
// - x: Query points, one per row (M x D)
//
// Returns:
// - *mat.Dense: Sample values, one per query point (M x 1)
// - error: Non-nil when the batch dimensionality does not match the kernel.
func (sp *samplePath) evaluate(x *mat.Dense) (*mat.Dense, error) {
	if x == nil {
		return nil, fmt.Errorf("ts: query points must not be nil")
	}

	m, dim := x.Dims()

	if dim != sp.kernel.Dim() {
		return nil, fmt.Errorf("ts: query points have dimension %d, model expects %d", dim, sp.kernel.Dim())
	}

	values := sp.priorSample(x)

	// Pathwise correction: k(x, X_train) * coeffs.
	if sp.trainX != nil {
		var correction mat.VecDense
		correction.MulVec(kernelCross(sp.kernel, x, sp.trainX), sp.coeffs)

		values.AddVec(values, &correction)
	}

	out := mat.NewDense(m, 1, nil)

	for i := 0; i < m; i++ {
		out.Set(i, 0, values.AtVec(i))
	}

	return out, nil
}

//////
// Factory.
//////

// newSamplePath draws one approximate sample from the given conjugate
// posterior, conditioned on the dataset. The draw is a deterministic
// function of the seed: equal seeds yield pointwise-identical paths.
//
// Parameters:
// - posterior: Conjugate posterior supplying kernel, mean and noise level
// - dataset: Conditioning observations (may be empty)
// - numFeatures: Number of random features L (must already be validated)
// - seed: Source of randomness for this draw and no other
//
// Important notes:
// - Shape validation happens before any randomness is consumed, so a failed
//   construction never advances seed-derived state
// - A non-positive-definite Gram matrix is a fatal error, surfaced with
//   matrix context and never patched over with jitter.
func newSamplePath(posterior *ConjugatePosterior, dataset *Dataset, numFeatures int, seed Seed) (*samplePath, error) {
	prior := posterior.Prior()

	kernel, ok := prior.Kernel.(spectralKernel)
	if !ok {
		return nil, fmt.Errorf("ts: thompson sampling requires a kernel with a samplable spectral density (e.g. *RBF), got %T", prior.Kernel)
	}

	if dataset.N() > 0 && dataset.Dim() != kernel.Dim() {
		return nil, fmt.Errorf("ts: dataset has dimension %d, kernel expects %d", dataset.Dim(), kernel.Dim())
	}

	spectrumSeed, weightSeed := seed.Split()

	// Frequencies and phases share one stream; draw order is fixed
	// (frequencies row-major, then phases) so the draw is reproducible.
	src := spectrumSeed.source()

	freqs := kernel.sampleSpectrum(src, numFeatures)

	uniform := distuv.Uniform{Min: 0, Max: 2 * math.Pi, Src: src}

	phases := make([]float64, numFeatures)
	for i := range phases {
		phases[i] = uniform.Rand()
	}

	// Weight vector from its own split of the seed.
	standard := distuv.Normal{Mu: 0, Sigma: 1, Src: weightSeed.source()}

	weights := mat.NewVecDense(numFeatures, nil)
	for i := 0; i < numFeatures; i++ {
		weights.SetVec(i, standard.Rand())
	}

	sp := &samplePath{
		kernel:  kernel,
		mean:    prior.Mean,
		scale:   math.Sqrt(2 * kernel.Variance() / float64(numFeatures)),
		freqs:   freqs,
		phases:  phases,
		weights: weights,
	}

	if dataset.N() == 0 {
		return sp, nil
	}

	// Pathwise update: solve (K + noise*I) coeffs = y - g(X_train) once.
	n := dataset.N()

	noiseVar := posterior.likelihood.obsStddev * posterior.likelihood.obsStddev

	gram := kernelGram(kernel, dataset.X(), noiseVar)

	var chol mat.Cholesky
	if !chol.Factorize(gram) {
		return nil, fmt.Errorf("ts: cholesky factorization of the %d x %d kernel gram matrix failed: matrix is not positive definite", n, n)
	}

	priorAtTrain := sp.priorSample(dataset.X())

	residual := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		residual.SetVec(i, dataset.Y().At(i, 0)-priorAtTrain.AtVec(i))
	}

	coeffs := mat.NewVecDense(n, nil)
	if err := chol.SolveVecTo(coeffs, residual); err != nil {
		return nil, fmt.Errorf("ts: solving the pathwise correction system: %w", err)
	}

	sp.trainX = mat.DenseCopyOf(dataset.X())
	sp.coeffs = coeffs

	return sp, nil
}
