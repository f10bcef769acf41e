package ts

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

//////
// Covariance kernels for the Gaussian process prior.
// Each kernel maps a pair of input points to a covariance scalar,
// parameterised by per-dimension lengthscales and a signal variance.
//////

// Kernel is the covariance function of a Gaussian process prior.
type Kernel interface {
	// Eval computes the covariance between two points. Both inputs must have
	// length Dim.
	Eval(x1, x2 []float64) float64

	// Dim returns the input dimensionality the kernel is parameterised for.
	Dim() int

	// Variance returns the signal variance (amplitude) of the kernel.
	Variance() float64
}

// spectralKernel is the seam for kernels whose spectral density can be
// sampled in closed form, which is what the random-feature construction
// needs. Only stationary kernels qualify; of those, only the squared
// exponential family is wired here.
type spectralKernel interface {
	Kernel

	// sampleSpectrum draws n frequency vectors (n x Dim) from the kernel's
	// spectral density using the given source.
	sampleSpectrum(src rand.Source, n int) *mat.Dense
}

// RBF implements the squared exponential (Radial Basis Function) kernel with
// per-dimension (ARD) lengthscales.
//
// Mathematical formula:
//
//	k(x1, x2) = variance * exp(-0.5 * sum(((x1_d - x2_d) / lengthscale_d)^2))
//
// Important notes:
// - Lengthscales control smoothness per input dimension; larger = smoother
// - Variance controls the amplitude of the prior function draws
// - The spectral density is Gaussian with per-dimension standard deviation
//   1/lengthscale_d, which is what makes this kernel eligible for the
//   random-feature construction (Bochner's theorem).
type RBF struct {
	// lengthscales holds one positive lengthscale per input dimension.
	lengthscales []float64

	// variance is the signal variance (amplitude) of the kernel.
	variance float64
}

// Matern52 implements the Matérn 5/2 kernel with per-dimension (ARD)
// lengthscales.
//
// Mathematical formula:
//
//	r      = sqrt(sum(((x1_d - x2_d) / lengthscale_d)^2))
//	k(r)   = variance * (1 + sqrt(5) r + 5/3 r^2) * exp(-sqrt(5) r)
//
// It produces rougher sample paths than RBF. It is provided for posterior
// construction only: its spectral density is not wired into the
// random-feature path, so a Thompson sampling build over a Matern52 prior
// fails with an explanatory error.
type Matern52 struct {
	lengthscales []float64
	variance     float64
}

//////
// Methods.
//////

// Eval computes the RBF kernel value between x1 and x2.
//
// Important notes:
// - Panics if either input length differs from Dim (programmer error, same
//   contract as gonum's mat package for shape mismatches)
// - Returns the full signal variance for identical points.
func (k *RBF) Eval(x1, x2 []float64) float64 {
	if len(x1) != len(k.lengthscales) || len(x2) != len(k.lengthscales) {
		panic("ts: kernel input dimension mismatch")
	}

	var sum float64

	for i := range x1 {
		diff := (x1[i] - x2[i]) / k.lengthscales[i]

		sum += diff * diff
	}

	return k.variance * math.Exp(-0.5*sum)
}

// Dim returns the input dimensionality the kernel is parameterised for.
func (k *RBF) Dim() int {
	return len(k.lengthscales)
}

// Variance returns the signal variance of the kernel.
func (k *RBF) Variance() float64 {
	return k.variance
}

// Lengthscales returns a copy of the per-dimension lengthscales.
func (k *RBF) Lengthscales() []float64 {
	out := make([]float64, len(k.lengthscales))
	copy(out, k.lengthscales)

	return out
}

// sampleSpectrum draws n frequency vectors from the RBF spectral density:
// each component is Normal with standard deviation 1/lengthscale_d. Draws
// are taken row-major so the output is a deterministic function of the
// source.
func (k *RBF) sampleSpectrum(src rand.Source, n int) *mat.Dense {
	standard := distuv.Normal{Mu: 0, Sigma: 1, Src: src}

	freqs := mat.NewDense(n, len(k.lengthscales), nil)

	for i := 0; i < n; i++ {
		for d := 0; d < len(k.lengthscales); d++ {
			freqs.Set(i, d, standard.Rand()/k.lengthscales[d])
		}
	}

	return freqs
}

// Eval computes the Matérn 5/2 kernel value between x1 and x2.
func (k *Matern52) Eval(x1, x2 []float64) float64 {
	if len(x1) != len(k.lengthscales) || len(x2) != len(k.lengthscales) {
		panic("ts: kernel input dimension mismatch")
	}

	var sum float64

	for i := range x1 {
		diff := (x1[i] - x2[i]) / k.lengthscales[i]

		sum += diff * diff
	}

	r := math.Sqrt(sum)

	poly := 1.0 + math.Sqrt(5)*r + (5.0/3.0)*sum

	return k.variance * poly * math.Exp(-math.Sqrt(5)*r)
}

// Dim returns the input dimensionality the kernel is parameterised for.
func (k *Matern52) Dim() int {
	return len(k.lengthscales)
}

// Variance returns the signal variance of the kernel.
func (k *Matern52) Variance() float64 {
	return k.variance
}

//////
// Factories.
//////

// NewRBF creates a squared exponential kernel with the given per-dimension
// lengthscales and signal variance.
//
// Parameters:
// - lengthscales: One positive lengthscale per input dimension (at least one)
// - variance: Positive signal variance
//
// Returns:
// - *RBF: The kernel
// - error: Non-nil when any hyperparameter is out of range
//
// Usage example:
//
//	// 1-D prior with unit lengthscale and amplitude.
//	kernel, err := ts.NewRBF([]float64{1.0}, 1.0)
func NewRBF(lengthscales []float64, variance float64) (*RBF, error) {
	if err := validateKernelParams(lengthscales, variance); err != nil {
		return nil, err
	}

	ls := make([]float64, len(lengthscales))
	copy(ls, lengthscales)

	return &RBF{lengthscales: ls, variance: variance}, nil
}

// NewMatern52 creates a Matérn 5/2 kernel with the given per-dimension
// lengthscales and signal variance.
func NewMatern52(lengthscales []float64, variance float64) (*Matern52, error) {
	if err := validateKernelParams(lengthscales, variance); err != nil {
		return nil, err
	}

	ls := make([]float64, len(lengthscales))
	copy(ls, lengthscales)

	return &Matern52{lengthscales: ls, variance: variance}, nil
}

//////
// Helper functions.
//////

// validateKernelParams rejects empty or non-positive hyperparameters.
func validateKernelParams(lengthscales []float64, variance float64) error {
	if len(lengthscales) == 0 {
		return fmt.Errorf("ts: kernel needs at least one lengthscale")
	}

	for i, l := range lengthscales {
		if l <= 0 || math.IsNaN(l) {
			return fmt.Errorf("ts: lengthscale %d must be positive, got %v", i, l)
		}
	}

	if variance <= 0 || math.IsNaN(variance) {
		return fmt.Errorf("ts: kernel variance must be positive, got %v", variance)
	}

	return nil
}

// kernelGram builds the N x N Gram matrix of k over the rows of x, with
// noiseVar added to the diagonal (observation noise of the likelihood).
func kernelGram(k Kernel, x *mat.Dense, noiseVar float64) *mat.SymDense {
	n, _ := x.Dims()

	gram := mat.NewSymDense(n, nil)

	for i := 0; i < n; i++ {
		xi := x.RawRowView(i)

		for j := i; j < n; j++ {
			v := k.Eval(xi, x.RawRowView(j))
			if i == j {
				v += noiseVar
			}

			gram.SetSym(i, j, v)
		}
	}

	return gram
}

// kernelCross builds the M x N cross-covariance matrix between the rows of
// x and the rows of z.
func kernelCross(k Kernel, x, z *mat.Dense) *mat.Dense {
	m, _ := x.Dims()
	n, _ := z.Dims()

	cross := mat.NewDense(m, n, nil)

	for i := 0; i < m; i++ {
		xi := x.RawRowView(i)

		for j := 0; j < n; j++ {
			cross.Set(i, j, k.Eval(xi, z.RawRowView(j)))
		}
	}

	return cross
}
