package ts

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestRBFEval(t *testing.T) {
	kernel, err := NewRBF([]float64{1.0}, 2.0)
	require.NoError(t, err)

	// Identical points return the full signal variance.
	assert.Equal(t, 2.0, kernel.Eval([]float64{0.5}, []float64{0.5}))

	// Unit distance at unit lengthscale: variance * exp(-1/2).
	assert.InDelta(t, 2.0*math.Exp(-0.5), kernel.Eval([]float64{0}, []float64{1}), 1e-12)
}

func TestRBFARDLengthscales(t *testing.T) {
	kernel, err := NewRBF([]float64{1.0, 10.0}, 1.0)
	require.NoError(t, err)

	// A unit step along the long-lengthscale axis decays far less than the
	// same step along the short one.
	alongShort := kernel.Eval([]float64{0, 0}, []float64{1, 0})
	alongLong := kernel.Eval([]float64{0, 0}, []float64{0, 1})

	assert.Greater(t, alongLong, alongShort)
	assert.InDelta(t, math.Exp(-0.5), alongShort, 1e-12)
	assert.InDelta(t, math.Exp(-0.005), alongLong, 1e-12)
}

func TestMatern52Eval(t *testing.T) {
	kernel, err := NewMatern52([]float64{1.0}, 3.0)
	require.NoError(t, err)

	assert.Equal(t, 3.0, kernel.Eval([]float64{0.25}, []float64{0.25}))

	r := 1.0
	want := 3.0 * (1 + math.Sqrt(5)*r + 5.0/3.0*r*r) * math.Exp(-math.Sqrt(5)*r)

	assert.InDelta(t, want, kernel.Eval([]float64{0}, []float64{1}), 1e-12)
}

func TestNewKernelValidation(t *testing.T) {
	_, err := NewRBF(nil, 1.0)
	assert.Error(t, err)

	_, err = NewRBF([]float64{-1.0}, 1.0)
	assert.Error(t, err)

	_, err = NewRBF([]float64{1.0}, 0)
	assert.Error(t, err)

	_, err = NewRBF([]float64{math.NaN()}, 1.0)
	assert.Error(t, err)

	_, err = NewMatern52([]float64{1.0}, -2.0)
	assert.Error(t, err)
}

func TestKernelIsolatedFromCallersSlice(t *testing.T) {
	lengthscales := []float64{1.0}

	kernel, err := NewRBF(lengthscales, 1.0)
	require.NoError(t, err)

	before := kernel.Eval([]float64{0}, []float64{1})

	// Mutating the caller's slice must not reach the kernel.
	lengthscales[0] = 100.0

	assert.Equal(t, before, kernel.Eval([]float64{0}, []float64{1}))
}

func TestKernelGram(t *testing.T) {
	kernel, err := NewRBF([]float64{1.0}, 1.0)
	require.NoError(t, err)

	x := mat.NewDense(3, 1, []float64{0, 0.5, 1})

	gram := kernelGram(kernel, x, 0.04)

	// Diagonal carries variance plus noise.
	for i := 0; i < 3; i++ {
		assert.InDelta(t, 1.04, gram.At(i, i), 1e-12)
	}

	// Off-diagonal entries are plain kernel values, symmetric.
	assert.InDelta(t, kernel.Eval([]float64{0}, []float64{1}), gram.At(0, 2), 1e-12)
	assert.Equal(t, gram.At(0, 2), gram.At(2, 0))
}

func TestKernelCross(t *testing.T) {
	kernel, err := NewRBF([]float64{1.0}, 1.0)
	require.NoError(t, err)

	x := mat.NewDense(2, 1, []float64{0, 1})
	z := mat.NewDense(3, 1, []float64{0, 0.5, 1})

	cross := kernelCross(kernel, x, z)

	rows, cols := cross.Dims()
	assert.Equal(t, 2, rows)
	assert.Equal(t, 3, cols)

	assert.InDelta(t, 1.0, cross.At(0, 0), 1e-12)
	assert.InDelta(t, kernel.Eval([]float64{1}, []float64{0.5}), cross.At(1, 1), 1e-12)
}

func TestRBFSampleSpectrumDeterministic(t *testing.T) {
	kernel, err := NewRBF([]float64{2.0}, 1.0)
	require.NoError(t, err)

	seed := NewSeed(7)

	freqsOne := kernel.sampleSpectrum(seed.source(), 64)
	freqsTwo := kernel.sampleSpectrum(seed.source(), 64)

	assert.True(t, mat.Equal(freqsOne, freqsTwo))
}
