package ts

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Continuous test functions used to generate example datasets. They are
// test-support only and not part of the package API.

type testFunction interface {
	name() string
	eval(x []float64) float64
	domain() [][2]float64
}

// forrester is the standard 1-D Forrester function on [0, 1]:
// f(x) = (6x - 2)^2 sin(12x - 4).
type forrester struct{}

func (forrester) name() string { return "Forrester" }

func (forrester) eval(x []float64) float64 {
	v := 6*x[0] - 2

	return v * v * math.Sin(12*x[0]-4)
}

func (forrester) domain() [][2]float64 {
	return [][2]float64{{0, 1}}
}

// logGoldsteinPrice is the log-scaled 2-D Goldstein-Price function on
// [-2, 2]^2, rescaled to have roughly zero mean and unit variance.
type logGoldsteinPrice struct{}

func (logGoldsteinPrice) name() string { return "LogGoldsteinPrice" }

func (logGoldsteinPrice) eval(x []float64) float64 {
	a, b := x[0], x[1]

	term1 := 1 + (a+b+1)*(a+b+1)*(19-14*a+3*a*a-14*b+6*a*b+3*b*b)
	term2 := 30 + (2*a-3*b)*(2*a-3*b)*(18-32*a+12*a*a+48*b-36*a*b+27*b*b)

	return (math.Log(term1*term2) - 8.693) / 2.427
}

func (logGoldsteinPrice) domain() [][2]float64 {
	return [][2]float64{{-2, 2}, {-2, 2}}
}

// samplePoints draws numPoints uniform points from the function's domain,
// deterministically in the seed.
func samplePoints(fn testFunction, numPoints int, seed Seed) *mat.Dense {
	bounds := fn.domain()
	src := seed.source()

	uniform := distuv.Uniform{Min: 0, Max: 1, Src: src}

	points := mat.NewDense(numPoints, len(bounds), nil)

	for i := 0; i < numPoints; i++ {
		for d, bound := range bounds {
			points.Set(i, d, bound[0]+uniform.Rand()*(bound[1]-bound[0]))
		}
	}

	return points
}

// generateDataset evaluates the test function on seeded uniform points and
// packs the observations into a dataset.
func generateDataset(fn testFunction, numPoints int, seed Seed) *Dataset {
	x := samplePoints(fn, numPoints, seed)

	n, _ := x.Dims()

	y := mat.NewDense(n, 1, nil)

	for i := 0; i < n; i++ {
		y.Set(i, 0, fn.eval(x.RawRowView(i)))
	}

	dataset, err := NewDataset(x, y)
	if err != nil {
		panic(err)
	}

	return dataset
}
