package ts

import (
	"fmt"

	"golang.org/x/exp/constraints"
	"gonum.org/v1/gonum/mat"
)

//////
// Const, vars, types.
//////

// Dataset is an immutable bag of paired observations: N input vectors of
// dimension D and the N scalar outputs observed at those inputs,
// positionally aligned.
//
// Important notes:
// - The constructor deep-copies both matrices, so later mutation of the
//   caller's data never reaches the dataset
// - N may be zero (the empty dataset), in which case a sample path built
//   from it is an unconditioned prior draw
// - Accessors hand out the internal matrices; treat them as read-only.
type Dataset struct {
	// x holds the input points, one per row (N x D). Nil when N == 0.
	x *mat.Dense

	// y holds the observed outputs (N x 1). Nil when N == 0.
	y *mat.Dense
}

//////
// Methods.
//////

// N returns the number of observations.
func (d *Dataset) N() int {
	if d.x == nil {
		return 0
	}

	n, _ := d.x.Dims()

	return n
}

// Dim returns the input dimensionality, or zero for the empty dataset.
func (d *Dataset) Dim() int {
	if d.x == nil {
		return 0
	}

	_, dim := d.x.Dims()

	return dim
}

// X returns the input matrix (N x D). Nil for the empty dataset. Read-only.
func (d *Dataset) X() *mat.Dense {
	return d.x
}

// Y returns the output matrix (N x 1). Nil for the empty dataset. Read-only.
func (d *Dataset) Y() *mat.Dense {
	return d.y
}

// Append returns a new dataset holding the observations of d followed by
// those of other. Neither input is modified.
//
// Returns:
// - *Dataset: The combined dataset
// - error: Non-nil when the input dimensionalities differ
//
// Usage example:
//
//	combined, err := observed.Append(fresh)
func (d *Dataset) Append(other *Dataset) (*Dataset, error) {
	if d.N() == 0 {
		return other.clone(), nil
	}

	if other.N() == 0 {
		return d.clone(), nil
	}

	if d.Dim() != other.Dim() {
		return nil, fmt.Errorf("ts: cannot append dataset of dimension %d to dimension %d", other.Dim(), d.Dim())
	}

	n := d.N() + other.N()

	x := mat.NewDense(n, d.Dim(), nil)
	y := mat.NewDense(n, 1, nil)

	for i := 0; i < d.N(); i++ {
		x.SetRow(i, d.x.RawRowView(i))
		y.Set(i, 0, d.y.At(i, 0))
	}

	for i := 0; i < other.N(); i++ {
		x.SetRow(d.N()+i, other.x.RawRowView(i))
		y.Set(d.N()+i, 0, other.y.At(i, 0))
	}

	return &Dataset{x: x, y: y}, nil
}

// clone returns a deep copy of the dataset.
func (d *Dataset) clone() *Dataset {
	if d.N() == 0 {
		return &Dataset{}
	}

	return &Dataset{
		x: mat.DenseCopyOf(d.x),
		y: mat.DenseCopyOf(d.y),
	}
}

//////
// Factories.
//////

// NewDataset creates a dataset from an N x D input matrix and an N x 1
// output matrix. Both are deep-copied.
//
// Parameters:
// - x: Input points, one per row; nil for the empty dataset
// - y: Observed outputs, one per row; nil for the empty dataset
//
// Returns:
// - *Dataset: The dataset
// - error: Non-nil when the shapes are inconsistent
//
// Usage example:
//
//	x := mat.NewDense(10, 1, inputs)
//	y := mat.NewDense(10, 1, outputs)
//
//	dataset, err := ts.NewDataset(x, y)
func NewDataset(x, y *mat.Dense) (*Dataset, error) {
	if x == nil && y == nil {
		return &Dataset{}, nil
	}

	if x == nil || y == nil {
		return nil, fmt.Errorf("ts: inputs and outputs must both be present or both be nil")
	}

	xRows, _ := x.Dims()
	yRows, yCols := y.Dims()

	if xRows != yRows {
		return nil, fmt.Errorf("ts: got %d input points but %d outputs", xRows, yRows)
	}

	if yCols != 1 {
		return nil, fmt.Errorf("ts: outputs must be a single column, got %d", yCols)
	}

	return &Dataset{
		x: mat.DenseCopyOf(x),
		y: mat.DenseCopyOf(y),
	}, nil
}

// NewDatasetFromSlices creates a dataset from native slices, converting any
// numeric element type to float64. Convenient when observations arrive from
// code that is generic over the parameter type.
//
// Type Parameter:
//   - T: The numeric type of the observations (integer or float)
//
// Parameters:
// - inputs: N input vectors, all of the same length D (at least one)
// - outputs: N observed values, positionally aligned with inputs
//
// Returns:
// - *Dataset: The dataset
// - error: Non-nil when the shapes are inconsistent
//
// Usage example:
//
//	dataset, err := ts.NewDatasetFromSlices(
//	    [][]float64{{0.1}, {0.5}, {0.9}},
//	    []float64{1.2, 0.4, 2.1},
//	)
func NewDatasetFromSlices[T constraints.Integer | constraints.Float](inputs [][]T, outputs []T) (*Dataset, error) {
	if len(inputs) != len(outputs) {
		return nil, fmt.Errorf("ts: got %d input points but %d outputs", len(inputs), len(outputs))
	}

	if len(inputs) == 0 {
		return &Dataset{}, nil
	}

	dim := len(inputs[0])
	if dim == 0 {
		return nil, fmt.Errorf("ts: input points must have at least one dimension")
	}

	x := mat.NewDense(len(inputs), dim, nil)

	for i, point := range inputs {
		if len(point) != dim {
			return nil, fmt.Errorf("ts: input point %d has dimension %d, want %d", i, len(point), dim)
		}

		x.SetRow(i, toFloats(point))
	}

	y := mat.NewDense(len(outputs), 1, toFloats(outputs))

	return &Dataset{x: x, y: y}, nil
}
