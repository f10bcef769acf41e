package ts

//////
// Prior mean functions.
//////

// MeanFunction maps an input point to the prior mean of the process at that
// point. Implementations must be pure: repeated evaluation at the same point
// yields the same value.
type MeanFunction interface {
	Eval(x []float64) float64
}

// Zero is a mean function that returns zero everywhere. This is the usual
// choice when the outputs have been centred.
type Zero struct{}

// Eval returns zero for any input.
func (Zero) Eval(_ []float64) float64 {
	return 0
}

// Constant is a mean function that returns the same scalar for all inputs.
type Constant struct {
	// Value is the scalar returned for every input point.
	Value float64
}

// Eval returns the constant value for any input.
func (c Constant) Eval(_ []float64) float64 {
	return c.Value
}
