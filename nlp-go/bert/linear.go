package bert

import (
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// Linear is a fully connected layer with gradient accumulators. The encoder
// stays frozen during head training, so Linear is the only parameterized
// building block that needs a backward pass.
type Linear struct {
	W     *mat.Dense // out x in
	B     *mat.VecDense
	GradW *mat.Dense
	GradB *mat.VecDense
}

// NewLinear initializes a layer with N(0, 0.02^2) weights and zero bias.
func NewLinear(rng *rand.Rand, in, out int) *Linear {
	return &Linear{
		W:     randDense(rng, out, in),
		B:     mat.NewVecDense(out, nil),
		GradW: mat.NewDense(out, in, nil),
		GradB: mat.NewVecDense(out, nil),
	}
}

// Forward computes Wx + b.
func (l *Linear) Forward(x []float64) []float64 {
	out, in := l.W.Dims()
	y := make([]float64, out)
	for i := 0; i < out; i++ {
		sum := l.B.AtVec(i)
		row := l.W.RawRowView(i)
		for j := 0; j < in; j++ {
			sum += row[j] * x[j]
		}
		y[i] = sum
	}
	return y
}

// Backward accumulates parameter gradients for input x and output gradient
// dy, and returns the gradient with respect to x.
func (l *Linear) Backward(x, dy []float64) []float64 {
	out, in := l.W.Dims()
	dx := make([]float64, in)
	for i := 0; i < out; i++ {
		row := l.W.RawRowView(i)
		gradRow := l.GradW.RawRowView(i)
		for j := 0; j < in; j++ {
			gradRow[j] += dy[i] * x[j]
			dx[j] += dy[i] * row[j]
		}
		l.GradB.SetVec(i, l.GradB.AtVec(i)+dy[i])
	}
	return dx
}

// Params returns the raw parameter and gradient slices for the optimizer.
func (l *Linear) Params() []Param {
	return []Param{
		{Value: l.W.RawMatrix().Data, Grad: l.GradW.RawMatrix().Data},
		{Value: l.B.RawVector().Data, Grad: l.GradB.RawVector().Data},
	}
}

// Param is a flat view of one parameter tensor and its gradient.
type Param struct {
	Value []float64
	Grad  []float64
}

// ZeroGrad clears the gradient accumulator.
func (p Param) ZeroGrad() {
	for i := range p.Grad {
		p.Grad[i] = 0
	}
}
