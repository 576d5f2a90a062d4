package nn

import (
	"github.com/chewxy/math32"

	"github.com/manuelsawade/simple-neuralnetwork/internal/tensor"
)

// Cost is a loss function together with the error signal it induces at the
// output layer.
type Cost interface {
	// Computation returns the scalar loss for one example.
	Computation(output, expected tensor.Vector) float32
	// Gradient returns the per-neuron error signal at the output layer.
	// activationGradient is the activation derivative at the output layer's
	// weighted sums; whether it is consumed depends on the cost (see
	// CrossEntropy for a variant that deliberately ignores it).
	Gradient(output, expected, activationGradient tensor.Vector) tensor.Vector
}

// CrossEntropy is the binary cross-entropy cost
//
//	loss = mean over neurons of -e·log(o) - (1-e)·log(1-o)
//
// Each term is sanitized before summation: NaN becomes 0, +Inf becomes the
// largest finite float32 and -Inf the smallest. A single saturated neuron
// (output at exactly 0 or 1) therefore cannot corrupt the aggregate loss.
type CrossEntropy struct{}

// sanitizeTerm maps non-finite loss terms onto finite substitutes and passes
// everything else through unchanged.
func sanitizeTerm(x float32) float32 {
	switch {
	case math32.IsNaN(x):
		return 0
	case math32.IsInf(x, 1):
		return math32.MaxFloat32
	case math32.IsInf(x, -1):
		return -math32.MaxFloat32
	default:
		return x
	}
}

// Computation returns the mean sanitized cross-entropy over the output
// neurons. Panics (via the tensor ops) when output and expected differ in
// length.
func (CrossEntropy) Computation(output, expected tensor.Vector) float32 {
	terms := expected.Neg().Mul(output.Log()).
		Sub(expected.OneMinus().Mul(output.OneMinus().Log()))
	return terms.Sum(sanitizeTerm) / float32(len(terms))
}

// Gradient returns output - expected.
//
// This is the simplified output-layer error that falls out when cross-entropy
// is paired with a sigmoid or softmax output: the activation derivative
// cancels algebraically, so the activationGradient argument is ignored. With
// any other output activation this formula is silently wrong; pair this cost
// only with Sigmoid (or a softmax-normalized output).
func (CrossEntropy) Gradient(output, expected, _ tensor.Vector) tensor.Vector {
	return output.Sub(expected)
}

// MeanSquaredError is the quadratic cost
//
//	loss = Σ (o-e)² / (2·n)
//
// Unlike CrossEntropy its output-layer error does consume the activation
// derivative, so it composes correctly with any activation.
type MeanSquaredError struct{}

// Computation returns the half mean squared error.
func (MeanSquaredError) Computation(output, expected tensor.Vector) float32 {
	diff := output.Sub(expected)
	return diff.Mul(diff).Sum(nil) / (2 * float32(len(diff)))
}

// Gradient returns (output - expected) ⊙ activationGradient.
func (MeanSquaredError) Gradient(output, expected, activationGradient tensor.Vector) tensor.Vector {
	return output.Sub(expected).Mul(activationGradient)
}
