package nn

import (
	"github.com/chewxy/math32"

	"github.com/manuelsawade/simple-neuralnetwork/internal/tensor"
)

// Activation is an elementwise activation function together with its
// derivative. Both operate on a whole weighted-sum vector at once.
//
// Implementations are supplied to the network at construction; the engine
// never picks one itself.
type Activation interface {
	// Compute applies the activation elementwise to a weighted-sum vector.
	Compute(z tensor.Vector) tensor.Vector
	// Gradient applies the activation's derivative elementwise to a
	// weighted-sum vector.
	Gradient(z tensor.Vector) tensor.Vector
}

// Sigmoid is the logistic activation σ(x) = 1 / (1 + exp(-x)).
//
// Squashes values into (0, 1), which is the range the cross-entropy cost
// expects from the output layer.
type Sigmoid struct{}

func sigmoid(x float32) float32 {
	return 1 / (1 + math32.Exp(-x))
}

// Compute applies σ elementwise.
func (Sigmoid) Compute(z tensor.Vector) tensor.Vector {
	return z.Map(sigmoid)
}

// Gradient applies σ'(x) = σ(x)·(1 - σ(x)) elementwise.
func (Sigmoid) Gradient(z tensor.Vector) tensor.Vector {
	return z.Map(func(x float32) float32 {
		s := sigmoid(x)
		return s * (1 - s)
	})
}

// Tanh is the hyperbolic tangent activation, squashing into (-1, 1).
type Tanh struct{}

// Compute applies tanh elementwise.
func (Tanh) Compute(z tensor.Vector) tensor.Vector {
	return z.Map(math32.Tanh)
}

// Gradient applies tanh'(x) = 1 - tanh²(x) elementwise.
func (Tanh) Gradient(z tensor.Vector) tensor.Vector {
	return z.Map(func(x float32) float32 {
		t := math32.Tanh(x)
		return 1 - t*t
	})
}

// ReLU is the rectified linear activation f(x) = max(0, x).
type ReLU struct{}

// Compute applies max(0, x) elementwise.
func (ReLU) Compute(z tensor.Vector) tensor.Vector {
	return z.Map(func(x float32) float32 {
		if x > 0 {
			return x
		}
		return 0
	})
}

// Gradient is 1 for positive inputs, 0 otherwise. The derivative at exactly
// zero is taken as 0.
func (ReLU) Gradient(z tensor.Vector) tensor.Vector {
	return z.Map(func(x float32) float32 {
		if x > 0 {
			return 1
		}
		return 0
	})
}

// LeakyReLU is ReLU with a small slope Alpha on the negative side, which
// keeps gradients alive for inactive neurons.
type LeakyReLU struct {
	Alpha float32
}

// NewLeakyReLU returns a LeakyReLU with the given negative-side slope.
// A non-positive alpha falls back to the conventional 0.01.
func NewLeakyReLU(alpha float32) LeakyReLU {
	if alpha <= 0 {
		alpha = 0.01
	}
	return LeakyReLU{Alpha: alpha}
}

// Compute applies f(x) = x for x > 0, Alpha·x otherwise.
func (l LeakyReLU) Compute(z tensor.Vector) tensor.Vector {
	return z.Map(func(x float32) float32 {
		if x > 0 {
			return x
		}
		return l.Alpha * x
	})
}

// Gradient is 1 for positive inputs, Alpha otherwise.
func (l LeakyReLU) Gradient(z tensor.Vector) tensor.Vector {
	return z.Map(func(x float32) float32 {
		if x > 0 {
			return 1
		}
		return l.Alpha
	})
}

// Identity passes weighted sums through unchanged. Mostly useful for linear
// output layers and for hand-verifiable tests.
type Identity struct{}

// Compute returns a copy of z.
func (Identity) Compute(z tensor.Vector) tensor.Vector {
	return z.Clone()
}

// Gradient returns a vector of ones.
func (Identity) Gradient(z tensor.Vector) tensor.Vector {
	return z.Map(func(float32) float32 { return 1 })
}
