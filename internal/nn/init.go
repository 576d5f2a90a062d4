package nn

import (
	"math/rand"

	"github.com/chewxy/math32"

	"github.com/manuelsawade/simple-neuralnetwork/internal/tensor"
)

// Initializer produces initial bias vectors and weight matrices for a layer.
// All randomness must come from the supplied source so that a recorded seed
// reproduces the exact same network.
type Initializer interface {
	// Vector returns an initial bias vector of length n.
	Vector(n int, rng *rand.Rand) tensor.Vector
	// Matrix returns an initial rows×cols weight matrix, where cols is the
	// fan-in (previous layer size) and rows the fan-out.
	Matrix(rows, cols int, rng *rand.Rand) tensor.Matrix
}

// ZerosInit initializes everything to zero. The usual choice for biases.
type ZerosInit struct{}

// Vector returns a zero vector of length n.
func (ZerosInit) Vector(n int, _ *rand.Rand) tensor.Vector {
	return tensor.Zeros(n)
}

// Matrix returns a zero rows×cols matrix.
func (ZerosInit) Matrix(rows, cols int, _ *rand.Rand) tensor.Matrix {
	return tensor.ZerosMatrix(rows, cols)
}

// RandomUniform draws every value independently from U(Min, Max).
type RandomUniform struct {
	Min, Max float32
}

func (u RandomUniform) draw(rng *rand.Rand) float32 {
	return u.Min + rng.Float32()*(u.Max-u.Min)
}

// Vector returns n uniform draws.
func (u RandomUniform) Vector(n int, rng *rand.Rand) tensor.Vector {
	v := make(tensor.Vector, n)
	for i := range v {
		v[i] = u.draw(rng)
	}
	return v
}

// Matrix returns rows×cols uniform draws.
func (u RandomUniform) Matrix(rows, cols int, rng *rand.Rand) tensor.Matrix {
	m := make(tensor.Matrix, rows)
	for i := range m {
		m[i] = u.Vector(cols, rng)
	}
	return m
}

// RandomNormal draws every value independently from N(Mean, StdDev²).
type RandomNormal struct {
	Mean, StdDev float32
}

// Vector returns n normal draws.
func (g RandomNormal) Vector(n int, rng *rand.Rand) tensor.Vector {
	v := make(tensor.Vector, n)
	for i := range v {
		v[i] = g.Mean + g.StdDev*float32(rng.NormFloat64())
	}
	return v
}

// Matrix returns rows×cols normal draws.
func (g RandomNormal) Matrix(rows, cols int, rng *rand.Rand) tensor.Matrix {
	m := make(tensor.Matrix, rows)
	for i := range m {
		m[i] = g.Vector(cols, rng)
	}
	return m
}

// Xavier is Glorot uniform initialization: draws from
// U(-√(6/(fanIn+fanOut)), √(6/(fanIn+fanOut))), which keeps activation
// variance roughly constant across layers for sigmoid/tanh networks.
type Xavier struct{}

// Vector returns n draws with fanIn = fanOut = n.
func (Xavier) Vector(n int, rng *rand.Rand) tensor.Vector {
	bound := math32.Sqrt(6 / float32(2*n))
	return RandomUniform{Min: -bound, Max: bound}.Vector(n, rng)
}

// Matrix returns rows×cols draws with fanIn = cols and fanOut = rows.
func (Xavier) Matrix(rows, cols int, rng *rand.Rand) tensor.Matrix {
	bound := math32.Sqrt(6 / float32(rows+cols))
	return RandomUniform{Min: -bound, Max: bound}.Matrix(rows, cols, rng)
}

// He is Kaiming normal initialization: N(0, 2/fanIn), the standard choice for
// ReLU networks.
type He struct{}

// Vector returns n draws with fanIn = n.
func (He) Vector(n int, rng *rand.Rand) tensor.Vector {
	return RandomNormal{StdDev: math32.Sqrt(2 / float32(n))}.Vector(n, rng)
}

// Matrix returns rows×cols draws with fanIn = cols.
func (He) Matrix(rows, cols int, rng *rand.Rand) tensor.Matrix {
	return RandomNormal{StdDev: math32.Sqrt(2 / float32(cols))}.Matrix(rows, cols, rng)
}
