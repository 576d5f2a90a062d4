package tensor

import (
	"fmt"

	"github.com/chewxy/math32"
)

// checkLen panics when two vectors that must be combined elementwise have
// different lengths. Mismatched shapes are a programming error, never data to
// be silently truncated or padded.
func checkLen(op string, a, b Vector) {
	if len(a) != len(b) {
		panic(fmt.Sprintf("tensor: %s length mismatch: %d vs %d", op, len(a), len(b)))
	}
}

// Add returns the elementwise sum v + other.
func (v Vector) Add(other Vector) Vector {
	checkLen("Add", v, other)
	out := make(Vector, len(v))
	for i := range v {
		out[i] = v[i] + other[i]
	}
	return out
}

// Sub returns the elementwise difference v - other.
func (v Vector) Sub(other Vector) Vector {
	checkLen("Sub", v, other)
	out := make(Vector, len(v))
	for i := range v {
		out[i] = v[i] - other[i]
	}
	return out
}

// Mul returns the elementwise (Hadamard) product v ⊙ other.
func (v Vector) Mul(other Vector) Vector {
	checkLen("Mul", v, other)
	out := make(Vector, len(v))
	for i := range v {
		out[i] = v[i] * other[i]
	}
	return out
}

// Div returns the elementwise quotient v / other. Division by zero follows
// IEEE 754 and produces ±Inf or NaN; callers detect divergence downstream.
func (v Vector) Div(other Vector) Vector {
	checkLen("Div", v, other)
	out := make(Vector, len(v))
	for i := range v {
		out[i] = v[i] / other[i]
	}
	return out
}

// AddInPlace accumulates other into v elementwise.
func (v Vector) AddInPlace(other Vector) {
	checkLen("AddInPlace", v, other)
	for i := range v {
		v[i] += other[i]
	}
}

// Neg returns the elementwise negation -v.
func (v Vector) Neg() Vector {
	out := make(Vector, len(v))
	for i := range v {
		out[i] = -v[i]
	}
	return out
}

// Log returns the elementwise natural logarithm. Non-positive inputs yield
// -Inf or NaN per IEEE 754; the cross-entropy cost sanitizes those terms at
// reduction time.
func (v Vector) Log() Vector {
	out := make(Vector, len(v))
	for i := range v {
		out[i] = math32.Log(v[i])
	}
	return out
}

// OneMinus returns the elementwise complement 1 - v.
func (v Vector) OneMinus() Vector {
	out := make(Vector, len(v))
	for i := range v {
		out[i] = 1 - v[i]
	}
	return out
}

// Scale returns v multiplied by the scalar c.
func (v Vector) Scale(c float32) Vector {
	out := make(Vector, len(v))
	for i := range v {
		out[i] = v[i] * c
	}
	return out
}

// Map returns a new vector with f applied to every element.
func (v Vector) Map(f func(float32) float32) Vector {
	out := make(Vector, len(v))
	for i := range v {
		out[i] = f(v[i])
	}
	return out
}

// Sum reduces the vector to a scalar, applying transform to each element
// before it is added. A nil transform sums the raw elements.
//
// The transform hook exists so reductions over possibly non-finite terms can
// sanitize each term individually rather than letting one saturated value
// corrupt the aggregate.
func (v Vector) Sum(transform func(float32) float32) float32 {
	var sum float32
	for _, x := range v {
		if transform != nil {
			x = transform(x)
		}
		sum += x
	}
	return sum
}

// Dot returns the inner product of v and other.
func (v Vector) Dot(other Vector) float32 {
	checkLen("Dot", v, other)
	var sum float32
	for i := range v {
		sum += v[i] * other[i]
	}
	return sum
}

// ArgMax returns the index of the largest element. Panics on an empty vector.
func (v Vector) ArgMax() int {
	if len(v) == 0 {
		panic("tensor: ArgMax of empty vector")
	}
	best := 0
	for i, x := range v {
		if x > v[best] {
			best = i
		}
	}
	return best
}

// Max returns the largest element. Panics on an empty vector.
func (v Vector) Max() float32 {
	return v[v.ArgMax()]
}

// Transpose returns the vector as a column matrix: one row per element, each
// of length 1.
func (v Vector) Transpose() Matrix {
	out := make(Matrix, len(v))
	for i, x := range v {
		out[i] = Vector{x}
	}
	return out
}

// Transpose returns the standard row/column swap of a rectangular matrix.
// Panics if the matrix is ragged or empty.
func (m Matrix) Transpose() Matrix {
	if len(m) == 0 {
		panic("tensor: Transpose of empty matrix")
	}
	cols := len(m[0])
	for i, row := range m {
		if len(row) != cols {
			panic(fmt.Sprintf("tensor: Transpose of ragged matrix: row 0 has %d columns, row %d has %d", cols, i, len(row)))
		}
	}
	out := make(Matrix, cols)
	for j := range out {
		out[j] = make(Vector, len(m))
		for i := range m {
			out[j][i] = m[i][j]
		}
	}
	return out
}

// MatVec returns the matrix-vector product m·v, one dot product per row.
// Panics if any row's length differs from len(v).
func (m Matrix) MatVec(v Vector) Vector {
	out := make(Vector, len(m))
	for i, row := range m {
		out[i] = row.Dot(v)
	}
	return out
}

// Outer returns the outer product a ⊗ b: the matrix with one row per element
// of a, where row i is b scaled by a[i]. Equivalent to multiplying the column
// matrix aᵀ by the row vector b.
func Outer(a, b Vector) Matrix {
	out := make(Matrix, len(a))
	for i, x := range a {
		out[i] = b.Scale(x)
	}
	return out
}
