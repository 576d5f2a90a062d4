// Package tensor provides the shape-aware vector and matrix operations the
// network engine is built on: elementwise arithmetic, reductions, transposes,
// shape introspection and shape-driven allocation of the per-layer and
// per-sample gradient trees.
//
// All numeric data is float32 throughout a run. Operations that combine two
// operands require equal lengths and panic on mismatch; length checks are the
// caller's contract, not something the package papers over by truncating or
// broadcasting.
package tensor

// Vector is a 1-D tensor.
type Vector []float32

// Matrix is a 2-D tensor, stored row-major as a slice of row vectors.
// Rows may have different lengths in the ragged per-layer trees; operations
// that require a rectangular matrix (Transpose) say so and panic otherwise.
type Matrix []Vector

// Dims returns the length of the vector.
func (v Vector) Dims() int {
	return len(v)
}

// Dims returns the length of every row, in order.
//
// For a rectangular matrix all entries are equal; for ragged structures
// (such as a per-layer weight-gradient tree flattened into one matrix) they
// differ, which is why the full sequence is returned rather than a single
// rows×cols pair.
func (m Matrix) Dims() []int {
	dims := make([]int, len(m))
	for i, row := range m {
		dims[i] = len(row)
	}
	return dims
}

// Clone returns a deep copy of the vector.
func (v Vector) Clone() Vector {
	out := make(Vector, len(v))
	copy(out, v)
	return out
}

// Clone returns a deep copy of the matrix.
func (m Matrix) Clone() Matrix {
	out := make(Matrix, len(m))
	for i, row := range m {
		out[i] = row.Clone()
	}
	return out
}

// Zeros returns a zero-filled vector of length n.
func Zeros(n int) Vector {
	return make(Vector, n)
}

// ZerosMatrix returns a zero-filled rows×cols matrix.
func ZerosMatrix(rows, cols int) Matrix {
	m := make(Matrix, rows)
	for i := range m {
		m[i] = make(Vector, cols)
	}
	return m
}

// VectorsLike returns a zero-filled tree of vectors with the same shape as
// like: one vector per entry, each of the matching length.
//
// Used to allocate bias-gradient accumulators shaped like a network's biases.
func VectorsLike(like []Vector) []Vector {
	out := make([]Vector, len(like))
	for i, v := range like {
		out[i] = make(Vector, len(v))
	}
	return out
}

// MatricesLike returns a zero-filled tree of matrices with the same shape as
// like, ragged rows included.
//
// Used to allocate weight-gradient accumulators shaped like a network's
// weights.
func MatricesLike(like []Matrix) []Matrix {
	out := make([]Matrix, len(like))
	for i, m := range like {
		out[i] = make(Matrix, len(m))
		for j, row := range m {
			out[i][j] = make(Vector, len(row))
		}
	}
	return out
}

// ExpandVectors allocates n zero-filled copies of the shape of like, one slot
// per batch sample. Slot i is written by exactly one worker during parallel
// gradient computation, so no synchronization is needed beyond the join.
func ExpandVectors(n int, like []Vector) [][]Vector {
	out := make([][]Vector, n)
	for i := range out {
		out[i] = VectorsLike(like)
	}
	return out
}

// ExpandMatrices allocates n zero-filled copies of the shape of like, one
// slot per batch sample.
func ExpandMatrices(n int, like []Matrix) [][]Matrix {
	out := make([][]Matrix, n)
	for i := range out {
		out[i] = MatricesLike(like)
	}
	return out
}
