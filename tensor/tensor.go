// Copyright 2026 Simple Neural Network Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"math/rand"

	"github.com/manuelsawade/simple-neuralnetwork/internal/tensor"
)

// Vector is a 1-D float32 tensor.
type Vector = tensor.Vector

// Matrix is a 2-D float32 tensor stored row-major.
type Matrix = tensor.Matrix

// Zeros returns a zero-filled vector of length n.
func Zeros(n int) Vector {
	return tensor.Zeros(n)
}

// ZerosMatrix returns a zero-filled rows×cols matrix.
func ZerosMatrix(rows, cols int) Matrix {
	return tensor.ZerosMatrix(rows, cols)
}

// VectorsLike returns a zero-filled tree of vectors shaped like like.
func VectorsLike(like []Vector) []Vector {
	return tensor.VectorsLike(like)
}

// MatricesLike returns a zero-filled tree of matrices shaped like like.
func MatricesLike(like []Matrix) []Matrix {
	return tensor.MatricesLike(like)
}

// ExpandVectors allocates n zero-filled slots shaped like like, one per
// batch sample.
func ExpandVectors(n int, like []Vector) [][]Vector {
	return tensor.ExpandVectors(n, like)
}

// ExpandMatrices allocates n zero-filled slots shaped like like, one per
// batch sample.
func ExpandMatrices(n int, like []Matrix) [][]Matrix {
	return tensor.ExpandMatrices(n, like)
}

// Outer returns the outer product a ⊗ b.
func Outer(a, b Vector) Matrix {
	return tensor.Outer(a, b)
}

// Shuffle permutes s in place with the Fisher–Yates algorithm, drawing from
// rng (or the process-wide source when rng is nil).
func Shuffle[S ~[]E, E any](s S, rng *rand.Rand) {
	tensor.Shuffle(s, rng)
}
