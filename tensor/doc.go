// Copyright 2026 Simple Neural Network Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor exposes the shape-aware vector and matrix operations the
// network engine is built on.
//
// # Overview
//
// Two concrete types carry all numeric data:
//   - Vector, a 1-D float32 tensor
//   - Matrix, a 2-D float32 tensor stored as rows
//
// On top of them the package provides elementwise arithmetic, reductions
// with a per-element transform hook, transposes, shape introspection and
// shape-driven zero-fill allocation for the per-layer and per-sample
// gradient trees, plus a seeded Fisher–Yates shuffle.
//
// # Basic Usage
//
//	a := tensor.Vector{1, 2, 3}
//	b := tensor.Vector{4, 5, 6}
//
//	sum := a.Add(b)        // elementwise
//	dot := a.Dot(b)        // scalar
//	col := a.Transpose()   // 3×1 column matrix
//
// # Shape Discipline
//
// Binary operations require operands of equal length and panic on mismatch.
// There is no broadcasting: a length mismatch is a programming error, never
// something to compute over silently.
package tensor
