// Copyright 2026 Simple Neural Network Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn exposes the fully-connected feedforward network and its
// pluggable collaborators.
//
// # Overview
//
// A Network owns its topology, biases, weights and seed. The cost function,
// activation function and initializers are injected at construction; the
// engine never reaches for globals. Training runs mini-batch stochastic
// gradient descent with L2 weight decay, computing per-sample gradients in
// parallel.
//
// # Basic Usage
//
//	net, err := nn.New(
//	    []int{784, 128, 10},
//	    nn.ZerosInit{}, nn.Xavier{},
//	    nn.CrossEntropy{}, nn.Sigmoid{},
//	    nn.WithSeed(42),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := net.Fit(data, 30, 32, 0.5, 1e-4); err != nil {
//	    log.Fatal(err)
//	}
//
//	probs, err := net.Predict(input) // softmax under cross-entropy
//
// FeedForward, Backpropagation and UpdateParameters are exported as
// composable primitives for custom training loops and evaluation routines.
package nn
