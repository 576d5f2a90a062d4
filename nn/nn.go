// Copyright 2026 Simple Neural Network Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/manuelsawade/simple-neuralnetwork/internal/nn"
	"github.com/manuelsawade/simple-neuralnetwork/internal/tensor"
)

// Network is a fully-connected feedforward neural network.
type Network = nn.Network

// Option configures optional network behavior at construction.
type Option = nn.Option

// LabeledData is one training example: input and expected output.
type LabeledData = nn.LabeledData

// New constructs a network with initializer-produced parameters.
func New(topology []int, biasInit, weightInit Initializer, cost Cost, activation Activation, opts ...Option) (*Network, error) {
	return nn.New(topology, biasInit, weightInit, cost, activation, opts...)
}

// NewFromParameters constructs a network from explicit biases and weights.
func NewFromParameters(topology []int, biases []tensor.Vector, weights []tensor.Matrix, cost Cost, activation Activation, opts ...Option) (*Network, error) {
	return nn.NewFromParameters(topology, biases, weights, cost, activation, opts...)
}

// WithSeed fixes the seed for all of the network's randomness.
func WithSeed(seed int64) Option {
	return nn.WithSeed(seed)
}

// WithReporter sets the progress reporter used by Fit.
func WithReporter(r Reporter) Option {
	return nn.WithReporter(r)
}

// Collaborator contracts

// Cost is a loss function together with its output-layer error signal.
type Cost = nn.Cost

// Activation is an elementwise activation function with its derivative.
type Activation = nn.Activation

// Initializer produces initial bias vectors and weight matrices.
type Initializer = nn.Initializer

// Reporter receives training progress from Fit.
type Reporter = nn.Reporter

// Predictor is the slice of the network Evaluate consumes.
type Predictor = nn.Predictor

// Costs

// CrossEntropy is the sanitizing binary cross-entropy cost. Pair it with a
// sigmoid (or softmax-normalized) output layer; its gradient assumes the
// activation derivative cancels.
type CrossEntropy = nn.CrossEntropy

// MeanSquaredError is the half mean squared error cost.
type MeanSquaredError = nn.MeanSquaredError

// Activations

// Sigmoid is the logistic activation.
type Sigmoid = nn.Sigmoid

// Tanh is the hyperbolic tangent activation.
type Tanh = nn.Tanh

// ReLU is the rectified linear activation.
type ReLU = nn.ReLU

// LeakyReLU is ReLU with a small negative-side slope.
type LeakyReLU = nn.LeakyReLU

// NewLeakyReLU returns a LeakyReLU with the given slope (0.01 when alpha is
// not positive).
func NewLeakyReLU(alpha float32) LeakyReLU {
	return nn.NewLeakyReLU(alpha)
}

// Identity passes weighted sums through unchanged.
type Identity = nn.Identity

// Initializers

// ZerosInit initializes parameters to zero.
type ZerosInit = nn.ZerosInit

// RandomUniform draws from U(Min, Max).
type RandomUniform = nn.RandomUniform

// RandomNormal draws from N(Mean, StdDev²).
type RandomNormal = nn.RandomNormal

// Xavier is Glorot uniform initialization.
type Xavier = nn.Xavier

// He is Kaiming normal initialization.
type He = nn.He

// Reporters

// NopReporter discards all progress events.
type NopReporter = nn.NopReporter

// ConsoleReporter prints progress to stdout.
type ConsoleReporter = nn.ConsoleReporter

// Softmax normalizes v into a probability distribution.
func Softmax(v tensor.Vector) tensor.Vector {
	return nn.Softmax(v)
}

// Evaluate measures a predictor's accuracy and regularized mean cost on a
// held-out set.
func Evaluate(p Predictor, cost Cost, validation []LabeledData, regularization float32) (accuracy, meanCost float32, err error) {
	return nn.Evaluate(p, cost, validation, regularization)
}
