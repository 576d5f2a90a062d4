// Package nn implements a fully-connected feedforward neural network with a
// backpropagation training engine: pluggable cost, activation and initializer
// collaborators, mini-batch stochastic gradient descent with L2 weight decay
// and parallel per-sample gradient computation.
package nn

import (
	"fmt"
	"math/rand"

	"github.com/manuelsawade/simple-neuralnetwork/internal/optim"
	"github.com/manuelsawade/simple-neuralnetwork/internal/parallel"
	"github.com/manuelsawade/simple-neuralnetwork/internal/tensor"
)

// Network is a fully-connected feedforward neural network.
//
// The topology lists the layer sizes, input and output layers included, and
// is immutable after construction. Biases and weights are aligned with the
// topology at an offset of one: biases[i] and weights[i] belong to layer i+1,
// since the input layer has no parameters. weights[i] has one row per neuron
// of layer i+1, each of length topology[i] (one weight per incoming
// connection).
//
// Biases and weights are owned exclusively by the network and mutated only by
// UpdateParameters. During the parallel gradient phase they are read-only and
// therefore safe to share across workers.
type Network struct {
	topology []int
	biases   []tensor.Vector
	weights  []tensor.Matrix

	seed int64
	rng  *rand.Rand

	cost       Cost
	activation Activation
	reporter   Reporter
	pool       parallel.Config
}

// Option configures optional network behavior at construction.
type Option func(*Network)

// WithSeed fixes the seed for all randomness (initialization and shuffling).
// Without it a seed is generated and recorded, so every run is reproducible
// from Seed() either way.
func WithSeed(seed int64) Option {
	return func(n *Network) { n.seed = seed }
}

// WithReporter sets the progress reporter used by Fit.
// The default is NopReporter.
func WithReporter(r Reporter) Option {
	return func(n *Network) { n.reporter = r }
}

func newNetwork(topology []int, cost Cost, activation Activation, opts []Option) (*Network, error) {
	if len(topology) < 2 {
		return nil, fmt.Errorf("nn: topology must have at least an input and an output layer, got %v", topology)
	}
	for i, size := range topology {
		if size < 1 {
			return nil, fmt.Errorf("nn: invalid layer size %d at layer %d", size, i)
		}
	}
	if cost == nil {
		return nil, fmt.Errorf("nn: cost function must not be nil")
	}
	if activation == nil {
		return nil, fmt.Errorf("nn: activation function must not be nil")
	}

	n := &Network{
		topology:   append([]int(nil), topology...),
		seed:       rand.Int63(),
		cost:       cost,
		activation: activation,
		reporter:   NopReporter{},
		pool:       parallel.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(n)
	}
	n.rng = rand.New(rand.NewSource(n.seed))
	return n, nil
}

// New constructs a network whose biases and weights are produced by the given
// initializers, layer by layer, from the network's seeded random source.
func New(topology []int, biasInit, weightInit Initializer, cost Cost, activation Activation, opts ...Option) (*Network, error) {
	n, err := newNetwork(topology, cost, activation, opts)
	if err != nil {
		return nil, err
	}
	if biasInit == nil || weightInit == nil {
		return nil, fmt.Errorf("nn: initializers must not be nil")
	}

	n.biases = make([]tensor.Vector, len(topology)-1)
	n.weights = make([]tensor.Matrix, len(topology)-1)
	for l := 1; l < len(topology); l++ {
		n.biases[l-1] = biasInit.Vector(topology[l], n.rng)
		n.weights[l-1] = weightInit.Matrix(topology[l], topology[l-1], n.rng)
	}
	return n, nil
}

// NewFromParameters constructs a network from explicit biases and weights,
// for example hand-picked values in tests or parameters produced elsewhere.
// The parameter trees are validated against the topology and then owned by
// the network; callers must not keep mutating them.
func NewFromParameters(topology []int, biases []tensor.Vector, weights []tensor.Matrix, cost Cost, activation Activation, opts ...Option) (*Network, error) {
	n, err := newNetwork(topology, cost, activation, opts)
	if err != nil {
		return nil, err
	}
	if len(biases) != len(topology)-1 || len(weights) != len(topology)-1 {
		return nil, fmt.Errorf("nn: expected %d bias vectors and weight matrices, got %d and %d",
			len(topology)-1, len(biases), len(weights))
	}
	for l := 1; l < len(topology); l++ {
		if got := len(biases[l-1]); got != topology[l] {
			return nil, fmt.Errorf("nn: bias vector for layer %d has length %d, want %d", l, got, topology[l])
		}
		if got := len(weights[l-1]); got != topology[l] {
			return nil, fmt.Errorf("nn: weight matrix for layer %d has %d rows, want %d", l, got, topology[l])
		}
		for r, row := range weights[l-1] {
			if len(row) != topology[l-1] {
				return nil, fmt.Errorf("nn: weight matrix for layer %d, row %d has %d columns, want %d",
					l, r, len(row), topology[l-1])
			}
		}
	}

	n.biases = biases
	n.weights = weights
	return n, nil
}

// Topology returns a copy of the layer sizes, input and output included.
func (n *Network) Topology() []int {
	return append([]int(nil), n.topology...)
}

// Biases returns the network's bias vectors, one per layer after the input.
// The returned tree is the live parameter state, not a copy.
func (n *Network) Biases() []tensor.Vector {
	return n.biases
}

// Weights returns the network's weight matrices, one per layer after the
// input. The returned tree is the live parameter state, not a copy.
func (n *Network) Weights() []tensor.Matrix {
	return n.weights
}

// Seed returns the seed all of the network's randomness derives from.
func (n *Network) Seed() int64 {
	return n.seed
}

// FeedForward runs one forward pass and returns the output vector and the
// weighted-sum vector of every layer, both indexed by layer. outputs[0] is
// the input itself; weightedSums[0] is nil because the input layer computes
// no weighted sum. Backpropagation needs both trees.
func (n *Network) FeedForward(input tensor.Vector) (outputs, weightedSums []tensor.Vector, err error) {
	if len(input) != n.topology[0] {
		return nil, nil, fmt.Errorf("nn: input length %d does not match input layer size %d", len(input), n.topology[0])
	}

	outputs = make([]tensor.Vector, len(n.topology))
	weightedSums = make([]tensor.Vector, len(n.topology))
	outputs[0] = input

	for l := 1; l < len(n.topology); l++ {
		z := n.weights[l-1].MatVec(outputs[l-1]).Add(n.biases[l-1])
		weightedSums[l] = z
		outputs[l] = n.activation.Compute(z)
	}
	return outputs, weightedSums, nil
}

// Predict runs a forward pass and returns the final layer's output.
//
// When the bound cost is CrossEntropy the raw output is additionally passed
// through a softmax, so the result reads as a probability distribution. Other
// costs return the raw final activation.
func (n *Network) Predict(input tensor.Vector) (tensor.Vector, error) {
	outputs, _, err := n.FeedForward(input)
	if err != nil {
		return nil, err
	}
	out := outputs[len(outputs)-1]
	switch n.cost.(type) {
	case CrossEntropy, *CrossEntropy:
		return Softmax(out), nil
	}
	return out.Clone(), nil
}

// Backpropagation computes the gradient of the cost for a single example,
// one tree per parameter tree: biasGrads is shaped exactly like Biases() and
// weightGrads like Weights(). The input layer receives no gradient entry.
//
// The method only reads the network's parameters, so any number of calls may
// run concurrently as long as no update runs at the same time.
func (n *Network) Backpropagation(input, expected tensor.Vector) (biasGrads []tensor.Vector, weightGrads []tensor.Matrix, err error) {
	last := len(n.topology) - 1
	if len(expected) != n.topology[last] {
		return nil, nil, fmt.Errorf("nn: expected-output length %d does not match output layer size %d",
			len(expected), n.topology[last])
	}

	outputs, weightedSums, err := n.FeedForward(input)
	if err != nil {
		return nil, nil, err
	}

	biasGrads = make([]tensor.Vector, last)
	weightGrads = make([]tensor.Matrix, last)

	// Output layer: the cost decides how the activation derivative enters.
	delta := n.cost.Gradient(outputs[last], expected, n.activation.Gradient(weightedSums[last]))
	biasGrads[last-1] = delta
	weightGrads[last-1] = tensor.Outer(delta, outputs[last-1])

	// Hidden layers, back to front: propagate the error through the next
	// layer's transposed weights, then gate it by the local activation slope.
	for l := last - 1; l >= 1; l-- {
		delta = n.weights[l].Transpose().MatVec(delta).Mul(n.activation.Gradient(weightedSums[l]))
		biasGrads[l-1] = delta
		weightGrads[l-1] = tensor.Outer(delta, outputs[l-1])
	}
	return biasGrads, weightGrads, nil
}

// UpdateParameters performs one mini-batch SGD step, mutating the network's
// biases and weights in place.
//
// Per-sample gradients are computed in parallel, each worker accumulating
// into its own pre-allocated slot; the slots are reduced over the batch
// dimension only after every worker has joined. regularization is the L2
// weight-decay strength λ (0 disables decay).
func (n *Network) UpdateParameters(batch []LabeledData, learningRate, regularization float32) error {
	if len(batch) == 0 {
		return fmt.Errorf("nn: cannot update parameters from an empty batch")
	}

	// One zero-filled slot per sample, shaped like the parameter trees.
	biasSlots := tensor.ExpandVectors(len(batch), n.biases)
	weightSlots := tensor.ExpandMatrices(len(batch), n.weights)

	// Parallel phase: parameters are read-only, every worker writes only its
	// own slot. The pool is sized to the batch so each sample gets a worker.
	pool := n.pool
	if pool.Workers > len(batch) {
		pool.Workers = len(batch)
	}
	err := parallel.ForErr(len(batch), func(i int) error {
		biasGrads, weightGrads, err := n.Backpropagation(batch[i].Input, batch[i].Expected)
		if err != nil {
			return fmt.Errorf("sample %d: %w", i, err)
		}
		for l := range biasGrads {
			biasSlots[i][l].AddInPlace(biasGrads[l])
			for r := range weightGrads[l] {
				weightSlots[i][l][r].AddInPlace(weightGrads[l][r])
			}
		}
		return nil
	}, pool)
	if err != nil {
		return err
	}

	// Reduction over the batch dimension, after the full join.
	biasSum := tensor.VectorsLike(n.biases)
	weightSum := tensor.MatricesLike(n.weights)
	for i := range batch {
		for l := range biasSum {
			biasSum[l].AddInPlace(biasSlots[i][l])
			for r := range weightSum[l] {
				weightSum[l][r].AddInPlace(weightSlots[i][l][r])
			}
		}
	}

	optim.SGD{LearningRate: learningRate, WeightDecay: regularization}.
		Step(n.biases, n.weights, biasSum, weightSum, len(batch))
	return nil
}

// Fit trains the network with mini-batch stochastic gradient descent.
//
// The data is shuffled once and the first 10% (rounded down) held out as a
// validation set; the remainder is the training pool. Each epoch shuffles the
// pool, partitions it into consecutive batchSize chunks (the last chunk may
// be smaller) and applies UpdateParameters per chunk in order. After every
// epoch the validation accuracy and mean cost are reported through the bound
// Reporter.
//
// Fit does not reorder the caller's slice; shuffling happens on an internal
// copy. Batches run strictly sequentially: an update is fully applied before
// the next batch reads the parameters.
func (n *Network) Fit(data []LabeledData, epochs, batchSize int, learningRate, regularization float32) error {
	if len(data) == 0 {
		return fmt.Errorf("nn: cannot fit on an empty dataset")
	}
	if epochs < 1 {
		return fmt.Errorf("nn: epochs must be at least 1, got %d", epochs)
	}
	if batchSize < 1 {
		return fmt.Errorf("nn: batch size must be at least 1, got %d", batchSize)
	}
	for i, sample := range data {
		if len(sample.Input) != n.topology[0] {
			return fmt.Errorf("nn: sample %d input length %d does not match input layer size %d",
				i, len(sample.Input), n.topology[0])
		}
		if len(sample.Expected) != n.topology[len(n.topology)-1] {
			return fmt.Errorf("nn: sample %d expected-output length %d does not match output layer size %d",
				i, len(sample.Expected), n.topology[len(n.topology)-1])
		}
	}

	shuffled := append([]LabeledData(nil), data...)
	tensor.Shuffle(shuffled, n.rng)

	holdout := len(shuffled) / 10
	validation := shuffled[:holdout]
	pool := shuffled[holdout:]
	if len(pool) == 0 {
		return fmt.Errorf("nn: no training samples left after reserving %d for validation", holdout)
	}

	batches := (len(pool) + batchSize - 1) / batchSize
	for epoch := 1; epoch <= epochs; epoch++ {
		tensor.Shuffle(pool, n.rng)

		for start, b := 0, 0; start < len(pool); start, b = start+batchSize, b+1 {
			end := min(start+batchSize, len(pool))
			if err := n.UpdateParameters(pool[start:end], learningRate, regularization); err != nil {
				return fmt.Errorf("nn: epoch %d, batch %d: %w", epoch, b+1, err)
			}
			n.reporter.BatchDone(epoch, b+1, batches)
		}

		accuracy, meanCost := float32(0), float32(0)
		if len(validation) > 0 {
			var err error
			accuracy, meanCost, err = Evaluate(n, n.cost, validation, regularization)
			if err != nil {
				return fmt.Errorf("nn: epoch %d: %w", epoch, err)
			}
		}
		n.reporter.EpochDone(epoch, epochs, accuracy, meanCost)
	}
	return nil
}
