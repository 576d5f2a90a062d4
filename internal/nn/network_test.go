package nn

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/diff/fd"

	"github.com/manuelsawade/simple-neuralnetwork/internal/tensor"
)

// fixedNet221 builds a [2,2,1] network with hand-picked parameters, the
// given collaborators, and no dependence on randomness.
func fixedNet221(t *testing.T, cost Cost, activation Activation) *Network {
	t.Helper()
	biases := []tensor.Vector{
		{0.5, -0.5},
		{1},
	}
	weights := []tensor.Matrix{
		{{1, 2}, {3, 4}},
		{{1, 1}},
	}
	net, err := NewFromParameters([]int{2, 2, 1}, biases, weights, cost, activation)
	require.NoError(t, err)
	return net
}

func TestNew_Validation(t *testing.T) {
	_, err := New([]int{2}, ZerosInit{}, Xavier{}, CrossEntropy{}, Sigmoid{})
	assert.Error(t, err, "single-layer topology must be rejected")

	_, err = New([]int{2, 0, 1}, ZerosInit{}, Xavier{}, CrossEntropy{}, Sigmoid{})
	assert.Error(t, err, "zero-size layer must be rejected")

	_, err = New([]int{2, 1}, nil, Xavier{}, CrossEntropy{}, Sigmoid{})
	assert.Error(t, err, "nil bias initializer must be rejected")

	_, err = New([]int{2, 1}, ZerosInit{}, Xavier{}, nil, Sigmoid{})
	assert.Error(t, err, "nil cost must be rejected")

	_, err = New([]int{2, 1}, ZerosInit{}, Xavier{}, CrossEntropy{}, nil)
	assert.Error(t, err, "nil activation must be rejected")
}

func TestNew_ParameterShapes(t *testing.T) {
	topology := []int{3, 5, 4, 2}
	net, err := New(topology, ZerosInit{}, Xavier{}, CrossEntropy{}, Sigmoid{}, WithSeed(1))
	require.NoError(t, err)

	require.Len(t, net.Biases(), len(topology)-1)
	require.Len(t, net.Weights(), len(topology)-1)
	for l := 1; l < len(topology); l++ {
		assert.Equal(t, topology[l], net.Biases()[l-1].Dims(), "bias length, layer %d", l)
		w := net.Weights()[l-1]
		require.Len(t, w, topology[l], "weight rows, layer %d", l)
		for _, row := range w {
			assert.Equal(t, topology[l-1], row.Dims(), "weight columns, layer %d", l)
		}
	}
}

// The recorded seed fully determines initialization.
func TestNew_ReproducibleFromSeed(t *testing.T) {
	build := func(seed int64) *Network {
		net, err := New([]int{4, 3, 2}, RandomUniform{Min: -1, Max: 1}, Xavier{}, CrossEntropy{}, Sigmoid{}, WithSeed(seed))
		require.NoError(t, err)
		return net
	}

	a, b := build(99), build(99)
	assert.Equal(t, a.Weights(), b.Weights())
	assert.Equal(t, a.Biases(), b.Biases())
	assert.Equal(t, int64(99), a.Seed())

	c := build(100)
	assert.NotEqual(t, a.Weights(), c.Weights())
}

func TestNewFromParameters_ShapeValidation(t *testing.T) {
	topology := []int{2, 2, 1}
	goodBiases := func() []tensor.Vector { return []tensor.Vector{{0, 0}, {0}} }
	goodWeights := func() []tensor.Matrix { return []tensor.Matrix{{{1, 1}, {1, 1}}, {{1, 1}}} }

	_, err := NewFromParameters(topology, goodBiases(), goodWeights(), CrossEntropy{}, Sigmoid{})
	assert.NoError(t, err)

	_, err = NewFromParameters(topology, goodBiases()[:1], goodWeights(), CrossEntropy{}, Sigmoid{})
	assert.Error(t, err, "missing bias vector must be rejected")

	badBiases := goodBiases()
	badBiases[1] = tensor.Vector{0, 0}
	_, err = NewFromParameters(topology, badBiases, goodWeights(), CrossEntropy{}, Sigmoid{})
	assert.Error(t, err, "bias length mismatch must be rejected")

	badRows := goodWeights()
	badRows[0] = badRows[0][:1]
	_, err = NewFromParameters(topology, goodBiases(), badRows, CrossEntropy{}, Sigmoid{})
	assert.Error(t, err, "weight row-count mismatch must be rejected")

	badCols := goodWeights()
	badCols[1] = tensor.Matrix{{1, 1, 1}}
	_, err = NewFromParameters(topology, goodBiases(), badCols, CrossEntropy{}, Sigmoid{})
	assert.Error(t, err, "weight column-count mismatch must be rejected")
}

func TestFeedForward_Shapes(t *testing.T) {
	topology := []int{3, 4, 2}
	net, err := New(topology, ZerosInit{}, Xavier{}, CrossEntropy{}, Sigmoid{}, WithSeed(5))
	require.NoError(t, err)

	outputs, sums, err := net.FeedForward(tensor.Vector{0.1, 0.2, 0.3})
	require.NoError(t, err)

	require.Len(t, outputs, len(topology))
	require.Len(t, sums, len(topology))
	assert.Nil(t, sums[0], "input layer has no weighted sum")
	for l, size := range topology {
		assert.Equal(t, size, outputs[l].Dims(), "output length, layer %d", l)
		if l > 0 {
			assert.Equal(t, size, sums[l].Dims(), "weighted-sum length, layer %d", l)
		}
	}
}

func TestFeedForward_InputLengthMismatch(t *testing.T) {
	net := fixedNet221(t, CrossEntropy{}, Sigmoid{})
	_, _, err := net.FeedForward(tensor.Vector{1, 2, 3})
	assert.Error(t, err)
}

// Hand-computed forward pass with the identity activation:
// z1 = W1·x + b1 = (2.5, 3.5), z2 = W2·z1 + b2 = (7).
func TestFeedForward_HandComputedIdentity(t *testing.T) {
	net := fixedNet221(t, MeanSquaredError{}, Identity{})

	outputs, sums, err := net.FeedForward(tensor.Vector{0, 1})
	require.NoError(t, err)

	assert.Equal(t, tensor.Vector{0, 1}, outputs[0])
	assert.InDelta(t, 2.5, sums[1][0], 1e-6)
	assert.InDelta(t, 3.5, sums[1][1], 1e-6)
	assert.Equal(t, sums[1], outputs[1])
	assert.InDelta(t, 7, sums[2][0], 1e-6)
	assert.InDelta(t, 7, outputs[2][0], 1e-6)
}

// Same fixed parameters with sigmoid, reference values computed in float64.
func TestFeedForward_HandComputedSigmoid(t *testing.T) {
	net := fixedNet221(t, CrossEntropy{}, Sigmoid{})

	outputs, sums, err := net.FeedForward(tensor.Vector{0, 1})
	require.NoError(t, err)

	o1 := sigmoid64(2.5)
	o2 := sigmoid64(3.5)
	assert.InDelta(t, o1, float64(outputs[1][0]), 1e-6)
	assert.InDelta(t, o2, float64(outputs[1][1]), 1e-6)

	z2 := o1 + o2 + 1
	assert.InDelta(t, z2, float64(sums[2][0]), 1e-5)
	assert.InDelta(t, sigmoid64(z2), float64(outputs[2][0]), 1e-5)
}

// Under the cross-entropy cost Predict softmax-normalizes the raw output.
func TestPredict_SoftmaxUnderCrossEntropy(t *testing.T) {
	net, err := New([]int{3, 4, 3}, RandomUniform{Min: -1, Max: 1}, Xavier{}, CrossEntropy{}, Sigmoid{}, WithSeed(8))
	require.NoError(t, err)

	out, err := net.Predict(tensor.Vector{0.2, -0.4, 0.9})
	require.NoError(t, err)

	require.Len(t, out, 3)
	assert.InDelta(t, 1, out.Sum(nil), 1e-5)
	for _, p := range out {
		assert.Positive(t, p)
	}
}

// Any other cost returns the raw final activation.
func TestPredict_RawUnderMSE(t *testing.T) {
	net := fixedNet221(t, MeanSquaredError{}, Identity{})

	out, err := net.Predict(tensor.Vector{0, 1})
	require.NoError(t, err)
	assert.InDelta(t, 7, out[0], 1e-6)
}

func TestBackpropagation_Shapes(t *testing.T) {
	net, err := New([]int{3, 5, 4, 2}, RandomUniform{Min: -1, Max: 1}, Xavier{}, CrossEntropy{}, Sigmoid{}, WithSeed(2))
	require.NoError(t, err)

	biasGrads, weightGrads, err := net.Backpropagation(tensor.Vector{0.1, 0.5, -0.2}, tensor.Vector{1, 0})
	require.NoError(t, err)

	require.Len(t, biasGrads, len(net.Biases()))
	require.Len(t, weightGrads, len(net.Weights()))
	for l := range biasGrads {
		assert.Equal(t, net.Biases()[l].Dims(), biasGrads[l].Dims(), "bias gradient, layer %d", l)
		assert.Equal(t, net.Weights()[l].Dims(), weightGrads[l].Dims(), "weight gradient, layer %d", l)
	}
}

func TestBackpropagation_ExpectedLengthMismatch(t *testing.T) {
	net := fixedNet221(t, CrossEntropy{}, Sigmoid{})
	_, _, err := net.Backpropagation(tensor.Vector{0, 1}, tensor.Vector{1, 0})
	assert.Error(t, err)
}

// Single-layer [1,1] sigmoid network with cross-entropy: the output error is
// o - e, the bias gradient equals it and the weight gradient is (o-e)·x.
func TestBackpropagation_HandComputed(t *testing.T) {
	net, err := NewFromParameters(
		[]int{1, 1},
		[]tensor.Vector{{0.5}},
		[]tensor.Matrix{{{2}}},
		CrossEntropy{}, Sigmoid{},
	)
	require.NoError(t, err)

	x := float32(0.75)
	o := sigmoid64(float64(2*x + 0.5))
	delta := o - 1

	biasGrads, weightGrads, err := net.Backpropagation(tensor.Vector{x}, tensor.Vector{1})
	require.NoError(t, err)

	assert.InDelta(t, delta, float64(biasGrads[0][0]), 1e-5)
	assert.InDelta(t, delta*float64(x), float64(weightGrads[0][0][0]), 1e-5)
}

// flattenGrads packs per-layer gradient trees into a single float64 slice in
// the same order unflattenParams reads it.
func flattenGrads(biasGrads []tensor.Vector, weightGrads []tensor.Matrix) []float64 {
	var out []float64
	for l := range biasGrads {
		for _, x := range biasGrads[l] {
			out = append(out, float64(x))
		}
		for _, row := range weightGrads[l] {
			for _, x := range row {
				out = append(out, float64(x))
			}
		}
	}
	return out
}

// unflattenParams rebuilds bias and weight trees for the topology from a
// flat float64 slice.
func unflattenParams(topology []int, x []float64) ([]tensor.Vector, []tensor.Matrix) {
	biases := make([]tensor.Vector, len(topology)-1)
	weights := make([]tensor.Matrix, len(topology)-1)
	k := 0
	for l := 1; l < len(topology); l++ {
		biases[l-1] = make(tensor.Vector, topology[l])
		for i := range biases[l-1] {
			biases[l-1][i] = float32(x[k])
			k++
		}
		weights[l-1] = make(tensor.Matrix, topology[l])
		for r := range weights[l-1] {
			weights[l-1][r] = make(tensor.Vector, topology[l-1])
			for c := range weights[l-1][r] {
				weights[l-1][r][c] = float32(x[k])
				k++
			}
		}
	}
	return biases, weights
}

// TestBackpropagation_MatchesFiniteDifferences verifies the analytic
// gradient of every parameter against central finite differences of the
// loss, using the MSE cost so the activation derivative is exercised too.
func TestBackpropagation_MatchesFiniteDifferences(t *testing.T) {
	topology := []int{2, 3, 2}
	input := tensor.Vector{0.3, -0.8}
	expected := tensor.Vector{1, 0}

	net, err := New(topology, RandomUniform{Min: -0.5, Max: 0.5}, Xavier{}, MeanSquaredError{}, Sigmoid{}, WithSeed(11))
	require.NoError(t, err)

	biasGrads, weightGrads, err := net.Backpropagation(input, expected)
	require.NoError(t, err)
	analytic := flattenGrads(biasGrads, weightGrads)

	// The per-sample loss as a function of the flattened parameters. MSE's
	// Computation averages over neurons with the same 1/(2n) factor the
	// gradient path uses, so the two are directly comparable... except that
	// Backpropagation does not divide by the neuron count: its output delta
	// is (o-e)⊙σ'(z) for the summed cost Σ(o-e)²/2. Scale the loss to match.
	loss := func(params []float64) float64 {
		biases, weights := unflattenParams(topology, params)
		probe, err := NewFromParameters(topology, biases, weights, MeanSquaredError{}, Sigmoid{})
		if err != nil {
			panic(err)
		}
		outputs, _, err := probe.FeedForward(input)
		if err != nil {
			panic(err)
		}
		final := outputs[len(outputs)-1]
		var sum float64
		for i := range final {
			d := float64(final[i]) - float64(expected[i])
			sum += d * d / 2
		}
		return sum
	}

	x0 := flattenGrads(net.Biases(), net.Weights())
	numeric := fd.Gradient(nil, loss, x0, &fd.Settings{Formula: fd.Central, Step: 1e-3})

	require.Len(t, numeric, len(analytic))
	for i := range analytic {
		assert.InDelta(t, numeric[i], analytic[i], 5e-3, "parameter %d", i)
	}
}

func TestUpdateParameters_EmptyBatch(t *testing.T) {
	net := fixedNet221(t, CrossEntropy{}, Sigmoid{})
	err := net.UpdateParameters(nil, 0.1, 0)
	assert.Error(t, err)
}

// A batch of one sample with zero regularization reduces to plain gradient
// descent: new = old - lr * gradient.
func TestUpdateParameters_SingleSamplePlainSGD(t *testing.T) {
	lr := float32(0.3)
	sample := LabeledData{Input: tensor.Vector{0, 1}, Expected: tensor.Vector{1}}

	// Frozen copy for the independent closed-form computation.
	frozen := fixedNet221(t, CrossEntropy{}, Sigmoid{})
	biasGrads, weightGrads, err := frozen.Backpropagation(sample.Input, sample.Expected)
	require.NoError(t, err)

	net := fixedNet221(t, CrossEntropy{}, Sigmoid{})
	require.NoError(t, net.UpdateParameters([]LabeledData{sample}, lr, 0))

	for l := range frozen.Biases() {
		for i := range frozen.Biases()[l] {
			want := frozen.Biases()[l][i] - lr*biasGrads[l][i]
			assert.InDelta(t, want, net.Biases()[l][i], 1e-6, "bias layer %d index %d", l, i)
		}
		for r := range frozen.Weights()[l] {
			for c := range frozen.Weights()[l][r] {
				want := frozen.Weights()[l][r][c] - lr*weightGrads[l][r][c]
				assert.InDelta(t, want, net.Weights()[l][r][c], 1e-6, "weight layer %d row %d col %d", l, r, c)
			}
		}
	}
}

// A multi-sample batch applies the batch-averaged gradient and the L2 decay
// factor in one step.
func TestUpdateParameters_BatchWithRegularization(t *testing.T) {
	lr, reg := float32(0.2), float32(0.5)
	batch := []LabeledData{
		{Input: tensor.Vector{0, 1}, Expected: tensor.Vector{1}},
		{Input: tensor.Vector{1, 0}, Expected: tensor.Vector{0}},
	}

	frozen := fixedNet221(t, CrossEntropy{}, Sigmoid{})
	bg0, wg0, err := frozen.Backpropagation(batch[0].Input, batch[0].Expected)
	require.NoError(t, err)
	bg1, wg1, err := frozen.Backpropagation(batch[1].Input, batch[1].Expected)
	require.NoError(t, err)

	net := fixedNet221(t, CrossEntropy{}, Sigmoid{})
	require.NoError(t, net.UpdateParameters(batch, lr, reg))

	n := float32(len(batch))
	decay := 1 - lr*reg/n
	for l := range frozen.Biases() {
		for i := range frozen.Biases()[l] {
			want := frozen.Biases()[l][i] - lr*(bg0[l][i]+bg1[l][i])/n
			assert.InDelta(t, want, net.Biases()[l][i], 1e-6)
		}
		for r := range frozen.Weights()[l] {
			for c := range frozen.Weights()[l][r] {
				want := frozen.Weights()[l][r][c]*decay - lr*(wg0[l][r][c]+wg1[l][r][c])/n
				assert.InDelta(t, want, net.Weights()[l][r][c], 1e-6)
			}
		}
	}
}

func TestFit_Validation(t *testing.T) {
	net := fixedNet221(t, CrossEntropy{}, Sigmoid{})
	sample := LabeledData{Input: tensor.Vector{0, 1}, Expected: tensor.Vector{1}}

	assert.Error(t, net.Fit(nil, 1, 1, 0.1, 0), "empty dataset")
	assert.Error(t, net.Fit([]LabeledData{sample}, 0, 1, 0.1, 0), "zero epochs")
	assert.Error(t, net.Fit([]LabeledData{sample}, 1, 0, 0.1, 0), "zero batch size")

	bad := LabeledData{Input: tensor.Vector{0, 1, 2}, Expected: tensor.Vector{1}}
	assert.Error(t, net.Fit([]LabeledData{bad}, 1, 1, 0.1, 0), "input shape mismatch")

	badOut := LabeledData{Input: tensor.Vector{0, 1}, Expected: tensor.Vector{1, 0}}
	assert.Error(t, net.Fit([]LabeledData{badOut}, 1, 1, 0.1, 0), "expected-output shape mismatch")
}

// One example, one epoch, batch size one: Fit is exactly one closed-form
// gradient-descent update.
func TestFit_SingleExampleSingleStep(t *testing.T) {
	lr := float32(0.25)
	sample := LabeledData{Input: tensor.Vector{0, 1}, Expected: tensor.Vector{1}}

	frozen := fixedNet221(t, CrossEntropy{}, Sigmoid{})
	biasGrads, weightGrads, err := frozen.Backpropagation(sample.Input, sample.Expected)
	require.NoError(t, err)

	net := fixedNet221(t, CrossEntropy{}, Sigmoid{})
	require.NoError(t, net.Fit([]LabeledData{sample}, 1, 1, lr, 0))

	for l := range frozen.Biases() {
		for i := range frozen.Biases()[l] {
			want := frozen.Biases()[l][i] - lr*biasGrads[l][i]
			assert.InDelta(t, want, net.Biases()[l][i], 1e-6)
		}
		for r := range frozen.Weights()[l] {
			for c := range frozen.Weights()[l][r] {
				want := frozen.Weights()[l][r][c] - lr*weightGrads[l][r][c]
				assert.InDelta(t, want, net.Weights()[l][r][c], 1e-6)
			}
		}
	}
}

func TestFit_DoesNotReorderCallerData(t *testing.T) {
	net, err := New([]int{2, 3, 2}, ZerosInit{}, Xavier{}, CrossEntropy{}, Sigmoid{}, WithSeed(4))
	require.NoError(t, err)

	data := make([]LabeledData, 20)
	for i := range data {
		data[i] = LabeledData{
			Input:    tensor.Vector{float32(i), float32(i) / 2},
			Expected: tensor.Vector{1, 0},
		}
	}
	before := append([]LabeledData(nil), data...)

	require.NoError(t, net.Fit(data, 1, 4, 0.1, 0))

	for i := range data {
		assert.Equal(t, before[i].Input[0], data[i].Input[0], "caller slice reordered at %d", i)
	}
}

type recordingReporter struct {
	batches int
	epochs  []float32 // meanCost per epoch
}

func (r *recordingReporter) BatchDone(_, _, _ int) { r.batches++ }
func (r *recordingReporter) EpochDone(_, _ int, _, meanCost float32) {
	r.epochs = append(r.epochs, meanCost)
}

func TestFit_ReportsProgress(t *testing.T) {
	rep := &recordingReporter{}
	net, err := New([]int{2, 3, 2}, ZerosInit{}, Xavier{}, CrossEntropy{}, Sigmoid{},
		WithSeed(6), WithReporter(rep))
	require.NoError(t, err)

	// 20 samples: 2 held out for validation, 18 in the pool, 4 batches of
	// up to 5 per epoch.
	data := make([]LabeledData, 20)
	for i := range data {
		data[i] = LabeledData{
			Input:    tensor.Vector{float32(i%2) - 0.5, float32(i%3) - 1},
			Expected: tensor.Vector{1, 0},
		}
	}

	require.NoError(t, net.Fit(data, 3, 5, 0.5, 0.01))

	assert.Equal(t, 3*4, rep.batches)
	require.Len(t, rep.epochs, 3)
	for _, c := range rep.epochs {
		assert.False(t, math.IsNaN(float64(c)))
	}
}

// Training on a linearly separable problem must reduce the regularized
// validation cost.
func TestFit_ReducesCost(t *testing.T) {
	net, err := New([]int{2, 4, 2}, ZerosInit{}, Xavier{}, CrossEntropy{}, Sigmoid{}, WithSeed(12))
	require.NoError(t, err)

	// Logical OR, one-hot targets, replicated so a validation split exists.
	var data []LabeledData
	for i := 0; i < 20; i++ {
		data = append(data,
			LabeledData{Input: tensor.Vector{0, 0}, Expected: tensor.Vector{1, 0}},
			LabeledData{Input: tensor.Vector{0, 1}, Expected: tensor.Vector{0, 1}},
			LabeledData{Input: tensor.Vector{1, 0}, Expected: tensor.Vector{0, 1}},
			LabeledData{Input: tensor.Vector{1, 1}, Expected: tensor.Vector{0, 1}},
		)
	}

	_, before, err := Evaluate(net, CrossEntropy{}, data, 0)
	require.NoError(t, err)

	require.NoError(t, net.Fit(data, 30, 8, 1.0, 0))

	_, after, err := Evaluate(net, CrossEntropy{}, data, 0)
	require.NoError(t, err)
	assert.Less(t, after, before, "training did not reduce the cost")
}
