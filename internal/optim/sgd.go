// Package optim implements the parameter-update rules applied after a
// mini-batch of gradients has been reduced.
package optim

import "github.com/manuelsawade/simple-neuralnetwork/internal/tensor"

// SGD applies one mini-batch gradient-descent step with L2 weight decay.
//
// Bias update:
//
//	b = b - lr · (ḡ / n)
//
// Weight update:
//
//	w = w · (1 - lr·λ/n) - lr · (ḡ / n)
//
// where ḡ is the gradient summed over the batch, n the batch size and λ the
// regularization strength. Biases are never decayed.
type SGD struct {
	LearningRate float32
	WeightDecay  float32 // L2 regularization strength λ.
}

// Step mutates biases and weights in place from the batch-summed gradient
// trees. The gradient trees must have exactly the shapes of the parameter
// trees; the tensor ops panic otherwise.
//
// Step must only run after all per-sample gradient workers have joined; it is
// the single-threaded phase of a batch.
func (s SGD) Step(biases []tensor.Vector, weights []tensor.Matrix, biasGrads []tensor.Vector, weightGrads []tensor.Matrix, batchSize int) {
	scale := s.LearningRate / float32(batchSize)
	decay := 1 - s.LearningRate*s.WeightDecay/float32(batchSize)

	for l, b := range biases {
		grad := biasGrads[l]
		for i := range b {
			b[i] -= scale * grad[i]
		}
	}
	for l, w := range weights {
		grad := weightGrads[l]
		for i, row := range w {
			for j := range row {
				row[j] = row[j]*decay - scale*grad[i][j]
			}
		}
	}
}
