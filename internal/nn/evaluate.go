package nn

import (
	"fmt"

	"github.com/manuelsawade/simple-neuralnetwork/internal/tensor"
)

// Predictor is the slice of the network Evaluate needs: predictions for the
// accuracy measure and the weight tree for the L2 penalty term.
type Predictor interface {
	Predict(input tensor.Vector) (tensor.Vector, error)
	Weights() []tensor.Matrix
}

// Evaluate measures a predictor on a held-out set.
//
// Accuracy is the fraction of samples whose predicted arg-max class matches
// the expected one. Mean cost is the average of cost.Computation over the set
// plus the L2 penalty λ/(2n)·Σw², so the reported number is the quantity the
// regularized training actually minimizes. The cost may differ from the one
// the predictor was trained with.
func Evaluate(p Predictor, cost Cost, validation []LabeledData, regularization float32) (accuracy, meanCost float32, err error) {
	if len(validation) == 0 {
		return 0, 0, fmt.Errorf("nn: cannot evaluate on an empty validation set")
	}

	correct := 0
	var costSum float32
	for i, sample := range validation {
		output, err := p.Predict(sample.Input)
		if err != nil {
			return 0, 0, fmt.Errorf("nn: evaluate sample %d: %w", i, err)
		}
		if output.ArgMax() == sample.Expected.ArgMax() {
			correct++
		}
		costSum += cost.Computation(output, sample.Expected)
	}

	var weightNorm float32
	for _, w := range p.Weights() {
		for _, row := range w {
			weightNorm += row.Dot(row)
		}
	}

	n := float32(len(validation))
	accuracy = float32(correct) / n
	meanCost = costSum/n + regularization/(2*n)*weightNorm
	return accuracy, meanCost, nil
}
