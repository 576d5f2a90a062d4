package nn

import "github.com/manuelsawade/simple-neuralnetwork/internal/tensor"

// LabeledData is one training example: an input vector and the output vector
// the network should produce for it. The engine treats both as read-only;
// ownership stays with the caller.
type LabeledData struct {
	Input    tensor.Vector
	Expected tensor.Vector
}
