package nn

import (
	"github.com/chewxy/math32"

	"github.com/manuelsawade/simple-neuralnetwork/internal/tensor"
)

// Softmax normalizes v into a probability distribution (non-negative,
// summing to one). The maximum is subtracted before exponentiation so large
// weighted sums cannot overflow.
func Softmax(v tensor.Vector) tensor.Vector {
	m := v.Max()
	exps := v.Map(func(x float32) float32 {
		return math32.Exp(x - m)
	})
	return exps.Scale(1 / exps.Sum(nil))
}
