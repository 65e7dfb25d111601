// Package neural provides the feed-forward networks that drive AI paddles,
// the brain wrapper used by players and the perception model feeding it.
package neural

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// ErrWeightCount is returned when a flat weight vector does not match a topology.
var ErrWeightCount = errors.New("weight count does not match topology")

// layer is one fully connected layer: out = W·in + b.
type layer struct {
	weights *mat.Dense    // [outputs x inputs]
	biases  *mat.VecDense // [outputs]
}

func (l *layer) outputs() int {
	r, _ := l.weights.Dims()
	return r
}

// FFNN is a feed-forward network with tanh hidden layers and a linear output layer.
type FFNN struct {
	topology []int
	layers   []layer
}

// WeightCount returns the number of weights and biases a topology needs.
func WeightCount(topology []int) int {
	n := 0
	for i := 1; i < len(topology); i++ {
		n += topology[i] * (topology[i-1] + 1)
	}
	return n
}

// NewFFNN creates a randomly initialized network for the given layer sizes,
// input layer first. Weights use He initialization, biases start at zero.
func NewFFNN(rng *rand.Rand, topology []int) *FFNN {
	if len(topology) < 2 {
		panic(fmt.Sprintf("neural: topology needs at least 2 layers, got %d", len(topology)))
	}

	nn := &FFNN{topology: append([]int(nil), topology...)}
	for i := 1; i < len(topology); i++ {
		in, out := topology[i-1], topology[i]
		scale := math.Sqrt(2.0 / float64(in))

		w := make([]float64, out*in)
		for j := range w {
			w[j] = rng.NormFloat64() * scale
		}

		nn.layers = append(nn.layers, layer{
			weights: mat.NewDense(out, in, w),
			biases:  mat.NewVecDense(out, nil),
		})
	}
	return nn
}

// NewFFNNFromWeights builds a network from a flat weight vector as produced by
// Weights: for every layer, for every neuron, its bias followed by its input
// weights.
func NewFFNNFromWeights(topology []int, weights []float64) (*FFNN, error) {
	if len(topology) < 2 {
		return nil, fmt.Errorf("topology needs at least 2 layers, got %d", len(topology))
	}
	if want := WeightCount(topology); len(weights) != want {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrWeightCount, len(weights), want)
	}

	nn := &FFNN{topology: append([]int(nil), topology...)}
	k := 0
	for i := 1; i < len(topology); i++ {
		in, out := topology[i-1], topology[i]
		w := make([]float64, out*in)
		b := make([]float64, out)

		for n := 0; n < out; n++ {
			b[n] = weights[k]
			k++
			copy(w[n*in:(n+1)*in], weights[k:k+in])
			k += in
		}

		nn.layers = append(nn.layers, layer{
			weights: mat.NewDense(out, in, w),
			biases:  mat.NewVecDense(out, b),
		})
	}
	return nn, nil
}

// Topology returns a copy of the layer sizes.
func (nn *FFNN) Topology() []int {
	return append([]int(nil), nn.topology...)
}

// Forward computes the network output. Inputs beyond the input layer size
// are ignored and missing inputs read as zero.
func (nn *FFNN) Forward(inputs []float64) []float64 {
	in := make([]float64, nn.topology[0])
	copy(in, inputs)
	x := mat.NewVecDense(len(in), in)

	last := len(nn.layers) - 1
	for i := range nn.layers {
		l := &nn.layers[i]
		out := mat.NewVecDense(l.outputs(), nil)
		out.MulVec(l.weights, x)
		out.AddVec(out, l.biases)

		if i != last {
			for j := 0; j < out.Len(); j++ {
				out.SetVec(j, math.Tanh(out.AtVec(j)))
			}
		}
		x = out
	}

	return x.RawVector().Data
}

// Weights flattens all biases and weights, neuron by neuron.
func (nn *FFNN) Weights() []float64 {
	flat := make([]float64, 0, WeightCount(nn.topology))
	for i := range nn.layers {
		l := &nn.layers[i]
		for n := 0; n < l.outputs(); n++ {
			flat = append(flat, l.biases.AtVec(n))
			flat = append(flat, l.weights.RawRowView(n)...)
		}
	}
	return flat
}

// Clone creates a deep copy of the network.
func (nn *FFNN) Clone() *FFNN {
	clone := &FFNN{topology: nn.Topology()}
	for i := range nn.layers {
		l := &nn.layers[i]
		clone.layers = append(clone.layers, layer{
			weights: mat.DenseCopyOf(l.weights),
			biases:  mat.VecDenseCopyOf(l.biases),
		})
	}
	return clone
}
