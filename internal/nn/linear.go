package nn

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/floats"

	"github.com/mytorch/mytorch/internal/tensor"
)

// Linear implements a fully connected (dense) layer.
//
// Performs the transformation: y = x @ W.T + b
// where:
//   - x is the input tensor with shape [batch_size, in_features]
//   - W is the weight matrix with shape [out_features, in_features]
//   - b is the bias vector with shape [out_features]
//   - y is the output tensor with shape [batch_size, out_features]
//
// Weights are initialized using Xavier/Glorot initialization.
// Biases are initialized to zeros.
//
// The product x @ W.T is computed by tensor.TMult and is not part of the
// graph, so W never receives a gradient. The bias is added as a tile of
// shape [batch_size, out_features]; after a backward pass,
// AccumulateBiasGrad folds the tile's gradient into the bias.
//
// Example:
//
//	rng := rand.New(rand.NewSource(42))
//	layer := nn.NewLinear(4, 2, rng)
//	out, err := layer.Forward(x) // x: [batch, 4], out: [batch, 2]
type Linear struct {
	inFeatures  int
	outFeatures int
	weight      *Parameter // [out_features, in_features]
	bias        *Parameter // [out_features]

	tile *tensor.Tensor // bias as broadcast by the last Forward
}

// NewLinear creates a new Linear layer drawing its initial weights from rng.
func NewLinear(inFeatures, outFeatures int, rng *rand.Rand) *Linear {
	weightTensor := Xavier(inFeatures, outFeatures, tensor.Shape{outFeatures, inFeatures}, rng)
	biasTensor := Zeros(tensor.Shape{outFeatures})

	return &Linear{
		inFeatures:  inFeatures,
		outFeatures: outFeatures,
		weight:      NewParameter("weight", weightTensor),
		bias:        NewParameter("bias", biasTensor),
	}
}

// Forward computes x @ W.T + b.
//
// Input shape: [batch_size, in_features]
// Output shape: [batch_size, out_features]
func (l *Linear) Forward(input *tensor.Tensor) (*tensor.Tensor, error) {
	if input == nil {
		return nil, fmt.Errorf("%w: Linear.Forward: input is nil", tensor.ErrTypeMismatch)
	}
	inputShape := input.Shape()
	if len(inputShape) != 2 {
		return nil, fmt.Errorf("%w: Linear.Forward: expected 2D input [batch, features], got shape %v",
			tensor.ErrShapeMismatch, inputShape)
	}
	if inputShape[1] != l.inFeatures {
		return nil, fmt.Errorf("%w: Linear.Forward: expected input with %d features, got %d",
			tensor.ErrShapeMismatch, l.inFeatures, inputShape[1])
	}
	batch := inputShape[0]

	// Contract the feature axis of x with the feature axis of W:
	// [batch, in] x [out, in] -> [batch, out]
	product, err := tensor.TMult(input, l.weight.Tensor(),
		tensor.Axes{X: []int{1}, Y: []int{1}}, tensor.Shape{batch, l.outFeatures})
	if err != nil {
		return nil, err
	}

	b := l.bias.Tensor()
	tiled := make([]float64, 0, batch*l.outFeatures)
	for range batch {
		tiled = append(tiled, b.Data()...)
	}
	tile, err := tensor.FromSlice(tiled, tensor.Shape{batch, l.outFeatures},
		tensor.WithRequiresGrad(b.RequiresGrad()))
	if err != nil {
		return nil, err
	}
	l.tile = tile

	return product.Add(tile)
}

// AccumulateBiasGrad sums the gradient that reached the bias tile of the
// last Forward over the batch and accumulates it into the bias. The tile's
// gradient is cleared so a second call adds nothing.
func (l *Linear) AccumulateBiasGrad() error {
	if l.tile == nil || l.tile.Grad() == nil {
		return nil
	}

	g := l.tile.Grad().Data()
	sum := make([]float64, l.outFeatures)
	for row := 0; row+l.outFeatures <= len(g); row += l.outFeatures {
		floats.Add(sum, g[row:row+l.outFeatures])
	}
	l.tile.ZeroGrad()

	grad, err := tensor.FromSlice(sum, tensor.Shape{l.outFeatures}, tensor.WithRequiresGrad(false))
	if err != nil {
		return err
	}
	return l.bias.Tensor().BackwardWithGrad(grad)
}

// Parameters returns [weight, bias].
func (l *Linear) Parameters() []*Parameter {
	return []*Parameter{l.weight, l.bias}
}

// Weight returns the weight parameter.
func (l *Linear) Weight() *Parameter {
	return l.weight
}

// Bias returns the bias parameter.
func (l *Linear) Bias() *Parameter {
	return l.bias
}

// InFeatures returns the number of input features.
func (l *Linear) InFeatures() int {
	return l.inFeatures
}

// OutFeatures returns the number of output features.
func (l *Linear) OutFeatures() int {
	return l.outFeatures
}

// StateDict returns the layer's tensors under "weight" and "bias".
// The tensors are live, not copies.
func (l *Linear) StateDict() map[string]*tensor.Tensor {
	return map[string]*tensor.Tensor{
		"weight": l.weight.Tensor(),
		"bias":   l.bias.Tensor(),
	}
}

// LoadStateDict copies weight and bias values into the layer.
// Both entries are validated before either is written.
func (l *Linear) LoadStateDict(stateDict map[string]*tensor.Tensor) error {
	weight, ok := stateDict["weight"]
	if !ok || weight == nil {
		return fmt.Errorf("missing weight in state dict")
	}
	bias, ok := stateDict["bias"]
	if !ok || bias == nil {
		return fmt.Errorf("missing bias in state dict")
	}

	expectedWeightShape := tensor.Shape{l.outFeatures, l.inFeatures}
	if !weight.Shape().Equal(expectedWeightShape) {
		return fmt.Errorf("%w: weight: expected %v, got %v",
			tensor.ErrShapeMismatch, expectedWeightShape, weight.Shape())
	}
	expectedBiasShape := tensor.Shape{l.outFeatures}
	if !bias.Shape().Equal(expectedBiasShape) {
		return fmt.Errorf("%w: bias: expected %v, got %v",
			tensor.ErrShapeMismatch, expectedBiasShape, bias.Shape())
	}

	copy(l.weight.Tensor().Data(), weight.Data())
	copy(l.bias.Tensor().Data(), bias.Data())
	return nil
}
