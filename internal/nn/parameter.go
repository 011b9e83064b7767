package nn

import (
	"github.com/mytorch/mytorch/internal/tensor"
)

// Parameter represents a trainable parameter in a neural network.
//
// The gradient lives on the tensor itself: a backward pass accumulates into
// it, since parameters are leaves.
//
// Example:
//
//	weight := nn.NewParameter("weight", weightTensor)
//	_ = loss.Backward()
//	grad := weight.Grad()
type Parameter struct {
	name   string         // Parameter name (e.g., "weight", "bias")
	tensor *tensor.Tensor // The parameter tensor
}

// NewParameter creates a new trainable parameter.
func NewParameter(name string, t *tensor.Tensor) *Parameter {
	return &Parameter{
		name:   name,
		tensor: t,
	}
}

// Name returns the parameter name.
func (p *Parameter) Name() string {
	return p.name
}

// Tensor returns the parameter tensor.
func (p *Parameter) Tensor() *tensor.Tensor {
	return p.tensor
}

// Grad returns the accumulated gradient, or nil before any backward pass.
func (p *Parameter) Grad() *tensor.Tensor {
	return p.tensor.Grad()
}

// ZeroGrad clears the accumulated gradient.
func (p *Parameter) ZeroGrad() {
	p.tensor.ZeroGrad()
}

// Tensors unwraps parameters, e.g. to hand them to an optimizer.
func Tensors(params []*Parameter) []*tensor.Tensor {
	out := make([]*tensor.Tensor, len(params))
	for i, p := range params {
		out[i] = p.tensor
	}
	return out
}
