// Package nn implements neural network building blocks on top of the tensor
// package.
//
// This package provides:
//   - Module interface: Base interface for all NN components
//   - Parameter: Named trainable tensor
//   - Linear: Fully connected layer
//   - Loss functions: MSE
//   - Sequential: Container for stacking layers
//
// Only Add and Mul record graph edges. Linear's matrix product goes through
// tensor.TMult, which does not, so a backward pass through Linear reaches
// the bias but not the weight.
package nn

import (
	"github.com/mytorch/mytorch/internal/tensor"
)

// Module is the base interface for all neural network components.
//
// Modules can be composed to build larger networks:
//
//	model := nn.NewSequential(
//	    nn.NewLinear(4, 8, rng),
//	    nn.NewLinear(8, 2, rng),
//	)
type Module interface {
	// Forward computes the output of the module given an input tensor.
	Forward(input *tensor.Tensor) (*tensor.Tensor, error)

	// Parameters returns all trainable parameters of this module.
	Parameters() []*Parameter

	// StateDict returns the module's tensors keyed by parameter name.
	StateDict() map[string]*tensor.Tensor

	// LoadStateDict copies values from a state dictionary into the module.
	LoadStateDict(stateDict map[string]*tensor.Tensor) error
}
