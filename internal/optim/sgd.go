package optim

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/mytorch/mytorch/internal/tensor"
)

// SGD implements Stochastic Gradient Descent optimizer with optional momentum.
//
// Update rule without momentum:
//
//	param = param - lr * gradient
//
// Update rule with momentum:
//
//	velocity = momentum * velocity + gradient
//	param = param - lr * velocity
//
// Example:
//
//	optimizer := optim.NewSGD(layer.Tensors(), optim.SGDConfig{
//	    LR:       0.01,
//	    Momentum: 0.9,
//	})
type SGD struct {
	base
	momentum   float64
	velocities map[*tensor.Tensor]*tensor.Tensor
}

// SGDConfig holds configuration for SGD optimizer.
type SGDConfig struct {
	LR       float64 // Learning rate (default: 0.01)
	Momentum float64 // Momentum factor (default: 0.0, range: [0, 1))
}

// NewSGD creates a new SGD optimizer over the given leaf tensors.
func NewSGD(params []*tensor.Tensor, config SGDConfig, opts ...Option) *SGD {
	if config.LR == 0 {
		config.LR = 0.01
	}

	return &SGD{
		base:       newBase(params, config.LR, opts),
		momentum:   config.Momentum,
		velocities: make(map[*tensor.Tensor]*tensor.Tensor),
	}
}

// Step performs a single optimization step.
//
// Parameters with no gradient (not reached by a backward pass) are skipped.
func (s *SGD) Step() error {
	grads, err := s.gradients()
	if err != nil {
		return err
	}
	if s.momentum != 0 {
		for i, p := range s.params {
			if err := checkBuffer("velocity", i, s.velocities[p], p); err != nil {
				return err
			}
		}
	}

	for i, p := range s.params {
		g := grads[i]
		if g == nil {
			continue
		}

		if s.momentum == 0 {
			// param -= lr * grad
			floats.AddScaled(p.Data(), -s.lr, g.Data())
			continue
		}

		velocity, ok := s.velocities[p]
		if !ok {
			velocity = tensor.Zeros(p.Shape(), tensor.WithRequiresGrad(false))
			s.velocities[p] = velocity
		}

		// velocity = momentum * velocity + grad
		v := velocity.Data()
		floats.Scale(s.momentum, v)
		floats.Add(v, g.Data())

		// param -= lr * velocity
		floats.AddScaled(p.Data(), -s.lr, v)
	}
	return nil
}

// StateDict returns the optimizer state for serialization.
//
// For SGD with momentum, this exports a copy of the velocity buffer of each
// parameter that has one. Without momentum, returns an empty map.
//
// State keys: "velocity.{param_index}" -> velocity tensor.
func (s *SGD) StateDict() map[string]*tensor.Tensor {
	stateDict := make(map[string]*tensor.Tensor)
	if s.momentum == 0 {
		return stateDict
	}

	for i, p := range s.params {
		velocity, ok := s.velocities[p]
		if !ok {
			continue
		}
		stateDict[fmt.Sprintf("velocity.%d", i)] = velocity.DeepCopy()
	}
	return stateDict
}

// LoadStateDict restores velocity buffers saved by StateDict.
//
// If momentum is 0, the state is ignored. Every buffer is validated before
// any is installed; a shape mismatch leaves the optimizer unchanged.
func (s *SGD) LoadStateDict(stateDict map[string]*tensor.Tensor) error {
	if s.momentum == 0 {
		return nil
	}

	loaded := make(map[*tensor.Tensor]*tensor.Tensor)
	for i, p := range s.params {
		velocity, ok := stateDict[fmt.Sprintf("velocity.%d", i)]
		if !ok {
			// Initialized on first step.
			continue
		}
		if err := checkBuffer("velocity", i, velocity, p); err != nil {
			return err
		}
		loaded[p] = velocity.DeepCopy()
	}

	s.velocities = loaded
	return nil
}
