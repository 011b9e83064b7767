// Package optim implements optimization algorithms over leaf tensors.
//
// This package provides:
//   - Optimizer interface: Base interface for all optimizers
//   - SGD: Stochastic Gradient Descent with momentum
//   - Adam: Adaptive Moment Estimation
//
// Optimizers read the gradients a backward pass accumulated on each
// parameter (Tensor.Grad) and update the parameter data in place.
//
// Example usage:
//
//	optimizer := optim.NewSGD(params, optim.SGDConfig{LR: 0.05})
//
//	for step := range steps {
//	    loss := computeLoss(params)
//	    if err := loss.Backward(); err != nil {
//	        return err
//	    }
//	    if err := optimizer.Step(); err != nil {
//	        return err
//	    }
//	    optimizer.ZeroGrad()
//	}
package optim

import (
	"fmt"
	"log/slog"

	"github.com/mytorch/mytorch/internal/tensor"
)

// Optimizer is the base interface for all optimization algorithms.
//
// All optimizers must implement:
//   - Step: Apply the accumulated gradients to the parameters
//   - ZeroGrad: Clear gradients before the next backward pass
//   - LR: Get current learning rate (for monitoring/scheduling)
type Optimizer interface {
	// Step applies gradient updates to all parameters.
	//
	// Parameters without a gradient are left untouched. Fails with
	// tensor.ErrShapeMismatch, before any parameter is modified, if a
	// gradient or optimizer buffer no longer matches its parameter.
	Step() error

	// ZeroGrad clears all parameter gradients.
	//
	// Backward accumulates into leaves, so this should be called between
	// iterations.
	ZeroGrad()

	// LR returns the current learning rate.
	LR() float64
}

// Option configures an optimizer.
type Option func(*base)

// WithLogger sets the logger used for debug output (skipped parameters).
// Optimizers are silent by default.
func WithLogger(logger *slog.Logger) Option {
	return func(b *base) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// base holds what every optimizer shares.
type base struct {
	params []*tensor.Tensor
	lr     float64
	logger *slog.Logger
}

func newBase(params []*tensor.Tensor, lr float64, opts []Option) base {
	b := base{
		params: params,
		lr:     lr,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// ZeroGrad clears gradients for all parameters.
func (b *base) ZeroGrad() {
	for _, p := range b.params {
		p.ZeroGrad()
	}
}

// LR returns the current learning rate.
func (b *base) LR() float64 {
	return b.lr
}

// SetLR updates the learning rate.
//
// Useful for learning rate scheduling during training.
func (b *base) SetLR(lr float64) {
	b.lr = lr
}

// gradients returns each parameter's gradient (nil when absent) after
// checking every present gradient against its parameter's shape.
func (b *base) gradients() ([]*tensor.Tensor, error) {
	grads := make([]*tensor.Tensor, len(b.params))
	for i, p := range b.params {
		g := p.Grad()
		if g == nil {
			b.logger.Debug("skipping parameter without gradient", "index", i, "shape", p.Shape())
			continue
		}
		if !g.Shape().Equal(p.Shape()) {
			return nil, fmt.Errorf("%w: gradient of parameter %d has shape %v, parameter has %v",
				tensor.ErrShapeMismatch, i, g.Shape(), p.Shape())
		}
		grads[i] = g
	}
	return grads, nil
}

// checkBuffer validates an optimizer state buffer against parameter i.
func checkBuffer(name string, i int, buf, param *tensor.Tensor) error {
	if buf != nil && !buf.Shape().Equal(param.Shape()) {
		return fmt.Errorf("%w: %s buffer of parameter %d has shape %v, parameter has %v",
			tensor.ErrShapeMismatch, name, i, buf.Shape(), param.Shape())
	}
	return nil
}
