// Copyright 2025 The mytorch Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package optim

import (
	"log/slog"

	"github.com/mytorch/mytorch/internal/optim"
	"github.com/mytorch/mytorch/internal/tensor"
)

// Optimizer interface defines the common interface for all optimizers.
type Optimizer = optim.Optimizer

// Option configures an optimizer.
type Option = optim.Option

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return optim.WithLogger(logger)
}

// SGD (Stochastic Gradient Descent)

// SGD represents the SGD optimizer with optional momentum.
type SGD = optim.SGD

// SGDConfig contains configuration for SGD optimizer.
type SGDConfig = optim.SGDConfig

// NewSGD creates a new SGD optimizer.
//
// Example:
//
//	layer := nn.NewLinear(4, 2, rng)
//	optimizer := optim.NewSGD(
//	    nn.Tensors(layer.Parameters()),
//	    optim.SGDConfig{
//	        LR:       0.01,
//	        Momentum: 0.9,
//	    },
//	)
func NewSGD(params []*tensor.Tensor, config SGDConfig, opts ...Option) *SGD {
	return optim.NewSGD(params, config, opts...)
}

// Adam (Adaptive Moment Estimation)

// Adam represents the Adam optimizer.
type Adam = optim.Adam

// AdamConfig contains configuration for Adam optimizer.
type AdamConfig = optim.AdamConfig

// NewAdam creates a new Adam optimizer with bias correction.
//
// Example:
//
//	optimizer := optim.NewAdam(
//	    []*tensor.Tensor{w, b},
//	    optim.AdamConfig{
//	        LR:    0.001,
//	        Betas: [2]float64{0.9, 0.999},
//	    },
//	)
func NewAdam(params []*tensor.Tensor, config AdamConfig, opts ...Option) *Adam {
	return optim.NewAdam(params, config, opts...)
}
