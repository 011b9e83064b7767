// Copyright 2025 The mytorch Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"math/rand"

	"github.com/mytorch/mytorch/internal/nn"
	"github.com/mytorch/mytorch/internal/tensor"
)

// Module is the base interface for all neural network components.
type Module = nn.Module

// Parameter is a named trainable tensor.
type Parameter = nn.Parameter

// NewParameter creates a new trainable parameter.
func NewParameter(name string, t *tensor.Tensor) *Parameter {
	return nn.NewParameter(name, t)
}

// Tensors unwraps parameters, e.g. to hand them to an optimizer.
func Tensors(params []*Parameter) []*tensor.Tensor {
	return nn.Tensors(params)
}

// Layers

// Linear represents a fully connected (dense) layer.
type Linear = nn.Linear

// NewLinear creates a new linear layer with Xavier initialization.
//
// Example:
//
//	rng := rand.New(rand.NewSource(42))
//	layer := nn.NewLinear(4, 2, rng)
func NewLinear(inFeatures, outFeatures int, rng *rand.Rand) *Linear {
	return nn.NewLinear(inFeatures, outFeatures, rng)
}

// Sequential chains modules.
type Sequential = nn.Sequential

// NewSequential creates a new Sequential container.
func NewSequential(modules ...Module) *Sequential {
	return nn.NewSequential(modules...)
}

// Loss functions

// MSELoss computes squared error.
type MSELoss = nn.MSELoss

// NewMSELoss creates a new MSE loss function.
func NewMSELoss() *MSELoss {
	return nn.NewMSELoss()
}

// Initialization

// Xavier returns a trainable tensor drawn from the Glorot uniform distribution.
func Xavier(fanIn, fanOut int, shape tensor.Shape, rng *rand.Rand) *tensor.Tensor {
	return nn.Xavier(fanIn, fanOut, shape, rng)
}

// Zeros returns a trainable tensor of zeros.
func Zeros(shape tensor.Shape) *tensor.Tensor {
	return nn.Zeros(shape)
}
