// Copyright 2025 The mytorch Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides neural network layers and building blocks.
//
// # Overview
//
// This package contains:
//   - Layers: Linear
//   - Loss functions: MSELoss
//   - Utilities: Sequential, Module interface, Parameter
//   - Initialization: Xavier, Zeros
//
// # Basic Usage
//
//	rng := rand.New(rand.NewSource(42))
//	model := nn.NewSequential(
//	    nn.NewLinear(4, 8, rng),
//	    nn.NewLinear(8, 2, rng),
//	)
//
//	output, err := model.Forward(input) // input: [batch, 4]
//
// # Gradients
//
// Linear multiplies with tensor.TMult, which is not recorded in the graph.
// After a backward pass, call Linear.AccumulateBiasGrad to move the gradient
// of the broadcast bias into the bias parameter; weights receive no gradient.
package nn
