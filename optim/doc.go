// Copyright 2025 The mytorch Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides optimization algorithms over leaf tensors.
//
// # Overview
//
// This package contains:
//   - SGD: Stochastic Gradient Descent with momentum
//   - Adam: Adaptive Moment Estimation with bias correction
//   - Optimizer interface for custom optimizers
//
// # Basic Usage
//
//	w := tensor.Zeros(tensor.Shape{4})
//	b := tensor.Zeros(tensor.Shape{4})
//	optimizer := optim.NewSGD([]*tensor.Tensor{w, b}, optim.SGDConfig{LR: 0.02})
//
//	for range steps {
//	    loss, _ := mse.Forward(predict(w, b), targets)
//	    if err := loss.Backward(); err != nil {
//	        return err
//	    }
//	    if err := optimizer.Step(); err != nil {
//	        return err
//	    }
//	    optimizer.ZeroGrad()
//	}
//
// Gradients accumulate on leaves across backward passes, so ZeroGrad belongs
// in every iteration.
package optim
