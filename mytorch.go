// Copyright 2025 The mytorch Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package mytorch is a small define-by-run automatic differentiation engine.
//
// The user-facing API lives in the subpackages:
//   - tensor: the value container, elementwise Add/Mul, Backward, TMult
//   - autograd: the recorded graph edges (GradOperation)
//   - optim: SGD and Adam over leaf tensors
//   - nn: Parameter, Linear, Sequential, MSELoss
package mytorch

const version = "0.1.0"

// Version returns the library version.
func Version() string {
	return version
}
