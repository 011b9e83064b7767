// Copyright 2025 The mytorch Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the value container of mytorch.
//
// # Overview
//
// A Tensor holds a dense row-major float64 buffer and a Shape. Tensors built
// directly (New, FromSlice, Zeros, Ones) are leaves. Add and Mul return new
// tensors that remember their operands through a GradOperation (see package
// autograd), so the graph is built as the computation runs.
//
// # Basic Usage
//
//	a := tensor.MustNew([]float64{1, 2})
//	b := tensor.MustNew([]float64{2, 3}, tensor.WithRequiresGrad(false))
//
//	r, err := a.Mul(b)
//	if err != nil {
//	    return err
//	}
//	if err := r.Backward(); err != nil {
//	    return err
//	}
//	fmt.Println(a.Grad())     // Tensor([2 3])
//	fmt.Printf("%#v\n", r)    // long form with requires_grad and grad_op
//
// # Gradients
//
// Backward walks the graph from a result back to its leaves. Leaves that
// require gradients accumulate: a second backward pass adds to the stored
// gradient until ZeroGrad is called. Intermediate results never store one.
//
// # Contraction
//
// TMult computes a generalized tensordot. It is not recorded in the graph,
// so gradients do not flow through it.
//
// # Errors
//
// Every error wraps one of the Err* sentinels of this package.
package tensor
