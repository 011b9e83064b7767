// Copyright 2025 The mytorch Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autograd exposes the graph edges recorded by tensor operations.
//
// Every tensor returned by Add or Mul points at a GradOperation naming the
// operation (OpAdd, OpMul) and its two operands. Tensor.Backward walks these
// edges: for each operand that requires gradients, the operation's local
// gradient is multiplied elementwise with the incoming gradient and passed on.
//
// Example:
//
//	import (
//	    "github.com/mytorch/mytorch/autograd"
//	    "github.com/mytorch/mytorch/tensor"
//	)
//
//	func main() {
//	    a := tensor.MustNew([]float64{1, 2})
//	    r, _ := a.Add(a)
//
//	    op := r.GradOp()
//	    fmt.Println(op.Kind() == autograd.OpAdd) // true
//	    fmt.Println(op)                          // GradOperation(tensor-add, [Tensor([1 2]), Tensor([1 2])])
//	}
package autograd

import (
	"github.com/mytorch/mytorch/internal/tensor"
)

// GradOperation records the operation that produced a tensor and its operands.
type GradOperation = tensor.GradOperation

// OpKind identifies a differentiable operation.
type OpKind = tensor.OpKind

// Supported operation kinds.
const (
	OpAdd = tensor.OpAdd
	OpMul = tensor.OpMul
)

// NewGradOperation creates an edge for a binary operation.
// Fails with tensor.ErrInvalidArity unless exactly two operands are given.
func NewGradOperation(kind OpKind, operands ...*tensor.Tensor) (*GradOperation, error) {
	return tensor.NewGradOperation(kind, operands...)
}
