// Copyright 2025 The mytorch Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/mytorch/mytorch/internal/tensor"
)

// Type aliases for public API

// Tensor is a dense float64 tensor that records the operation producing it.
type Tensor = tensor.Tensor

// Shape represents tensor dimensions.
type Shape = tensor.Shape

// Axes pairs the contracted axes of the two TMult operands.
type Axes = tensor.Axes

// Option configures a directly constructed tensor.
type Option = tensor.Option

// Errors returned by tensor operations. Match them with errors.Is.
var (
	ErrShapeMismatch      = tensor.ErrShapeMismatch
	ErrAxisOutOfRange     = tensor.ErrAxisOutOfRange
	ErrAxesLengthMismatch = tensor.ErrAxesLengthMismatch
	ErrDuplicateAxis      = tensor.ErrDuplicateAxis
	ErrTypeMismatch       = tensor.ErrTypeMismatch
	ErrInvalidArity       = tensor.ErrInvalidArity
	ErrInvalidState       = tensor.ErrInvalidState
)

// Constructors

// New creates a leaf tensor from a numeric Go literal (scalar, slice, array
// or nested slices).
//
// Example:
//
//	t, err := tensor.New([][]int{{1, 2}, {3, 4}})
func New(data any, opts ...Option) (*Tensor, error) {
	return tensor.New(data, opts...)
}

// MustNew is like New but panics on invalid input.
func MustNew(data any, opts ...Option) *Tensor {
	return tensor.MustNew(data, opts...)
}

// FromSlice creates a leaf tensor from a flat slice and a shape.
func FromSlice(data []float64, shape Shape, opts ...Option) (*Tensor, error) {
	return tensor.FromSlice(data, shape, opts...)
}

// Zeros creates a leaf tensor filled with zeros.
func Zeros(shape Shape, opts ...Option) *Tensor {
	return tensor.Zeros(shape, opts...)
}

// Ones creates a leaf tensor filled with ones.
func Ones(shape Shape, opts ...Option) *Tensor {
	return tensor.Ones(shape, opts...)
}

// OnesLike returns ones shaped like t that do not require gradients.
func OnesLike(t *Tensor) *Tensor {
	return tensor.OnesLike(t)
}

// WithRequiresGrad sets whether a new tensor takes part in gradient
// computation. The default is true.
func WithRequiresGrad(v bool) Option {
	return tensor.WithRequiresGrad(v)
}

// Operations

// TMult contracts x and y over paired axes and checks the result against
// dimOut. The result does not carry a GradOperation.
//
// Example:
//
//	c, err := tensor.TMult(a, b, tensor.Axes{X: []int{1}, Y: []int{0}}, tensor.Shape{2, 2})
func TMult(x, y *Tensor, axes Axes, dimOut Shape) (*Tensor, error) {
	return tensor.TMult(x, y, axes, dimOut)
}
