package tensor

import (
	"fmt"
)

// Tensor is a dense, row-major float64 tensor that remembers the operation
// which produced it.
//
// Tensors built directly (New, FromSlice, Zeros, Ones) are leaves. Tensors
// returned by Add or Mul carry a GradOperation pointing back at their
// operands, so calling Backward on a result accumulates gradients at every
// leaf with RequiresGrad set.
//
// Example:
//
//	a := tensor.MustNew([]float64{1, 2})
//	b := tensor.MustNew([]float64{2, 3}, tensor.WithRequiresGrad(false))
//	r, _ := a.Mul(b)
//	_ = r.Backward()
//	fmt.Println(a.Grad()) // Tensor([2 3])
type Tensor struct {
	data         []float64
	shape        Shape
	requiresGrad bool
	grad         *Tensor        // Accumulated gradient, leaves only
	gradOp       *GradOperation // Operation that created this tensor, nil for leaves
}

// Option configures a directly constructed tensor.
type Option func(*options)

type options struct {
	requiresGrad bool
}

// WithRequiresGrad sets whether the tensor takes part in gradient computation.
// Directly constructed tensors require gradients unless told otherwise.
func WithRequiresGrad(v bool) Option {
	return func(o *options) {
		o.requiresGrad = v
	}
}

func buildOptions(opts []Option) options {
	o := options{requiresGrad: true}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// New creates a leaf tensor from a Go literal.
//
// Accepted inputs are numeric scalars (rank 0), numeric slices and arrays, and
// arbitrarily nested slices of them ([][]int, []any{[]float64{...}, ...}).
// Integers are converted to float64. Ragged nesting fails with
// ErrShapeMismatch, any other input with ErrTypeMismatch. The input is copied.
func New(data any, opts ...Option) (*Tensor, error) {
	flat, shape, err := normalize(data)
	if err != nil {
		return nil, err
	}
	o := buildOptions(opts)
	return &Tensor{
		data:         flat,
		shape:        shape,
		requiresGrad: o.requiresGrad,
	}, nil
}

// MustNew is like New but panics if the literal cannot be converted.
func MustNew(data any, opts ...Option) *Tensor {
	t, err := New(data, opts...)
	if err != nil {
		panic(fmt.Sprintf("tensor.MustNew: %v", err))
	}
	return t
}

// FromSlice creates a leaf tensor from a flat slice and an explicit shape.
// The slice is copied into the tensor's memory.
func FromSlice(data []float64, shape Shape, opts ...Option) (*Tensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if shape.NumElements() != len(data) {
		return nil, fmt.Errorf("%w: shape %v requires %d elements, but got %d",
			ErrShapeMismatch, shape, shape.NumElements(), len(data))
	}
	buf := make([]float64, len(data))
	copy(buf, data)

	o := buildOptions(opts)
	return &Tensor{
		data:         buf,
		shape:        shape.Clone(),
		requiresGrad: o.requiresGrad,
	}, nil
}

// Zeros creates a leaf tensor filled with zeros.
// Panics if the shape has a negative dimension.
func Zeros(shape Shape, opts ...Option) *Tensor {
	return full(shape, 0, opts)
}

// Ones creates a leaf tensor filled with ones.
// Panics if the shape has a negative dimension.
func Ones(shape Shape, opts ...Option) *Tensor {
	return full(shape, 1, opts)
}

// OnesLike returns a tensor of ones with t's shape that does not require
// gradients. It is the implicit upstream gradient of a root Backward call.
func OnesLike(t *Tensor) *Tensor {
	return full(t.shape, 1, []Option{WithRequiresGrad(false)})
}

func full(shape Shape, value float64, opts []Option) *Tensor {
	if err := shape.Validate(); err != nil {
		panic(err)
	}
	data := make([]float64, shape.NumElements())
	if value != 0 {
		for i := range data {
			data[i] = value
		}
	}
	o := buildOptions(opts)
	return &Tensor{
		data:         data,
		shape:        shape.Clone(),
		requiresGrad: o.requiresGrad,
	}
}

// detached wraps a buffer as a tensor that never takes part in autograd.
// Gradients and local derivatives are built this way.
func detached(data []float64, shape Shape) *Tensor {
	return &Tensor{data: data, shape: shape.Clone()}
}

// Data returns the tensor's underlying buffer (zero-copy).
//
// WARNING: Modifications to the returned slice will modify the tensor.
func (t *Tensor) Data() []float64 {
	return t.data
}

// Shape returns a copy of the tensor's shape.
func (t *Tensor) Shape() Shape {
	return t.shape.Clone()
}

// Rank returns the number of dimensions.
func (t *Tensor) Rank() int {
	return len(t.shape)
}

// NumElements returns the total number of elements.
func (t *Tensor) NumElements() int {
	return len(t.data)
}

// RequiresGrad reports whether gradients flow into this tensor.
func (t *Tensor) RequiresGrad() bool {
	return t.requiresGrad
}

// SetRequiresGrad changes the gradient flag. Turning it off on an
// intermediate result detaches everything upstream of it from Backward.
func (t *Tensor) SetRequiresGrad(v bool) {
	t.requiresGrad = v
}

// Grad returns the accumulated gradient, or nil if no backward pass has
// reached this tensor yet.
func (t *Tensor) Grad() *Tensor {
	return t.grad
}

// SetGrad replaces the accumulated gradient. A nil grad clears it.
func (t *Tensor) SetGrad(grad *Tensor) error {
	if grad != nil && !grad.shape.Equal(t.shape) {
		return fmt.Errorf("%w: grad must be of same shape as tensor: %v != %v",
			ErrShapeMismatch, grad.shape, t.shape)
	}
	t.grad = grad
	return nil
}

// ZeroGrad clears the accumulated gradient.
// Nothing in this package does it automatically between backward passes.
func (t *Tensor) ZeroGrad() {
	t.grad = nil
}

// GradOp returns the operation that produced this tensor, or nil for a leaf.
func (t *Tensor) GradOp() *GradOperation {
	return t.gradOp
}

// IsLeaf reports whether the tensor was constructed directly rather than
// produced by a tracked operation.
func (t *Tensor) IsLeaf() bool {
	return t.gradOp == nil
}

// At returns the element at the given indices.
// Panics if indices are out of bounds.
func (t *Tensor) At(indices ...int) float64 {
	if len(indices) != len(t.shape) {
		panic(fmt.Sprintf("expected %d indices, got %d", len(t.shape), len(indices)))
	}

	offset := 0
	strides := t.shape.ComputeStrides()
	for i, idx := range indices {
		if idx < 0 || idx >= t.shape[i] {
			panic(fmt.Sprintf("index %d out of bounds for dimension %d (size %d)", idx, i, t.shape[i]))
		}
		offset += idx * strides[i]
	}

	return t.data[offset]
}

// Reshape changes the tensor's shape in place and returns the tensor.
// The element count must stay the same. The gradient, if any, is reshaped
// along with it. Reshape is not recorded in the graph.
func (t *Tensor) Reshape(shape ...int) (*Tensor, error) {
	newShape := Shape(shape).Clone()
	if err := newShape.Validate(); err != nil {
		return nil, err
	}
	if newShape.NumElements() != len(t.data) {
		return nil, fmt.Errorf("%w: cannot reshape tensor of %d elements into shape %v",
			ErrShapeMismatch, len(t.data), newShape)
	}

	t.shape = newShape
	if t.grad != nil {
		t.grad = detached(t.grad.data, newShape)
	}
	return t, nil
}
