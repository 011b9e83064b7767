package tensor

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Add performs element-wise addition and records a tensor-add operation.
//
// Both operands must have the same shape; there is no broadcasting.
// The result requires gradients if either operand does.
//
// Example:
//
//	a := tensor.MustNew([]int{1, 2})
//	b := tensor.MustNew([]int{2, 3})
//	c, _ := a.Add(b) // Tensor([3 5])
func (t *Tensor) Add(other *Tensor) (*Tensor, error) {
	if err := checkOperands(OpAdd, t, other); err != nil {
		return nil, err
	}

	out := make([]float64, len(t.data))
	floats.AddTo(out, t.data, other.data)
	return newResult(out, OpAdd, t, other), nil
}

// Mul performs element-wise multiplication and records a tensor-mult operation.
//
// Both operands must have the same shape; there is no broadcasting.
// a.Mul(b) and b.Mul(a) hold equal values but are distinct graph nodes.
func (t *Tensor) Mul(other *Tensor) (*Tensor, error) {
	if err := checkOperands(OpMul, t, other); err != nil {
		return nil, err
	}

	out := make([]float64, len(t.data))
	floats.MulTo(out, t.data, other.data)
	return newResult(out, OpMul, t, other), nil
}

func checkOperands(kind OpKind, a, b *Tensor) error {
	if a == nil || b == nil {
		return fmt.Errorf("%w: operands of %s must be tensors, got nil", ErrTypeMismatch, kind)
	}
	if !a.shape.Equal(b.shape) {
		return fmt.Errorf("%w: operands of %s must have equal shapes: %v != %v",
			ErrShapeMismatch, kind, a.shape, b.shape)
	}
	return nil
}

// newResult builds a derived tensor. Its operation is attached here, once,
// and never replaced.
func newResult(data []float64, kind OpKind, a, b *Tensor) *Tensor {
	return &Tensor{
		data:         data,
		shape:        a.shape.Clone(),
		requiresGrad: a.requiresGrad || b.requiresGrad,
		gradOp: &GradOperation{
			kind:     kind,
			operands: []*Tensor{a, b},
		},
	}
}
