package tensor

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Backward starts a backward pass from this tensor with an implicit upstream
// gradient of ones, the usual convention for a scalar loss (for a non-scalar
// result it differentiates the sum of its elements).
//
// Fails with ErrInvalidState if the tensor does not require gradients or is
// a leaf.
//
// The traversal is recursive and depth-first with no memoization: a node
// shared by several consumers is visited once per incoming edge, which keeps
// accumulation at shared leaves correct but costs O(F^D) for fan-out F over
// D levels. Recursion depth equals graph depth.
func (t *Tensor) Backward() error {
	if !t.requiresGrad {
		return fmt.Errorf("%w: cannot compute gradient of a tensor with requires_grad=false", ErrInvalidState)
	}
	if t.gradOp == nil {
		return fmt.Errorf("%w: cannot compute gradient of a leaf, no operation has been performed on this tensor", ErrInvalidState)
	}
	return t.BackwardWithGrad(OnesLike(t))
}

// BackwardWithGrad propagates an explicit upstream gradient.
//
//   - gradOut must have the tensor's shape (ErrShapeMismatch otherwise).
//   - If the tensor does not require gradients, nothing happens.
//   - A leaf accumulates: grad = gradOut, or grad + gradOut if it already has one.
//   - Any other tensor hands gradOut to its GradOperation and stores nothing.
func (t *Tensor) BackwardWithGrad(gradOut *Tensor) error {
	if gradOut == nil {
		return fmt.Errorf("%w: gradient must be a tensor, got nil", ErrTypeMismatch)
	}
	if !gradOut.shape.Equal(t.shape) {
		return fmt.Errorf("%w: grad must be of same shape as tensor: %v != %v",
			ErrShapeMismatch, gradOut.shape, t.shape)
	}

	if !t.requiresGrad {
		return nil
	}
	if t.gradOp != nil {
		return t.gradOp.Backward(gradOut)
	}

	t.accumulateGrad(gradOut)
	return nil
}

// accumulateGrad adds g into the leaf's gradient. The stored gradient always
// gets its own buffer, so later accumulation never writes into g.
func (t *Tensor) accumulateGrad(g *Tensor) {
	sum := make([]float64, len(g.data))
	if t.grad == nil {
		copy(sum, g.data)
	} else {
		floats.AddTo(sum, t.grad.data, g.data)
	}
	t.grad = detached(sum, t.shape)
}
