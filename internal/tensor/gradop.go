package tensor

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// OpKind identifies a differentiable operation. The set is closed: every
// kind has its local-gradient rule in LocalGrad.
//
// Local rules:
//   - OpAdd: d(a+b)/da = 1, so the local gradient is ones shaped like the target
//   - OpMul: d(a*b)/da = b, so the local gradient is the other factor
type OpKind int

// Supported operation kinds.
const (
	OpAdd OpKind = iota
	OpMul
)

// String returns the operation name used in graph renderings.
func (k OpKind) String() string {
	switch k {
	case OpAdd:
		return "tensor-add"
	case OpMul:
		return "tensor-mult"
	default:
		return "unknown"
	}
}

// LocalGrad computes the derivative of the operation's output with respect
// to target, given the remaining operands. The result never requires
// gradients.
func (k OpKind) LocalGrad(target *Tensor, others []*Tensor) (*Tensor, error) {
	switch k {
	case OpAdd:
		return OnesLike(target), nil
	case OpMul:
		if len(others) != 1 {
			return nil, fmt.Errorf("%w: backward pass for %s needs exactly 1 other operand, got %d",
				ErrInvalidArity, k, len(others))
		}
		other := others[0]
		data := make([]float64, len(other.data))
		copy(data, other.data)
		return detached(data, other.shape), nil
	default:
		return nil, fmt.Errorf("%w: unknown operation kind %d", ErrInvalidState, int(k))
	}
}

// GradOperation is a graph edge: it records which operation produced a
// tensor and the two operands it was applied to, in call order.
//
// The operands are shared back-references, not owned copies. A tensor can be
// an operand of many operations.
type GradOperation struct {
	kind     OpKind
	operands []*Tensor
}

// NewGradOperation creates an edge for a binary operation.
// Fails with ErrInvalidArity unless exactly two operands are given.
func NewGradOperation(kind OpKind, operands ...*Tensor) (*GradOperation, error) {
	if len(operands) != 2 {
		return nil, fmt.Errorf("%w: %s takes exactly 2 operands, got %d", ErrInvalidArity, kind, len(operands))
	}
	for i, o := range operands {
		if o == nil {
			return nil, fmt.Errorf("%w: operand %d of %s is nil", ErrTypeMismatch, i, kind)
		}
	}
	return &GradOperation{
		kind:     kind,
		operands: []*Tensor{operands[0], operands[1]},
	}, nil
}

// Kind returns the operation kind.
func (op *GradOperation) Kind() OpKind {
	return op.kind
}

// Name returns the operation name, e.g. "tensor-add".
func (op *GradOperation) Name() string {
	return op.kind.String()
}

// Operands returns the operands in call order.
// The slice is a copy; the tensors are not.
func (op *GradOperation) Operands() []*Tensor {
	out := make([]*Tensor, len(op.operands))
	copy(out, op.operands)
	return out
}

// Backward applies the chain rule for one incoming gradient.
//
// Every operand that requires gradients receives local * grad, where local
// comes from the kind's rule evaluated against the other operand. The
// other operand is selected by position, so equal-valued operands (a*a)
// are handled correctly.
func (op *GradOperation) Backward(grad *Tensor) error {
	if grad == nil {
		return fmt.Errorf("%w: %s backward: gradient must be a tensor, got nil", ErrTypeMismatch, op.kind)
	}

	for i, operand := range op.operands {
		if !operand.requiresGrad {
			continue
		}

		local, err := op.kind.LocalGrad(operand, op.complement(i))
		if err != nil {
			return fmt.Errorf("%s backward: %w", op.kind, err)
		}
		if !local.shape.Equal(grad.shape) {
			return fmt.Errorf("%w: %s backward: local gradient %v does not match upstream gradient %v",
				ErrShapeMismatch, op.kind, local.shape, grad.shape)
		}

		chained := make([]float64, len(grad.data))
		floats.MulTo(chained, local.data, grad.data)
		if err := operand.BackwardWithGrad(detached(chained, grad.shape)); err != nil {
			return err
		}
	}
	return nil
}

// complement returns every operand except the one at index i.
func (op *GradOperation) complement(i int) []*Tensor {
	others := make([]*Tensor, 0, len(op.operands)-1)
	for j, o := range op.operands {
		if j != i {
			others = append(others, o)
		}
	}
	return others
}
