package tensor

import "gonum.org/v1/gonum/floats"

// Copy returns a shallow duplicate detached from the graph.
//
// The copy shares t's data buffer and keeps RequiresGrad, but has no
// gradient and no producing operation, so it is a leaf.
func (t *Tensor) Copy() *Tensor {
	return &Tensor{
		data:         t.data,
		shape:        t.shape.Clone(),
		requiresGrad: t.requiresGrad,
	}
}

// DeepCopy returns a duplicate with its own data buffer (and its own copy of
// the gradient, if any). The producing operation is kept by reference, so
// the copy points at the same upstream nodes as t.
func (t *Tensor) DeepCopy() *Tensor {
	data := make([]float64, len(t.data))
	copy(data, t.data)

	c := &Tensor{
		data:         data,
		shape:        t.shape.Clone(),
		requiresGrad: t.requiresGrad,
		gradOp:       t.gradOp,
	}
	if t.grad != nil {
		c.grad = t.grad.DeepCopy()
	}
	return c
}

// Equal reports whether two tensors hold the same values in the same shape.
// RequiresGrad, gradients and graph links are ignored.
func (t *Tensor) Equal(other *Tensor) bool {
	if t == nil || other == nil {
		return t == other
	}
	return t.shape.Equal(other.shape) && floats.Equal(t.data, other.data)
}
