package tensor

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Axes pairs axes of the two TMult operands positionally: X[i] of the first
// operand is summed against Y[i] of the second.
type Axes struct {
	X []int
	Y []int
}

// TMult contracts x and y over the paired axes (a generalized tensordot).
//
// The result's axes are x's remaining axes in order, followed by y's
// remaining axes in order. dimOut is the shape the caller expects; a
// different result shape fails instead of being reshaped. All validation
// happens before any result buffer is allocated:
//
//   - len(axes.X) != len(axes.Y): ErrAxesLengthMismatch
//   - an axis outside [0, rank): ErrAxisOutOfRange
//   - the same axis listed twice for one operand: ErrDuplicateAxis
//   - paired axes of different sizes, or a result shape other than dimOut: ErrShapeMismatch
//
// The result is a leaf that requires gradients if either input does. TMult
// records no GradOperation, so Backward does not flow through it.
//
// Example:
//
//	a := tensor.MustNew([][]float64{{1, 0, -1}, {2, 1, -2}})     // (2, 3)
//	b := tensor.MustNew([][]float64{{-1, 1}, {-2, 2}, {-3, 3}}) // (3, 2)
//	c, _ := tensor.TMult(a, b, tensor.Axes{X: []int{1}, Y: []int{0}}, tensor.Shape{2, 2})
func TMult(x, y *Tensor, axes Axes, dimOut Shape) (*Tensor, error) {
	if x == nil {
		return nil, fmt.Errorf("%w: first operand of tensor multiplication must be a tensor", ErrTypeMismatch)
	}
	if y == nil {
		return nil, fmt.Errorf("%w: second operand of tensor multiplication must be a tensor", ErrTypeMismatch)
	}

	plan, err := planContraction(x.shape, y.shape, axes)
	if err != nil {
		return nil, err
	}
	if !plan.outShape.Equal(dimOut) {
		return nil, fmt.Errorf("%w: output of tensor multiplication is not of expected shape %v but of shape %v",
			ErrShapeMismatch, dimOut, plan.outShape)
	}

	return &Tensor{
		data:         plan.execute(x.data, y.data),
		shape:        plan.outShape,
		requiresGrad: x.requiresGrad || y.requiresGrad,
	}, nil
}

// contraction reduces a tensordot to one matrix product: x is permuted to
// (free..., contracted...) and viewed as m×k, y to (contracted..., free...)
// and viewed as k×n.
type contraction struct {
	xShape, yShape Shape
	xPerm, yPerm   []int
	m, k, n        int
	outShape       Shape
}

func planContraction(xs, ys Shape, axes Axes) (*contraction, error) {
	if len(axes.X) != len(axes.Y) {
		return nil, fmt.Errorf("%w: axes given for both operands must be of same length: %d != %d",
			ErrAxesLengthMismatch, len(axes.X), len(axes.Y))
	}

	xSeen := make([]bool, len(xs))
	ySeen := make([]bool, len(ys))
	for i := range axes.X {
		xa, ya := axes.X[i], axes.Y[i]
		if xa < 0 || xa >= len(xs) {
			return nil, fmt.Errorf("%w: axis %d given at index %d for first operand of rank %d",
				ErrAxisOutOfRange, xa, i, len(xs))
		}
		if ya < 0 || ya >= len(ys) {
			return nil, fmt.Errorf("%w: axis %d given at index %d for second operand of rank %d",
				ErrAxisOutOfRange, ya, i, len(ys))
		}
		if xSeen[xa] {
			return nil, fmt.Errorf("%w: axis %d given twice for first operand", ErrDuplicateAxis, xa)
		}
		if ySeen[ya] {
			return nil, fmt.Errorf("%w: axis %d given twice for second operand", ErrDuplicateAxis, ya)
		}
		xSeen[xa], ySeen[ya] = true, true

		if xs[xa] != ys[ya] {
			return nil, fmt.Errorf("%w: axes at index %d do not match: %d != %d",
				ErrShapeMismatch, i, xs[xa], ys[ya])
		}
	}

	c := &contraction{xShape: xs, yShape: ys, m: 1, k: 1, n: 1, outShape: Shape{}}
	for ax, dim := range xs {
		if !xSeen[ax] {
			c.xPerm = append(c.xPerm, ax)
			c.outShape = append(c.outShape, dim)
			c.m *= dim
		}
	}
	for _, ax := range axes.X {
		c.xPerm = append(c.xPerm, ax)
		c.k *= xs[ax]
	}
	c.yPerm = append(c.yPerm, axes.Y...)
	for ax, dim := range ys {
		if !ySeen[ax] {
			c.yPerm = append(c.yPerm, ax)
			c.outShape = append(c.outShape, dim)
			c.n *= dim
		}
	}
	return c, nil
}

func (c *contraction) execute(x, y []float64) []float64 {
	out := make([]float64, c.m*c.n)
	if c.m == 0 || c.n == 0 || c.k == 0 {
		// Empty result, or a sum over nothing: all zeros.
		return out
	}

	a := mat.NewDense(c.m, c.k, permute(x, c.xShape, c.xPerm))
	b := mat.NewDense(c.k, c.n, permute(y, c.yShape, c.yPerm))
	dst := mat.NewDense(c.m, c.n, out)
	dst.Mul(a, b)
	return dst.RawMatrix().Data
}

// permute returns a row-major copy of data with its axes reordered so that
// output axis i is input axis perm[i].
func permute(data []float64, shape Shape, perm []int) []float64 {
	out := make([]float64, len(data))
	if len(data) == 0 {
		return out
	}

	srcStrides := shape.ComputeStrides()
	dims := make([]int, len(perm))
	strides := make([]int, len(perm))
	for i, p := range perm {
		dims[i] = shape[p]
		strides[i] = srcStrides[p]
	}

	idx := make([]int, len(perm))
	src := 0
	for o := range out {
		out[o] = data[src]
		for d := len(idx) - 1; d >= 0; d-- {
			idx[d]++
			src += strides[d]
			if idx[d] < dims[d] {
				break
			}
			src -= strides[d] * dims[d]
			idx[d] = 0
		}
	}
	return out
}
