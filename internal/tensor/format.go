package tensor

import (
	"math"
	"strconv"
	"strings"
)

// String renders only the data, e.g. "Tensor([1 2])".
func (t *Tensor) String() string {
	if t == nil {
		return "<nil>"
	}
	return "Tensor(" + formatData(t.data, t.shape) + ")"
}

// GoString renders the data followed by the autograd state, e.g.
//
//	Tensor([1 2], requires_grad=true, grad=Tensor([1 1]), grad_op=GradOperation(tensor-add, [...]))
//
// grad and grad_op appear only when set. Operands are rendered in this long
// form too. It is what %#v prints.
func (t *Tensor) GoString() string {
	if t == nil {
		return "<nil>"
	}

	var b strings.Builder
	b.WriteString("Tensor(")
	b.WriteString(formatData(t.data, t.shape))
	b.WriteString(", requires_grad=")
	b.WriteString(strconv.FormatBool(t.requiresGrad))
	if t.grad != nil {
		b.WriteString(", grad=")
		b.WriteString(t.grad.String())
	}
	if t.gradOp != nil {
		b.WriteString(", grad_op=")
		b.WriteString(t.gradOp.GoString())
	}
	b.WriteByte(')')
	return b.String()
}

// String renders the operation with its operands in short form.
func (op *GradOperation) String() string {
	return op.render((*Tensor).String)
}

// GoString renders the operation with its operands in long form.
func (op *GradOperation) GoString() string {
	return op.render((*Tensor).GoString)
}

func (op *GradOperation) render(operand func(*Tensor) string) string {
	parts := make([]string, len(op.operands))
	for i, o := range op.operands {
		parts[i] = operand(o)
	}
	return "GradOperation(" + op.Name() + ", [" + strings.Join(parts, ", ") + "])"
}

// formatData prints a buffer NumPy-style: space-separated values, nested
// brackets per dimension, one row per line. Column widths are not padded.
func formatData(data []float64, shape Shape) string {
	if len(shape) == 0 {
		return formatValue(data[0])
	}
	if len(data) == 0 {
		return "[]"
	}
	var b strings.Builder
	writeArray(&b, data, shape, 0)
	return b.String()
}

func writeArray(b *strings.Builder, data []float64, shape Shape, depth int) {
	b.WriteByte('[')
	if len(shape) == 1 {
		for i, v := range data {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(formatValue(v))
		}
		b.WriteByte(']')
		return
	}

	// Rows of a matrix are separated by one newline, blocks of higher rank
	// by one more per extra dimension.
	sep := strings.Repeat("\n", len(shape)-1) + strings.Repeat(" ", depth+1)
	stride := len(data) / shape[0]
	for i := 0; i < shape[0]; i++ {
		if i > 0 {
			b.WriteString(sep)
		}
		writeArray(b, data[i*stride:(i+1)*stride], shape[1:], depth+1)
	}
	b.WriteByte(']')
}

func formatValue(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
