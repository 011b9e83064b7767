package tensor

import (
	"fmt"
	"reflect"
)

// normalize flattens a Go literal into a row-major buffer and infers its shape.
func normalize(data any) ([]float64, Shape, error) {
	switch d := data.(type) {
	case nil:
		return nil, nil, fmt.Errorf("%w: cannot build a tensor from nil", ErrTypeMismatch)
	case *Tensor, Tensor:
		return nil, nil, fmt.Errorf("%w: cannot build a tensor from a tensor, use Copy or DeepCopy", ErrTypeMismatch)
	case []float64:
		buf := make([]float64, len(d))
		copy(buf, d)
		return buf, Shape{len(d)}, nil
	}

	v := reflect.ValueOf(data)
	shape, err := inferShape(v)
	if err != nil {
		return nil, nil, err
	}
	flat, err := flatten(v, shape, 0, make([]float64, 0, shape.NumElements()))
	if err != nil {
		return nil, nil, err
	}
	return flat, shape, nil
}

// inferShape follows the first element at every nesting level.
func inferShape(v reflect.Value) (Shape, error) {
	shape := Shape{}
	for {
		v = unwrap(v)
		if !isSequence(v) {
			if _, ok := scalarValue(v); !ok {
				return nil, fmt.Errorf("%w: unsupported element type %s", ErrTypeMismatch, describe(v))
			}
			return shape, nil
		}
		shape = append(shape, v.Len())
		if v.Len() == 0 {
			return shape, nil
		}
		v = v.Index(0)
	}
}

// flatten appends every scalar under v to out, checking that the nesting
// matches shape at each depth.
func flatten(v reflect.Value, shape Shape, depth int, out []float64) ([]float64, error) {
	v = unwrap(v)

	if depth == len(shape) {
		f, ok := scalarValue(v)
		if ok {
			return append(out, f), nil
		}
		if isSequence(v) {
			return nil, fmt.Errorf("%w: ragged nested sequence: unexpected sequence at depth %d", ErrShapeMismatch, depth)
		}
		return nil, fmt.Errorf("%w: unsupported element type %s", ErrTypeMismatch, describe(v))
	}

	if !isSequence(v) {
		if _, ok := scalarValue(v); ok {
			return nil, fmt.Errorf("%w: ragged nested sequence: expected sequence of length %d at depth %d, got a scalar",
				ErrShapeMismatch, shape[depth], depth)
		}
		return nil, fmt.Errorf("%w: unsupported element type %s", ErrTypeMismatch, describe(v))
	}
	if v.Len() != shape[depth] {
		return nil, fmt.Errorf("%w: ragged nested sequence: expected length %d at depth %d, got %d",
			ErrShapeMismatch, shape[depth], depth, v.Len())
	}

	var err error
	for i := 0; i < v.Len(); i++ {
		out, err = flatten(v.Index(i), shape, depth+1, out)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func unwrap(v reflect.Value) reflect.Value {
	for v.Kind() == reflect.Interface && !v.IsNil() {
		v = v.Elem()
	}
	return v
}

func isSequence(v reflect.Value) bool {
	return v.Kind() == reflect.Slice || v.Kind() == reflect.Array
}

func scalarValue(v reflect.Value) (float64, bool) {
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		return v.Float(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint()), true
	default:
		return 0, false
	}
}

func describe(v reflect.Value) string {
	if !v.IsValid() {
		return "nil"
	}
	return v.Type().String()
}
