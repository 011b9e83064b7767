package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Shape Tests

func TestShapeNumElements(t *testing.T) {
	tests := []struct {
		shape    Shape
		expected int
	}{
		{Shape{}, 1},         // Scalar
		{Shape{5}, 5},        // 1D
		{Shape{3, 4}, 12},    // 2D
		{Shape{2, 3, 4}, 24}, // 3D
		{Shape{2, 0}, 0},     // Empty
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.shape.NumElements(), "Shape%v.NumElements()", tt.shape)
	}
}

func TestShapeValidate(t *testing.T) {
	require.NoError(t, Shape{2, 0, 3}.Validate())

	err := Shape{2, -1}.Validate()
	require.ErrorIs(t, err, ErrShapeMismatch)
}

func TestShapeComputeStrides(t *testing.T) {
	assert.Equal(t, []int{12, 4, 1}, Shape{2, 3, 4}.ComputeStrides())
	assert.Equal(t, []int{}, Shape{}.ComputeStrides())
}

func TestShapeString(t *testing.T) {
	assert.Equal(t, "()", Shape{}.String())
	assert.Equal(t, "(3,)", Shape{3}.String())
	assert.Equal(t, "(2, 3)", Shape{2, 3}.String())
}

// Construction Tests

func TestNew_Literals(t *testing.T) {
	tests := []struct {
		name  string
		input any
		data  []float64
		shape Shape
	}{
		{"int slice", []int{1, 2}, []float64{1, 2}, Shape{2}},
		{"float64 slice", []float64{1.5, -2}, []float64{1.5, -2}, Shape{2}},
		{"float32 slice", []float32{0.5}, []float64{0.5}, Shape{1}},
		{"int64 matrix", [][]int64{{1, 2, 3}, {4, 5, 6}}, []float64{1, 2, 3, 4, 5, 6}, Shape{2, 3}},
		{"array", [3]int32{7, 8, 9}, []float64{7, 8, 9}, Shape{3}},
		{"nested any", []any{[]int{1, 2}, []float64{3, 4}}, []float64{1, 2, 3, 4}, Shape{2, 2}},
		{"scalar", 3, []float64{3}, Shape{}},
		{"empty", []float64{}, []float64{}, Shape{0}},
		{"uint8", []uint8{255, 0}, []float64{255, 0}, Shape{2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, err := New(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.data, x.Data())
			assert.Equal(t, tt.shape, x.Shape())
			assert.True(t, x.RequiresGrad())
			assert.True(t, x.IsLeaf())
			assert.Nil(t, x.Grad())
		})
	}
}

func TestNew_CopiesInput(t *testing.T) {
	src := []float64{1, 2}
	x := MustNew(src)
	src[0] = 100
	assert.Equal(t, []float64{1, 2}, x.Data())
}

func TestNew_RequiresGradOption(t *testing.T) {
	x := MustNew([]int{1, 2}, WithRequiresGrad(false))
	assert.False(t, x.RequiresGrad())
}

func TestNew_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input any
		err   error
	}{
		{"nil", nil, ErrTypeMismatch},
		{"string", "abc", ErrTypeMismatch},
		{"string slice", []string{"a"}, ErrTypeMismatch},
		{"bool slice", []bool{true}, ErrTypeMismatch},
		{"tensor", MustNew([]int{1}), ErrTypeMismatch},
		{"nil element", []any{1, nil}, ErrTypeMismatch},
		{"ragged", [][]int{{1, 2}, {3}}, ErrShapeMismatch},
		{"scalar where row expected", []any{[]int{1, 2}, 3}, ErrShapeMismatch},
		{"row where scalar expected", []any{1, []int{2}}, ErrShapeMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.input)
			require.ErrorIs(t, err, tt.err)
		})
	}
}

func TestMustNew_Panics(t *testing.T) {
	assert.Panics(t, func() { MustNew("not a tensor") })
}

func TestFromSlice(t *testing.T) {
	x, err := FromSlice([]float64{1, 2, 3, 4, 5, 6}, Shape{2, 3}, WithRequiresGrad(false))
	require.NoError(t, err)
	assert.Equal(t, Shape{2, 3}, x.Shape())
	assert.Equal(t, 6.0, x.At(1, 2))
	assert.False(t, x.RequiresGrad())

	_, err = FromSlice([]float64{1, 2, 3}, Shape{2, 2})
	require.ErrorIs(t, err, ErrShapeMismatch)

	_, err = FromSlice(nil, Shape{-1})
	require.ErrorIs(t, err, ErrShapeMismatch)
}

func TestZerosOnes(t *testing.T) {
	z := Zeros(Shape{2, 2})
	assert.Equal(t, []float64{0, 0, 0, 0}, z.Data())
	assert.True(t, z.RequiresGrad())

	o := Ones(Shape{3}, WithRequiresGrad(false))
	assert.Equal(t, []float64{1, 1, 1}, o.Data())
	assert.False(t, o.RequiresGrad())

	like := OnesLike(MustNew([][]int{{5, 6}}))
	assert.Equal(t, Shape{1, 2}, like.Shape())
	assert.Equal(t, []float64{1, 1}, like.Data())
	assert.False(t, like.RequiresGrad())

	assert.Panics(t, func() { Zeros(Shape{-2}) })
}

func TestShapeIsCopied(t *testing.T) {
	x := MustNew([]int{1, 2})
	s := x.Shape()
	s[0] = 7
	assert.Equal(t, Shape{2}, x.Shape())
}

func TestAt_OutOfBounds(t *testing.T) {
	x := MustNew([][]int{{1, 2}, {3, 4}})
	assert.Equal(t, 3.0, x.At(1, 0))
	assert.Panics(t, func() { x.At(2, 0) })
	assert.Panics(t, func() { x.At(0) })
}

func TestSetGrad(t *testing.T) {
	x := MustNew([]int{1, 2})

	require.NoError(t, x.SetGrad(MustNew([]int{1, 1})))
	assert.True(t, x.Grad().Equal(MustNew([]int{1, 1})))

	err := x.SetGrad(MustNew([]int{1, 1, 1}))
	require.ErrorIs(t, err, ErrShapeMismatch)

	x.ZeroGrad()
	assert.Nil(t, x.Grad())
}

// Reshape Tests

func TestReshape(t *testing.T) {
	a := MustNew([]int{1, 2, 3, 4})
	b, err := a.Reshape(2, 2)
	require.NoError(t, err)

	assert.Same(t, a, b)
	assert.Equal(t, Shape{2, 2}, a.Shape())
	assert.Equal(t, 3.0, b.At(1, 0))
	assert.True(t, a.Equal(b))
}

func TestReshape_KeepsGradShape(t *testing.T) {
	a := MustNew([]int{1, 2, 3, 4})
	require.NoError(t, a.SetGrad(MustNew([]int{1, 1, 1, 1})))

	_, err := a.Reshape(4, 1)
	require.NoError(t, err)
	assert.Equal(t, Shape{4, 1}, a.Grad().Shape())
}

func TestReshape_Mismatch(t *testing.T) {
	a := MustNew([]int{1, 2, 3})
	_, err := a.Reshape(2, 2)
	require.ErrorIs(t, err, ErrShapeMismatch)
	assert.Equal(t, Shape{3}, a.Shape(), "failed reshape must not change the tensor")

	_, err = a.Reshape(-3)
	require.ErrorIs(t, err, ErrShapeMismatch)
}
