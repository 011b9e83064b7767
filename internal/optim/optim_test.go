package optim_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mytorch/mytorch/internal/optim"
	"github.com/mytorch/mytorch/internal/tensor"
)

// withGrad returns a parameter holding data with grad already accumulated.
func withGrad(t *testing.T, data, grad []float64) *tensor.Tensor {
	t.Helper()
	p := tensor.MustNew(data)
	require.NoError(t, p.SetGrad(tensor.MustNew(grad, tensor.WithRequiresGrad(false))))
	return p
}

// squaredDistance builds sum((w - target)^2) out of Add and Mul.
func squaredDistance(t *testing.T, w *tensor.Tensor, target []float64) *tensor.Tensor {
	t.Helper()
	neg := make([]float64, len(target))
	for i, v := range target {
		neg[i] = -v
	}
	d, err := w.Add(tensor.MustNew(neg, tensor.WithRequiresGrad(false)))
	require.NoError(t, err)
	loss, err := d.Mul(d)
	require.NoError(t, err)
	return loss
}

func TestSGD_SimpleUpdate(t *testing.T) {
	x := withGrad(t, []float64{2.0}, []float64{1.0})
	optimizer := optim.NewSGD([]*tensor.Tensor{x}, optim.SGDConfig{LR: 0.1})

	require.NoError(t, optimizer.Step())

	// x_new = x_old - lr * grad = 2.0 - 0.1 * 1.0
	assert.InDelta(t, 1.9, x.Data()[0], 1e-12)
	assert.NotNil(t, x.Grad(), "Step does not clear gradients")
}

func TestSGD_WithMomentum(t *testing.T) {
	x := withGrad(t, []float64{1.0}, []float64{1.0})
	optimizer := optim.NewSGD([]*tensor.Tensor{x}, optim.SGDConfig{LR: 0.1, Momentum: 0.9})

	// velocity = 1, x = 1 - 0.1
	require.NoError(t, optimizer.Step())
	assert.InDelta(t, 0.9, x.Data()[0], 1e-12)

	// velocity = 0.9 + 1, x = 0.9 - 0.19
	require.NoError(t, optimizer.Step())
	assert.InDelta(t, 0.71, x.Data()[0], 1e-12)
}

func TestSGD_Defaults(t *testing.T) {
	optimizer := optim.NewSGD(nil, optim.SGDConfig{})
	assert.InDelta(t, 0.01, optimizer.LR(), 1e-12)

	optimizer.SetLR(0.5)
	assert.InDelta(t, 0.5, optimizer.LR(), 1e-12)

	var _ optim.Optimizer = optimizer
	require.NoError(t, optimizer.Step())
}

func TestSGD_SkipsParamsWithoutGrad(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	a := withGrad(t, []float64{1, 2}, []float64{1, 1})
	b := tensor.MustNew([]float64{5, 6})
	optimizer := optim.NewSGD([]*tensor.Tensor{a, b}, optim.SGDConfig{LR: 1}, optim.WithLogger(logger))

	require.NoError(t, optimizer.Step())
	assert.Equal(t, []float64{0, 1}, a.Data())
	assert.Equal(t, []float64{5, 6}, b.Data())
	assert.Contains(t, buf.String(), "skipping parameter without gradient")
	assert.Contains(t, buf.String(), "index=1")
}

func TestSGD_ZeroGrad(t *testing.T) {
	a := withGrad(t, []float64{1}, []float64{1})
	b := withGrad(t, []float64{2}, []float64{3})
	optimizer := optim.NewSGD([]*tensor.Tensor{a, b}, optim.SGDConfig{})

	optimizer.ZeroGrad()
	assert.Nil(t, a.Grad())
	assert.Nil(t, b.Grad())
}

func TestSGD_ShapeMismatchLeavesParamsUntouched(t *testing.T) {
	a := withGrad(t, []float64{1, 2, 3, 4}, []float64{1, 1, 1, 1})
	b := withGrad(t, []float64{1, 2}, []float64{1, 1})
	optimizer := optim.NewSGD([]*tensor.Tensor{b, a}, optim.SGDConfig{LR: 0.5, Momentum: 0.9})
	require.NoError(t, optimizer.Step())

	// The velocity buffer of a keeps its old shape.
	_, err := a.Reshape(2, 2)
	require.NoError(t, err)

	before := append([]float64(nil), b.Data()...)
	err = optimizer.Step()
	require.ErrorIs(t, err, tensor.ErrShapeMismatch)
	assert.Equal(t, before, b.Data())
}

func TestSGD_StateDict(t *testing.T) {
	a := withGrad(t, []float64{1, 2}, []float64{0.5, 0.5})
	b := tensor.MustNew([]float64{3})
	optimizer := optim.NewSGD([]*tensor.Tensor{a, b}, optim.SGDConfig{LR: 0.1, Momentum: 0.9})
	require.NoError(t, optimizer.Step())

	state := optimizer.StateDict()
	require.Len(t, state, 1, "b has no velocity yet")
	require.Contains(t, state, "velocity.0")
	assert.Equal(t, []float64{0.5, 0.5}, state["velocity.0"].Data())

	// A fresh optimizer with the loaded state continues identically.
	twin := tensor.MustNew(append([]float64(nil), a.Data()...))
	require.NoError(t, twin.SetGrad(a.Grad()))
	restored := optim.NewSGD([]*tensor.Tensor{twin, b}, optim.SGDConfig{LR: 0.1, Momentum: 0.9})
	require.NoError(t, restored.LoadStateDict(state))

	require.NoError(t, optimizer.Step())
	require.NoError(t, restored.Step())
	assert.InDeltaSlice(t, a.Data(), twin.Data(), 1e-12)

	// The exported state is a copy.
	assert.Equal(t, []float64{0.5, 0.5}, state["velocity.0"].Data())
}

func TestSGD_LoadStateDictShapeMismatch(t *testing.T) {
	a := withGrad(t, []float64{1, 2}, []float64{1, 1})
	optimizer := optim.NewSGD([]*tensor.Tensor{a}, optim.SGDConfig{Momentum: 0.5})
	require.NoError(t, optimizer.Step())

	err := optimizer.LoadStateDict(map[string]*tensor.Tensor{
		"velocity.0": tensor.MustNew([]float64{1, 2, 3}),
	})
	require.ErrorIs(t, err, tensor.ErrShapeMismatch)
	assert.Equal(t, []float64{1, 1}, optimizer.StateDict()["velocity.0"].Data())

	// Without momentum the state is ignored.
	plain := optim.NewSGD([]*tensor.Tensor{a}, optim.SGDConfig{})
	require.NoError(t, plain.LoadStateDict(map[string]*tensor.Tensor{
		"velocity.0": tensor.MustNew([]float64{1, 2, 3}),
	}))
	assert.Empty(t, plain.StateDict())
}

// TestSGD_FitsAffine fits y = w*x + b elementwise through real backward
// passes.
func TestSGD_FitsAffine(t *testing.T) {
	x := tensor.MustNew([]float64{1, 2, 3, 4}, tensor.WithRequiresGrad(false))
	target := []float64{3, 5, 7, 9}

	w := tensor.Zeros(tensor.Shape{4})
	b := tensor.Zeros(tensor.Shape{4})
	optimizer := optim.NewSGD([]*tensor.Tensor{w, b}, optim.SGDConfig{LR: 0.02})

	lossAt := func() *tensor.Tensor {
		wx, err := w.Mul(x)
		require.NoError(t, err)
		y, err := wx.Add(b)
		require.NoError(t, err)
		return squaredDistance(t, y, target)
	}
	sum := func(l *tensor.Tensor) float64 {
		total := 0.0
		for _, v := range l.Data() {
			total += v
		}
		return total
	}

	initial := sum(lossAt())
	for range 300 {
		loss := lossAt()
		require.NoError(t, loss.Backward())
		require.NoError(t, optimizer.Step())
		optimizer.ZeroGrad()
	}

	final := sum(lossAt())
	assert.Less(t, final, initial)
	assert.Less(t, final, 1e-6)
}

func TestAdam_FirstStep(t *testing.T) {
	x := withGrad(t, []float64{1, 1}, []float64{0.5, -2})
	optimizer := optim.NewAdam([]*tensor.Tensor{x}, optim.AdamConfig{LR: 0.1})

	require.NoError(t, optimizer.Step())
	assert.Equal(t, 1, optimizer.Timestep())

	// With bias correction the first update is lr * sign(grad).
	assert.InDeltaSlice(t, []float64{0.9, 1.1}, x.Data(), 1e-6)
}

func TestAdam_Defaults(t *testing.T) {
	optimizer := optim.NewAdam(nil, optim.AdamConfig{})
	assert.InDelta(t, 0.001, optimizer.LR(), 1e-12)

	var _ optim.Optimizer = optimizer
}

func TestAdam_Converges(t *testing.T) {
	w := tensor.MustNew([]float64{0, 10})
	optimizer := optim.NewAdam([]*tensor.Tensor{w}, optim.AdamConfig{LR: 0.1})

	for range 1000 {
		loss := squaredDistance(t, w, []float64{3, -1})
		require.NoError(t, loss.Backward())
		require.NoError(t, optimizer.Step())
		optimizer.ZeroGrad()
	}

	assert.InDeltaSlice(t, []float64{3, -1}, w.Data(), 0.05)
}
