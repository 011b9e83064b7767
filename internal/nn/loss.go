package nn

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/mytorch/mytorch/internal/tensor"
)

// MSELoss computes the squared error between predictions and targets.
//
// Forward returns the elementwise tensor (predictions - targets)², built from
// Add and Mul so that a root Backward on it differentiates the sum of
// squared errors. Value reduces it to the mean.
//
// Example:
//
//	var mse nn.MSELoss
//	loss, err := mse.Forward(predictions, targets)
//	_ = loss.Backward()
//	fmt.Println(mse.Value(loss))
type MSELoss struct{}

// NewMSELoss creates a new MSE loss function.
func NewMSELoss() *MSELoss {
	return &MSELoss{}
}

// Forward computes (predictions - targets)² elementwise.
//
// Subtraction is expressed as predictions + targets*(-1); targets never
// receive a gradient.
func (m *MSELoss) Forward(predictions, targets *tensor.Tensor) (*tensor.Tensor, error) {
	if predictions == nil || targets == nil {
		return nil, fmt.Errorf("%w: MSELoss: predictions and targets must be tensors", tensor.ErrTypeMismatch)
	}
	if !predictions.Shape().Equal(targets.Shape()) {
		return nil, fmt.Errorf("%w: MSELoss: predictions %v and targets %v",
			tensor.ErrShapeMismatch, predictions.Shape(), targets.Shape())
	}

	neg := make([]float64, targets.NumElements())
	floats.ScaleTo(neg, -1, targets.Data())
	negTargets, err := tensor.FromSlice(neg, targets.Shape(), tensor.WithRequiresGrad(false))
	if err != nil {
		return nil, err
	}

	diff, err := predictions.Add(negTargets)
	if err != nil {
		return nil, err
	}
	return diff.Mul(diff)
}

// Value returns the mean of a squared-error tensor.
func (m *MSELoss) Value(loss *tensor.Tensor) float64 {
	data := loss.Data()
	if len(data) == 0 {
		return 0
	}
	return floats.Sum(data) / float64(len(data))
}

// Parameters returns an empty slice (loss functions have no trainable parameters).
func (m *MSELoss) Parameters() []*Parameter {
	return nil
}
