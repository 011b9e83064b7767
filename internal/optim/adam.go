package optim

import (
	"math"

	"github.com/mytorch/mytorch/internal/tensor"
)

// Adam implements the Adam (Adaptive Moment Estimation) optimizer.
//
// Update rule:
//
//	m_t = beta1 * m_{t-1} + (1-beta1) * gradient       // First moment
//	v_t = beta2 * v_{t-1} + (1-beta2) * gradient²      // Second moment
//	m_hat = m_t / (1 - beta1^t)                        // Bias correction
//	v_hat = v_t / (1 - beta2^t)                        // Bias correction
//	param = param - lr * m_hat / (sqrt(v_hat) + eps)  // Parameter update
//
// Reference: "Adam: A Method for Stochastic Optimization" (Kingma & Ba, 2014)
type Adam struct {
	base
	beta1 float64
	beta2 float64
	eps   float64
	t     int                               // Timestep for bias correction
	m     map[*tensor.Tensor]*tensor.Tensor // First moment estimates
	v     map[*tensor.Tensor]*tensor.Tensor // Second moment estimates
}

// AdamConfig holds configuration for Adam optimizer.
type AdamConfig struct {
	LR    float64    // Learning rate (default: 0.001)
	Betas [2]float64 // Coefficients for computing running averages (default: [0.9, 0.999])
	Eps   float64    // Term for numerical stability (default: 1e-8)
}

// NewAdam creates a new Adam optimizer. Zero config fields take the
// defaults listed on AdamConfig.
func NewAdam(params []*tensor.Tensor, config AdamConfig, opts ...Option) *Adam {
	if config.LR == 0 {
		config.LR = 0.001
	}
	if config.Betas[0] == 0 {
		config.Betas[0] = 0.9
	}
	if config.Betas[1] == 0 {
		config.Betas[1] = 0.999
	}
	if config.Eps == 0 {
		config.Eps = 1e-8
	}

	return &Adam{
		base:  newBase(params, config.LR, opts),
		beta1: config.Betas[0],
		beta2: config.Betas[1],
		eps:   config.Eps,
		m:     make(map[*tensor.Tensor]*tensor.Tensor),
		v:     make(map[*tensor.Tensor]*tensor.Tensor),
	}
}

// Step performs a single optimization step.
//
// The timestep advances on every call, even if no parameter has a gradient.
func (a *Adam) Step() error {
	grads, err := a.gradients()
	if err != nil {
		return err
	}
	for i, p := range a.params {
		if err := checkBuffer("first moment", i, a.m[p], p); err != nil {
			return err
		}
		if err := checkBuffer("second moment", i, a.v[p], p); err != nil {
			return err
		}
	}

	a.t++
	biasCorrection1 := 1.0 - math.Pow(a.beta1, float64(a.t))
	biasCorrection2 := 1.0 - math.Pow(a.beta2, float64(a.t))

	for i, p := range a.params {
		g := grads[i]
		if g == nil {
			continue
		}

		m, ok := a.m[p]
		if !ok {
			m = tensor.Zeros(p.Shape(), tensor.WithRequiresGrad(false))
			a.m[p] = m
		}
		v, ok := a.v[p]
		if !ok {
			v = tensor.Zeros(p.Shape(), tensor.WithRequiresGrad(false))
			a.v[p] = v
		}

		gradData, mData, vData := g.Data(), m.Data(), v.Data()
		paramData := p.Data()
		for j := range paramData {
			gj := gradData[j]
			mData[j] = a.beta1*mData[j] + (1.0-a.beta1)*gj
			vData[j] = a.beta2*vData[j] + (1.0-a.beta2)*gj*gj

			mHat := mData[j] / biasCorrection1
			vHat := vData[j] / biasCorrection2
			paramData[j] -= a.lr * mHat / (math.Sqrt(vHat) + a.eps)
		}
	}
	return nil
}

// Timestep returns the number of steps taken so far.
func (a *Adam) Timestep() int {
	return a.t
}
