package main

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand"

	"github.com/spf13/cobra"

	"github.com/mytorch/mytorch/internal/envconfig"
	"github.com/mytorch/mytorch/nn"
	"github.com/mytorch/mytorch/optim"
	"github.com/mytorch/mytorch/tensor"
)

// fitOptions configures the fit command.
type fitOptions struct {
	steps     uint
	lr        float64
	momentum  float64
	optimizer string
	seed      int64
}

// fitResult is what a fit run ends with.
type fitResult struct {
	w, b        *tensor.Tensor
	initialLoss float64
	finalLoss   float64
}

func newFitCmd() *cobra.Command {
	opts := fitOptions{}

	cmd := &cobra.Command{
		Use:   "fit",
		Short: "Fit y = w*x + b elementwise with gradient descent",
		Long: `Fits an elementwise affine model y = w*x + b to y = 2x + 1 on
x = [1 2 3 4]. Each step builds the squared error from Add and Mul, runs a
backward pass and applies one optimizer step.`,
		Args: cobra.NoArgs,
		PreRun: func(cmd *cobra.Command, _ []string) {
			if !cmd.Flags().Changed("steps") {
				opts.steps = envconfig.Steps()
			}
			opts.seed = envconfig.Seed()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := runFit(opts, slog.Default())
			if err != nil {
				return err
			}
			printFit(cmd.OutOrStdout(), res)
			return nil
		},
	}

	cmd.Flags().UintVar(&opts.steps, "steps", 200, "Number of optimizer steps (default from MYTORCH_FIT_STEPS)")
	cmd.Flags().Float64Var(&opts.lr, "lr", 0.02, "Learning rate")
	cmd.Flags().Float64Var(&opts.momentum, "momentum", 0, "SGD momentum factor")
	cmd.Flags().StringVar(&opts.optimizer, "optimizer", "sgd", "Optimizer to use (sgd or adam)")

	return cmd
}

func runFit(opts fitOptions, logger *slog.Logger) (*fitResult, error) {
	x := tensor.MustNew([]float64{1, 2, 3, 4}, tensor.WithRequiresGrad(false))
	target := tensor.MustNew([]float64{3, 5, 7, 9}, tensor.WithRequiresGrad(false))

	//nolint:gosec // Using math/rand for weight initialization (not security-critical)
	rng := rand.New(rand.NewSource(opts.seed))
	w := nn.Xavier(1, 1, tensor.Shape{4}, rng)
	b := nn.Zeros(tensor.Shape{4})
	params := []*tensor.Tensor{w, b}

	var optimizer optim.Optimizer
	switch opts.optimizer {
	case "sgd":
		optimizer = optim.NewSGD(params, optim.SGDConfig{LR: opts.lr, Momentum: opts.momentum}, optim.WithLogger(logger))
	case "adam":
		optimizer = optim.NewAdam(params, optim.AdamConfig{LR: opts.lr}, optim.WithLogger(logger))
	default:
		return nil, fmt.Errorf("unknown optimizer %q (want sgd or adam)", opts.optimizer)
	}

	mse := nn.NewMSELoss()
	forward := func() (*tensor.Tensor, error) {
		wx, err := w.Mul(x)
		if err != nil {
			return nil, err
		}
		y, err := wx.Add(b)
		if err != nil {
			return nil, err
		}
		return mse.Forward(y, target)
	}

	res := &fitResult{w: w, b: b}
	for step := range opts.steps {
		loss, err := forward()
		if err != nil {
			return nil, err
		}
		if step == 0 {
			res.initialLoss = mse.Value(loss)
		}

		if err := loss.Backward(); err != nil {
			return nil, fmt.Errorf("step %d: %w", step, err)
		}
		if err := optimizer.Step(); err != nil {
			return nil, fmt.Errorf("step %d: %w", step, err)
		}
		optimizer.ZeroGrad()

		if step%50 == 0 {
			logger.Debug("fit", "step", step, "loss", mse.Value(loss), "lr", optimizer.LR())
		}
	}

	loss, err := forward()
	if err != nil {
		return nil, err
	}
	res.finalLoss = mse.Value(loss)
	if opts.steps == 0 {
		res.initialLoss = res.finalLoss
	}
	return res, nil
}

func printFit(w io.Writer, res *fitResult) {
	fmt.Fprintf(w, "w = %v\n", res.w)
	fmt.Fprintf(w, "b = %v\n", res.b)
	fmt.Fprintf(w, "loss = %g (initial %g)\n", res.finalLoss, res.initialLoss)
}
