package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mytorch/mytorch/tensor"
)

func newDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Build a small graph, run backward and print it",
		Long: `Builds r4 = (a*b + c*d) * e with b and d detached, runs a backward
pass from r4 and prints the graph and the gradients of the leaves.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDemo(cmd.OutOrStdout())
		},
	}
}

func runDemo(w io.Writer) error {
	a := tensor.MustNew([]float64{1, 2})
	b := tensor.MustNew([]float64{2, 3}, tensor.WithRequiresGrad(false))
	c := tensor.MustNew([]float64{3, 4})
	d := tensor.MustNew([]float64{4, 5}, tensor.WithRequiresGrad(false))
	e := tensor.MustNew([]float64{2, 2})

	r1, err := a.Mul(b)
	if err != nil {
		return err
	}
	r2, err := c.Mul(d)
	if err != nil {
		return err
	}
	r3, err := r1.Add(r2)
	if err != nil {
		return err
	}
	r4, err := r3.Mul(e)
	if err != nil {
		return err
	}

	slog.Debug("running backward", "root", r4)
	if err := r4.BackwardWithGrad(tensor.MustNew([]float64{1, 1}, tensor.WithRequiresGrad(false))); err != nil {
		return err
	}

	fmt.Fprintf(w, "r4 = %#v\n\n", r4)
	for _, leaf := range []struct {
		name string
		t    *tensor.Tensor
	}{
		{"a", a}, {"b", b}, {"c", c}, {"d", d}, {"e", e},
	} {
		fmt.Fprintf(w, "%s.grad = %v\n", leaf.name, leaf.t.Grad())
	}
	return nil
}
