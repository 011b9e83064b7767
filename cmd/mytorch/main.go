// Package main provides the mytorch CLI.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/mytorch/mytorch/internal/envconfig"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: envconfig.LogLevel(),
	})))

	if err := NewCLI().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
