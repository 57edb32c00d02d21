package main

import (
	"context"
	"log/slog"

	"github.com/sandhi-dev/sandhi/internal/infrastructure/container"
	"github.com/spf13/cobra"
)

// CommandContext provides common command dependencies.
type CommandContext struct {
	Container *container.Container
	Logger    *slog.Logger
	Context   context.Context
}

// CommandHandler is a function that executes with initialized dependencies.
type CommandHandler func(*CommandContext, *cobra.Command, []string) error

// withContainer wraps a command handler with container initialization.
func withContainer(handler CommandHandler) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		return handler(newCommandContext(cmd.Context()), cmd, args)
	}
}

func newCommandContext(ctx context.Context) *CommandContext {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := slog.Default()

	return &CommandContext{
		Container: container.New(container.Options{Logger: logger}),
		Logger:    logger,
		Context:   ctx,
	}
}
