package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/fatih/color"

	"journal/internal/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := commands.New().ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintln(color.Error, color.RedString("error: %v", err))
		stop()
		os.Exit(1)
	}
}
