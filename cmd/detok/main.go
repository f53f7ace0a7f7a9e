package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/fatih/color"

	"github.com/randalmurphal/detokenize/internal/cmd/root"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := root.NewCmdRoot()
	if err := cmd.ExecuteContext(ctx); err != nil {
		red := color.New(color.FgRed)
		red.Fprintln(os.Stderr, "✗ "+err.Error())
		stop()
		os.Exit(1)
	}
}
