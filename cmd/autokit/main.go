package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	cmd, cliCtx := newCLI()
	err := cmd.ExecuteContext(ctx)
	stop()
	if closeErr := cliCtx.close(); closeErr != nil {
		fmt.Fprintln(os.Stderr, "close log file:", closeErr)
	}
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
