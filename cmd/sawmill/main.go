// Package main provides the sawmill CLI: a lumber cut-planning tool that
// searches for cutting layouts, renders them, and archives accepted plans.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "sawmill:", err)
		if isUserError(err) {
			return exitUserError
		}
		return exitSysError
	}
	return exitSuccess
}
