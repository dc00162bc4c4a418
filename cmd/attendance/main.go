// Command attendance reconciles a meeting sign-in export against the expected
// participant roster and writes attendance.xlsx.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"attendcli/internal/app"
	apperrors "attendcli/internal/errors"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := app.Execute(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps an error to the process exit status
func exitCode(err error) int {
	if err == nil || !apperrors.IsFatal(err) {
		return 0
	}
	return 1
}
