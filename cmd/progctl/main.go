package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	progctlcmd "github.com/verdantworks/growline/internal/cmd/progctl"
	entrypoint "github.com/verdantworks/growline/internal/platform/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceProgctl, func(ctx context.Context) error {
		root := progctlcmd.NewRootCommand()
		return root.ExecuteContext(ctx)
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
