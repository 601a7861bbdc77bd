package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/xyrionz/SafeArchive/pkg/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	cli.RunAndHandleError(ctx, cli.New())
}
