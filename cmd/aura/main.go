package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Gappu824/aura-ai-hackathon/internal/cli"
	"github.com/Gappu824/aura-ai-hackathon/internal/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := cli.NewRootCmd(os.Stdout).ExecuteContext(ctx)
	stop()
	_ = logger.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "aura: %v\n", err)
		os.Exit(1)
	}
}
