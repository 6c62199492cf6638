package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/clintrovert/nbactions/internal/cli"
	"github.com/clintrovert/nbactions/internal/config"
)

func main() {
	// Get configuration from environment
	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx, os.Args[1:], cfg); err != nil {
		stop()
		os.Exit(1)
	}
}
