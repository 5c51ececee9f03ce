// Package main is the entry point for the tasktrack CLI.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/oklog/run"

	"tasktrack/internal/backend/rest"
	"tasktrack/internal/cli"
	"tasktrack/internal/commands"
	"tasktrack/internal/config"
	"tasktrack/internal/log"
	"tasktrack/internal/metrics"
	"tasktrack/internal/service"
)

// Run runs the CLI and returns its exit code.
func Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	recorder := metrics.NewRecorder()
	var debug bool

	// Create service factory
	factory := func(ctx context.Context, cfg *config.Config, logger log.Logger) (service.Service, error) {
		debug = cfg.Debug
		return rest.New(rest.ClientConfig{
			BaseURL:     cfg.API.BaseURL,
			AuthPath:    cfg.API.AuthPath,
			PersonsPath: cfg.API.PersonsPath,
			TasksPath:   cfg.API.TasksPath,
			Timeout:     cfg.API.Timeout,
			RateLimit:   cfg.API.RateLimit,
			RateBurst:   cfg.API.RateBurst,
			Tokens:      cfg.Tokens(),
			Metrics:     recorder,
			Logger:      logger,
		})
	}

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)
	dispatcher.SetInput(stdin)

	code := 0
	var g run.Group

	// OS signals.
	{
		signalCtx, signalCancel := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT)
		defer signalCancel()

		g.Add(
			func() error {
				<-signalCtx.Done()
				return nil
			},
			func(_ error) {
				signalCancel()
			},
		)
	}

	// Execute command.
	{
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		g.Add(
			func() error {
				code = dispatcher.Run(ctx, args, stdout, stderr)
				return nil
			},
			func(_ error) {
				cancel()
			},
		)
	}

	if err := g.Run(); err != nil {
		fmt.Fprintf(stderr, "error: %s\n", err)
		return 1
	}

	if debug {
		if err := recorder.Summary(stderr); err != nil {
			fmt.Fprintf(stderr, "warning: could not print request metrics: %s\n", err)
		}
	}
	return code
}

func main() {
	os.Exit(Run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
