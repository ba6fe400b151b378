package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/samvad-hq/samvad-summarizer/internal/app"
	"github.com/samvad-hq/samvad-summarizer/internal/config"
	"github.com/samvad-hq/samvad-summarizer/internal/logger"
	"github.com/samvad-hq/samvad-summarizer/internal/server"
)

func main() {
	if err := newCLI().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "summarizer: %v\n", err)
		os.Exit(1)
	}
}

func newCLI() *cli.App {
	return &cli.App{
		Name:  "summarizer",
		Usage: "summarize news articles in Indian languages into English",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP API",
				Action: serveAction,
			},
			{
				Name:  "summarize",
				Usage: "summarize a single article and print the result as JSON",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "url",
						Aliases:  []string{"u"},
						Usage:    "article URL (http or https)",
						Required: true,
					},
				},
				Action: summarizeAction,
			},
		},
	}
}

// setup loads config, initializes logging and builds the runtime.
func setup(ctx context.Context) (*app.App, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	log, err := logger.Init(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}

	logger.InfoObj("summarizer starting", "config", cfg)

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		logger.ErrorObj("failed to initialize summarizer", "error", err.Error())
		_ = logger.Close()
		return nil, nil, err
	}
	return a, func() {
		a.Close()
		_ = logger.Close()
	}, nil
}

func serveAction(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, cleanup, err := setup(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := a.Serve(ctx); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

func summarizeAction(c *cli.Context) error {
	url, err := server.ValidateURL(c.String("url"))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, cleanup, err := setup(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	res, err := a.SummarizeOnce(ctx, url)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(res)
}
