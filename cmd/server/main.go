package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/dom/petshop-api/internal/config"
	"github.com/urfave/cli/v3"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	app := &cli.Command{
		Name:  "petshop",
		Usage: "Pet shop e-commerce API",
		// Without a subcommand the API server starts.
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return serve(ctx, cfg, logger, false)
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Start the HTTP API",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "migrate", Usage: "run migrations before serving"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return serve(ctx, cfg, logger, cmd.Bool("migrate"))
				},
			},
			{
				Name:  "migrate",
				Usage: "Create or update database tables",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return migrate(cfg)
				},
			},
			{
				Name:  "seed",
				Usage: "Fill the database with reference data and demo content",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "users", Value: 10, Usage: "demo customers to create"},
					&cli.IntFlag{Name: "orders", Value: 10, Usage: "orders per demo customer"},
					&cli.IntFlag{Name: "categories", Value: 5, Usage: "demo categories to create"},
					&cli.IntFlag{Name: "products", Value: 6, Usage: "products per demo category"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return seedDatabase(ctx, cfg, cmd)
				},
			},
			{
				Name:  "keys",
				Usage: "Manage token signing keys",
				Commands: []*cli.Command{
					{
						Name:  "generate",
						Usage: "Write a new RSA key pair to the configured paths",
						Flags: []cli.Flag{
							&cli.IntFlag{Name: "bits", Value: 4096, Usage: "RSA key size"},
							&cli.BoolFlag{Name: "force", Usage: "overwrite existing key files"},
						},
						Action: func(ctx context.Context, cmd *cli.Command) error {
							return generateKeys(cfg, int(cmd.Int("bits")), cmd.Bool("force"))
						},
					},
				},
			},
			{
				Name:  "tokens",
				Usage: "Manage issued session tokens",
				Commands: []*cli.Command{
					{
						Name:  "prune",
						Usage: "Delete revocation records of expired tokens",
						Action: func(ctx context.Context, cmd *cli.Command) error {
							return pruneTokens(ctx, cfg)
						},
					},
				},
			},
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}
