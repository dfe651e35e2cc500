package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"jobboard/shared/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.New(logger.ConfigFromEnv())

	envFlag := &cli.StringFlag{
		Name:  "env",
		Usage: "path to the .env file",
		Value: ".env",
	}

	app := &cli.Command{
		Name:  "board_cli",
		Usage: "job board administration",
		Commands: []*cli.Command{
			{
				Name:   "migrate",
				Usage:  "create the postgres document store schema",
				Flags:  []cli.Flag{envFlag},
				Action: migrateAction,
			},
			{
				Name:   "seed",
				Usage:  "load the sample dataset into the configured document store",
				Flags:  []cli.Flag{envFlag},
				Action: seedAction,
			},
			{
				Name:  "stats",
				Usage: "print the employer dashboard of a company as JSON",
				Flags: []cli.Flag{
					envFlag,
					&cli.StringFlag{
						Name:     "company",
						Usage:    "company id",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "days",
						Usage: "application trend window in days (0 - configured default)",
					},
					&cli.IntFlag{
						Name:  "top",
						Usage: "number of top jobs by views (0 - configured default)",
					},
				},
				Action: statsAction,
			},
		},
	}

	if err := app.Run(ctx, os.Args); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}
