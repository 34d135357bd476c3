/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/pipeline-preflight/pkg/api"
	"github.com/NVIDIA/pipeline-preflight/pkg/server"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the validation API over HTTP",
		Description: `Starts the validation API (POST /v1/validate) with health, readiness
and metrics endpoints. The server shuts down gracefully on SIGINT or SIGTERM.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "address",
				Usage: "listen address (default: all interfaces)",
			},
			&cli.IntFlag{
				Name:    "port",
				Value:   server.DefaultConfig().Port,
				Usage:   "listen port",
				Sources: cli.EnvVars("PORT"),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := server.DefaultConfig()
			cfg.Address = cmd.String("address")
			cfg.Port = cmd.Int("port")

			return api.Run(ctx,
				server.WithConfig(cfg),
				server.WithVersion(version),
			)
		},
	}
}
