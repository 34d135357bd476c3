/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/pipeline-preflight/pkg/logging"
	"github.com/NVIDIA/pipeline-preflight/pkg/serializer"
)

const (
	name           = "preflight"
	versionDefault = "dev"

	// exitRejected is the process exit code when options were rejected.
	exitRejected = 2
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/NVIDIA/pipeline-preflight/pkg/cli.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Flags shared by several commands. Each call returns a fresh flag; urfave
// flags hold their parsed value.

func outputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output destination: file path, ConfigMap URI (cm://namespace/name) or - for stdout",
	}
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "format",
		Value: string(serializer.FormatJSON),
		Usage: fmt.Sprintf("output format (%s)", strings.Join(serializer.SupportedFormats(), ", ")),
	}
}

func kubeconfigFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "kubeconfig",
		Aliases: []string{"k"},
		Usage:   "path to kubeconfig used for ConfigMap sources and outputs (default: $KUBECONFIG, ~/.kube/config or in-cluster)",
	}
}

// NewCommand returns the root command.
func NewCommand() *cli.Command {
	return &cli.Command{
		Name:                  name,
		Usage:                 "Pre-flight validation of pipeline options",
		Version:               fmt.Sprintf("%s (commit: %s, date: %s)", version, commit, date),
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "debug",
				Usage:   "enable debug logging",
				Sources: cli.EnvVars("PREFLIGHT_DEBUG"),
			},
			&cli.BoolFlag{
				Name:  "log-json",
				Usage: "write logs as JSON",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logging.SetDefaultCLILogger(name, version, cmd.Bool("debug"), cmd.Bool("log-json"))
			return ctx, nil
		},
		Commands: []*cli.Command{
			validateCmd(),
			environmentsCmd(),
			serveCmd(),
		},
	}
}

// Execute runs the CLI and exits the process with a non-zero code on error.
// Rejected options exit with code 2, any other failure with code 1.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := NewCommand().Run(ctx, os.Args)
	if err == nil {
		return
	}

	stop()
	if errors.Is(err, ErrRejected) {
		slog.Debug("options rejected", "error", err)
		os.Exit(exitRejected)
	}
	slog.Error("command failed", "error", err)
	os.Exit(1)
}

// parseOutputFormat extracts and validates the output format from CLI flags.
// Returns the validated format or an error if the format is unknown.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	outFormat := serializer.ParseFormat(cmd.String("format"))
	if outFormat.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q, valid formats are: %v", cmd.String("format"), serializer.SupportedFormats())
	}
	return outFormat, nil
}
