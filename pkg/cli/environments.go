/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"context"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/pipeline-preflight/pkg/header"
	"github.com/NVIDIA/pipeline-preflight/pkg/serializer"
	"github.com/NVIDIA/pipeline-preflight/pkg/validator"
)

// EnvironmentPolicies is the document printed by the environments command.
type EnvironmentPolicies struct {
	header.Header `json:",inline" yaml:",inline"`

	Policies []validator.Policy `json:"policies" yaml:"policies"`
}

func newEnvironmentPolicies() *EnvironmentPolicies {
	doc := &EnvironmentPolicies{Policies: validator.Policies()}
	doc.Init(header.KindEnvironmentPolicy, version)
	return doc
}

func environmentsCmd() *cli.Command {
	return &cli.Command{
		Name:    "environments",
		Aliases: []string{"env"},
		Usage:   "List the environment types and the sub-options each one accepts",
		Description: `Lists the environment policy table used to validate environment_type,
environment_config and environment_options. Custom URN environment types
(containing ":") are accepted without checks and are not listed.`,
		Flags: []cli.Flag{
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			ser, err := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
			if err != nil {
				return err
			}
			if c, ok := ser.(serializer.Closer); ok {
				defer func() {
					if err := c.Close(); err != nil {
						slog.Warn("failed to close serializer", "error", err)
					}
				}()
			}

			return ser.Serialize(ctx, newEnvironmentPolicies())
		},
	}
}
