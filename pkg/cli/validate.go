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
	"slices"

	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"
	"k8s.io/client-go/kubernetes"

	"github.com/NVIDIA/pipeline-preflight/pkg/header"
	"github.com/NVIDIA/pipeline-preflight/pkg/k8s/client"
	"github.com/NVIDIA/pipeline-preflight/pkg/options"
	"github.com/NVIDIA/pipeline-preflight/pkg/runner"
	"github.com/NVIDIA/pipeline-preflight/pkg/serializer"
	"github.com/NVIDIA/pipeline-preflight/pkg/validator"
)

// ErrRejected is returned by the validate command when at least one option
// set has violations and --fail-on-violations is enabled.
var ErrRejected = errors.New("pipeline options rejected")

func validateCmd() *cli.Command {
	return &cli.Command{
		Name:                  "validate",
		EnableShellCompletion: true,
		Usage:                 "Validate pipeline options against a runner before submission",
		ArgsUsage:             "[-- --option=value ...]",
		Description: `Validates pipeline options and reports every violation in one pass.

Options are read from files or ConfigMaps (--file), key=value pairs (--set)
and pipeline option tokens given after "--", applied in that order. Each
--file is validated on its own; --set and trailing tokens apply to all of them.

# Examples

Validate options for the managed service:
  preflight validate --runner DataflowRunner -- \
    --project=my-project --temp_location=gs://my-bucket/tmp

Validate option files concurrently and write YAML:
  preflight validate -r dataflow -f prod.yaml -f staging.yaml --format yaml

Read options from a ConfigMap and store the result in another:
  preflight validate -r dataflow -f cm://pipelines/options -o cm://pipelines/preflight

The command exits with code 2 when options are rejected, unless
--fail-on-violations=false is given.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "runner",
				Aliases: []string{"r"},
				Value:   runner.NameDirect,
				Usage:   fmt.Sprintf("runner to validate against (e.g., %s, %s, %s)", runner.NameService, runner.NameServiceTest, runner.NameDirect),
			},
			&cli.StringFlag{
				Name:  "default-region",
				Usage: "default region of the runner (default: $CLOUDSDK_COMPUTE_REGION for the managed service)",
			},
			&cli.StringSliceFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "options file (YAML or JSON) or ConfigMap URI (cm://namespace/name), can be repeated",
			},
			&cli.StringSliceFlag{
				Name:  "set",
				Usage: "set a pipeline option (format: key=value, can be repeated)",
			},
			&cli.BoolFlag{
				Name:  "fail-on-violations",
				Value: true,
				Usage: "exit with a non-zero code when options are rejected",
			},
			outputFlag(),
			formatFlag(),
			kubeconfigFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			var runnerOpts []runner.Option
			if cmd.IsSet("default-region") {
				runnerOpts = append(runnerOpts, runner.WithDefaultRegion(cmd.String("default-region")))
			}

			run := &validateRun{
				runner:      runner.Parse(cmd.String("runner"), runnerOpts...),
				sources:     cmd.StringSlice("file"),
				assignments: cmd.StringSlice("set"),
				args:        optionTokens(cmd.Args().Slice()),
				loader:      &options.Loader{},
				validator:   validator.New(validator.WithVersion(version)),
			}

			output := cmd.String("output")
			var kube kubernetes.Interface
			if needsKubeClient(run.sources, output) && cmd.String("kubeconfig") != "" {
				cs, _, err := client.BuildKubeClient(cmd.String("kubeconfig"))
				if err != nil {
					return err
				}
				kube = cs
				run.loader.Client = cs
			}

			results, err := run.validate(ctx)
			if err != nil {
				return err
			}

			ser, err := serializer.NewFileWriterOrStdout(outFormat, output)
			if err != nil {
				return err
			}
			if cw, ok := ser.(*serializer.ConfigMapWriter); ok && kube != nil {
				cw.Client = kube
			}
			if c, ok := ser.(serializer.Closer); ok {
				defer func() {
					if err := c.Close(); err != nil {
						slog.Warn("failed to close serializer", "error", err)
					}
				}()
			}

			var doc any = results
			if len(results) == 1 {
				doc = results[0]
			}
			if err := ser.Serialize(ctx, doc); err != nil {
				return fmt.Errorf("failed to write validation result: %w", err)
			}

			rejected := 0
			for _, r := range results {
				if !r.Accepted {
					rejected++
				}
			}
			if rejected > 0 && cmd.Bool("fail-on-violations") {
				return fmt.Errorf("%w: %d of %d option sets have violations", ErrRejected, rejected, len(results))
			}
			return nil
		},
	}
}

// validateRun validates one option set per source, or a single set built
// only from assignments and tokens when there are no sources.
type validateRun struct {
	runner      runner.Runner
	sources     []string
	assignments []string
	args        []string
	loader      *options.Loader
	validator   *validator.Validator
}

func (v *validateRun) validate(ctx context.Context) ([]*validator.Result, error) {
	sources := v.sources
	if len(sources) == 0 {
		sources = []string{""}
	}

	results := make([]*validator.Result, len(sources))
	g, gctx := errgroup.WithContext(ctx)
	for i, source := range sources {
		g.Go(func() error {
			store, err := v.store(gctx, source)
			if err != nil {
				return err
			}

			result, err := v.validator.Validate(store, v.runner)
			if err != nil {
				return err
			}
			if source != "" {
				result.Metadata[header.MetadataSource] = source
			}

			slog.Info("options validated",
				"source", source,
				"runner", result.Runner,
				"accepted", result.Accepted,
				"violations", len(result.Violations))
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// store builds the option set for source: loaded values, then --set
// assignments, then trailing tokens.
func (v *validateRun) store(ctx context.Context, source string) (*options.Store, error) {
	s := options.New()
	if source != "" {
		loaded, err := v.loader.Load(ctx, source)
		if err != nil {
			return nil, fmt.Errorf("failed to load options from %q: %w", source, err)
		}
		s = loaded
	}

	if err := s.ParseAssignments(v.assignments); err != nil {
		return nil, fmt.Errorf("invalid --set flag: %w", err)
	}
	if err := s.ParseInto(v.args); err != nil {
		return nil, fmt.Errorf("invalid pipeline option: %w", err)
	}
	return s, nil
}

// optionTokens drops the "--" terminator if the parser passed it through.
func optionTokens(args []string) []string {
	return slices.DeleteFunc(slices.Clone(args), func(a string) bool {
		return a == "--"
	})
}

func needsKubeClient(sources []string, output string) bool {
	return client.IsConfigMapURI(output) || slices.ContainsFunc(sources, client.IsConfigMapURI)
}
