/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package cli implements the command-line interface for the preflight tool.
//
// # Overview
//
// preflight checks pipeline options before a job is submitted, so that every
// configuration mistake is reported at once instead of surfacing one at a
// time from the runner.
//
// # Commands
//
// validate - Validate pipeline options against a runner:
//
//	preflight validate --runner DataflowRunner -- --project=my-project --temp_location=gs://b/tmp
//	preflight validate -r dataflow -f options.yaml --set num_workers=4
//	preflight validate -r dataflow -f cm://pipelines/options -o cm://pipelines/result
//
// Options are assembled from files or ConfigMaps (--file), then key=value
// assignments (--set), then pipeline option tokens after "--". Several files
// are validated concurrently, each on its own. The result lists every
// violation with the rule group that reported it and the normalization
// aliases that were applied.
//
// environments - List the environment policy table:
//
//	preflight environments --format table
//
// serve - Serve the validation API:
//
//	preflight serve --port 8080
//
// # Output Formats
//
// All commands that produce documents accept --format json|yaml|table and
// --output, which may be a file path, "-" for stdout or a ConfigMap URI.
//
// # Exit Codes
//
//   - 0: options accepted (or the command succeeded)
//   - 1: the command failed (bad flags, unreadable input)
//   - 2: options rejected; disable with --fail-on-violations=false
//
// # Global Flags
//
//	--debug     Enable debug logging (also PREFLIGHT_DEBUG)
//	--log-json  Write logs as JSON
//
// LOG_LEVEL sets the log level when --debug is not given.
package cli
