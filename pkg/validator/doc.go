/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package validator decides whether a set of pipeline options can be
// submitted to a runner before any job is built.
//
// # Overview
//
// Validation runs five rule groups in a fixed order and collects every
// violation instead of stopping at the first one:
//
//   - applicability: options a managed service backend cannot run without
//     (project, region, storage locations)
//   - fields: single option values checked against their grammars
//   - cross-field: mutually exclusive or dependent option pairs
//   - structured: compound values (lists, the transform name mapping and
//     the success matcher)
//   - environment: the portable environment policy table
//
// Service-only rules apply when the runner is the managed service (or its
// test variant) and dataflow_endpoint does not point at localhost.
//
// # Normalization
//
// Before the rules run, Normalize derives effective values: a single
// container image fills both image options, a valid deprecated zone moves to
// worker_zone, region defaults to the runner's default region and a missing
// or invalid storage location is derived from the other one. Rules read the
// supplied values for presence checks and the effective values for
// requirements. When a pass finds no violations the aliases are written back
// into the caller's store; a rejected store is left as supplied. Either way,
// validating the store again yields the same violations.
//
// # Usage
//
//	store, _ := options.Parse(os.Args[1:])
//	v := validator.New(validator.WithVersion(version))
//	result, err := v.Validate(store, runner.Parse("DataflowRunner"))
//	if err != nil {
//	    return err
//	}
//	for _, msg := range result.Messages() {
//	    fmt.Println(msg)
//	}
//
// # HTTP
//
// HandleValidate serves the same operation over HTTP. Rejected options are a
// successful response with Accepted set to false; only malformed requests
// return an error body.
package validator
