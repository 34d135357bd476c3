/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/pipeline-preflight/pkg/header"
	"github.com/NVIDIA/pipeline-preflight/pkg/validator"
)

func runCLI(t *testing.T, args ...string) error {
	t.Helper()
	return NewCommand().Run(context.Background(), append([]string{name}, args...))
}

func writeFile(t *testing.T, dir, fileName, content string) string {
	t.Helper()
	path := filepath.Join(dir, fileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func readResult(t *testing.T, path string) validator.Result {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	var result validator.Result
	require.NoError(t, json.Unmarshal(b, &result))
	return result
}

func TestValidateCommand_Accepted(t *testing.T) {
	out := filepath.Join(t.TempDir(), "result.json")

	err := runCLI(t, "validate",
		"--runner", "DataflowRunner",
		"--default-region", "us-central1",
		"--output", out,
		"--",
		"--project=example:example",
		"--temp_location=gs://foo/bar",
	)
	require.NoError(t, err)

	result := readResult(t, out)
	assert.True(t, result.Accepted)
	assert.True(t, result.Service)
	assert.Equal(t, "DataflowRunner", result.Runner)
	assert.Equal(t, header.KindValidationResult, result.Kind)
	assert.NotEmpty(t, result.Aliases)
}

func TestValidateCommand_Rejected(t *testing.T) {
	out := filepath.Join(t.TempDir(), "result.json")

	err := runCLI(t, "validate",
		"--runner", "dataflow",
		"--default-region", "",
		"--set", "num_workers=43",
		"--set", "max_num_workers=42",
		"--output", out,
	)
	require.ErrorIs(t, err, ErrRejected)

	result := readResult(t, out)
	assert.False(t, result.Accepted)
	assert.Contains(t, result.Messages(), "num_workers (43) cannot exceed max_num_workers (42)")
	assert.Contains(t, result.Messages(), "Missing required option: region.")
}

func TestValidateCommand_NoFailOnViolations(t *testing.T) {
	out := filepath.Join(t.TempDir(), "result.json")

	err := runCLI(t, "validate",
		"--fail-on-violations=false",
		"--output", out,
		"--",
		"--template_location=abc",
		"--dataflow_job_file=def",
	)
	require.NoError(t, err)

	result := readResult(t, out)
	assert.False(t, result.Accepted)
	assert.Equal(t, 1, result.Count(validator.GroupCrossField))
}

func TestValidateCommand_Files(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.yaml", `project: "example:example"
temp_location: gs://foo/bar
experiments:
  - use_runner_v2
`)
	bad := writeFile(t, dir, "bad.yaml", `options:
  project: "12345"
  temp_location: gs://foo/bar
  num_workers: 0
`)
	out := filepath.Join(dir, "results.json")

	err := runCLI(t, "validate",
		"-r", "DataflowRunner",
		"--default-region", "us-central1",
		"-f", good,
		"-f", bad,
		"-o", out,
	)
	require.ErrorIs(t, err, ErrRejected)

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	var results []validator.Result
	require.NoError(t, json.Unmarshal(b, &results))
	require.Len(t, results, 2)

	assert.True(t, results[0].Accepted)
	assert.Equal(t, good, results[0].Metadata[header.MetadataSource])

	assert.False(t, results[1].Accepted)
	assert.Equal(t, bad, results[1].Metadata[header.MetadataSource])
	assert.Len(t, results[1].Violations, 2)
}

func TestValidateCommand_SetAppliesToEveryFile(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.yaml", "temp_location: gs://foo/a\n")
	b := writeFile(t, dir, "b.json", `{"staging_location": "gs://foo/b"}`)
	out := filepath.Join(dir, "results.json")

	err := runCLI(t, "validate",
		"-r", "DataflowRunner",
		"--default-region", "us-central1",
		"-f", a, "-f", b,
		"--set", "project=example:example",
		"-o", out,
	)
	require.NoError(t, err)
}

func TestValidateCommand_Errors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{
			name:    "unknown format",
			args:    []string{"validate", "--format", "xml"},
			wantErr: "unknown output format",
		},
		{
			name:    "invalid set",
			args:    []string{"validate", "--set", "project"},
			wantErr: "invalid --set flag",
		},
		{
			name:    "invalid token",
			args:    []string{"validate", "--", "project=foo"},
			wantErr: "invalid pipeline option",
		},
		{
			name:    "missing file",
			args:    []string{"validate", "-f", filepath.Join(dir, "missing.yaml")},
			wantErr: "failed to load options",
		},
		{
			name:    "bad output path",
			args:    []string{"validate", "-o", filepath.Join(dir, "no", "such", "dir.json")},
			wantErr: "failed to create output file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := runCLI(t, tt.args...)
			require.Error(t, err)
			assert.NotErrorIs(t, err, ErrRejected)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestOptionTokens(t *testing.T) {
	in := []string{"--", "--project=foo", "--streaming"}
	assert.Equal(t, []string{"--project=foo", "--streaming"}, optionTokens(in))
	assert.Equal(t, "--", in[0])
	assert.Empty(t, optionTokens(nil))
}

func TestNeedsKubeClient(t *testing.T) {
	assert.False(t, needsKubeClient(nil, ""))
	assert.False(t, needsKubeClient([]string{"a.yaml"}, "out.json"))
	assert.True(t, needsKubeClient([]string{"a.yaml", "cm://ns/opts"}, ""))
	assert.True(t, needsKubeClient(nil, "cm://ns/result"))
}
