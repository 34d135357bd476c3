package serializer

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type violation struct {
	Option  string `json:"option" yaml:"option"`
	Message string `json:"message" yaml:"message"`
}

type result struct {
	Runner     string      `json:"runner" yaml:"runner"`
	Accepted   bool        `json:"accepted" yaml:"accepted"`
	Violations []violation `json:"violations" yaml:"violations"`
}

func sampleResult() result {
	return result{
		Runner:   "DataflowRunner",
		Accepted: false,
		Violations: []violation{
			{Option: "num_workers", Message: "Invalid value (0) for option: num_workers."},
		},
	}
}

func TestWriter_Serialize(t *testing.T) {
	tests := []struct {
		format Format
		decode func([]byte, any) error
	}{
		{FormatJSON, json.Unmarshal},
		{FormatYAML, yaml.Unmarshal},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, NewWriter(tt.format, &buf).Serialize(context.Background(), sampleResult()))

			var got result
			require.NoError(t, tt.decode(buf.Bytes(), &got))
			assert.Equal(t, sampleResult(), got)
		})
	}
}

func TestWriter_SerializeTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewWriter(FormatTable, &buf).Serialize(context.Background(), sampleResult()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[0], "FIELD"))
	assert.Contains(t, lines[1], "DataflowRunner")
	assert.Contains(t, lines[2], "false")
	assert.True(t, strings.HasPrefix(lines[3], "Violations[0].Option"))
	assert.Contains(t, lines[4], "Invalid value (0) for option: num_workers.")
}

func TestWriter_SerializeTable_Shapes(t *testing.T) {
	tests := []struct {
		name string
		data any
		want []string
	}{
		{"nil", nil, []string{"<nil>"}},
		{"empty slice", []string{}, []string{"<empty>"}},
		{"map keys sorted", map[string]int{"zone": 2, "region": 1}, []string{"region", "zone"}},
		{"nil pointer field", struct{ Region *string }{}, []string{"Region", "<nil>"}},
		{"bytes", struct{ Raw []byte }{Raw: []byte("abc")}, []string{"Raw", "abc"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, NewWriter(FormatTable, &buf).Serialize(context.Background(), tt.data))
			out := buf.String()
			last := 0
			for _, w := range tt.want {
				idx := strings.Index(out[last:], w)
				require.GreaterOrEqual(t, idx, 0, "missing %q in %q", w, out)
				last += idx
			}
		})
	}
}

func TestWriter_UnknownFormatFallsBackToJSON(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(Format("xml"), &buf)
	require.NoError(t, w.Serialize(context.Background(), map[string]string{"runner": "direct"}))
	assert.JSONEq(t, `{"runner":"direct"}`, buf.String())
}

func TestWriter_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	err := NewWriter(FormatJSON, &buf).Serialize(ctx, sampleResult())
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, buf.Len())
}

func TestNewFileWriterOrStdout(t *testing.T) {
	t.Run("stdout", func(t *testing.T) {
		for _, path := range []string{"", " ", StdoutURI} {
			s, err := NewFileWriterOrStdout(FormatJSON, path)
			require.NoError(t, err)
			w, ok := s.(*Writer)
			require.True(t, ok)
			assert.Equal(t, os.Stdout, w.output)
			assert.NoError(t, w.Close())
		}
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "result.yaml")
		s, err := NewFileWriterOrStdout(FormatYAML, path)
		require.NoError(t, err)
		require.NoError(t, s.Serialize(context.Background(), sampleResult()))

		c, ok := s.(Closer)
		require.True(t, ok)
		require.NoError(t, c.Close())
		require.NoError(t, c.Close())

		b, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(b), "runner: DataflowRunner")
	})

	t.Run("configmap", func(t *testing.T) {
		s, err := NewFileWriterOrStdout(FormatJSON, "cm://preflight/results")
		require.NoError(t, err)
		cw, ok := s.(*ConfigMapWriter)
		require.True(t, ok)
		assert.Equal(t, "preflight", cw.namespace)
		assert.Equal(t, "results", cw.name)
		assert.Equal(t, "result.json", cw.DataKey())
	})

	t.Run("errors", func(t *testing.T) {
		for _, path := range []string{
			"/nonexistent/dir/result.json",
			"cm://",
			"cm://only-namespace",
		} {
			_, err := NewFileWriterOrStdout(FormatJSON, path)
			assert.Error(t, err, path)
		}
	})
}

func TestFormat(t *testing.T) {
	tests := []struct {
		format  Format
		unknown bool
		ext     string
	}{
		{FormatJSON, false, "json"},
		{FormatYAML, false, "yaml"},
		{FormatTable, false, "txt"},
		{Format(""), true, "json"},
		{Format("xml"), true, "json"},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			assert.Equal(t, tt.unknown, tt.format.IsUnknown())
			assert.Equal(t, tt.ext, tt.format.Extension())
		})
	}

	assert.Equal(t, []string{"json", "yaml", "table"}, SupportedFormats())
}
