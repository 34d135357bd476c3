package serializer

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type TableHeader struct {
	Kind string
}

type tableDoc struct {
	TableHeader
	Accepted bool
	Items    []string
	Labels   map[string]string
}

func TestWriter_SerializeTable_EmbeddedAndEmpty(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(FormatTable, &buf)

	require.NoError(t, w.Serialize(context.Background(), tableDoc{
		TableHeader: TableHeader{Kind: "ValidationResult"},
		Accepted:    true,
	}))

	out := buf.String()
	assert.Contains(t, out, "Kind")
	assert.NotContains(t, out, "TableHeader")
	assert.Contains(t, out, "ValidationResult")
	assert.Contains(t, out, "Items")
	assert.Contains(t, out, "[]")
	assert.Contains(t, out, "{}")
}

func TestParseFormat(t *testing.T) {
	assert.Equal(t, FormatYAML, ParseFormat(" YAML "))
	assert.True(t, ParseFormat("xml").IsUnknown())
}
