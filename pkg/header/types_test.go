package header

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	h := New(WithKind(KindEnvironmentPolicy), WithMetadata("source", "cli"))

	assert.Equal(t, KindEnvironmentPolicy, h.Kind)
	assert.Equal(t, APIVersion, h.APIVersion)
	assert.Equal(t, "cli", h.Metadata["source"])
}

func TestWithMetadata_NilMap(t *testing.T) {
	h := &Header{}
	WithMetadata("k", "v")(h)
	assert.Equal(t, map[string]string{"k": "v"}, h.Metadata)
}

func TestInit(t *testing.T) {
	var h Header
	h.Init(KindValidationResult, "v0.3.0")

	assert.Equal(t, KindValidationResult, h.Kind)
	assert.Equal(t, APIVersion, h.APIVersion)
	assert.Equal(t, "v0.3.0", h.Metadata[MetadataVersion])

	_, err := uuid.Parse(h.Metadata[MetadataID])
	require.NoError(t, err)

	_, err = time.Parse(time.RFC3339, h.Metadata[MetadataTimestamp])
	require.NoError(t, err)
}

func TestInit_EmptyVersionOmitted(t *testing.T) {
	var h Header
	h.Init(KindValidationResult, "")
	_, ok := h.Metadata[MetadataVersion]
	assert.False(t, ok)
}
