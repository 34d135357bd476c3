// Package header provides the Kubernetes-style header embedded in every
// document preflight emits.
package header

import (
	"time"

	"github.com/google/uuid"
)

// Kind identifies the type of a document.
type Kind string

const (
	// KindValidationResult is the kind of a validation result.
	KindValidationResult Kind = "ValidationResult"

	// KindEnvironmentPolicy is the kind of the environment policy listing.
	KindEnvironmentPolicy Kind = "EnvironmentPolicy"
)

// String returns the kind as a string.
func (k Kind) String() string {
	return string(k)
}

const (
	// APIVersion is the API version of every preflight document.
	APIVersion = "preflight.nvidia.com/v1alpha1"

	// MetadataID is the metadata key holding the document's unique ID.
	MetadataID = "id"

	// MetadataTimestamp is the metadata key holding the creation time.
	MetadataTimestamp = "timestamp"

	// MetadataVersion is the metadata key holding the tool version.
	MetadataVersion = "version"

	// MetadataSource is the metadata key naming where the options came from.
	MetadataSource = "source"
)

// Option is a functional option for configuring Header instances.
type Option func(*Header)

// WithMetadata returns an Option that adds a metadata key-value pair to the Header.
// If the Metadata map is nil, it will be initialized.
func WithMetadata(key, value string) Option {
	return func(h *Header) {
		if h.Metadata == nil {
			h.Metadata = make(map[string]string)
		}
		h.Metadata[key] = value
	}
}

// WithKind returns an Option that sets the Kind field of the Header.
func WithKind(kind Kind) Option {
	return func(h *Header) {
		h.Kind = kind
	}
}

// New creates a new Header instance with the provided functional options.
// The Metadata map is initialized automatically.
func New(opts ...Option) *Header {
	h := &Header{
		APIVersion: APIVersion,
		Metadata:   make(map[string]string),
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// Header contains metadata and versioning information for preflight documents.
// It follows Kubernetes-style resource conventions with Kind, APIVersion, and Metadata fields.
type Header struct {
	// Kind is the type of the document.
	Kind Kind `json:"kind,omitempty" yaml:"kind,omitempty"`

	// APIVersion is the API version of the document.
	APIVersion string `json:"apiVersion,omitempty" yaml:"apiVersion,omitempty"`

	// Metadata contains key-value pairs with metadata about the document.
	Metadata map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Init sets the kind and API version, and stamps the metadata with a fresh
// ID, the current UTC time and the given tool version.
func (h *Header) Init(kind Kind, version string) {
	h.Kind = kind
	h.APIVersion = APIVersion
	h.Metadata = map[string]string{
		MetadataID:        uuid.NewString(),
		MetadataTimestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if version != "" {
		h.Metadata[MetadataVersion] = version
	}
}
