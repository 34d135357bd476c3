package defaults

import "time"

// Server timeouts.
const (
	ServerReadTimeout     = 10 * time.Second
	ServerWriteTimeout    = 30 * time.Second
	ServerIdleTimeout     = 120 * time.Second
	ServerShutdownTimeout = 30 * time.Second
)

// Handler limits.
const (
	// ValidateRequestTimeout bounds a single POST /v1/validate request.
	ValidateRequestTimeout = 10 * time.Second

	// MaxValidateBodyBytes caps the request body accepted by the validate handler.
	MaxValidateBodyBytes = 1 << 20
)

// Kubernetes timeouts.
const (
	// ConfigMapReadTimeout bounds the lookup of a cm:// options source.
	ConfigMapReadTimeout = 30 * time.Second
)

// Cloud defaults.
const (
	// EnvDefaultRegion is consulted by the service runner for its default region.
	EnvDefaultRegion = "CLOUDSDK_COMPUTE_REGION"

	// ServiceEndpoint is the well-known managed service endpoint.
	ServiceEndpoint = "https://dataflow.googleapis.com"
)
