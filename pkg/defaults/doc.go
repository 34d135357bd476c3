// Package defaults provides centralized configuration constants for preflight.
//
// This package defines timeout values, environment variable names, and other
// configuration defaults used across the codebase. Centralizing these values
// keeps the CLI, the API server and the validator consistent.
//
// # Categories
//
//   - Server timeouts: HTTP server configuration and shutdown
//   - Handler limits: request timeouts and body size limits
//   - Kubernetes timeouts: ConfigMap lookups for option sources
//   - Cloud defaults: the environment variable consulted for the service
//     runner's default region and the well-known service endpoint
//
// # Usage
//
// Import and use constants directly:
//
//	import "github.com/NVIDIA/pipeline-preflight/pkg/defaults"
//
//	ctx, cancel := context.WithTimeout(ctx, defaults.ConfigMapReadTimeout)
//	defer cancel()
package defaults
