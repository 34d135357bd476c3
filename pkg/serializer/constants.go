package serializer

import "github.com/NVIDIA/pipeline-preflight/pkg/k8s/client"

// URI scheme constants for output destinations
const (
	// ConfigMapURIScheme is the URI scheme for Kubernetes ConfigMap destinations.
	// Format: cm://namespace/configmap-name
	ConfigMapURIScheme = client.ConfigMapURIScheme

	// StdoutURI is the special URI indicating output should be written to stdout.
	StdoutURI = "-"
)
