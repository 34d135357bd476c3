package client

import (
	"fmt"
	"strings"
)

// ConfigMapURIScheme is the URI scheme for Kubernetes ConfigMap sources and
// destinations.
// Format: cm://namespace/configmap-name
const ConfigMapURIScheme = "cm://"

// IsConfigMapURI reports whether uri names a ConfigMap.
func IsConfigMapURI(uri string) bool {
	return strings.HasPrefix(uri, ConfigMapURIScheme)
}

// ParseConfigMapURI splits cm://namespace/name into its parts.
func ParseConfigMapURI(uri string) (namespace, name string, err error) {
	if !IsConfigMapURI(uri) {
		return "", "", fmt.Errorf("invalid ConfigMap URI %q: missing %s prefix", uri, ConfigMapURIScheme)
	}
	namespace, name, ok := strings.Cut(strings.TrimPrefix(uri, ConfigMapURIScheme), "/")
	if !ok || namespace == "" || name == "" || strings.Contains(name, "/") {
		return "", "", fmt.Errorf("invalid ConfigMap URI %q: expected %snamespace/name", uri, ConfigMapURIScheme)
	}
	return namespace, name, nil
}
