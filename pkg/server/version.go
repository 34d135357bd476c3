package server

import (
	"net/http"
	"slices"
	"strings"
)

// DefaultAPIVersion is served when the client does not ask for a version.
const DefaultAPIVersion = "v1"

// vendorMediaPrefix and vendorMediaSuffix frame a versioned media type:
// application/vnd.nvidia.preflight.v1+json
const (
	vendorMediaPrefix = "application/vnd.nvidia.preflight."
	vendorMediaSuffix = "+json"
)

var supportedAPIVersions = []string{"v1"}

func isValidAPIVersion(version string) bool {
	return slices.Contains(supportedAPIVersions, version)
}

// negotiateAPIVersion picks the API version from the Accept header, falling
// back to DefaultAPIVersion for missing, malformed or unsupported versions.
func negotiateAPIVersion(r *http.Request) string {
	for _, part := range strings.Split(r.Header.Get("Accept"), ",") {
		mt := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if !strings.HasPrefix(mt, vendorMediaPrefix) || !strings.HasSuffix(mt, vendorMediaSuffix) {
			continue
		}
		v := strings.TrimSuffix(strings.TrimPrefix(mt, vendorMediaPrefix), vendorMediaSuffix)
		if isValidAPIVersion(v) {
			return v
		}
	}
	return DefaultAPIVersion
}
