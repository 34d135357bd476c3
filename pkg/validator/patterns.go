package validator

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// Grammar is a named, anchored pattern an option value must fully match.
type Grammar struct {
	Name string
	re   *regexp.Regexp
}

// NewGrammar compiles expr as a full-string match. It panics on an invalid
// expression, like regexp.MustCompile.
func NewGrammar(name, expr string) Grammar {
	return Grammar{
		Name: name,
		re:   regexp.MustCompile(`^(?:` + expr + `)$`),
	}
}

// Match reports whether s matches the whole grammar.
func (g Grammar) Match(s string) bool {
	return g.re.MatchString(s)
}

// String returns the anchored expression.
func (g Grammar) String() string {
	return g.re.String()
}

var (
	// ProjectIDGrammar matches cloud project IDs, optionally domain scoped
	// ("example.com:my-project").
	ProjectIDGrammar = NewGrammar("project id", `[a-z][-a-z0-9:.]+[a-z0-9]`)

	// ProjectNumberGrammar matches numeric project numbers, which are not
	// accepted where a project ID is expected.
	ProjectNumberGrammar = NewGrammar("project number", `[0-9]+`)

	// JobNameGrammar matches job names.
	JobNameGrammar = NewGrammar("job name", `[a-z]([-a-z0-9]*[a-z0-9])?`)

	// RegionGrammar matches regions such as "us-central1".
	RegionGrammar = NewGrammar("region", `[a-z]+(-[a-z]+)+[0-9]+`)

	// ZoneGrammar matches zones such as "us-central1-b".
	ZoneGrammar = NewGrammar("zone", `[a-z]+(-[a-z]+)+[0-9]+-[a-z]`)

	// GCSBucketGrammar matches storage bucket names.
	GCSBucketGrammar = NewGrammar("gcs bucket", `[a-z0-9][-_a-z0-9.]+[a-z0-9]`)

	// gcsURI splits a storage URI into scheme, bucket and optional object.
	gcsURI = regexp.MustCompile(`^([^:]+)://([^/]+)(/((?s:.*)))?$`)
)

// GCSPathError describes why a storage path was rejected.
type GCSPathError struct {
	Reason string
	Value  string
}

// GCS path rejection reasons.
const (
	GCSReasonPath   = "path"
	GCSReasonBucket = "bucket"
	GCSReasonObject = "object"
)

func (e *GCSPathError) Error() string {
	return fmt.Sprintf("invalid GCS %s (%s)", e.Reason, e.Value)
}

// ParseGCSPath checks that path has the form gs://bucket/object. The object
// may be empty ("gs://bucket/") but the separator is required.
func ParseGCSPath(path string) (bucket, object string, err error) {
	m := gcsURI.FindStringSubmatch(path)
	if m == nil || m[1] != "gs" {
		return "", "", &GCSPathError{Reason: GCSReasonPath, Value: path}
	}
	bucket = m[2]
	if !GCSBucketGrammar.Match(bucket) {
		return "", "", &GCSPathError{Reason: GCSReasonBucket, Value: bucket}
	}
	if m[3] == "" || strings.ContainsAny(m[4], "\r\n") {
		return "", "", &GCSPathError{Reason: GCSReasonObject, Value: m[4]}
	}
	return bucket, m[4], nil
}

// JoinGCSPath appends elem to a storage path.
func JoinGCSPath(base, elem string) string {
	return strings.TrimRight(base, "/") + "/" + elem
}

// IsValidURL reports whether s is an absolute URL with a scheme and a host.
func IsValidURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}

// IsLocalEndpoint reports whether endpoint overrides the service with a
// localhost address. Text that does not parse as a URL is not local.
func IsLocalEndpoint(endpoint string) bool {
	u, err := url.Parse(strings.TrimSpace(endpoint))
	if err != nil {
		return false
	}
	return strings.HasPrefix(u.Host, "localhost")
}
