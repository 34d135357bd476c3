// Package runner describes the execution backends a pipeline can be
// submitted to.
//
// A backend is identified by a closed variant tag (Kind) and carries a
// per-variant default-region provider. The validator consumes the Runner
// interface only and never inspects the concrete type:
//
//	r := runner.Parse("DataflowRunner")
//	r.IsServiceBackend() // true
//	r.DefaultRegion()    // $CLOUDSDK_COMPUTE_REGION, or ""
package runner

import (
	"os"
	"strings"

	"github.com/NVIDIA/pipeline-preflight/pkg/defaults"
)

// Kind is the closed set of backend variants relevant to validation policy.
type Kind string

const (
	// KindService is the cloud-managed backend.
	KindService Kind = "service"

	// KindServiceTest is the test variant of the cloud-managed backend.
	KindServiceTest Kind = "service-test"

	// KindOther is any local or third-party backend.
	KindOther Kind = "other"
)

// Well-known runner names.
const (
	NameService     = "DataflowRunner"
	NameServiceTest = "TestDataflowRunner"
	NameDirect      = "DirectRunner"
)

// IsService reports whether k is one of the managed service variants.
func (k Kind) IsService() bool {
	return k == KindService || k == KindServiceTest
}

// Runner is the backend handle consumed by the validator.
type Runner interface {
	// Name returns the runner name as given by the user.
	Name() string

	// Kind returns the backend variant.
	Kind() Kind

	// IsServiceBackend reports whether the backend requires cloud-style
	// pre-flight fields (project, region, staging).
	IsServiceBackend() bool

	// DefaultRegion returns the backend's default region, or "" when none.
	DefaultRegion() string
}

// RegionProvider supplies a default region on demand.
type RegionProvider func() string

// EnvRegion reads the default region from the environment.
func EnvRegion() string {
	return strings.TrimSpace(os.Getenv(defaults.EnvDefaultRegion))
}

// StaticRegion returns a provider that always yields region.
func StaticRegion(region string) RegionProvider {
	return func() string { return region }
}

// Descriptor is the concrete Runner.
type Descriptor struct {
	name   string
	kind   Kind
	region RegionProvider
}

// Option is a functional option for configuring a Descriptor.
type Option func(*Descriptor)

// WithRegionProvider replaces the default-region provider.
func WithRegionProvider(p RegionProvider) Option {
	return func(d *Descriptor) {
		d.region = p
	}
}

// WithDefaultRegion sets a fixed default region. An empty region means the
// backend has no default.
func WithDefaultRegion(region string) Option {
	return WithRegionProvider(StaticRegion(region))
}

// New returns a Descriptor for the given variant. Service variants read their
// default region from the environment unless an option overrides it; other
// variants have none.
func New(name string, kind Kind, opts ...Option) *Descriptor {
	d := &Descriptor{
		name: name,
		kind: kind,
	}
	if kind.IsService() {
		d.region = EnvRegion
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Parse maps a runner name to a Descriptor. Matching ignores case and an
// optional "Runner" suffix, so "dataflow" and "DataflowRunner" are the same
// backend. An empty name selects the direct runner. Unknown names are
// accepted as other backends.
func Parse(name string, opts ...Option) *Descriptor {
	name = strings.TrimSpace(name)
	if name == "" {
		name = NameDirect
	}

	switch short(name) {
	case short(NameService):
		return New(name, KindService, opts...)
	case short(NameServiceTest):
		return New(name, KindServiceTest, opts...)
	default:
		return New(name, KindOther, opts...)
	}
}

func short(name string) string {
	n := strings.ToLower(name)
	return strings.TrimSuffix(n, "runner")
}

// Name implements Runner.
func (d *Descriptor) Name() string { return d.name }

// Kind implements Runner.
func (d *Descriptor) Kind() Kind { return d.kind }

// IsServiceBackend implements Runner.
func (d *Descriptor) IsServiceBackend() bool { return d.kind.IsService() }

// DefaultRegion implements Runner.
func (d *Descriptor) DefaultRegion() string {
	if d.region == nil {
		return ""
	}
	return d.region()
}

// String returns the runner name.
func (d *Descriptor) String() string { return d.name }
