package options

import "k8s.io/utils/ptr"

// WorkerOptions groups worker placement and container options.
type WorkerOptions struct {
	NumWorkers                  *int
	MaxNumWorkers               *int
	Zone                        string
	WorkerZone                  string
	WorkerRegion                string
	SDKContainerImage           string
	WorkerHarnessContainerImage string
}

// GoogleCloudOptions groups the managed-service options.
type GoogleCloudOptions struct {
	Project                string
	JobName                string
	Region                 string
	StagingLocation        string
	TempLocation           string
	DataflowEndpoint       string
	TemplateLocation       string
	Update                 bool
	DataflowServiceOptions []string
}

// DebugOptions groups experiment and debugging options.
type DebugOptions struct {
	Experiments     []string
	DataflowJobFile string
}

// PortableOptions groups the portable environment options.
type PortableOptions struct {
	EnvironmentType    string
	EnvironmentConfig  string
	EnvironmentOptions []string
}

// Worker returns the worker view of the store. Worker counts that are unset
// or not integers are nil.
func (s *Store) Worker() WorkerOptions {
	return WorkerOptions{
		NumWorkers:                  s.intPtr(NumWorkers),
		MaxNumWorkers:               s.intPtr(MaxNumWorkers),
		Zone:                        s.String(Zone),
		WorkerZone:                  s.String(WorkerZone),
		WorkerRegion:                s.String(WorkerRegion),
		SDKContainerImage:           s.String(SDKContainerImage),
		WorkerHarnessContainerImage: s.String(WorkerHarnessContainerImage),
	}
}

// GoogleCloud returns the managed-service view of the store.
func (s *Store) GoogleCloud() GoogleCloudOptions {
	svc, _ := s.List(DataflowServiceOpts)
	return GoogleCloudOptions{
		Project:                s.String(Project),
		JobName:                s.String(JobName),
		Region:                 s.String(Region),
		StagingLocation:        s.String(StagingLocation),
		TempLocation:           s.String(TempLocation),
		DataflowEndpoint:       s.String(DataflowEndpoint),
		TemplateLocation:       s.String(TemplateLocation),
		Update:                 s.Bool(Update),
		DataflowServiceOptions: svc,
	}
}

// Debug returns the debug view of the store.
func (s *Store) Debug() DebugOptions {
	exp, _ := s.List(Experiments)
	return DebugOptions{
		Experiments:     exp,
		DataflowJobFile: s.String(DataflowJobFile),
	}
}

// Portable returns the portable environment view of the store.
func (s *Store) Portable() PortableOptions {
	env, _ := s.List(EnvironmentOptions)
	return PortableOptions{
		EnvironmentType:    s.String(EnvironmentType),
		EnvironmentConfig:  s.String(EnvironmentConfig),
		EnvironmentOptions: env,
	}
}

func (s *Store) intPtr(name string) *int {
	n, ok, err := s.Int(name)
	if !ok || err != nil {
		return nil
	}
	return ptr.To(n)
}
