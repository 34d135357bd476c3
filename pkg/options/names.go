package options

// Google Cloud options.
const (
	Project              = "project"
	JobName              = "job_name"
	Region               = "region"
	StagingLocation      = "staging_location"
	TempLocation         = "temp_location"
	DataflowEndpoint     = "dataflow_endpoint"
	TemplateLocation     = "template_location"
	Update               = "update"
	TransformNameMapping = "transform_name_mapping"
	DataflowServiceOpts  = "dataflow_service_options"
)

// Worker options.
const (
	NumWorkers                  = "num_workers"
	MaxNumWorkers               = "max_num_workers"
	Zone                        = "zone"
	WorkerZone                  = "worker_zone"
	WorkerRegion                = "worker_region"
	SDKContainerImage           = "sdk_container_image"
	WorkerHarnessContainerImage = "worker_harness_container_image"
)

// Setup, standard, test and type options.
const (
	PrebuildSDKContainerBaseImage = "prebuild_sdk_container_base_image"
	Streaming                     = "streaming"
	OnSuccessMatcher              = "on_success_matcher"
	TypeCheckAdditional           = "type_check_additional"
)

// Debug options.
const (
	Experiments     = "experiments"
	DataflowJobFile = "dataflow_job_file"
)

// Portable options.
const (
	EnvironmentType    = "environment_type"
	EnvironmentConfig  = "environment_config"
	EnvironmentOptions = "environment_options"
)

// Kind describes how raw text for an option is interpreted.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindBool
	KindList
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	case KindList:
		return "list"
	default:
		return "string"
	}
}

// kinds lists every option that is not a plain string.
var kinds = map[string]Kind{
	NumWorkers:          KindInt,
	MaxNumWorkers:       KindInt,
	Update:              KindBool,
	Streaming:           KindBool,
	Experiments:         KindList,
	DataflowServiceOpts: KindList,
	EnvironmentOptions:  KindList,
}

// KindOf returns the kind of the named option. Unknown options are strings.
func KindOf(name string) Kind {
	if k, ok := kinds[name]; ok {
		return k
	}
	return KindString
}
