package validator

import (
	"github.com/NVIDIA/pipeline-preflight/pkg/options"
	"github.com/NVIDIA/pipeline-preflight/pkg/runner"
)

// AliasFromRunner is the Alias.From value for writes sourced from the
// runner rather than another option.
const AliasFromRunner = "runner"

// Derived location suffixes.
const (
	stagingSuffix = "staging"
	tempSuffix    = "temp"
)

// IsServiceRunner reports whether validation applies the managed service
// policy: the runner is a service variant and the endpoint option does not
// point at localhost.
func IsServiceRunner(s *options.Store, r runner.Runner) bool {
	if s == nil || r == nil || !r.IsServiceBackend() {
		return false
	}
	endpoint := s.String(options.DataflowEndpoint)
	return endpoint == "" || !IsLocalEndpoint(endpoint)
}

// Normalize returns the effective options for supplied and the aliases that
// produced them. supplied is not modified.
//
// Aliases:
//   - a single container image is copied into both image options
//   - a valid zone moves to worker_zone when no worker location was supplied
//     (service)
//   - region defaults to the runner's default region (service)
//   - a missing or invalid storage location is derived from the other when
//     that one is valid (service)
func Normalize(supplied *options.Store, r runner.Runner) (*options.Store, []Alias) {
	if supplied == nil {
		return options.New(), nil
	}
	effective := supplied.Clone()
	var aliases []Alias
	apply := func(a Alias) {
		effective.Set(a.Option, a.Value)
		aliases = append(aliases, a)
	}

	sdk := supplied.String(options.SDKContainerImage)
	harness := supplied.String(options.WorkerHarnessContainerImage)
	switch {
	case sdk != "" && harness == "":
		apply(Alias{Option: options.WorkerHarnessContainerImage, From: options.SDKContainerImage, Value: sdk})
	case harness != "" && sdk == "":
		apply(Alias{Option: options.SDKContainerImage, From: options.WorkerHarnessContainerImage, Value: harness})
	}

	if !IsServiceRunner(supplied, r) {
		return effective, aliases
	}

	if w := supplied.Worker(); w.Zone != "" && ZoneGrammar.Match(w.Zone) &&
		w.WorkerZone == "" && w.WorkerRegion == "" {
		apply(Alias{Option: options.WorkerZone, From: options.Zone, Value: w.Zone})
		apply(Alias{Option: options.Zone, From: options.Zone})
	}

	if !supplied.IsSet(options.Region) {
		if region := r.DefaultRegion(); region != "" {
			apply(Alias{Option: options.Region, From: AliasFromRunner, Value: region})
		}
	}

	temp := supplied.String(options.TempLocation)
	staging := supplied.String(options.StagingLocation)
	tempOK, stagingOK := isGCSPath(temp), isGCSPath(staging)
	switch {
	case tempOK && !stagingOK:
		apply(Alias{Option: options.StagingLocation, From: options.TempLocation, Value: JoinGCSPath(temp, stagingSuffix)})
	case stagingOK && !tempOK:
		apply(Alias{Option: options.TempLocation, From: options.StagingLocation, Value: JoinGCSPath(staging, tempSuffix)})
	}

	return effective, aliases
}

func isGCSPath(path string) bool {
	if path == "" {
		return false
	}
	_, _, err := ParseGCSPath(path)
	return err == nil
}
