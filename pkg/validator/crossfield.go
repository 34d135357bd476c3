package validator

import (
	"strings"

	"github.com/distribution/reference"

	"github.com/NVIDIA/pipeline-preflight/pkg/options"
)

// Experiments that duplicate structured worker location options.
var locationExperiments = []string{options.WorkerRegion, options.WorkerZone}

// checkCrossField validates constraints spanning several options. Exclusions
// are checked against supplied presence so that values filled in by
// normalization never conflict with what the user wrote.
func checkCrossField(rc *ruleContext) []Violation {
	s := rc.supplied
	var vs []Violation

	if rc.service {
		vs = append(vs, checkWorkerLocation(s)...)
	}

	worker, gcp, dbg := s.Worker(), s.GoogleCloud(), s.Debug()

	if gcp.TemplateLocation != "" && dbg.DataflowJobFile != "" {
		vs = append(vs, violationf(GroupCrossField, []string{options.DataflowJobFile, options.TemplateLocation},
			"--%s and --%s are mutually exclusive.", options.DataflowJobFile, options.TemplateLocation))
	}

	sdk, harness := worker.SDKContainerImage, worker.WorkerHarnessContainerImage
	if sdk != "" && harness != "" && !SameImage(sdk, harness) {
		vs = append(vs, violationf(GroupCrossField, []string{options.SDKContainerImage, options.WorkerHarnessContainerImage},
			"Options %s (%s) and %s (%s) are mutually exclusive unless equal. %s is deprecated; use %s only.",
			options.SDKContainerImage, sdk, options.WorkerHarnessContainerImage, harness,
			options.WorkerHarnessContainerImage, options.SDKContainerImage))
	}

	if base := s.String(options.PrebuildSDKContainerBaseImage); base != "" {
		if !SameImage(base, rc.effective.Worker().SDKContainerImage) {
			vs = append(vs, violationf(GroupCrossField, []string{options.PrebuildSDKContainerBaseImage, options.SDKContainerImage},
				"Option %s (%s) requires %s to be set to the same image.",
				options.PrebuildSDKContainerBaseImage, base, options.SDKContainerImage))
		}
	}

	return vs
}

// checkWorkerLocation reports each conflicting pair of worker location
// settings exactly once. A location experiment conflicts with the deprecated
// zone as well as the structured options, since zone becomes worker_zone.
func checkWorkerLocation(s *options.Store) []Violation {
	var vs []Violation
	w := s.Worker()
	zone := w.Zone != ""
	workerZone := w.WorkerZone != ""
	workerRegion := w.WorkerRegion != ""

	if zone && workerRegion {
		vs = append(vs, violationf(GroupCrossField, []string{options.Zone, options.WorkerRegion},
			"Cannot use deprecated option %s along with %s.", options.Zone, options.WorkerRegion))
	}
	if zone && workerZone {
		vs = append(vs, violationf(GroupCrossField, []string{options.Zone, options.WorkerZone},
			"Cannot use deprecated option %s along with %s.", options.Zone, options.WorkerZone))
	}
	if workerRegion && workerZone {
		vs = append(vs, violationf(GroupCrossField, []string{options.WorkerRegion, options.WorkerZone},
			"Options %s and %s are mutually exclusive.", options.WorkerRegion, options.WorkerZone))
	}

	experiments, isList := s.List(options.Experiments)
	if !isList {
		return vs
	}
	for _, exp := range locationExperiments {
		if _, ok := LookupExperiment(experiments, exp); !ok {
			continue
		}
		for _, name := range []string{options.WorkerRegion, options.WorkerZone, options.Zone} {
			if s.IsSet(name) {
				vs = append(vs, violationf(GroupCrossField, []string{options.Experiments, name},
					"Cannot use deprecated experiment %s along with option %s.", exp, name))
			}
		}
	}
	return vs
}

// LookupExperiment finds an experiment by key. Experiments are either a bare
// key or "key=value".
func LookupExperiment(experiments []string, key string) (value string, ok bool) {
	for _, e := range experiments {
		k, v, _ := strings.Cut(e, "=")
		if k == key {
			return v, true
		}
	}
	return "", false
}

// SameImage reports whether a and b name the same container image. Values
// that parse as image references are compared in normalized form, so
// "python:3" and "docker.io/library/python:3" are equal.
func SameImage(a, b string) bool {
	if a == b {
		return true
	}
	if a == "" || b == "" {
		return false
	}
	na, errA := reference.ParseNormalizedNamed(a)
	nb, errB := reference.ParseNormalizedNamed(b)
	if errA != nil || errB != nil {
		return false
	}
	return reference.TagNameOnly(na).String() == reference.TagNameOnly(nb).String()
}
