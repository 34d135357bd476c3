package validator

import (
	"slices"
	"strings"

	"github.com/NVIDIA/pipeline-preflight/pkg/options"
)

// Recognized type_check_additional features.
const (
	TypeCheckAll          = "all"
	TypeCheckPTransformFn = "ptransform_fn"
)

// TypeCheckFeatures returns the recognized type_check_additional features.
func TypeCheckFeatures() []string {
	return []string{TypeCheckAll, TypeCheckPTransformFn}
}

// checkFields validates single options in isolation.
func checkFields(rc *ruleContext) []Violation {
	s := rc.supplied
	var vs []Violation

	if project := s.String(options.Project); s.IsSet(options.Project) {
		switch {
		case ProjectNumberGrammar.Match(project):
			vs = append(vs, violationf(GroupFields, []string{options.Project},
				"Invalid Project ID (%s). Please make sure you specified the Project ID, not project number.", project))
		case !ProjectIDGrammar.Match(project):
			vs = append(vs, violationf(GroupFields, []string{options.Project},
				"Invalid Project ID (%s). Please make sure you specified the Project ID, not project description.", project))
		}
	}

	if job := s.String(options.JobName); s.IsSet(options.JobName) && !JobNameGrammar.Match(job) {
		vs = append(vs, violationf(GroupFields, []string{options.JobName},
			"Invalid job_name (%s); the name must consist of only the characters [-a-z0-9], starting with a letter and ending with a letter or number", job))
	}

	for _, name := range []string{options.Region, options.WorkerRegion} {
		vs = append(vs, grammarViolations(s, name, RegionGrammar)...)
	}
	for _, name := range []string{options.Zone, options.WorkerZone} {
		vs = append(vs, grammarViolations(s, name, ZoneGrammar)...)
	}

	if rc.service {
		vs = append(vs, checkWorkerCounts(s)...)
	}

	if endpoint := s.String(options.DataflowEndpoint); s.IsSet(options.DataflowEndpoint) && !IsValidURL(endpoint) {
		vs = append(vs, violationf(GroupFields, []string{options.DataflowEndpoint}, "Invalid url (%s).", endpoint))
	}

	vs = append(vs, checkTypeCheckFeatures(s)...)
	return vs
}

func grammarViolations(s *options.Store, name string, g Grammar) []Violation {
	if !s.IsSet(name) {
		return nil
	}
	if value := s.String(name); !g.Match(value) {
		return []Violation{violationf(GroupFields, []string{name},
			"Invalid %s (%s), given for the option: %s.", g.Name, value, name)}
	}
	return nil
}

// checkWorkerCounts reports each non-positive count and, when both counts
// are valid, a minimum above the maximum.
func checkWorkerCounts(s *options.Store) []Violation {
	var vs []Violation
	w := s.Worker()
	numOK := positiveCount(s, options.NumWorkers, w.NumWorkers, &vs)
	maxOK := positiveCount(s, options.MaxNumWorkers, w.MaxNumWorkers, &vs)
	if numOK && maxOK && *w.NumWorkers > *w.MaxNumWorkers {
		vs = append(vs, violationf(GroupFields, []string{options.NumWorkers, options.MaxNumWorkers},
			"%s (%s) cannot exceed %s (%s)",
			options.NumWorkers, s.String(options.NumWorkers),
			options.MaxNumWorkers, s.String(options.MaxNumWorkers)))
	}
	return vs
}

// positiveCount reports whether count, the typed view of name, holds a
// positive integer. A present option that is not one is reported into vs.
func positiveCount(s *options.Store, name string, count *int, vs *[]Violation) bool {
	if !s.Has(name) {
		return false
	}
	if count == nil || *count < 1 {
		*vs = append(*vs, violationf(GroupFields, []string{name},
			"Invalid value (%s) for option: %s. Value needs to be positive.", s.String(name), name))
		return false
	}
	return true
}

// checkTypeCheckFeatures reports each unknown comma-separated feature.
// Empty entries are ignored, so an empty value enables nothing.
func checkTypeCheckFeatures(s *options.Store) []Violation {
	var vs []Violation
	known := TypeCheckFeatures()
	for _, feature := range strings.Split(s.String(options.TypeCheckAdditional), ",") {
		feature = strings.TrimSpace(feature)
		if feature == "" || slices.Contains(known, feature) {
			continue
		}
		vs = append(vs, violationf(GroupFields, []string{options.TypeCheckAdditional},
			"Unrecognized value (%s) for option: %s.%s Recognized values: %s.",
			feature, options.TypeCheckAdditional, didYouMean(feature, known), strings.Join(known, ", ")))
	}
	return vs
}
