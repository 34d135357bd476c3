package validator

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	"github.com/NVIDIA/pipeline-preflight/pkg/matcher"
	"github.com/NVIDIA/pipeline-preflight/pkg/options"
)

// listOptions must hold lists; a single string is a common programmatic
// mistake.
var listOptions = []string{options.Experiments, options.DataflowServiceOpts}

// checkStructured validates options that carry compound values.
func checkStructured(rc *ruleContext) []Violation {
	s := rc.supplied
	var vs []Violation

	for _, name := range listOptions {
		if _, isList := s.List(name); !isList {
			vs = append(vs, violationf(GroupStructured, []string{name},
				"Option %s must be a list of strings, got a single value (%s).", name, s.String(name)))
		}
	}

	if s.IsSet(options.TransformNameMapping) {
		vs = append(vs, checkTransformNameMapping(s)...)
	}

	if s.IsSet(options.OnSuccessMatcher) {
		if v, ok := checkSuccessMatcher(s, rc.matchers); !ok {
			vs = append(vs, v)
		}
	}

	return vs
}

func checkTransformNameMapping(s *options.Store) []Violation {
	var vs []Violation
	if !s.GoogleCloud().Update || !s.Bool(options.Streaming) {
		vs = append(vs, violationf(GroupStructured, []string{options.TransformNameMapping},
			"Transform name mapping option is only useful when --%s and --%s is specified", options.Update, options.Streaming))
	}

	mapping, err := transformNameMapping(s)
	if err != nil {
		return append(vs, violationf(GroupStructured, []string{options.TransformNameMapping},
			"Invalid transform name mapping format. Please make sure the mapping is a JSON object of string key-value pairs: %v", err))
	}

	for _, from := range slices.Sorted(maps.Keys(mapping)) {
		if _, ok := mapping[from].(string); !ok {
			vs = append(vs, violationf(GroupStructured, []string{options.TransformNameMapping},
				"Invalid transform name mapping format. Please make sure the mapping is string key-value pairs. Invalid pair: (%s:%v)",
				from, mapping[from]))
		}
	}
	return vs
}

// transformNameMapping returns the mapping held by the option, which is
// either a JSON object string or a decoded map.
func transformNameMapping(s *options.Store) (map[string]any, error) {
	raw, _ := s.Get(options.TransformNameMapping)
	switch v := raw.(type) {
	case map[string]any:
		return v, nil
	case map[string]string:
		out := make(map[string]any, len(v))
		for k, val := range v {
			out[k] = val
		}
		return out, nil
	case string:
		var m map[string]any
		if err := json.Unmarshal([]byte(v), &m); err != nil {
			return nil, err
		}
		if m == nil {
			return nil, fmt.Errorf("mapping is null")
		}
		return m, nil
	default:
		return nil, fmt.Errorf("unsupported value type %T", raw)
	}
}

// checkSuccessMatcher accepts a Matcher set programmatically or a serialized
// blob that decodes to one. The matcher is never run.
func checkSuccessMatcher(s *options.Store, reg *matcher.Registry) (Violation, bool) {
	raw, _ := s.Get(options.OnSuccessMatcher)
	if _, ok := raw.(matcher.Matcher); ok {
		return Violation{}, true
	}

	blob, isString := raw.(string)
	if !isString {
		return violationf(GroupStructured, []string{options.OnSuccessMatcher},
			"Invalid value for option: %s. A %T is not a matcher.", options.OnSuccessMatcher, raw), false
	}

	decoded, err := reg.Decode(blob)
	if err != nil {
		return violationf(GroupStructured, []string{options.OnSuccessMatcher},
			"Invalid value (%s) for option: %s. %v.", blob, options.OnSuccessMatcher, err), false
	}
	if _, ok := decoded.(matcher.Matcher); !ok {
		return violationf(GroupStructured, []string{options.OnSuccessMatcher},
			"Invalid value (%s) for option: %s. It decodes to %T, which is not a matcher.", blob, options.OnSuccessMatcher, decoded), false
	}
	return Violation{}, true
}
