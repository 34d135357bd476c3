package options

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Document is the optional Kubernetes-style envelope of an options file:
//
//	kind: PipelineOptions
//	apiVersion: preflight.nvidia.com/v1alpha1
//	options:
//	  project: my-project
//	  experiments: [use_runner_v2]
//
// A file without an "options" key is read as a flat mapping.
type Document struct {
	Kind       string         `yaml:"kind,omitempty"`
	APIVersion string         `yaml:"apiVersion,omitempty"`
	Options    map[string]any `yaml:"options,omitempty"`
}

// LoadFile reads a YAML or JSON options file.
func LoadFile(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read options file %q: %w", path, err)
	}
	s, err := ParseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse options file %q: %w", path, err)
	}
	return s, nil
}

// ParseDocument decodes YAML (or JSON, which is valid YAML) option content.
func ParseDocument(data []byte) (*Store, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	values := raw
	if nested, ok := raw["options"].(map[string]any); ok {
		values = nested
	}

	return FromValues(values)
}

// FromValues builds a Store from decoded YAML or JSON values, coercing each
// value to its option's kind.
func FromValues(values map[string]any) (*Store, error) {
	s := New()
	for name, v := range values {
		if err := s.setDecoded(name, v); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// setDecoded stores a value produced by the YAML decoder, coercing scalars
// to the option's kind where the kind demands it.
func (s *Store) setDecoded(name string, v any) error {
	switch tv := v.(type) {
	case nil:
		return nil
	case []any:
		for _, item := range tv {
			if err := s.SetFromString(name, scalarString(item)); err != nil {
				return err
			}
		}
		if len(tv) == 0 {
			s.Set(name, []string{})
		}
		return nil
	case map[string]any:
		s.Set(name, tv)
		return nil
	case float64:
		return s.SetFromString(name, strconv.FormatFloat(tv, 'f', -1, 64))
	case string:
		if KindOf(name) == KindList {
			// A list option written as a scalar is kept as-is so the
			// validator can report it.
			s.Set(name, tv)
			return nil
		}
		return s.SetFromString(name, tv)
	default:
		s.Set(name, tv)
		return nil
	}
}

func scalarString(v any) string {
	switch tv := v.(type) {
	case string:
		return tv
	case int:
		return strconv.Itoa(tv)
	case bool:
		return strconv.FormatBool(tv)
	case float64:
		return strconv.FormatFloat(tv, 'f', -1, 64)
	default:
		return fmt.Sprint(tv)
	}
}
