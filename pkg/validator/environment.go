/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package validator

import (
	"slices"
	"strings"

	"github.com/distribution/reference"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/NVIDIA/pipeline-preflight/pkg/options"
)

// Canonical environment types.
const (
	EnvironmentDocker   = "DOCKER"
	EnvironmentProcess  = "PROCESS"
	EnvironmentExternal = "EXTERNAL"
	EnvironmentLoopback = "LOOPBACK"
)

// Environment sub-options, given as key=value entries of environment_options.
const (
	EnvDockerContainerImage   = "docker_container_image"
	EnvProcessCommand         = "process_command"
	EnvProcessVariables       = "process_variables"
	EnvExternalServiceAddress = "external_service_address"
)

// Policy lists the sub-options an environment type understands.
type Policy struct {
	// Type is the canonical, upper-case environment type.
	Type string `json:"type" yaml:"type"`

	// Required sub-options, unless environment_config is given instead.
	Required []string `json:"required,omitempty" yaml:"required,omitempty"`

	// Optional sub-options.
	Optional []string `json:"optional,omitempty" yaml:"optional,omitempty"`

	// ConfigAllowed reports whether environment_config may be given.
	ConfigAllowed bool `json:"configAllowed" yaml:"configAllowed"`
}

// SubOptions returns the required and then the optional sub-options.
func (p Policy) SubOptions() []string {
	return slices.Concat(p.Required, p.Optional)
}

var policies = []Policy{
	{Type: EnvironmentDocker, Optional: []string{EnvDockerContainerImage}, ConfigAllowed: true},
	{Type: EnvironmentProcess, Required: []string{EnvProcessCommand}, Optional: []string{EnvProcessVariables}, ConfigAllowed: true},
	{Type: EnvironmentExternal, Required: []string{EnvExternalServiceAddress}, ConfigAllowed: true},
	{Type: EnvironmentLoopback},
}

// Policies returns a copy of the environment policy table in order.
func Policies() []Policy {
	out := make([]Policy, 0, len(policies))
	for _, p := range policies {
		out = append(out, Policy{
			Type:          p.Type,
			Required:      slices.Clone(p.Required),
			Optional:      slices.Clone(p.Optional),
			ConfigAllowed: p.ConfigAllowed,
		})
	}
	return out
}

// PolicyFor returns the policy of a canonical or mixed-case environment type.
func PolicyFor(envType string) (Policy, bool) {
	canonical := CanonicalEnvironmentType(envType)
	for _, p := range policies {
		if p.Type == canonical {
			return p, true
		}
	}
	return Policy{}, false
}

// CanonicalEnvironmentType upper-cases a known environment type. URN types
// are returned unchanged.
func CanonicalEnvironmentType(envType string) string {
	envType = strings.TrimSpace(envType)
	if IsURNEnvironmentType(envType) {
		return envType
	}
	return cases.Upper(language.Und).String(envType)
}

// IsURNEnvironmentType reports whether envType is a custom URN such as
// "beam:env:foo:v1". URN types are accepted without structural checks.
func IsURNEnvironmentType(envType string) bool {
	return strings.Contains(envType, ":")
}

// ParseEnvironmentOptions splits key=value entries on the first "=". An entry
// without "=" is a key with an empty value. Later entries win.
func ParseEnvironmentOptions(entries []string) map[string]string {
	out := make(map[string]string, len(entries))
	for _, e := range entries {
		k, v, _ := strings.Cut(e, "=")
		out[strings.TrimSpace(k)] = v
	}
	return out
}

// checkEnvironment applies the environment policy table. Sub-options of the
// selected type are checked for requirement and config exclusivity; every
// sub-option belonging to another type is reported on its own.
func checkEnvironment(rc *ruleContext) []Violation {
	s := rc.supplied
	var vs []Violation

	entries, isList := s.List(options.EnvironmentOptions)
	if !isList {
		vs = append(vs, violationf(GroupEnvironment, []string{options.EnvironmentOptions},
			"Option %s must be a list of key=value strings, got a single value (%s).",
			options.EnvironmentOptions, s.String(options.EnvironmentOptions)))
	}
	found := ParseEnvironmentOptions(entries)

	portable := s.Portable()
	envType := CanonicalEnvironmentType(portable.EnvironmentType)
	hasConfig := portable.EnvironmentConfig != ""

	if envType != "" && !IsURNEnvironmentType(envType) {
		if _, known := PolicyFor(envType); !known {
			vs = append(vs, violationf(GroupEnvironment, []string{options.EnvironmentType},
				"Unknown environment type %s.%s", envType, didYouMean(envType, policyTypes())))
		}
	}

	for _, p := range policies {
		present := presentSubOptions(p, found)

		if p.Type != envType {
			for _, name := range present {
				vs = append(vs, incompatibleSubOption(name, envType))
			}
			continue
		}

		switch {
		case hasConfig && !p.ConfigAllowed:
			vs = append(vs, violationf(GroupEnvironment, []string{options.EnvironmentConfig},
				"Option %s is not compatible with environment type %s.", options.EnvironmentConfig, envType))
		case hasConfig && len(present) > 0:
			vs = append(vs, violationf(GroupEnvironment, append([]string{options.EnvironmentConfig}, present...),
				"Option %s is incompatible with option(s) %s.", options.EnvironmentConfig, strings.Join(present, ", ")))
		case !hasConfig:
			for _, name := range p.Required {
				if _, ok := found[name]; !ok {
					vs = append(vs, violationf(GroupEnvironment, []string{name},
						"Option %s is required for environment type %s.", name, envType))
				}
			}
		}

		if p.Type == EnvironmentDocker {
			if img := found[EnvDockerContainerImage]; img != "" {
				if _, err := reference.ParseNormalizedNamed(img); err != nil {
					vs = append(vs, violationf(GroupEnvironment, []string{EnvDockerContainerImage},
						"Invalid %s (%s): %v.", EnvDockerContainerImage, img, err))
				}
			}
		}
	}

	return vs
}

func presentSubOptions(p Policy, found map[string]string) []string {
	var present []string
	for _, name := range p.SubOptions() {
		if _, ok := found[name]; ok {
			present = append(present, name)
		}
	}
	return present
}

func incompatibleSubOption(name, envType string) Violation {
	if envType == "" {
		return violationf(GroupEnvironment, []string{name},
			"Option %s requires option %s to be set.", name, options.EnvironmentType)
	}
	return violationf(GroupEnvironment, []string{name},
		"Option %s is not compatible with environment type %s.", name, envType)
}

func policyTypes() []string {
	out := make([]string, 0, len(policies))
	for _, p := range policies {
		out = append(out, p.Type)
	}
	return out
}
