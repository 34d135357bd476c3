/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package validator

import (
	"log/slog"
	"time"

	cnserrors "github.com/NVIDIA/pipeline-preflight/pkg/errors"
	"github.com/NVIDIA/pipeline-preflight/pkg/header"
	"github.com/NVIDIA/pipeline-preflight/pkg/matcher"
	"github.com/NVIDIA/pipeline-preflight/pkg/options"
	"github.com/NVIDIA/pipeline-preflight/pkg/runner"
)

// Validator decides whether pipeline options are submittable to a runner.
// A Validator holds no per-call state and may be shared between goroutines;
// the options store passed to Validate may not.
type Validator struct {
	// Version is the validator version (typically the CLI version).
	Version string

	// Matchers decodes on_success_matcher values.
	Matchers *matcher.Registry
}

// Option is a functional option for configuring Validator instances.
type Option func(*Validator)

// WithVersion returns an Option that sets the Validator version string.
func WithVersion(version string) Option {
	return func(v *Validator) {
		v.Version = version
	}
}

// WithMatcherRegistry returns an Option that sets the registry used to
// decode success matchers.
func WithMatcherRegistry(r *matcher.Registry) Option {
	return func(v *Validator) {
		v.Matchers = r
	}
}

// New creates a new Validator with the provided options.
func New(opts ...Option) *Validator {
	v := &Validator{}
	for _, opt := range opts {
		opt(v)
	}
	if v.Matchers == nil {
		v.Matchers = matcher.Default()
	}
	return v
}

// Ready reports whether v can serve validations: a matcher registry with at
// least one matcher and a non-empty environment policy table.
func (v *Validator) Ready() error {
	if v.Matchers == nil || len(v.Matchers.Names()) == 0 {
		return cnserrors.New(cnserrors.ErrCodeUnavailable, "no success matchers registered")
	}
	if len(policies) == 0 {
		return cnserrors.New(cnserrors.ErrCodeUnavailable, "no environment policies loaded")
	}
	return nil
}

// ruleContext is the read-only input of every rule group.
type ruleContext struct {
	// supplied is the caller's store before normalization.
	supplied *options.Store

	// effective is supplied with all aliases applied.
	effective *options.Store

	runner   runner.Runner
	service  bool
	matchers *matcher.Registry
}

type ruleGroup struct {
	group Group
	check func(*ruleContext) []Violation
}

// ruleGroups run in this order; each group contributes its violations in the
// order it finds them.
var ruleGroups = []ruleGroup{
	{group: GroupApplicability, check: checkApplicability},
	{group: GroupFields, check: checkFields},
	{group: GroupCrossField, check: checkCrossField},
	{group: GroupStructured, check: checkStructured},
	{group: GroupEnvironment, check: checkEnvironment},
}

// Validate runs every rule group against store and returns all violations.
// Malformed user input is reported as violations, never as an error; an
// error is returned only for a nil store or runner.
//
// When no violations are found, normalization aliases are written back into
// store. A rejected store is left untouched. Validating a store again yields
// the same violations.
func (v *Validator) Validate(store *options.Store, r runner.Runner) (*Result, error) {
	start := time.Now()

	if store == nil {
		return nil, cnserrors.New(cnserrors.ErrCodeInvalidRequest, "options store cannot be nil")
	}
	if r == nil {
		return nil, cnserrors.New(cnserrors.ErrCodeInvalidRequest, "runner cannot be nil")
	}

	effective, aliases := Normalize(store, r)
	rc := &ruleContext{
		supplied:  store,
		effective: effective,
		runner:    r,
		service:   IsServiceRunner(store, r),
		matchers:  v.Matchers,
	}

	result := NewResult()
	result.Init(header.KindValidationResult, v.Version)
	result.Runner = r.Name()
	result.Service = rc.service

	for _, g := range ruleGroups {
		groupStart := time.Now()
		vs := g.check(rc)
		ruleGroupDuration.WithLabelValues(string(g.group)).Observe(time.Since(groupStart).Seconds())
		ruleGroupViolations.WithLabelValues(string(g.group)).Add(float64(len(vs)))
		result.Violations = append(result.Violations, vs...)
	}

	result.Aliases = aliases
	result.Accepted = len(result.Violations) == 0

	if result.Accepted {
		for _, a := range aliases {
			store.Set(a.Option, a.Value)
			aliasAppliedTotal.WithLabelValues(a.Option).Inc()
			slog.Debug("normalized option",
				"option", a.Option,
				"from", a.From,
				"value", a.Value)
		}
	}

	status := "accepted"
	if !result.Accepted {
		status = "rejected"
	}
	validationTotal.WithLabelValues(status).Inc()
	duration := time.Since(start)
	validationDuration.Observe(duration.Seconds())

	slog.Debug("validation completed",
		"runner", result.Runner,
		"service", result.Service,
		"violations", len(result.Violations),
		"aliases", len(aliases),
		"status", status,
		"duration", duration)

	return result, nil
}
