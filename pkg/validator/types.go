package validator

import (
	"fmt"

	"github.com/NVIDIA/pipeline-preflight/pkg/header"
)

// Group identifies the rule group that reported a violation.
type Group string

// Rule groups in evaluation order.
const (
	GroupApplicability Group = "applicability"
	GroupFields        Group = "fields"
	GroupCrossField    Group = "cross-field"
	GroupStructured    Group = "structured"
	GroupEnvironment   Group = "environment"
)

// Groups returns every rule group in evaluation order.
func Groups() []Group {
	return []Group{GroupApplicability, GroupFields, GroupCrossField, GroupStructured, GroupEnvironment}
}

// Violation is a single configuration defect.
type Violation struct {
	// Group is the rule group that reported it.
	Group Group `json:"group" yaml:"group"`

	// Options names the offending options.
	Options []string `json:"options,omitempty" yaml:"options,omitempty"`

	// Message is the human-readable description, including literal values
	// where they help the user act on it.
	Message string `json:"message" yaml:"message"`
}

// String returns the message.
func (v Violation) String() string {
	return v.Message
}

func violationf(group Group, opts []string, format string, args ...any) Violation {
	return Violation{
		Group:   group,
		Options: opts,
		Message: fmt.Sprintf(format, args...),
	}
}

// Alias records one normalization write. A nil Value clears the option.
type Alias struct {
	// Option is the option written.
	Option string `json:"option" yaml:"option"`

	// From names where the value came from: another option or "runner".
	From string `json:"from" yaml:"from"`

	// Value is the value written, or nil when the option is cleared.
	Value any `json:"value,omitempty" yaml:"value,omitempty"`
}

// Result is the outcome of one validation call.
type Result struct {
	header.Header `json:",inline" yaml:",inline"`

	// Runner is the name of the runner validated against.
	Runner string `json:"runner" yaml:"runner"`

	// Service reports whether the runner was treated as a service backend.
	Service bool `json:"service" yaml:"service"`

	// Accepted is true when there are no violations.
	Accepted bool `json:"accepted" yaml:"accepted"`

	// Violations in rule-group evaluation order.
	Violations []Violation `json:"violations" yaml:"violations"`

	// Aliases derived by normalization. They are applied to the options
	// store only when the result is accepted.
	Aliases []Alias `json:"aliases,omitempty" yaml:"aliases,omitempty"`
}

// NewResult returns an empty, accepted Result.
func NewResult() *Result {
	return &Result{
		Accepted:   true,
		Violations: []Violation{},
	}
}

// Messages returns the violation messages in order.
func (r *Result) Messages() []string {
	out := make([]string, 0, len(r.Violations))
	for _, v := range r.Violations {
		out = append(out, v.Message)
	}
	return out
}

// Count returns the number of violations reported by group.
func (r *Result) Count(group Group) int {
	n := 0
	for _, v := range r.Violations {
		if v.Group == group {
			n++
		}
	}
	return n
}
