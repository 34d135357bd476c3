package matcher

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

// Built-in type names.
const (
	TypeAlwaysPass = "always_pass"
	TypeJobState   = "job_state"
	TypeLiteral    = "literal"
)

// AlwaysPass matches every item.
type AlwaysPass struct{}

// Matches implements Matcher.
func (AlwaysPass) Matches(any) bool { return true }

// JobState matches a final job state by name, ignoring case.
type JobState struct {
	State string `json:"state"`
}

// Matches implements Matcher. Items are compared by their string form.
func (m JobState) Matches(item any) bool {
	return strings.EqualFold(fmt.Sprint(item), m.State)
}

// Literal is a plain value. It is registered so that blobs carrying data
// rather than a predicate decode cleanly, and it is not a Matcher.
type Literal struct {
	Value any `json:"value"`
}

func newAlwaysPass(json.RawMessage) (any, error) {
	return AlwaysPass{}, nil
}

func newJobState(config json.RawMessage) (any, error) {
	var m JobState
	if len(config) == 0 {
		return nil, fmt.Errorf("job_state requires a config with a state")
	}
	if err := json.Unmarshal(config, &m); err != nil {
		return nil, err
	}
	if m.State == "" {
		return nil, fmt.Errorf("job_state requires a non-empty state")
	}
	return m, nil
}

func newLiteral(config json.RawMessage) (any, error) {
	var l Literal
	if len(config) > 0 {
		if err := json.Unmarshal(config, &l); err != nil {
			return nil, err
		}
	}
	return l, nil
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the process-wide registry holding the built-in types.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewBuiltinRegistry()
	})
	return defaultRegistry
}

// NewBuiltinRegistry returns a fresh registry holding the built-in types.
func NewBuiltinRegistry() *Registry {
	r := NewRegistry()
	for name, f := range map[string]Factory{
		TypeAlwaysPass: newAlwaysPass,
		TypeJobState:   newJobState,
		TypeLiteral:    newLiteral,
	} {
		if err := r.Register(name, f); err != nil {
			panic(err)
		}
	}
	return r
}
