// Package matcher decodes serialized success matchers.
//
// A success matcher is a predicate a test pipeline applies to its final job
// state. It travels through the options as an opaque blob: a base64-encoded
// JSON envelope naming a registered type and carrying its configuration.
//
//	{"type": "job_state", "config": {"state": "DONE"}}
//
// Decoding builds the registered value but never runs it. Callers check the
// capability themselves:
//
//	v, err := matcher.Default().Decode(blob)
//	if _, ok := v.(matcher.Matcher); !ok { ... }
//
// Registered types may decode to values that are not matchers; the registry
// deliberately does not enforce the capability.
package matcher

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
)

// Matcher is the capability a decoded success matcher must implement.
type Matcher interface {
	Matches(item any) bool
}

// Factory builds a value from the envelope config. config is nil when the
// envelope carries none.
type Factory func(config json.RawMessage) (any, error)

// Envelope is the decoded JSON form of a serialized matcher.
type Envelope struct {
	Type   string          `json:"type"`
	Config json.RawMessage `json:"config,omitempty"`
}

// Registry maps type names to factories with thread-safe operations.
type Registry struct {
	factories map[string]Factory

	mu sync.RWMutex
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory under name. Registering a name twice is an error.
func (r *Registry) Register(name string, f Factory) error {
	if name == "" || f == nil {
		return fmt.Errorf("matcher type name and factory are required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.factories[name]; ok {
		return fmt.Errorf("matcher type %q already registered", name)
	}
	r.factories[name] = f
	return nil
}

// Names returns the registered type names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.factories))
}

// Decode turns a serialized blob into the registered value.
func (r *Registry) Decode(blob string) (any, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(blob))
	if err != nil {
		return nil, fmt.Errorf("matcher is not base64 encoded: %w", err)
	}

	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("matcher envelope is not valid JSON: %w", err)
	}
	if env.Type == "" {
		return nil, fmt.Errorf("matcher envelope has no type")
	}

	r.mu.RLock()
	f, ok := r.factories[env.Type]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown matcher type %q", env.Type)
	}

	v, err := f(env.Config)
	if err != nil {
		return nil, fmt.Errorf("failed to build matcher %q: %w", env.Type, err)
	}
	return v, nil
}

// Encode serializes a type name and its configuration into a blob accepted
// by Decode. config may be nil.
func Encode(name string, config any) (string, error) {
	env := Envelope{Type: name}
	if config != nil {
		b, err := json.Marshal(config)
		if err != nil {
			return "", fmt.Errorf("failed to encode matcher config: %w", err)
		}
		env.Config = b
	}

	b, err := json.Marshal(env)
	if err != nil {
		return "", fmt.Errorf("failed to encode matcher envelope: %w", err)
	}
	return base64.StdEncoding.EncodeToString(b), nil
}
