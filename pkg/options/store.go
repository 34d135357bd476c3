package options

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Store is a flat, mutable set of named option values.
// A Store is not safe for concurrent use.
type Store struct {
	values map[string]any
}

// New returns an empty Store.
func New() *Store {
	return &Store{values: make(map[string]any)}
}

// FromMap returns a Store holding a copy of m. Nil values are skipped.
func FromMap(m map[string]any) *Store {
	s := New()
	for k, v := range m {
		if v != nil {
			s.values[k] = v
		}
	}
	return s
}

// Get returns the raw value of name and whether it is present.
func (s *Store) Get(name string) (any, bool) {
	v, ok := s.values[name]
	return v, ok
}

// Set stores value under name. A nil value removes the option.
func (s *Store) Set(name string, value any) {
	if value == nil {
		delete(s.values, name)
		return
	}
	s.values[name] = value
}

// Unset removes name from the store.
func (s *Store) Unset(name string) {
	delete(s.values, name)
}

// Has reports whether name is present, even with an empty value.
func (s *Store) Has(name string) bool {
	_, ok := s.values[name]
	return ok
}

// IsSet reports whether name is present with a non-empty value.
func (s *Store) IsSet(name string) bool {
	v, ok := s.values[name]
	if !ok {
		return false
	}
	switch tv := v.(type) {
	case string:
		return tv != ""
	case []string:
		return len(tv) > 0
	case []any:
		return len(tv) > 0
	case map[string]any:
		return len(tv) > 0
	case map[string]string:
		return len(tv) > 0
	default:
		return true
	}
}

// String returns the textual form of name, or "" when unset.
func (s *Store) String(name string) string {
	v, ok := s.values[name]
	if !ok {
		return ""
	}
	switch tv := v.(type) {
	case string:
		return tv
	case int:
		return strconv.Itoa(tv)
	case bool:
		return strconv.FormatBool(tv)
	case []string:
		return strings.Join(tv, ",")
	default:
		return fmt.Sprint(tv)
	}
}

// List returns the list value of name. isList is false when the option holds
// a non-list value (for example a bare string set programmatically).
// An unset option is an empty list.
func (s *Store) List(name string) (list []string, isList bool) {
	v, ok := s.values[name]
	if !ok {
		return nil, true
	}
	switch tv := v.(type) {
	case []string:
		return slices.Clone(tv), true
	case []any:
		out := make([]string, 0, len(tv))
		for _, item := range tv {
			out = append(out, fmt.Sprint(item))
		}
		return out, true
	default:
		return nil, false
	}
}

// Bool returns the boolean value of name. Strings are parsed with
// strconv.ParseBool; anything unparsable is false.
func (s *Store) Bool(name string) bool {
	v, ok := s.values[name]
	if !ok {
		return false
	}
	switch tv := v.(type) {
	case bool:
		return tv
	case string:
		b, err := strconv.ParseBool(tv)
		return err == nil && b
	default:
		return false
	}
}

// Int returns the integer value of name. ok is false when the option is unset.
func (s *Store) Int(name string) (n int, ok bool, err error) {
	v, present := s.values[name]
	if !present {
		return 0, false, nil
	}
	switch tv := v.(type) {
	case int:
		return tv, true, nil
	case int64:
		return int(tv), true, nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(tv))
		if err != nil {
			return 0, true, fmt.Errorf("option %s: %q is not an integer", name, tv)
		}
		return n, true, nil
	default:
		return 0, true, fmt.Errorf("option %s: unsupported value type %T", name, v)
	}
}

// Names returns the sorted names of all present options.
func (s *Store) Names() []string {
	return slices.Sorted(maps.Keys(s.values))
}

// Len returns the number of present options.
func (s *Store) Len() int {
	return len(s.values)
}

// Clone returns an independent copy. List values are copied; other
// reference values are shared.
func (s *Store) Clone() *Store {
	c := New()
	for k, v := range s.values {
		if l, ok := v.([]string); ok {
			v = slices.Clone(l)
		}
		c.values[k] = v
	}
	return c
}

// Map returns a copy of the store's contents.
func (s *Store) Map() map[string]any {
	return s.Clone().values
}

// SetFromString interprets raw according to the option's kind and stores it.
// List options append; integer options that do not parse are kept as text so
// the validator can report the literal value.
func (s *Store) SetFromString(name, raw string) error {
	switch KindOf(name) {
	case KindList:
		list, _ := s.List(name)
		s.values[name] = append(list, raw)
	case KindBool:
		if raw == "" {
			s.values[name] = true
			return nil
		}
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("option %s: invalid boolean %q", name, raw)
		}
		s.values[name] = b
	case KindInt:
		if n, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil {
			s.values[name] = n
		} else {
			s.values[name] = raw
		}
	default:
		s.values[name] = raw
	}
	return nil
}
