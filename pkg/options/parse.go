package options

import (
	"fmt"
	"strings"
)

// Parse builds a Store from command-line tokens.
//
// Accepted forms are "--key=value", "--key value" and a bare "--key", which
// sets a boolean option (or any option not followed by a value) to true.
// Empty tokens are ignored.
func Parse(args []string) (*Store, error) {
	s := New()
	if err := s.ParseInto(args); err != nil {
		return nil, err
	}
	return s, nil
}

// ParseInto applies command-line tokens on top of the existing values.
func (s *Store) ParseInto(args []string) error {
	for i := 0; i < len(args); i++ {
		tok := strings.TrimSpace(args[i])
		if tok == "" {
			continue
		}
		if !strings.HasPrefix(tok, "--") {
			return fmt.Errorf("unexpected argument %q: options must start with --", tok)
		}

		name, value, hasValue := strings.Cut(strings.TrimPrefix(tok, "--"), "=")
		if name == "" {
			return fmt.Errorf("invalid option token %q", tok)
		}

		if !hasValue {
			next := ""
			if i+1 < len(args) {
				next = args[i+1]
			}
			switch {
			case KindOf(name) == KindBool:
				value = "true"
			case i+1 < len(args) && !strings.HasPrefix(next, "--"):
				value = next
				i++
			default:
				s.Set(name, true)
				continue
			}
		}

		if err := s.SetFromString(name, value); err != nil {
			return err
		}
	}
	return nil
}

// ParseAssignments applies "key=value" pairs (as given to --set) on top of
// the existing values.
func (s *Store) ParseAssignments(pairs []string) error {
	for _, p := range pairs {
		name, value, ok := strings.Cut(p, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return fmt.Errorf("invalid option assignment %q: expected key=value", p)
		}
		if err := s.SetFromString(name, value); err != nil {
			return err
		}
	}
	return nil
}
