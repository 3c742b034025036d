package license

import (
	"os"
	"strings"
)

// Store holds the set of authorized device identifiers. The set is loaded
// once at startup and never mutated by runtime requests; membership is an
// exact, case-sensitive string match.
type Store struct {
	allowed map[string]struct{}
}

// NewStore creates a store over the given identifiers. Empty entries are
// ignored.
func NewStore(ids []string) *Store {
	allowed := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		allowed[id] = struct{}{}
	}
	return &Store{allowed: allowed}
}

// Allowed reports whether the identifier is in the allow-set
func (s *Store) Allowed(id string) bool {
	_, ok := s.allowed[id]
	return ok
}

// Len returns the number of authorized devices
func (s *Store) Len() int {
	return len(s.allowed)
}

// ParseList splits a comma-separated identifier list
func ParseList(csv string) []string {
	var ids []string
	for _, id := range strings.Split(csv, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// LoadFile reads one identifier per line, skipping blanks and '#' comments
func LoadFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var ids []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ids = append(ids, line)
	}
	return ids, nil
}
