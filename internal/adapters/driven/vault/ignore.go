package vault

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Matcher reports whether vault-relative paths are excluded.
type Matcher struct {
	patterns []string
}

// NewMatcher validates patterns and returns a matcher.
// A pattern without glob characters also excludes everything below it.
func NewMatcher(patterns []string) (*Matcher, error) {
	m := &Matcher{}
	for _, p := range patterns {
		p = strings.Trim(strings.TrimSpace(p), "/")
		if p == "" {
			continue
		}
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid ignore pattern %q", p)
		}
		m.patterns = append(m.patterns, p)
		if !strings.HasSuffix(p, "/**") {
			m.patterns = append(m.patterns, p+"/**")
		}
	}
	return m, nil
}

// Ignored reports whether rel is hidden or matches an ignore pattern.
func (m *Matcher) Ignored(rel string) bool {
	if rel == "" || rel == "." {
		return false
	}
	if isHidden(rel) {
		return true
	}
	if m == nil {
		return false
	}
	for _, p := range m.patterns {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}

// isHidden reports whether any segment of rel starts with a dot.
func isHidden(rel string) bool {
	for _, seg := range strings.Split(rel, "/") {
		if strings.HasPrefix(seg, ".") && seg != "." && seg != ".." {
			return true
		}
	}
	return false
}
