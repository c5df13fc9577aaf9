// File: pkg/combine/patterns.go
package combine

import (
	"fmt"
	"path"
	"strings"

	"github.com/gobwas/glob"
)

// ruleKind selects which parts of a candidate path a GlobRule is matched against.
type ruleKind int

const (
	// nameRule patterns have no '/' and match the full path or the base name.
	nameRule ruleKind = iota
	// pathRule patterns contain a '/' and match the full path only.
	pathRule
	// dirRule patterns end in '/' and match directories: the candidate itself
	// when it is a directory, and every ancestor directory of it.
	dirRule
)

// GlobRule is a compiled exclusion pattern. It is immutable once compiled.
type GlobRule struct {
	Pattern string // Source pattern as supplied.
	kind    ruleKind
	glob    glob.Glob
	nested  bool // dirRule only: the pattern spans several segments.
}

// CompileRule compiles a single exclusion pattern.
func CompileRule(pattern string) (GlobRule, error) {
	trimmed := strings.TrimSpace(pattern)
	if trimmed == "" {
		return GlobRule{}, fmt.Errorf("%w: empty pattern", ErrInvalidPattern)
	}

	rule := GlobRule{Pattern: pattern, kind: nameRule}
	expr := trimmed

	if strings.HasSuffix(expr, "/") {
		rule.kind = dirRule
		expr = strings.TrimRight(expr, "/")
	}

	// A leading slash anchors the pattern at the walk root.
	if strings.HasPrefix(expr, "/") {
		expr = strings.TrimLeft(expr, "/")
		if rule.kind == nameRule {
			rule.kind = pathRule
		}
		rule.nested = true
	}

	if expr == "" {
		return GlobRule{}, fmt.Errorf("%w: %q has no name", ErrInvalidPattern, pattern)
	}

	if strings.Contains(expr, "/") {
		if rule.kind == nameRule {
			rule.kind = pathRule
		}
		rule.nested = true
	}

	g, err := glob.Compile(expr)
	if err != nil {
		return GlobRule{}, fmt.Errorf("%w: %q: %v", ErrInvalidPattern, pattern, err)
	}
	rule.glob = g

	return rule, nil
}

// Match reports whether the slash-separated path p is matched by the rule.
func (r GlobRule) Match(p string, isDir bool) bool {
	if p == "" || r.glob == nil {
		return false
	}

	switch r.kind {
	case pathRule:
		return r.glob.Match(p)
	case dirRule:
		return r.matchDirectories(p, isDir)
	default:
		return r.glob.Match(p) || r.glob.Match(path.Base(p))
	}
}

// matchDirectories checks every directory on p. Single-segment patterns are
// compared with each segment, nested ones with each directory prefix.
func (r GlobRule) matchDirectories(p string, isDir bool) bool {
	segments := strings.Split(strings.Trim(p, "/"), "/")
	if !isDir {
		segments = segments[:len(segments)-1]
	}

	for i, segment := range segments {
		target := segment
		if r.nested {
			target = strings.Join(segments[:i+1], "/")
		}
		if r.glob.Match(target) {
			return true
		}
	}
	return false
}

// String returns the source pattern.
func (r GlobRule) String() string {
	return r.Pattern
}
