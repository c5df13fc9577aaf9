// File: pkg/combine/filter.go
package combine

import (
	"path"
	"strings"
)

// ExtensionSet is a set of extensions without the leading dot.
// An empty set matches every extension. Membership is case-sensitive.
type ExtensionSet map[string]struct{}

// NewExtensionSet builds an ExtensionSet, stripping leading dots and blanks.
func NewExtensionSet(exts ...string) ExtensionSet {
	set := make(ExtensionSet, len(exts))
	for _, ext := range exts {
		ext = strings.TrimLeft(strings.TrimSpace(ext), ".")
		if ext == "" {
			continue
		}
		set[ext] = struct{}{}
	}
	return set
}

// Empty reports whether the set places no constraint on extensions.
func (s ExtensionSet) Empty() bool {
	return len(s) == 0
}

// Allows reports whether a file with the given path passes the extension check.
func (s ExtensionSet) Allows(p string) bool {
	if s.Empty() {
		return true
	}
	ext := extensionOf(p)
	if ext == "" {
		return false
	}
	_, ok := s[ext]
	return ok
}

// extensionOf returns the text after the last dot of the base name.
// Dotfiles such as ".bashrc" have no extension.
func extensionOf(p string) string {
	base := path.Base(normalizePath(p))
	idx := strings.LastIndexByte(base, '.')
	if idx <= 0 || idx == len(base)-1 {
		return ""
	}
	return base[idx+1:]
}

// FilterKind tags the variant of a Filter.
type FilterKind int

const (
	// ByName matches a substring of the base name.
	ByName FilterKind = iota
	// ByPath matches a substring of the relative path.
	ByPath
	// ByContent matches a substring of the file content.
	ByContent
)

// String returns the flag-style name of the kind.
func (k FilterKind) String() string {
	switch k {
	case ByName:
		return "name"
	case ByPath:
		return "path"
	case ByContent:
		return "content"
	default:
		return "unknown"
	}
}

// Filter is an ad-hoc inclusion filter. Filters combine with OR semantics.
type Filter struct {
	Kind  FilterKind
	Value string
}

// NameFilter matches files whose base name contains s.
func NameFilter(s string) Filter { return Filter{Kind: ByName, Value: s} }

// PathFilter matches files whose relative path contains s.
func PathFilter(s string) Filter { return Filter{Kind: ByPath, Value: s} }

// ContentFilter matches files whose content contains s.
func ContentFilter(s string) Filter { return Filter{Kind: ByContent, Value: s} }

// Verdict is the outcome of evaluating a candidate path.
type Verdict int

const (
	// Reject excludes the candidate.
	Reject Verdict = iota
	// Accept includes the candidate.
	Accept
	// Pending includes the candidate only if a content filter matches once it is read.
	Pending
)

// Selector decides which candidates are aggregated. It holds only immutable
// state and can be shared between goroutines.
type Selector struct {
	rules      *RuleSet
	extensions ExtensionSet
	pathFilter []Filter // ByName and ByPath filters
	content    []Filter // ByContent filters, evaluated last
}

// NewSelector creates a Selector. A nil rule set excludes nothing.
func NewSelector(rules *RuleSet, extensions ExtensionSet, filters []Filter) *Selector {
	s := &Selector{rules: rules, extensions: extensions}
	for _, f := range filters {
		if f.Value == "" {
			continue
		}
		if f.Kind == ByContent {
			s.content = append(s.content, f)
		} else {
			s.pathFilter = append(s.pathFilter, f)
		}
	}
	return s
}

// Rules returns the selector's rule set.
func (s *Selector) Rules() *RuleSet {
	return s.rules
}

// HasFilters reports whether any name, path or content filter is configured.
func (s *Selector) HasFilters() bool {
	return len(s.pathFilter) > 0 || len(s.content) > 0
}

// Evaluate decides on a file path without reading its content.
func (s *Selector) Evaluate(p string) Verdict {
	if p == "" {
		return Reject
	}

	// No rules, no extensions and no filters: everything goes.
	if s.rules.Len() == 0 && s.extensions.Empty() && !s.HasFilters() {
		return Accept
	}

	if s.rules.Matches(p, false) {
		return Reject
	}

	extOK := s.extensions.Allows(p)

	if !s.HasFilters() {
		if extOK {
			return Accept
		}
		return Reject
	}

	if !extOK {
		return Reject
	}

	normalized := normalizePath(p)
	base := path.Base(normalized)
	for _, f := range s.pathFilter {
		switch f.Kind {
		case ByName:
			if strings.Contains(base, f.Value) {
				return Accept
			}
		case ByPath:
			if strings.Contains(normalized, f.Value) {
				return Accept
			}
		}
	}

	if len(s.content) > 0 {
		return Pending
	}
	return Reject
}

// MatchContent reports whether any content filter matches content.
func (s *Selector) MatchContent(content string) bool {
	for _, f := range s.content {
		if strings.Contains(content, f.Value) {
			return true
		}
	}
	return false
}

// ShouldInclude evaluates p and, only when the verdict is Pending, calls load
// to resolve it against the content filters.
func (s *Selector) ShouldInclude(p string, load func() (string, error)) (bool, error) {
	switch s.Evaluate(p) {
	case Accept:
		return true, nil
	case Pending:
		if load == nil {
			return false, nil
		}
		content, err := load()
		if err != nil {
			return false, err
		}
		return s.MatchContent(content), nil
	default:
		return false, nil
	}
}

// PruneDir reports whether the directory at rel must not be descended into.
func (s *Selector) PruneDir(rel string) bool {
	if rel == "" || rel == "." {
		return false
	}
	return s.rules.Matches(rel, true)
}
