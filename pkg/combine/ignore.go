// File: pkg/combine/ignore.go
package combine

import (
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// RuleSet is the compiled, ordered collection of exclusion rules for a run:
// default exclusions, then user exclusions, then the unsupported-extension
// blacklist. Any matching rule excludes. A RuleSet is never modified after
// BuildRuleSet returns and is safe for concurrent use.
type RuleSet struct {
	rules []GlobRule
}

// BuildRuleSet compiles the full exclusion rule set for a run.
// A malformed pattern returns an error wrapping ErrInvalidPattern.
func BuildRuleSet(userExclusions []string) (*RuleSet, error) {
	patterns := make([]string, 0, len(DefaultExclusions)+len(userExclusions)+len(UnsupportedExtensions))
	patterns = append(patterns, DefaultExclusions...)
	for _, p := range userExclusions {
		if strings.TrimSpace(p) == "" {
			continue
		}
		patterns = append(patterns, p)
	}
	for _, ext := range UnsupportedExtensions {
		patterns = append(patterns, "*."+ext)
	}

	return CompileRuleSet(patterns...)
}

// CompileRuleSet compiles exactly the given patterns, without defaults.
func CompileRuleSet(patterns ...string) (*RuleSet, error) {
	rs := &RuleSet{rules: make([]GlobRule, 0, len(patterns))}
	for _, p := range patterns {
		rule, err := CompileRule(p)
		if err != nil {
			return nil, err
		}
		rs.rules = append(rs.rules, rule)
	}
	return rs, nil
}

// Len returns the number of compiled rules.
func (rs *RuleSet) Len() int {
	if rs == nil {
		return 0
	}
	return len(rs.rules)
}

// Patterns returns the source patterns in evaluation order.
func (rs *RuleSet) Patterns() []string {
	if rs == nil {
		return nil
	}
	out := make([]string, len(rs.rules))
	for i, r := range rs.rules {
		out[i] = r.Pattern
	}
	return out
}

// Matches checks if the given path matches any exclusion rule.
func (rs *RuleSet) Matches(path string, isDir bool) bool {
	_, matched := rs.MatchingRule(path, isDir)
	return matched
}

// MatchingRule returns the first rule that matches path, if any.
func (rs *RuleSet) MatchingRule(path string, isDir bool) (GlobRule, bool) {
	if rs == nil {
		return GlobRule{}, false
	}
	normalizedPath := normalizePath(path)
	for _, rule := range rs.rules {
		if rule.Match(normalizedPath, isDir) {
			return rule, true
		}
	}
	return GlobRule{}, false
}

// logMatch writes a debug line naming the rule that excluded path.
func (rs *RuleSet) logMatch(logger *zap.Logger, path string, isDir bool) {
	if ce := logger.Check(zap.DebugLevel, "Path matches exclusion rule"); ce != nil {
		rule, _ := rs.MatchingRule(path, isDir)
		ce.Write(zap.String("path", path), zap.String("pattern", rule.Pattern), zap.Bool("dir", isDir))
	}
}

// normalizePath converts OS-specific separators to forward slashes.
func normalizePath(path string) string {
	return filepath.ToSlash(path)
}
