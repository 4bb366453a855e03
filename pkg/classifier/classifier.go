package classifier

import (
	"strings"

	"github.com/wonderfulspam/connector-smith/pkg/connector"
	"github.com/wonderfulspam/connector-smith/pkg/differ"
)

// Rule pairs a case-sensitive substring pattern with the severity to assign
// when it matches a change.
type Rule struct {
	Pattern  string          `yaml:"pattern" json:"pattern"`
	Severity differ.Severity `yaml:"severity" json:"severity"`
}

// DefaultRules returns the built-in rule table. Order matters: rules are
// evaluated first to last and the first match wins, so Critical patterns come
// before Major ones. Anything unmatched is Minor.
func DefaultRules() []Rule {
	return []Rule{
		{Pattern: "security", Severity: differ.SeverityCritical},
		{Pattern: "permissions", Severity: differ.SeverityCritical},
		{Pattern: "authentication", Severity: differ.SeverityCritical},
		{Pattern: "authorization", Severity: differ.SeverityCritical},
		{Pattern: "actions/", Severity: differ.SeverityMajor},
		{Pattern: "events/", Severity: differ.SeverityMajor},
		{Pattern: "file-added", Severity: differ.SeverityMajor},
		{Pattern: "file-removed", Severity: differ.SeverityMajor},
		{Pattern: "folder-added", Severity: differ.SeverityMajor},
		{Pattern: "folder-removed", Severity: differ.SeverityMajor},
		{Pattern: "endpoint", Severity: differ.SeverityMajor},
		{Pattern: "outputFields", Severity: differ.SeverityMajor},
		{Pattern: "trigger", Severity: differ.SeverityMajor},
		{Pattern: "payload", Severity: differ.SeverityMajor},
	}
}

// Classifier assigns a severity to each change from an immutable ordered rule
// table. Classification is a pure function of the change's own fields, so a
// single Classifier is safe for concurrent use.
type Classifier struct {
	rules []Rule
}

// New creates a Classifier from the given rule table. Nil means the default
// table. The slice is copied so later mutation by the caller has no effect.
func New(rules []Rule) *Classifier {
	if rules == nil {
		rules = DefaultRules()
	}
	owned := make([]Rule, len(rules))
	copy(owned, rules)
	return &Classifier{rules: owned}
}

// Classify returns the severity for a change. Changes in the auth category
// are Critical unconditionally, ahead of any pattern rule; otherwise the
// first matching rule decides, and the fallback is Minor.
func (c *Classifier) Classify(change differ.Change) differ.Severity {
	if change.Category == connector.CategoryAuth {
		return differ.SeverityCritical
	}

	for _, rule := range c.rules {
		if matches(rule.Pattern, change) {
			return rule.Severity
		}
	}

	return differ.SeverityMinor
}

// matches checks the pattern for containment against every textual facet of
// the change: key path, file name, category folder, kind, and (for modified
// changes) string values on either side.
func matches(pattern string, change differ.Change) bool {
	if strings.Contains(change.Path, pattern) {
		return true
	}
	if change.FileName != "" && strings.Contains(change.FileName, pattern) {
		return true
	}
	if strings.Contains(change.Category.String()+"/", pattern) {
		return true
	}
	if strings.Contains(string(change.Kind), pattern) {
		return true
	}

	if change.Kind == differ.KindModified {
		if old, ok := change.OldValue.(string); ok && strings.Contains(old, pattern) {
			return true
		}
		if updated, ok := change.NewValue.(string); ok && strings.Contains(updated, pattern) {
			return true
		}
	}

	return false
}
