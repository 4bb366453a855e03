package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wonderfulspam/connector-smith/pkg/connector"
	"github.com/wonderfulspam/connector-smith/pkg/differ"
)

func TestClassify_AuthCategoryIsAlwaysCritical(t *testing.T) {
	c := New(nil)

	tests := []struct {
		name   string
		change differ.Change
	}{
		{"plain auth change", differ.Modified(connector.CategoryAuth, "auth.type", "OAuth2", "API Key")},
		{"auth path with a major keyword", differ.Modified(connector.CategoryAuth, "auth.outputFields", "a", "b")},
		{"auth folder removed", differ.FolderRemoved(connector.CategoryAuth)},
		{"auth file added", differ.FileAdded(connector.CategoryAuth, "auth.json")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, differ.SeverityCritical, c.Classify(tt.change))
		})
	}
}

func TestClassify_PatternTable(t *testing.T) {
	c := New(nil)

	tests := []struct {
		name     string
		change   differ.Change
		expected differ.Severity
	}{
		{
			"security keyword in path",
			differ.Modified(connector.CategoryMetadata, "info.securitySettings", 1.0, 2.0),
			differ.SeverityCritical,
		},
		{
			"permissions keyword in path",
			differ.Added(connector.CategoryMetadata, "info.permissions.scopes", []any{"read"}),
			differ.SeverityCritical,
		},
		{
			"authentication keyword in string value",
			differ.Modified(connector.CategoryMetadata, "info.docs", "basic", "authentication required"),
			differ.SeverityCritical,
		},
		{
			"actions category folder",
			differ.Modified(connector.CategoryActions, "createUser.name", "a", "b"),
			differ.SeverityMajor,
		},
		{
			"events category folder",
			differ.Added(connector.CategoryEvents, "created.filter", "x"),
			differ.SeverityMajor,
		},
		{
			"file added kind",
			differ.FileAdded(connector.CategoryMetadata, "info.json"),
			differ.SeverityMajor,
		},
		{
			"folder removed kind",
			differ.FolderRemoved(connector.CategoryMeta),
			differ.SeverityMajor,
		},
		{
			"endpoint keyword",
			differ.Modified(connector.CategoryMetadata, "info.endpoint", "/v1", "/v2"),
			differ.SeverityMajor,
		},
		{
			"trigger keyword",
			differ.Modified(connector.CategoryMetadata, "info.triggerMode", "poll", "push"),
			differ.SeverityMajor,
		},
		{
			"no rule matches",
			differ.Modified(connector.CategoryMetadata, "info.description", "old", "new"),
			differ.SeverityMinor,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, c.Classify(tt.change))
		})
	}
}

func TestClassify_FirstMatchWins(t *testing.T) {
	// "security" (Critical) appears before "endpoint" (Major); a change
	// matching both gets the earlier rule's severity.
	c := New(nil)
	change := differ.Modified(connector.CategoryMetadata, "info.endpoint.security", "a", "b")

	assert.Equal(t, differ.SeverityCritical, c.Classify(change))
}

func TestClassify_CustomRules(t *testing.T) {
	c := New([]Rule{
		{Pattern: "description", Severity: differ.SeverityCritical},
	})

	change := differ.Modified(connector.CategoryMetadata, "info.description", "a", "b")
	assert.Equal(t, differ.SeverityCritical, c.Classify(change))

	// Patterns from the default table are gone.
	endpoint := differ.Modified(connector.CategoryMetadata, "info.endpoint", "a", "b")
	assert.Equal(t, differ.SeverityMinor, c.Classify(endpoint))
}

func TestClassify_Deterministic(t *testing.T) {
	c := New(nil)
	change := differ.Modified(connector.CategoryEvents, "created.payload", "a", "b")

	first := c.Classify(change)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, c.Classify(change))
	}
}

func TestClassify_RuleSliceIsCopied(t *testing.T) {
	rules := []Rule{{Pattern: "endpoint", Severity: differ.SeverityCritical}}
	c := New(rules)

	rules[0].Severity = differ.SeverityMinor

	change := differ.Modified(connector.CategoryMetadata, "info.endpoint", "a", "b")
	assert.Equal(t, differ.SeverityCritical, c.Classify(change))
}

func TestClassify_NonStringValuesDoNotMatchValuePatterns(t *testing.T) {
	c := New(nil)

	// The keyword appears only inside a nested object value, which is not
	// scanned; only string values are.
	change := differ.Modified(connector.CategoryMetadata, "info.x",
		map[string]any{"note": "security"}, map[string]any{"note": "other"})

	assert.Equal(t, differ.SeverityMinor, c.Classify(change))
}
