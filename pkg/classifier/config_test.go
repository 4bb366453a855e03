package classifier

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonderfulspam/connector-smith/pkg/differ"
)

func TestLoadConfig_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yml")
	content := `rules:
  - pattern: webhook
    severity: P0
  - pattern: label
    severity: P2
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	config, err := LoadConfig(path)
	require.NoError(t, err)

	require.Len(t, config.Rules, 2)
	assert.Equal(t, "webhook", config.Rules[0].Pattern)
	assert.Equal(t, differ.SeverityCritical, config.Rules[0].Severity)
	assert.Equal(t, differ.SeverityMinor, config.Rules[1].Severity)
}

func TestLoadConfig_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.json")
	content := `{"rules":[{"pattern":"webhook","severity":"P1"}]}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	config, err := LoadConfig(path)
	require.NoError(t, err)

	require.Len(t, config.Rules, 1)
	assert.Equal(t, differ.SeverityMajor, config.Rules[0].Severity)
}

func TestLoadConfig_EmptyFileFallsBackToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yml")
	require.NoError(t, os.WriteFile(path, []byte(""), 0644))

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, DefaultRules(), config.Rules)
}

func TestLoadConfig_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yml")
	require.NoError(t, os.WriteFile(path, []byte("rules: [unterminated"), 0644))

	_, err := LoadConfig(path)
	assert.ErrorContains(t, err, "failed to parse rules file")
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}

func TestLoadConfig_InvalidSeverity(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yml")
	content := `rules:
  - pattern: webhook
    severity: urgent
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	_, err := LoadConfig(path)
	assert.ErrorContains(t, err, "unknown severity")
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"rules.yml", "rules.json"} {
		path := filepath.Join(dir, name)
		require.NoError(t, SaveConfig(DefaultConfig(), path))

		loaded, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, DefaultRules(), loaded.Rules)
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())

	empty := &Config{Rules: []Rule{{Pattern: "", Severity: differ.SeverityMajor}}}
	assert.ErrorContains(t, empty.Validate(), "pattern must not be empty")
}

func TestDefaultRules_CriticalBeforeMajor(t *testing.T) {
	rules := DefaultRules()

	sawMajor := false
	for _, rule := range rules {
		if rule.Severity == differ.SeverityMajor {
			sawMajor = true
		}
		if rule.Severity == differ.SeverityCritical && sawMajor {
			t.Fatal("Critical rules must precede Major rules in the default table")
		}
	}
}
