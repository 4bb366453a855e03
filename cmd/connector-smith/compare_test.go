package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wonderfulspam/connector-smith/pkg/differ"
)

func writeFixture(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
}

func resetCompareFlags() {
	compareCmd.SetContext(context.Background())
	previousRoot = ""
	currentRoot = ""
	outputFile = ""
	format = "table"
	rulesFile = ""
	includeFolderFiles = false
	concurrency = 0
}

func TestRunCompare_JSONOutputFile(t *testing.T) {
	resetCompareFlags()

	prev := t.TempDir()
	curr := t.TempDir()
	writeFixture(t, filepath.Join(prev, "okta", "auth", "auth.json"), `{"type":"OAuth2"}`)
	writeFixture(t, filepath.Join(curr, "okta", "auth", "auth.json"), `{"type":"API Key"}`)

	resultFile := filepath.Join(t.TempDir(), "result.json")

	previousRoot = prev
	currentRoot = curr
	format = "json"
	outputFile = resultFile

	if err := runCompare(compareCmd, nil); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	data, err := os.ReadFile(resultFile)
	if err != nil {
		t.Fatalf("Expected result file to be written: %v", err)
	}

	var reports []differ.ConnectorReport
	if err := json.Unmarshal(data, &reports); err != nil {
		t.Fatalf("Expected valid JSON output: %v", err)
	}

	if len(reports) != 1 || reports[0].Connector != "okta" {
		t.Fatalf("Expected one okta report, got %v", reports)
	}
	if len(reports[0].Changes) != 1 {
		t.Fatalf("Expected 1 change, got %d", len(reports[0].Changes))
	}
	if reports[0].Changes[0].Severity != differ.SeverityCritical {
		t.Errorf("Expected auth change to be critical, got %s", reports[0].Changes[0].Severity)
	}
}

func TestRunCompare_BothRootsMissing(t *testing.T) {
	resetCompareFlags()

	base := t.TempDir()
	previousRoot = filepath.Join(base, "prev")
	currentRoot = filepath.Join(base, "curr")
	format = "json"

	err := runCompare(compareCmd, nil)
	if err == nil {
		t.Fatal("Expected error when both roots are missing")
	}
	if !strings.Contains(err.Error(), "comparing connector trees") {
		t.Errorf("Expected wrapped engine error, got: %v", err)
	}
}

func TestRunCompare_CustomRulesFile(t *testing.T) {
	resetCompareFlags()

	prev := t.TempDir()
	curr := t.TempDir()
	writeFixture(t, filepath.Join(prev, "asana", "metadata", "info.json"), `{"description":"a"}`)
	writeFixture(t, filepath.Join(curr, "asana", "metadata", "info.json"), `{"description":"b"}`)

	rules := filepath.Join(t.TempDir(), "rules.yml")
	writeFixture(t, rules, "rules:\n  - pattern: description\n    severity: P0\n")

	resultFile := filepath.Join(t.TempDir(), "result.json")

	previousRoot = prev
	currentRoot = curr
	format = "json"
	outputFile = resultFile
	rulesFile = rules

	if err := runCompare(compareCmd, nil); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	data, err := os.ReadFile(resultFile)
	if err != nil {
		t.Fatalf("Expected result file: %v", err)
	}

	var reports []differ.ConnectorReport
	if err := json.Unmarshal(data, &reports); err != nil {
		t.Fatalf("Expected valid JSON: %v", err)
	}
	if reports[0].Changes[0].Severity != differ.SeverityCritical {
		t.Errorf("Expected custom rule to classify description as critical, got %s", reports[0].Changes[0].Severity)
	}
}

func TestRunCompare_InvalidRulesFile(t *testing.T) {
	resetCompareFlags()

	previousRoot = t.TempDir()
	currentRoot = t.TempDir()
	rulesFile = filepath.Join(t.TempDir(), "missing.yml")

	err := runCompare(compareCmd, nil)
	if err == nil {
		t.Fatal("Expected error for missing rules file")
	}
	if !strings.Contains(err.Error(), "loading rules file") {
		t.Errorf("Expected rules loading error, got: %v", err)
	}
}
