package differ

import (
	"github.com/wonderfulspam/connector-smith/pkg/connector"
)

// ChangeKind discriminates the Change union.
type ChangeKind string

const (
	KindFolderAdded   ChangeKind = "folder-added"
	KindFolderRemoved ChangeKind = "folder-removed"
	KindFileAdded     ChangeKind = "file-added"
	KindFileRemoved   ChangeKind = "file-removed"
	KindAdded         ChangeKind = "added"
	KindRemoved       ChangeKind = "removed"
	KindModified      ChangeKind = "modified"
)

// Severity is the priority assigned to a change by the classifier.
type Severity string

const (
	SeverityCritical Severity = "P0"
	SeverityMajor    Severity = "P1"
	SeverityMinor    Severity = "P2"
)

// Rank orders severities: lower is more severe.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityMajor:
		return 1
	default:
		return 2
	}
}

func (s Severity) IsValid() bool {
	return s == SeverityCritical || s == SeverityMajor || s == SeverityMinor
}

// Change is a single detected difference. Only the fields relevant to the
// kind are populated: folder changes carry just the category, file changes add
// the file name, and key-level changes carry a dotted path plus the affected
// values. Severity is assigned after the fact by the classifier.
type Change struct {
	Kind     ChangeKind         `json:"kind"`
	Category connector.Category `json:"category"`
	FileName string             `json:"file_name,omitempty"`
	Path     string             `json:"path,omitempty"`
	OldValue any                `json:"old_value,omitempty"`
	NewValue any                `json:"new_value,omitempty"`
	Severity Severity           `json:"severity,omitempty"`
}

func FolderAdded(category connector.Category) Change {
	return Change{Kind: KindFolderAdded, Category: category}
}

func FolderRemoved(category connector.Category) Change {
	return Change{Kind: KindFolderRemoved, Category: category}
}

func FileAdded(category connector.Category, fileName string) Change {
	return Change{Kind: KindFileAdded, Category: category, FileName: fileName}
}

func FileRemoved(category connector.Category, fileName string) Change {
	return Change{Kind: KindFileRemoved, Category: category, FileName: fileName}
}

func Added(category connector.Category, path string, value any) Change {
	return Change{Kind: KindAdded, Category: category, Path: path, NewValue: value}
}

func Removed(category connector.Category, path string, value any) Change {
	return Change{Kind: KindRemoved, Category: category, Path: path, OldValue: value}
}

func Modified(category connector.Category, path string, oldValue, newValue any) Change {
	return Change{Kind: KindModified, Category: category, Path: path, OldValue: oldValue, NewValue: newValue}
}

// ConnectorReport holds every change detected for a single connector. A
// connector whose reconciliation failed carries ProcessingError and an empty
// change list; the rest of the batch is unaffected.
type ConnectorReport struct {
	Connector       string   `json:"connector"`
	Changes         []Change `json:"changes"`
	ProcessingError string   `json:"processing_error,omitempty"`
}

func (r *ConnectorReport) HasChanges() bool {
	return len(r.Changes) > 0
}

// CountBySeverity tallies the report's changes per severity level.
func (r *ConnectorReport) CountBySeverity() map[Severity]int {
	counts := make(map[Severity]int)
	for _, change := range r.Changes {
		counts[change.Severity]++
	}
	return counts
}
