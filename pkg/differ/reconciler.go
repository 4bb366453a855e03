package differ

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/wonderfulspam/connector-smith/pkg/connector"
)

// Reconciler walks one connector's category folders in both trees and turns
// presence differences and content differences into changes. Content diffs are
// delegated to Diff; file reading goes through the connector Reader so parse
// failures stay soft.
type Reconciler struct {
	reader *connector.Reader

	// IncludeFilesOnFolderChange additionally emits one file-added or
	// file-removed entry per JSON file beneath a folder that exists in only
	// one tree. Off by default: a folder-level event alone describes the bulk
	// migration.
	IncludeFilesOnFolderChange bool
}

func NewReconciler(reader *connector.Reader) *Reconciler {
	if reader == nil {
		reader = connector.NewReader(nil)
	}
	return &Reconciler{reader: reader}
}

// Reconcile compares one connector across the previous and current trees and
// returns its changes in category traversal order. A filesystem error on a
// category folder aborts only this connector; the error is returned for the
// caller to record.
func (r *Reconciler) Reconcile(prevConnectorPath, currConnectorPath string) ([]Change, error) {
	var changes []Change

	for _, category := range connector.Categories {
		prevDir := filepath.Join(prevConnectorPath, category.String())
		currDir := filepath.Join(currConnectorPath, category.String())

		prevExists, err := connector.StatDir(prevDir)
		if err != nil {
			return nil, fmt.Errorf("inspecting previous %s folder: %w", category, err)
		}
		currExists, err := connector.StatDir(currDir)
		if err != nil {
			return nil, fmt.Errorf("inspecting current %s folder: %w", category, err)
		}

		switch {
		case !prevExists && !currExists:
			continue
		case prevExists && !currExists:
			changes = append(changes, FolderRemoved(category))
			if r.IncludeFilesOnFolderChange {
				for _, file := range r.reader.ListJSONFiles(prevDir) {
					changes = append(changes, FileRemoved(category, file))
				}
			}
		case !prevExists && currExists:
			changes = append(changes, FolderAdded(category))
			if r.IncludeFilesOnFolderChange {
				for _, file := range r.reader.ListJSONFiles(currDir) {
					changes = append(changes, FileAdded(category, file))
				}
			}
		default:
			changes = append(changes, r.reconcileFiles(category, prevDir, currDir)...)
		}
	}

	return changes, nil
}

// reconcileFiles handles a category folder present in both trees: the union
// of filenames decides presence changes, and files present on both sides are
// structurally diffed. A file whose content failed to parse counts as absent
// on that side, so a broken file surfaces as a presence change instead of
// crashing the comparison.
func (r *Reconciler) reconcileFiles(category connector.Category, prevDir, currDir string) []Change {
	prevFiles := r.reader.ReadCategory(prevDir)
	currFiles := r.reader.ReadCategory(currDir)

	nameSet := make(map[string]struct{}, len(prevFiles)+len(currFiles))
	for name := range prevFiles {
		nameSet[name] = struct{}{}
	}
	for name := range currFiles {
		nameSet[name] = struct{}{}
	}

	names := make([]string, 0, len(nameSet))
	for name := range nameSet {
		names = append(names, name)
	}
	sort.Strings(names)

	var changes []Change
	for _, name := range names {
		oldContent, inPrev := prevFiles[name]
		newContent, inCurr := currFiles[name]

		// Presence follows the filename union unconditionally; parseability
		// only decides what happens when the file exists on both sides.
		switch {
		case inPrev && !inCurr:
			changes = append(changes, FileRemoved(category, name))
		case !inPrev && inCurr:
			changes = append(changes, FileAdded(category, name))
		default:
			oldReadable := oldContent != nil
			newReadable := newContent != nil

			switch {
			case oldReadable && !newReadable:
				// Still on disk but its content no longer parses.
				changes = append(changes, FileRemoved(category, name))
			case !oldReadable && newReadable:
				changes = append(changes, FileAdded(category, name))
			case oldReadable && newReadable:
				prefix := strings.TrimSuffix(name, filepath.Ext(name))
				changes = append(changes, Diff(oldContent, newContent, prefix, category)...)
			}
		}
	}

	return changes
}
