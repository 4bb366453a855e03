package connector

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/sirupsen/logrus"
)

// Reader lists connectors and reads category folders of JSON definitions.
// Missing folders and unparseable files are soft conditions: they resolve to
// empty results or nil content rather than errors, so a single bad file never
// stops a comparison run.
type Reader struct {
	log *logrus.Logger
}

// NewReader creates a Reader. A nil logger falls back to the standard logger.
func NewReader(log *logrus.Logger) *Reader {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Reader{log: log}
}

// ListConnectors returns the directory basenames under root, sorted
// lexicographically. A missing or unreadable root yields an empty list.
func (r *Reader) ListConnectors(root string) []string {
	entries, err := os.ReadDir(root)
	if err != nil {
		if !os.IsNotExist(err) {
			r.log.WithError(err).WithField("root", root).Warn("Failed to list connectors")
		}
		return nil
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}

	sort.Strings(names)
	return names
}

// ReadCategory returns a mapping from JSON filename to parsed content for
// every *.json file directly inside categoryPath. A missing folder yields an
// empty map. A file that fails to read or parse maps to nil content; the
// failure is logged and the caller treats the content as absent.
func (r *Reader) ReadCategory(categoryPath string) map[string]any {
	files := make(map[string]any)

	entries, err := os.ReadDir(categoryPath)
	if err != nil {
		return files
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}

		fullPath := filepath.Join(categoryPath, entry.Name())
		data, err := os.ReadFile(fullPath)
		if err != nil {
			r.log.WithError(err).WithField("file", fullPath).Warn("Failed to read definition file")
			files[entry.Name()] = nil
			continue
		}

		var content any
		if err := json.Unmarshal(data, &content); err != nil {
			r.log.WithError(err).WithField("file", fullPath).Warn("Invalid JSON in definition file")
			files[entry.Name()] = nil
			continue
		}

		files[entry.Name()] = content
	}

	return files
}

// ListJSONFiles returns every JSON file beneath categoryPath, recursively, as
// slash-separated paths relative to categoryPath, sorted. Used when a whole
// category folder appears or disappears and each file needs its own entry.
func (r *Reader) ListJSONFiles(categoryPath string) []string {
	if info, err := os.Stat(categoryPath); err != nil || !info.IsDir() {
		return nil
	}

	matches, err := doublestar.Glob(os.DirFS(categoryPath), "**/*.json")
	if err != nil {
		r.log.WithError(err).WithField("path", categoryPath).Warn("Failed to enumerate definition files")
		return nil
	}

	sort.Strings(matches)
	return matches
}

// StatDir reports whether path exists and is a directory. A missing path is
// not an error; anything else (permissions, I/O) is.
func StatDir(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.IsDir(), nil
}
