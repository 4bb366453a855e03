package differ

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"

	"github.com/wonderfulspam/connector-smith/pkg/connector"
)

// Diff recursively compares two parsed JSON documents and returns one change
// per differing key, tagged with the given category. Paths are dotted key
// sequences rooted at prefix (typically the file's base name). The function is
// pure: it never touches the filesystem and never mutates its inputs.
//
// Presence decisions about the documents themselves (file added or removed)
// belong to the caller; Diff assumes both sides exist.
func Diff(oldValue, newValue any, prefix string, category connector.Category) []Change {
	oldObj, oldIsObj := oldValue.(map[string]any)
	newObj, newIsObj := newValue.(map[string]any)

	if oldIsObj && newIsObj {
		return diffObjects(oldObj, newObj, prefix, category)
	}

	return compareValues(oldValue, newValue, prefix, category)
}

func diffObjects(oldObj, newObj map[string]any, prefix string, category connector.Category) []Change {
	var changes []Change

	// Union of keys, iterated in sorted order so output is deterministic.
	keySet := make(map[string]struct{}, len(oldObj)+len(newObj))
	for key := range oldObj {
		keySet[key] = struct{}{}
	}
	for key := range newObj {
		keySet[key] = struct{}{}
	}

	keys := make([]string, 0, len(keySet))
	for key := range keySet {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		fullPath := key
		if prefix != "" {
			fullPath = prefix + "." + key
		}

		// A key holding null is present; an absent key is not.
		oldVal, inOld := oldObj[key]
		newVal, inNew := newObj[key]

		switch {
		case !inOld && inNew:
			changes = append(changes, Added(category, fullPath, newVal))
		case inOld && !inNew:
			changes = append(changes, Removed(category, fullPath, oldVal))
		default:
			changes = append(changes, compareValues(oldVal, newVal, fullPath, category)...)
		}
	}

	return changes
}

func compareValues(oldVal, newVal any, path string, category connector.Category) []Change {
	// A type change is always a single modification, never a remove+add pair,
	// even when the rendered representations coincide (0 vs "0").
	if jsonType(oldVal) != jsonType(newVal) {
		return []Change{Modified(category, path, oldVal, newVal)}
	}

	switch old := oldVal.(type) {
	case map[string]any:
		return diffObjects(old, newVal.(map[string]any), path, category)
	case []any:
		if !equalArraysIgnoringOrder(old, newVal.([]any)) {
			return []Change{Modified(category, path, oldVal, newVal)}
		}
		return nil
	default:
		if !reflect.DeepEqual(oldVal, newVal) {
			return []Change{Modified(category, path, oldVal, newVal)}
		}
		return nil
	}
}

// jsonType maps a decoded value onto the JSON type lattice.
func jsonType(value any) string {
	switch value.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64, json.Number:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return "unknown"
	}
}

// equalArraysIgnoringOrder compares two arrays as whole values after sorting
// both by the canonical JSON encoding of each element. Pure reordering is not
// a change; any content difference is. Element-wise diffing is deliberately
// not attempted, so paths never contain array indices.
func equalArraysIgnoringOrder(a, b []any) bool {
	if len(a) != len(b) {
		return false
	}

	return reflect.DeepEqual(canonicalElements(a), canonicalElements(b))
}

func canonicalElements(values []any) []string {
	encoded := make([]string, len(values))
	for i, value := range values {
		data, err := json.Marshal(value)
		if err != nil {
			encoded[i] = fmt.Sprintf("%v", value)
			continue
		}
		encoded[i] = string(data)
	}

	sort.Strings(encoded)
	return encoded
}
