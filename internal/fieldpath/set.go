package fieldpath

import (
	"fmt"

	"mythus/internal/sheet"
)

// Set writes value at path and returns the resulting document. The input is
// never mutated: containers along the path are shallow-copied, everything off
// the path is shared with the input. Missing intermediate containers are
// created, a map for a key segment and a slice for an index segment; a slice
// too short for the index is grown with nil holes. When the final segment is
// an index and both the existing element and the value are maps, the value is
// shallow-merged over the element instead of replacing it.
func Set(doc sheet.Document, path string, value any) (sheet.Document, error) {
	segments, err := parse(path)
	if err != nil {
		return nil, err
	}

	out, err := setValue(map[string]any(doc), segments, value)
	if err != nil {
		return nil, err
	}
	return sheet.Document(out.(map[string]any)), nil
}

// Get reads the value at path. The second return is false when any segment is
// missing or addresses a container of the wrong shape.
func Get(doc sheet.Document, path string) (any, bool) {
	segments, err := parse(path)
	if err != nil {
		return nil, false
	}

	var current any = map[string]any(doc)
	for _, seg := range segments {
		if seg.isIndex {
			rows, ok := asSlice(current)
			if !ok || seg.index >= len(rows) {
				return nil, false
			}
			current = rows[seg.index]
			continue
		}
		m, ok := asMap(current)
		if !ok {
			return nil, false
		}
		current, ok = m[seg.key]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

func setValue(current any, segments []segment, value any) (any, error) {
	if len(segments) == 0 {
		return value, nil
	}
	seg, rest := segments[0], segments[1:]

	if seg.isIndex {
		rows, ok := asSlice(current)
		if current != nil && !ok {
			return nil, fmt.Errorf("fieldpath: segment %s addresses a %T, want a slice", seg, current)
		}
		length := len(rows)
		if seg.index+1 > length {
			length = seg.index + 1
		}
		out := make([]any, length)
		copy(out, rows)

		if len(rest) == 0 {
			out[seg.index] = mergeTerminal(out[seg.index], value)
			return out, nil
		}
		next, err := setValue(out[seg.index], rest, value)
		if err != nil {
			return nil, err
		}
		out[seg.index] = next
		return out, nil
	}

	m, ok := asMap(current)
	if current != nil && !ok {
		return nil, fmt.Errorf("fieldpath: segment %s addresses a %T, want a map", seg, current)
	}
	out := make(map[string]any, len(m)+1)
	for k, v := range m {
		out[k] = v
	}

	if len(rest) == 0 {
		out[seg.key] = value
		return out, nil
	}
	next, err := setValue(out[seg.key], rest, value)
	if err != nil {
		return nil, err
	}
	out[seg.key] = next
	return out, nil
}

// mergeTerminal overlays a map value onto an existing map element; any other
// combination replaces the element outright.
func mergeTerminal(existing, value any) any {
	existingMap, ok := asMap(existing)
	if !ok {
		return value
	}
	valueMap, ok := asMap(value)
	if !ok {
		return value
	}

	merged := make(map[string]any, len(existingMap)+len(valueMap))
	for k, v := range existingMap {
		merged[k] = v
	}
	for k, v := range valueMap {
		merged[k] = v
	}
	return merged
}

func asMap(value any) (map[string]any, bool) {
	switch v := value.(type) {
	case map[string]any:
		return v, true
	case sheet.Document:
		return map[string]any(v), true
	default:
		return nil, false
	}
}

func asSlice(value any) ([]any, bool) {
	rows, ok := value.([]any)
	return rows, ok
}
