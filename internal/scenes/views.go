package scenes

import (
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortKey selects the column scene views are ordered by.
type SortKey string

const (
	SortByNumber  SortKey = "number"
	SortByHeader  SortKey = "header"
	SortByType    SortKey = "type"
	SortByPreview SortKey = "preview"
)

// SortOrder toggles ascending/descending output.
type SortOrder string

const (
	OrderAscending  SortOrder = "asc"
	OrderDescending SortOrder = "desc"
)

// ParseSortKey converts user input into a known SortKey.
func ParseSortKey(value string) (SortKey, bool) {
	switch SortKey(strings.ToLower(strings.TrimSpace(value))) {
	case SortByNumber:
		return SortByNumber, true
	case SortByHeader:
		return SortByHeader, true
	case SortByType:
		return SortByType, true
	case SortByPreview:
		return SortByPreview, true
	}
	return "", false
}

// ParseSortOrder converts user input into a known SortOrder.
func ParseSortOrder(value string) (SortOrder, bool) {
	switch SortOrder(strings.ToLower(strings.TrimSpace(value))) {
	case OrderAscending:
		return OrderAscending, true
	case OrderDescending:
		return OrderDescending, true
	}
	return "", false
}

// SceneType extracts INT/EXT from a slugline header. Combined sluglines
// report as INT/EXT whichever half comes first ("INT./EXT. CAR",
// "EXT./INT. CAR").
func SceneType(header string) string {
	upper := strings.ToUpper(strings.TrimSpace(header))
	intPrefix := strings.HasPrefix(upper, "INT")
	extPrefix := strings.HasPrefix(upper, "EXT")
	head := upper[:min(len(upper), 12)]
	switch {
	case intPrefix && strings.Contains(head, "EXT"):
		return "INT/EXT"
	case extPrefix && strings.Contains(head, "INT"):
		return "INT/EXT"
	case intPrefix:
		return "INT"
	case extPrefix:
		return "EXT"
	}
	return ""
}

// Filter applies a case-insensitive substring match over header and body
// preview, plus an optional INT/EXT type filter.
func Filter(scenes []Summary, query, typeFilter string) []Summary {
	needle := strings.ToLower(strings.TrimSpace(query))
	wantType := strings.ToUpper(strings.TrimSpace(typeFilter))

	out := make([]Summary, 0, len(scenes))
	for _, scene := range scenes {
		if needle != "" &&
			!strings.Contains(strings.ToLower(scene.Header), needle) &&
			!strings.Contains(strings.ToLower(scene.BodyPreview), needle) {
			continue
		}
		if wantType != "" && SceneType(scene.Header) != wantType {
			continue
		}
		out = append(out, scene)
	}
	return out
}

// Sort returns a stable permutation of scenes ordered by key. Scene numbers
// compare numerically (with a collated tiebreak for suffixes like "12A");
// every other key compares case-insensitively under the neutral locale.
func Sort(scenes []Summary, key SortKey, order SortOrder) []Summary {
	out := make([]Summary, len(scenes))
	copy(out, scenes)

	coll := collate.New(language.Und, collate.IgnoreCase)
	less := func(a, b Summary) bool {
		switch key {
		case SortByNumber:
			return compareSceneNumbers(coll, a.Number, b.Number) < 0
		case SortByType:
			return coll.CompareString(SceneType(a.Header), SceneType(b.Header)) < 0
		case SortByPreview:
			return coll.CompareString(a.BodyPreview, b.BodyPreview) < 0
		default:
			return coll.CompareString(a.Header, b.Header) < 0
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if order == OrderDescending {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}

// compareSceneNumbers orders "7" before "12A" and "12" before "12A".
func compareSceneNumbers(coll *collate.Collator, a, b string) int {
	aNum, aRest, aOK := splitSceneNumber(a)
	bNum, bRest, bOK := splitSceneNumber(b)
	if aOK && bOK {
		if aNum != bNum {
			if aNum < bNum {
				return -1
			}
			return 1
		}
		return coll.CompareString(aRest, bRest)
	}
	if aOK != bOK {
		// Purely alphabetic numbers sort after numeric ones.
		if aOK {
			return -1
		}
		return 1
	}
	return coll.CompareString(a, b)
}

func splitSceneNumber(value string) (int, string, bool) {
	trimmed := strings.TrimSpace(value)
	i := 0
	for i < len(trimmed) && trimmed[i] >= '0' && trimmed[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, trimmed, false
	}
	num, err := strconv.Atoi(trimmed[:i])
	if err != nil {
		return 0, trimmed, false
	}
	return num, trimmed[i:], true
}
