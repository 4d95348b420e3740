package fieldpath_test

import (
	"testing"

	"mythus/internal/fieldpath"
	"mythus/internal/sheet"
)

func TestSetFlatFieldLeavesInputUntouched(t *testing.T) {
	doc := sheet.Document{"director": "", "title": "Night Shoot"}

	next, err := fieldpath.Set(doc, "director", "Maya Rao")
	if err != nil {
		t.Fatalf("Set returned error: %v", err)
	}

	if got, _ := fieldpath.Get(next, "director"); got != "Maya Rao" {
		t.Fatalf("unexpected value in next: %v", got)
	}
	if got, _ := fieldpath.Get(doc, "director"); got != "" {
		t.Fatalf("input document mutated: %v", got)
	}
	if got, _ := fieldpath.Get(next, "title"); got != "Night Shoot" {
		t.Fatalf("sibling field lost: %v", got)
	}
}

func TestSetSharesUntouchedBranches(t *testing.T) {
	cast := []any{map[string]any{"artist": "J. Rao"}}
	doc := sheet.Document{
		"cast":   cast,
		"scenes": []any{map[string]any{"scene_no": ""}},
	}

	next, err := fieldpath.Set(doc, "scenes[0].scene_no", "12A")
	if err != nil {
		t.Fatalf("Set returned error: %v", err)
	}

	if got, _ := fieldpath.Get(next, "scenes[0].scene_no"); got != "12A" {
		t.Fatalf("unexpected value: %v", got)
	}
	if got, _ := fieldpath.Get(doc, "scenes[0].scene_no"); got != "" {
		t.Fatalf("input table mutated: %v", got)
	}
	// The untouched table must be the same backing data, not a copy.
	nextCast, ok := next["cast"].([]any)
	if !ok || len(nextCast) != 1 {
		t.Fatalf("cast branch changed shape: %v", next["cast"])
	}
	castRow, nextRow := cast[0].(map[string]any), nextCast[0].(map[string]any)
	castRow["artist"] = "changed"
	if nextRow["artist"] != "changed" {
		t.Fatal("untouched branch was copied instead of shared")
	}
}

func TestSetAutoVivifiesContainers(t *testing.T) {
	next, err := fieldpath.Set(sheet.Document{}, "crew[2].name", "Grip")
	if err != nil {
		t.Fatalf("Set returned error: %v", err)
	}

	rows := next.Rows("crew")
	if len(rows) != 3 {
		t.Fatalf("expected slice grown to 3, got %d", len(rows))
	}
	if rows[0] != nil || rows[1] != nil {
		t.Fatalf("holes should stay nil: %v", rows)
	}
	if got, _ := fieldpath.Get(next, "crew[2].name"); got != "Grip" {
		t.Fatalf("unexpected value: %v", got)
	}
}

func TestSetTerminalIndexMergesMaps(t *testing.T) {
	doc := sheet.Document{
		"scenes": []any{map[string]any{"scene_no": "12", "location": "Fort"}},
	}

	next, err := fieldpath.Set(doc, "scenes[0]", map[string]any{"scene_no": "12A"})
	if err != nil {
		t.Fatalf("Set returned error: %v", err)
	}

	if got, _ := fieldpath.Get(next, "scenes[0].scene_no"); got != "12A" {
		t.Fatalf("merged key not updated: %v", got)
	}
	if got, _ := fieldpath.Get(next, "scenes[0].location"); got != "Fort" {
		t.Fatalf("unmerged key lost: %v", got)
	}
	if got, _ := fieldpath.Get(doc, "scenes[0].scene_no"); got != "12" {
		t.Fatalf("input mutated: %v", got)
	}
}

func TestSetTerminalIndexReplacesNonMapValue(t *testing.T) {
	doc := sheet.Document{"tags": []any{"old"}}

	next, err := fieldpath.Set(doc, "tags[0]", "new")
	if err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if got, _ := fieldpath.Get(next, "tags[0]"); got != "new" {
		t.Fatalf("unexpected value: %v", got)
	}
}

func TestSetRejectsShapeMismatch(t *testing.T) {
	doc := sheet.Document{"director": "Maya"}

	if _, err := fieldpath.Set(doc, "director[0]", "x"); err == nil {
		t.Fatal("expected error indexing into a string")
	}
	if _, err := fieldpath.Set(doc, "director.name", "x"); err == nil {
		t.Fatal("expected error keying into a string")
	}
}

func TestGetMissingPaths(t *testing.T) {
	doc := sheet.Document{
		"scenes": []any{map[string]any{"scene_no": "1"}},
	}

	cases := []string{
		"absent",
		"scenes[5]",
		"scenes[0].absent",
		"scenes[0].scene_no[0]",
	}
	for _, path := range cases {
		if _, ok := fieldpath.Get(doc, path); ok {
			t.Errorf("Get(%q) should report absence", path)
		}
	}
}
