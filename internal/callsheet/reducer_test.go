package callsheet

import (
	"reflect"
	"testing"

	"mythus/internal/fieldpath"
	"mythus/internal/production"
	"mythus/internal/sheet"
)

func TestNewInitializesOneBlankRowPerTable(t *testing.T) {
	doc := New()
	for _, spec := range Tables() {
		rows := doc.Rows(spec.Key)
		if len(rows) != 1 {
			t.Fatalf("table %s rows = %d, want 1", spec.Key, len(rows))
		}
	}
	if doc.StringField(FieldDirector) != "" {
		t.Fatal("flat fields should start empty")
	}
}

func TestReduceSetFieldIntoFirstSceneRow(t *testing.T) {
	state := New()

	next := Reduce(state, SetField{Path: "scenes[0].scene_no", Value: "12"})
	if got, _ := fieldpath.Get(next, "scenes[0].scene_no"); got != "12" {
		t.Fatalf("scene_no = %v", got)
	}
	if len(next.Rows(TableScenes)) != 1 {
		t.Fatal("row count changed")
	}
	if got, _ := fieldpath.Get(state, "scenes[0].scene_no"); got != "" {
		t.Fatal("previous state mutated")
	}
}

func TestReduceSetFieldBadPathReturnsState(t *testing.T) {
	state := New()
	next := Reduce(state, SetField{Path: "scenes[x].scene_no", Value: "12"})
	if reflect.ValueOf(next).Pointer() != reflect.ValueOf(state).Pointer() {
		t.Fatal("bad path should return the identical state")
	}
}

func TestReduceRowOperations(t *testing.T) {
	state := New()

	grown := Reduce(state, AddRow{Table: TableCast})
	if len(grown.Rows(TableCast)) != 2 {
		t.Fatalf("cast rows = %d, want 2", len(grown.Rows(TableCast)))
	}

	shrunk := Reduce(grown, RemoveRow{Table: TableCast, Index: 0})
	if len(shrunk.Rows(TableCast)) != 1 {
		t.Fatalf("cast rows = %d, want 1", len(shrunk.Rows(TableCast)))
	}

	same := Reduce(shrunk, RemoveRow{Table: TableCast, Index: 9})
	if reflect.ValueOf(same).Pointer() != reflect.ValueOf(shrunk).Pointer() {
		t.Fatal("out-of-range removal should be a no-op")
	}

	unknown := Reduce(shrunk, AddRow{Table: "props"})
	if reflect.ValueOf(unknown).Pointer() != reflect.ValueOf(shrunk).Pointer() {
		t.Fatal("unknown table should be a no-op")
	}
}

func TestReduceLoadNormalizesImportedDocument(t *testing.T) {
	imported := sheet.Document{
		FieldDirector: "Jane Doe",
		TableScenes:   []any{},
	}

	next := Reduce(New(), Load{Data: imported})
	if next.StringField(FieldDirector) != "Jane Doe" {
		t.Fatal("imported field lost")
	}
	if len(next.Rows(TableScenes)) != 1 {
		t.Fatal("empty imported table should gain a blank row")
	}
	if len(next.Rows(TableCast)) != 1 {
		t.Fatal("missing table should be created")
	}

	// The reducer must own its copy of imported data.
	imported[FieldDirector] = "changed"
	if next.StringField(FieldDirector) != "Jane Doe" {
		t.Fatal("loaded document aliases caller memory")
	}
}

func TestReduceReset(t *testing.T) {
	state := Reduce(New(), SetField{Path: FieldDirector, Value: "Jane Doe"})
	next := Reduce(state, Reset{})
	if next.StringField(FieldDirector) != "" {
		t.Fatal("reset should clear fields")
	}
}

func TestReduceAutofillProductionInfoIsNonDestructive(t *testing.T) {
	state := New()

	filled := Reduce(state, AutofillProductionInfo{Info: production.Info{DirectorName: "Jane Doe"}})
	if filled.StringField(FieldDirector) != "Jane Doe" {
		t.Fatalf("director = %q", filled.StringField(FieldDirector))
	}

	again := Reduce(filled, AutofillProductionInfo{Info: production.Info{}})
	if again.StringField(FieldDirector) != "Jane Doe" {
		t.Fatal("empty source cleared a populated field")
	}

	partial := Reduce(filled, AutofillProductionInfo{Info: production.Info{ProducerName: "Sam Smith"}})
	if partial.StringField(FieldDirector) != "Jane Doe" {
		t.Fatal("unrelated autofill cleared director")
	}
	if partial.StringField(FieldProducer) != "Sam Smith" {
		t.Fatal("producer not filled")
	}
}

func TestReduceAutofillCopiesSourceValuesVerbatim(t *testing.T) {
	filled := Reduce(New(), AutofillProductionInfo{Info: production.Info{
		DirectorName:    "jane doe",
		ProductionHouse: "  RAINDOG FILMS",
	}})
	if got := filled.StringField(FieldDirector); got != "jane doe" {
		t.Fatalf("autofill rewrote director: got %q, want %q", got, "jane doe")
	}
	if got := filled.StringField(FieldProductionHouse); got != "  RAINDOG FILMS" {
		t.Fatalf("autofill rewrote production house: got %q", got)
	}
}

func TestReduceAutofillScenesOnlySeedsBlankTable(t *testing.T) {
	refs := []SceneRef{
		{Number: "1", IntExt: "INT", Description: "Kitchen", DayNight: "DAY"},
		{Number: "2", IntExt: "EXT", Description: "Street", DayNight: "NIGHT"},
	}

	seeded := Reduce(New(), AutofillScenes{Scenes: refs})
	rows := seeded.Rows(TableScenes)
	if len(rows) != 2 {
		t.Fatalf("scene rows = %d, want 2", len(rows))
	}
	if rows[1].(map[string]any)["description"] != "Street" {
		t.Fatalf("row content wrong: %v", rows[1])
	}

	edited := Reduce(seeded, SetField{Path: "scenes[0].remarks", Value: "crane shot"})
	same := Reduce(edited, AutofillScenes{Scenes: refs[:1]})
	if reflect.ValueOf(same).Pointer() != reflect.ValueOf(edited).Pointer() {
		t.Fatal("autofill overwrote a table the user touched")
	}
}

func TestReduceUnknownActionReturnsIdenticalState(t *testing.T) {
	state := New()
	if next := Reduce(state, nil); reflect.ValueOf(next).Pointer() != reflect.ValueOf(state).Pointer() {
		t.Fatal("nil action should return the identical state")
	}
}
