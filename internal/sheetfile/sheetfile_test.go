package sheetfile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"mythus/internal/callsheet"
	"mythus/internal/services"
	"mythus/internal/sheet"
)

func callSheetSchema() Schema {
	return Schema{Fields: callsheet.FlatFields(), Tables: callsheet.Tables()}
}

func TestJSONRoundTrip(t *testing.T) {
	doc := callsheet.Reduce(callsheet.New(), callsheet.SetField{Path: "scenes[0].scene_no", Value: "12"})
	path := filepath.Join(t.TempDir(), "sheet.json")

	if err := Write(path, doc); err != nil {
		t.Fatalf("write: %v", err)
	}
	loaded, err := Read(path, callSheetSchema())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	rows := loaded.Rows(callsheet.TableScenes)
	if len(rows) != 1 {
		t.Fatalf("scene rows = %d, want 1", len(rows))
	}
	if rows[0].(map[string]any)["scene_no"] != "12" {
		t.Fatalf("scene_no = %v", rows[0])
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	doc := callsheet.Reduce(callsheet.New(), callsheet.SetField{Path: callsheet.FieldDirector, Value: "Jane Doe"})
	path := filepath.Join(t.TempDir(), "sheet.yaml")

	if err := Write(path, doc); err != nil {
		t.Fatalf("write: %v", err)
	}
	loaded, err := Read(path, callSheetSchema())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if loaded.StringField(callsheet.FieldDirector) != "Jane Doe" {
		t.Fatalf("director = %q", loaded.StringField(callsheet.FieldDirector))
	}
}

func TestReadRejectsWrongShapes(t *testing.T) {
	dir := t.TempDir()

	badField := filepath.Join(dir, "field.json")
	os.WriteFile(badField, []byte(`{"director": 7}`), 0o644)
	if _, err := Read(badField, callSheetSchema()); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	badTable := filepath.Join(dir, "table.json")
	os.WriteFile(badTable, []byte(`{"scenes": "not-a-list"}`), 0o644)
	if _, err := Read(badTable, callSheetSchema()); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	badRow := filepath.Join(dir, "row.json")
	os.WriteFile(badRow, []byte(`{"scenes": ["oops"]}`), 0o644)
	if _, err := Read(badRow, callSheetSchema()); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUnsupportedExtension(t *testing.T) {
	if err := Write(filepath.Join(t.TempDir(), "sheet.toml"), sheet.Document{}); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
