package dailyreport

import "mythus/internal/sheet"

// Flat document fields.
const (
	FieldProductionHouse = "production_house"
	FieldTitle           = "title"
	FieldDirector        = "director"
	FieldProducer        = "producer"
	FieldReportDate      = "report_date"
	FieldDay             = "day"
	FieldShift           = "shift"
	FieldCallTime        = "call_time"
	FieldFirstShot       = "first_shot"
	FieldLunchBreak      = "lunch_break"
	FieldWrapTime        = "wrap_time"
	FieldTotalScenes     = "total_scenes"
	FieldScenesShot      = "scenes_shot"
	FieldSetups          = "setups"
	FieldLocation        = "location"
)

// TableCharacters is the single row table: who was on set and when.
const TableCharacters = "characters"

var flatFields = []string{
	FieldProductionHouse,
	FieldTitle,
	FieldDirector,
	FieldProducer,
	FieldReportDate,
	FieldDay,
	FieldShift,
	FieldCallTime,
	FieldFirstShot,
	FieldLunchBreak,
	FieldWrapTime,
	FieldTotalScenes,
	FieldScenesShot,
	FieldSetups,
	FieldLocation,
}

var charactersSpec = sheet.TableSpec{
	Key:     TableCharacters,
	Columns: []string{"character", "cast_name", "call_time", "report_time", "remarks"},
}

// Tables returns the table specs in render order.
func Tables() []sheet.TableSpec {
	return []sheet.TableSpec{charactersSpec}
}

// FlatFields returns the flat field keys in render order.
func FlatFields() []string {
	out := make([]string, len(flatFields))
	copy(out, flatFields)
	return out
}

// New builds an empty report with one blank characters row.
func New() sheet.Document {
	doc := make(sheet.Document, len(flatFields)+1)
	for _, field := range flatFields {
		doc[field] = ""
	}
	doc[TableCharacters] = []any{charactersSpec.EmptyRow()}
	return doc
}

// Normalize repairs an imported document so required fields and a non-empty
// characters table are present.
func Normalize(doc sheet.Document) sheet.Document {
	return sheet.Normalize(doc, flatFields, Tables())
}
