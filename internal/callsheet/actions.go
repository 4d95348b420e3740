package callsheet

import (
	"mythus/internal/production"
	"mythus/internal/sheet"
)

// Action is the closed set of call sheet transitions. One variant per kind,
// each carrying only the fields it needs.
type Action interface {
	isCallSheetAction()
}

// SetField writes a value at a dot/bracket path, e.g. "scenes[0].scene_no".
type SetField struct {
	Path  string
	Value any
}

// AddRow appends a blank row to the named table.
type AddRow struct {
	Table string
}

// RemoveRow deletes the row at Index from the named table. Out-of-range
// indexes are a no-op.
type RemoveRow struct {
	Table string
	Index int
}

// Load replaces the document wholesale with imported data.
type Load struct {
	Data sheet.Document
}

// Reset replaces the document with a fresh empty call sheet.
type Reset struct{}

// AutofillProductionInfo copies non-empty production fields into the sheet
// without clearing anything already populated.
type AutofillProductionInfo struct {
	Info production.Info
}

// SceneRef is the projection of a screenplay scene used to seed the scenes
// table.
type SceneRef struct {
	Number      string
	IntExt      string
	Description string
	DayNight    string
	Location    string
}

// AutofillScenes seeds the scenes table from screenplay scenes. The table is
// only replaced while it still holds nothing but blank rows; rows the user
// has touched are never overwritten.
type AutofillScenes struct {
	Scenes []SceneRef
}

func (SetField) isCallSheetAction()               {}
func (AddRow) isCallSheetAction()                 {}
func (RemoveRow) isCallSheetAction()              {}
func (Load) isCallSheetAction()                   {}
func (Reset) isCallSheetAction()                  {}
func (AutofillProductionInfo) isCallSheetAction() {}
func (AutofillScenes) isCallSheetAction()         {}
