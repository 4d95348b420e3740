package dailyreport

import (
	"mythus/internal/fieldpath"
	"mythus/internal/production"
	"mythus/internal/sheet"
)

// Action is the closed set of report transitions.
type Action interface {
	isReportAction()
}

// SetField writes a value at a dot/bracket path, e.g. "characters[0].cast_name".
type SetField struct {
	Path  string
	Value any
}

// AddRow appends a blank characters row.
type AddRow struct{}

// RemoveRow deletes the characters row at Index; out-of-range is a no-op.
type RemoveRow struct {
	Index int
}

// Load replaces the document wholesale with imported data.
type Load struct {
	Data sheet.Document
}

// Reset replaces the document with a fresh empty report.
type Reset struct{}

// AutofillProductionInfo copies non-empty production fields into the report
// without clearing anything already populated.
type AutofillProductionInfo struct {
	Info production.Info
}

func (SetField) isReportAction()               {}
func (AddRow) isReportAction()                 {}
func (RemoveRow) isReportAction()              {}
func (Load) isReportAction()                   {}
func (Reset) isReportAction()                  {}
func (AutofillProductionInfo) isReportAction() {}

// Reduce applies an action to the current document and returns the next one.
// Pure and total: every failure mode returns the current state reference.
func Reduce(state sheet.Document, action Action) sheet.Document {
	switch a := action.(type) {
	case SetField:
		next, err := fieldpath.Set(state, a.Path, a.Value)
		if err != nil {
			return state
		}
		return next

	case AddRow:
		return sheet.AddRow(state, charactersSpec)

	case RemoveRow:
		next, _ := sheet.RemoveRow(state, charactersSpec, a.Index)
		return next

	case Load:
		return Normalize(a.Data.Clone())

	case Reset:
		return New()

	case AutofillProductionInfo:
		// Values are copied verbatim; normalization happens on the service
		// write path.
		info := a.Info
		return sheet.Autofill(state, map[string]string{
			FieldProductionHouse: info.ProductionHouse,
			FieldTitle:           info.Title,
			FieldDirector:        info.DirectorName,
			FieldProducer:        info.ProducerName,
			FieldLocation:        info.ShootLocation,
		})
	}
	return state
}
