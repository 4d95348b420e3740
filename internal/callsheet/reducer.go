package callsheet

import (
	"mythus/internal/fieldpath"
	"mythus/internal/production"
	"mythus/internal/sheet"
)

// Reduce applies an action to the current document and returns the next one.
// It never mutates state in place and never fails: malformed paths, unknown
// tables, and unrecognized actions all return the current state reference.
func Reduce(state sheet.Document, action Action) sheet.Document {
	switch a := action.(type) {
	case SetField:
		next, err := fieldpath.Set(state, a.Path, a.Value)
		if err != nil {
			return state
		}
		return next

	case AddRow:
		spec, ok := tableSpecs[a.Table]
		if !ok {
			return state
		}
		return sheet.AddRow(state, spec)

	case RemoveRow:
		spec, ok := tableSpecs[a.Table]
		if !ok {
			return state
		}
		next, _ := sheet.RemoveRow(state, spec, a.Index)
		return next

	case Load:
		return Normalize(a.Data.Clone())

	case Reset:
		return New()

	case AutofillProductionInfo:
		return sheet.Autofill(state, productionValues(a.Info))

	case AutofillScenes:
		return autofillScenes(state, a.Scenes)
	}
	return state
}

// productionValues maps production fields onto document keys verbatim; any
// casing cleanup belongs to the service write path, not the copy.
func productionValues(info production.Info) map[string]string {
	return map[string]string{
		FieldProductionHouse:   info.ProductionHouse,
		FieldTitle:             info.Title,
		FieldDirector:          info.DirectorName,
		FieldProducer:          info.ProducerName,
		FieldAssistantDirector: info.AssistantDirector,
		FieldContactNumber:     info.ContactNumber,
		FieldLocation:          info.ShootLocation,
	}
}

func autofillScenes(state sheet.Document, refs []SceneRef) sheet.Document {
	if len(refs) == 0 {
		return state
	}
	for _, row := range state.Rows(TableScenes) {
		if !isBlankRow(row) {
			return state
		}
	}

	rows := make([]any, 0, len(refs))
	spec := tableSpecs[TableScenes]
	for _, ref := range refs {
		row := spec.EmptyRow()
		row["scene_no"] = ref.Number
		row["int_ext"] = ref.IntExt
		row["description"] = ref.Description
		row["day_night"] = ref.DayNight
		row["location"] = ref.Location
		rows = append(rows, row)
	}

	out := make(sheet.Document, len(state))
	for k, v := range state {
		out[k] = v
	}
	out[TableScenes] = rows
	return out
}

func isBlankRow(row any) bool {
	m, ok := row.(map[string]any)
	if !ok {
		return false
	}
	for _, value := range m {
		if s, ok := value.(string); !ok || s != "" {
			return false
		}
	}
	return true
}
