package callsheet

import "mythus/internal/sheet"

// Flat document fields.
const (
	FieldProductionHouse   = "production_house"
	FieldTitle             = "title"
	FieldDirector          = "director"
	FieldProducer          = "producer"
	FieldAssistantDirector = "assistant_director"
	FieldContactNumber     = "contact_number"
	FieldDate              = "date"
	FieldDay               = "day"
	FieldCallTime          = "call_time"
	FieldShift             = "shift"
	FieldLocation          = "location"
	FieldBreakfast         = "breakfast"
	FieldLunch             = "lunch"
	FieldSunrise           = "sunrise"
	FieldSunset            = "sunset"
	FieldWeather           = "weather"
	FieldNearestHospital   = "nearest_hospital"
)

// Row table keys.
const (
	TableScenes          = "scenes"
	TableCast            = "cast"
	TableFeatureJunior   = "feature_junior"
	TableAdvanceSchedule = "advance_schedule"
)

var flatFields = []string{
	FieldProductionHouse,
	FieldTitle,
	FieldDirector,
	FieldProducer,
	FieldAssistantDirector,
	FieldContactNumber,
	FieldDate,
	FieldDay,
	FieldCallTime,
	FieldShift,
	FieldLocation,
	FieldBreakfast,
	FieldLunch,
	FieldSunrise,
	FieldSunset,
	FieldWeather,
	FieldNearestHospital,
}

var tableSpecs = map[string]sheet.TableSpec{
	TableScenes: {
		Key:     TableScenes,
		Columns: []string{"scene_no", "int_ext", "description", "day_night", "page_count", "location", "cast_ids", "remarks"},
	},
	TableCast: {
		Key:     TableCast,
		Columns: []string{"artist", "character", "pickup_time", "makeup_time", "on_set_time", "remarks"},
	},
	TableFeatureJunior: {
		Key:     TableFeatureJunior,
		Columns: []string{"description", "quantity", "call_time", "on_set_time", "remarks"},
	},
	TableAdvanceSchedule: {
		Key:     TableAdvanceSchedule,
		Columns: []string{"date", "scene_no", "set_name", "location", "remarks"},
	},
}

// Tables returns the table specs in render order.
func Tables() []sheet.TableSpec {
	return []sheet.TableSpec{
		tableSpecs[TableScenes],
		tableSpecs[TableCast],
		tableSpecs[TableFeatureJunior],
		tableSpecs[TableAdvanceSchedule],
	}
}

// FlatFields returns the flat field keys in render order.
func FlatFields() []string {
	out := make([]string, len(flatFields))
	copy(out, flatFields)
	return out
}

// New builds an empty call sheet: blank flat fields and one blank row per
// table.
func New() sheet.Document {
	doc := make(sheet.Document, len(flatFields)+len(tableSpecs))
	for _, field := range flatFields {
		doc[field] = ""
	}
	for key, spec := range tableSpecs {
		doc[key] = []any{spec.EmptyRow()}
	}
	return doc
}

// Normalize repairs an imported document so required fields and non-empty
// tables are present.
func Normalize(doc sheet.Document) sheet.Document {
	return sheet.Normalize(doc, flatFields, Tables())
}
