package sheet

// Document is an in-memory sheet document: flat fields and row tables.
type Document map[string]any

// TableSpec names a row table and the columns a blank row carries.
type TableSpec struct {
	Key     string
	Columns []string
}

// EmptyRow builds a blank row with every column set to the empty string.
func (s TableSpec) EmptyRow() map[string]any {
	row := make(map[string]any, len(s.Columns))
	for _, column := range s.Columns {
		row[column] = ""
	}
	return row
}

// Clone deep-copies a document. Used when adopting documents from callers
// (file import, draft load) so later reducer steps cannot alias outside
// memory.
func (d Document) Clone() Document {
	return cloneValue(d).(Document)
}

func cloneValue(value any) any {
	switch v := value.(type) {
	case Document:
		out := make(Document, len(v))
		for k, item := range v {
			out[k] = cloneValue(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, item := range v {
			out[k] = cloneValue(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}

// Rows returns the table slice stored under key, or nil when absent.
func (d Document) Rows(key string) []any {
	rows, _ := d[key].([]any)
	return rows
}

// StringField returns the flat string field stored under key.
func (d Document) StringField(key string) string {
	value, _ := d[key].(string)
	return value
}

// AddRow appends a blank row to the named table, copying the root and the
// table only.
func AddRow(doc Document, spec TableSpec) Document {
	rows := doc.Rows(spec.Key)
	grown := make([]any, len(rows)+1)
	copy(grown, rows)
	grown[len(rows)] = spec.EmptyRow()
	return withTable(doc, spec.Key, grown)
}

// RemoveRow deletes the row at index from the named table. The second return
// is false when the index is out of range, in which case the input document
// is returned untouched.
func RemoveRow(doc Document, spec TableSpec, index int) (Document, bool) {
	rows := doc.Rows(spec.Key)
	if index < 0 || index >= len(rows) {
		return doc, false
	}
	shrunk := make([]any, 0, len(rows)-1)
	shrunk = append(shrunk, rows[:index]...)
	shrunk = append(shrunk, rows[index+1:]...)
	return withTable(doc, spec.Key, shrunk), true
}

// Autofill copies every non-empty source value into its target field,
// leaving populated-from-empty semantics to the caller: a field whose source
// value is empty is never written. When nothing applies the input document is
// returned unchanged, reference and all.
func Autofill(doc Document, values map[string]string) Document {
	applicable := 0
	for _, value := range values {
		if value != "" {
			applicable++
		}
	}
	if applicable == 0 {
		return doc
	}

	out := make(Document, len(doc)+applicable)
	for k, v := range doc {
		out[k] = v
	}
	for key, value := range values {
		if value != "" {
			out[key] = value
		}
	}
	return out
}

// Normalize ensures every named flat field exists and every table holds at
// least one blank row, so grid-style consumers always have something to
// render. The input is copied only when a repair is needed.
func Normalize(doc Document, fields []string, tables []TableSpec) Document {
	if doc == nil {
		doc = Document{}
	}

	repaired := doc
	copied := false
	ensure := func() {
		if copied {
			return
		}
		out := make(Document, len(repaired)+len(fields))
		for k, v := range repaired {
			out[k] = v
		}
		repaired = out
		copied = true
	}

	for _, field := range fields {
		if _, ok := repaired[field].(string); !ok {
			ensure()
			repaired[field] = ""
		}
	}
	for _, table := range tables {
		rows := repaired.Rows(table.Key)
		if len(rows) == 0 {
			ensure()
			repaired[table.Key] = []any{table.EmptyRow()}
		}
	}
	return repaired
}

func withTable(doc Document, key string, rows []any) Document {
	out := make(Document, len(doc)+1)
	for k, v := range doc {
		out[k] = v
	}
	out[key] = rows
	return out
}
