package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"mythus/internal/drafts"
	"mythus/internal/sheet"
)

// printSheet renders a draft's flat fields and row tables, or the raw draft as
// JSON under --json.
func printSheet(cmd *cobra.Command, ctx *commandContext, draft *drafts.Draft, fields []string, tables []sheet.TableSpec) error {
	if ctx.jsonOutput() {
		return writeJSON(cmd, draft)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s  (%s, updated %s)\n\n", draft.Title, draft.ID, draft.UpdatedAt.Format("2006-01-02 15:04"))

	fieldRows := make([][]string, 0, len(fields))
	for _, field := range fields {
		fieldRows = append(fieldRows, []string{field, draft.Document.StringField(field)})
	}
	fmt.Fprintln(out, renderTable(out, []string{"Field", "Value"}, fieldRows))

	for _, spec := range tables {
		fmt.Fprintf(out, "\n%s\n", strings.ReplaceAll(spec.Key, "_", " "))
		rows := make([][]string, 0)
		for _, raw := range draft.Document.Rows(spec.Key) {
			row, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			cells := make([]string, len(spec.Columns))
			for i, column := range spec.Columns {
				cells[i] = fmt.Sprint(row[column])
			}
			rows = append(rows, cells)
		}
		fmt.Fprintln(out, renderTable(out, spec.Columns, rows))
	}
	return nil
}

// printDraftList renders draft metadata newest-first.
func printDraftList(cmd *cobra.Command, ctx *commandContext, list []*drafts.Draft) error {
	if ctx.jsonOutput() {
		return writeJSON(cmd, list)
	}
	rows := make([][]string, 0, len(list))
	for _, draft := range list {
		rows = append(rows, []string{
			draft.ID,
			draft.Title,
			draft.ScreenplayID,
			draft.UpdatedAt.Format("2006-01-02 15:04"),
		})
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderTable(out, []string{"ID", "Title", "Screenplay", "Updated"}, rows))
	return nil
}

// parseFieldAssignments splits path=value arguments for sheet set commands.
func parseFieldAssignments(args []string) (map[string]string, error) {
	assignments := make(map[string]string, len(args))
	for _, arg := range args {
		path, value, found := strings.Cut(arg, "=")
		path = strings.TrimSpace(path)
		if !found || path == "" {
			return nil, fmt.Errorf("malformed assignment %q (want path=value)", arg)
		}
		assignments[path] = value
	}
	return assignments, nil
}
