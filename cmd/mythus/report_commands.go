package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"mythus/internal/dailyreport"
	"mythus/internal/drafts"
	"mythus/internal/sheetfile"
)

func newReportCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Draft daily production reports",
	}
	cmd.AddCommand(newReportNewCommand(ctx))
	cmd.AddCommand(newReportListCommand(ctx))
	cmd.AddCommand(newReportShowCommand(ctx))
	cmd.AddCommand(newReportSetCommand(ctx))
	cmd.AddCommand(newReportRowCommand(ctx))
	cmd.AddCommand(newReportAutofillCommand(ctx))
	cmd.AddCommand(newReportImportCommand(ctx))
	cmd.AddCommand(newReportExportCommand(ctx))
	cmd.AddCommand(newReportDeleteCommand(ctx))
	return cmd
}

func newReportNewCommand(ctx *commandContext) *cobra.Command {
	var title, screenplayID string

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create an empty daily production report draft",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withDrafts(func(store *drafts.Store) error {
				draft := &drafts.Draft{
					Kind:         drafts.KindDailyReport,
					ScreenplayID: screenplayID,
					Title:        title,
					Document:     dailyreport.New(),
				}
				if err := store.Save(cmd.Context(), draft); err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, draft)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created report %s (%s)\n", draft.Title, draft.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Draft title")
	cmd.Flags().StringVarP(&screenplayID, "screenplay", "s", "", "Screenplay to associate")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newReportListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List daily production report drafts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withDrafts(func(store *drafts.Store) error {
				list, err := store.List(cmd.Context(), drafts.KindDailyReport)
				if err != nil {
					return err
				}
				return printDraftList(cmd, ctx, list)
			})
		},
	}
}

func newReportShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <draft-id>",
		Short: "Show a daily production report draft",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withDrafts(func(store *drafts.Store) error {
				draft, err := store.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return printSheet(cmd, ctx, draft, dailyreport.FlatFields(), dailyreport.Tables())
			})
		},
	}
}

func newReportSetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "set <draft-id> <path=value>...",
		Short: "Set report fields by path",
		Long: `Set report fields by path. Paths address flat fields or characters rows:

  mythus report set DRAFT wrap_time=22:30 characters[1].report_time=07:45`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			assignments, err := parseFieldAssignments(args[1:])
			if err != nil {
				return err
			}
			return mutateReport(cmd, ctx, args[0], func(draft *drafts.Draft) error {
				for path, value := range assignments {
					draft.Document = dailyreport.Reduce(draft.Document, dailyreport.SetField{Path: path, Value: value})
				}
				return nil
			})
		},
	}
}

func newReportRowCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "row",
		Short: "Add or remove characters rows",
	}

	addCmd := &cobra.Command{
		Use:   "add <draft-id>",
		Short: "Append a blank characters row",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return mutateReport(cmd, ctx, args[0], func(draft *drafts.Draft) error {
				draft.Document = dailyreport.Reduce(draft.Document, dailyreport.AddRow{})
				return nil
			})
		},
	}

	removeCmd := &cobra.Command{
		Use:   "remove <draft-id> <index>",
		Short: "Delete a characters row by zero-based index",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("row index must be an integer: %w", err)
			}
			return mutateReport(cmd, ctx, args[0], func(draft *drafts.Draft) error {
				draft.Document = dailyreport.Reduce(draft.Document, dailyreport.RemoveRow{Index: index})
				return nil
			})
		},
	}

	cmd.AddCommand(addCmd)
	cmd.AddCommand(removeCmd)
	return cmd
}

func newReportAutofillCommand(ctx *commandContext) *cobra.Command {
	var screenplayID string

	cmd := &cobra.Command{
		Use:   "autofill <draft-id>",
		Short: "Fill empty fields from the screenplay's production info",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.client()
			if err != nil {
				return err
			}
			return mutateReport(cmd, ctx, args[0], func(draft *drafts.Draft) error {
				id := screenplayID
				if id == "" {
					id = draft.ScreenplayID
				}
				if id == "" {
					return errors.New("draft has no screenplay; pass --screenplay")
				}
				info, err := client.ProductionInfo(cmd.Context(), id)
				if err != nil {
					return err
				}
				draft.Document = dailyreport.Reduce(draft.Document, dailyreport.AutofillProductionInfo{Info: *info})
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&screenplayID, "screenplay", "s", "", "Screenplay identifier (defaults to the draft's)")
	return cmd
}

func newReportImportCommand(ctx *commandContext) *cobra.Command {
	var title, screenplayID string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a report from a JSON or YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := sheetfile.Read(args[0], sheetfile.Schema{
				Fields: dailyreport.FlatFields(),
				Tables: dailyreport.Tables(),
			})
			if err != nil {
				return err
			}
			return ctx.withDrafts(func(store *drafts.Store) error {
				draft := &drafts.Draft{
					Kind:         drafts.KindDailyReport,
					ScreenplayID: screenplayID,
					Title:        title,
					Document:     dailyreport.Reduce(dailyreport.New(), dailyreport.Load{Data: doc}),
				}
				if err := store.Save(cmd.Context(), draft); err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, draft)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported report %s (%s)\n", draft.Title, draft.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Draft title")
	cmd.Flags().StringVarP(&screenplayID, "screenplay", "s", "", "Screenplay to associate")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newReportExportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "export <draft-id> <file>",
		Short: "Export a report to a JSON or YAML file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withDrafts(func(store *drafts.Store) error {
				draft, err := store.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if err := sheetfile.Write(args[1], draft.Document); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %s to %s\n", draft.Title, args[1])
				return nil
			})
		},
	}
}

func newReportDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <draft-id>",
		Short: "Delete a report draft",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withDrafts(func(store *drafts.Store) error {
				if err := store.Delete(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted draft %s\n", args[0])
				return nil
			})
		},
	}
}

// mutateReport loads a report draft, applies fn, saves, and prints the result.
func mutateReport(cmd *cobra.Command, ctx *commandContext, draftID string, fn func(*drafts.Draft) error) error {
	return ctx.withDrafts(func(store *drafts.Store) error {
		draft, err := store.Get(cmd.Context(), draftID)
		if err != nil {
			return err
		}
		if draft.Kind != drafts.KindDailyReport {
			return fmt.Errorf("draft %s is a %s, not a daily production report", draftID, draft.Kind)
		}
		if err := fn(draft); err != nil {
			return err
		}
		if err := store.Save(cmd.Context(), draft); err != nil {
			return err
		}
		return printSheet(cmd, ctx, draft, dailyreport.FlatFields(), dailyreport.Tables())
	})
}
