package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"mythus/internal/callsheet"
	"mythus/internal/drafts"
	"mythus/internal/scenes"
	"mythus/internal/sheetfile"
)

func newCallSheetCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "callsheet",
		Short: "Draft daily call sheets",
	}
	cmd.AddCommand(newCallSheetNewCommand(ctx))
	cmd.AddCommand(newCallSheetListCommand(ctx))
	cmd.AddCommand(newCallSheetShowCommand(ctx))
	cmd.AddCommand(newCallSheetSetCommand(ctx))
	cmd.AddCommand(newCallSheetRowCommand(ctx))
	cmd.AddCommand(newCallSheetAutofillCommand(ctx))
	cmd.AddCommand(newCallSheetImportCommand(ctx))
	cmd.AddCommand(newCallSheetExportCommand(ctx))
	cmd.AddCommand(newCallSheetDeleteCommand(ctx))
	return cmd
}

func newCallSheetNewCommand(ctx *commandContext) *cobra.Command {
	var title, screenplayID string

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create an empty call sheet draft",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withDrafts(func(store *drafts.Store) error {
				draft := &drafts.Draft{
					Kind:         drafts.KindCallSheet,
					ScreenplayID: screenplayID,
					Title:        title,
					Document:     callsheet.New(),
				}
				if err := store.Save(cmd.Context(), draft); err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, draft)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created call sheet %s (%s)\n", draft.Title, draft.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Draft title")
	cmd.Flags().StringVarP(&screenplayID, "screenplay", "s", "", "Screenplay to associate")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newCallSheetListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List call sheet drafts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withDrafts(func(store *drafts.Store) error {
				list, err := store.List(cmd.Context(), drafts.KindCallSheet)
				if err != nil {
					return err
				}
				return printDraftList(cmd, ctx, list)
			})
		},
	}
}

func newCallSheetShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <draft-id>",
		Short: "Show a call sheet draft",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withDrafts(func(store *drafts.Store) error {
				draft, err := store.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return printSheet(cmd, ctx, draft, callsheet.FlatFields(), callsheet.Tables())
			})
		},
	}
}

func newCallSheetSetCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <draft-id> <path=value>...",
		Short: "Set call sheet fields by path",
		Long: `Set call sheet fields by path. Paths address flat fields or table cells:

  mythus callsheet set DRAFT director="R. Prasad" scenes[0].scene_no=12A`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			assignments, err := parseFieldAssignments(args[1:])
			if err != nil {
				return err
			}
			return mutateCallSheet(cmd, ctx, args[0], func(draft *drafts.Draft) error {
				for path, value := range assignments {
					draft.Document = callsheet.Reduce(draft.Document, callsheet.SetField{Path: path, Value: value})
				}
				return nil
			})
		},
	}
	return cmd
}

func newCallSheetRowCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "row",
		Short: "Add or remove table rows",
	}

	addCmd := &cobra.Command{
		Use:   "add <draft-id> <table>",
		Short: "Append a blank row to a table",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return mutateCallSheet(cmd, ctx, args[0], func(draft *drafts.Draft) error {
				draft.Document = callsheet.Reduce(draft.Document, callsheet.AddRow{Table: args[1]})
				return nil
			})
		},
	}

	removeCmd := &cobra.Command{
		Use:   "remove <draft-id> <table> <index>",
		Short: "Delete a table row by zero-based index",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("row index must be an integer: %w", err)
			}
			return mutateCallSheet(cmd, ctx, args[0], func(draft *drafts.Draft) error {
				draft.Document = callsheet.Reduce(draft.Document, callsheet.RemoveRow{Table: args[1], Index: index})
				return nil
			})
		},
	}

	cmd.AddCommand(addCmd)
	cmd.AddCommand(removeCmd)
	return cmd
}

func newCallSheetAutofillCommand(ctx *commandContext) *cobra.Command {
	var screenplayID string
	var withScenes bool

	cmd := &cobra.Command{
		Use:   "autofill <draft-id>",
		Short: "Fill empty fields from the screenplay's production info",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.client()
			if err != nil {
				return err
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			return mutateCallSheet(cmd, ctx, args[0], func(draft *drafts.Draft) error {
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
				draft.Document = callsheet.Reduce(draft.Document, callsheet.AutofillProductionInfo{Info: *info})

				if withScenes {
					result, err := client.ListScenes(cmd.Context(), id, 1, cfg.Scenes.PageLimit, cfg.Scenes.PreviewLength)
					if err != nil {
						return err
					}
					refs := make([]callsheet.SceneRef, 0, len(result.Scenes))
					for _, scene := range result.Scenes {
						refs = append(refs, callsheet.SceneRef{
							Number:      scene.Number,
							IntExt:      scenes.SceneType(scene.Header),
							Description: scene.Header,
						})
					}
					draft.Document = callsheet.Reduce(draft.Document, callsheet.AutofillScenes{Scenes: refs})
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&screenplayID, "screenplay", "s", "", "Screenplay identifier (defaults to the draft's)")
	cmd.Flags().BoolVar(&withScenes, "scenes", false, "Also seed the scenes table from the screenplay")
	return cmd
}

func newCallSheetImportCommand(ctx *commandContext) *cobra.Command {
	var title, screenplayID string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a call sheet from a JSON or YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := sheetfile.Read(args[0], sheetfile.Schema{
				Fields: callsheet.FlatFields(),
				Tables: callsheet.Tables(),
			})
			if err != nil {
				return err
			}
			return ctx.withDrafts(func(store *drafts.Store) error {
				draft := &drafts.Draft{
					Kind:         drafts.KindCallSheet,
					ScreenplayID: screenplayID,
					Title:        title,
					Document:     callsheet.Reduce(callsheet.New(), callsheet.Load{Data: doc}),
				}
				if err := store.Save(cmd.Context(), draft); err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, draft)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported call sheet %s (%s)\n", draft.Title, draft.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Draft title")
	cmd.Flags().StringVarP(&screenplayID, "screenplay", "s", "", "Screenplay to associate")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newCallSheetExportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "export <draft-id> <file>",
		Short: "Export a call sheet to a JSON or YAML file",
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

func newCallSheetDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <draft-id>",
		Short: "Delete a call sheet draft",
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

// mutateCallSheet loads a call sheet draft, applies fn, saves, and prints the
// result.
func mutateCallSheet(cmd *cobra.Command, ctx *commandContext, draftID string, fn func(*drafts.Draft) error) error {
	return ctx.withDrafts(func(store *drafts.Store) error {
		draft, err := store.Get(cmd.Context(), draftID)
		if err != nil {
			return err
		}
		if draft.Kind != drafts.KindCallSheet {
			return fmt.Errorf("draft %s is a %s, not a call sheet", draftID, draft.Kind)
		}
		if err := fn(draft); err != nil {
			return err
		}
		if err := store.Save(cmd.Context(), draft); err != nil {
			return err
		}
		return printSheet(cmd, ctx, draft, callsheet.FlatFields(), callsheet.Tables())
	})
}
