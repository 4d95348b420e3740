package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"mythus/internal/scenes"
	"mythus/internal/services/screenplay"
)

func newScenesCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scenes",
		Short: "Browse and edit screenplay scenes",
	}
	cmd.AddCommand(newScenesListCommand(ctx))
	cmd.AddCommand(newScenesShowCommand(ctx))
	cmd.AddCommand(newScenesAddCommand(ctx))
	cmd.AddCommand(newScenesUpdateCommand(ctx))
	cmd.AddCommand(newScenesDeleteCommand(ctx))
	return cmd
}

func newScenesListCommand(ctx *commandContext) *cobra.Command {
	var screenplayID, search, sceneType, sortBy, sortOrder string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List scenes with optional filtering and sorting",
		RunE: func(cmd *cobra.Command, args []string) error {
			orch, err := ctx.orchestrator(screenplayID)
			if err != nil {
				return err
			}
			defer orch.Close()

			if err := orch.LoadScenes(cmd.Context()); err != nil {
				return err
			}

			orch.SetSearchQuery(search)
			orch.SetTypeFilter(sceneType)
			if sortBy != "" {
				key, ok := scenes.ParseSortKey(sortBy)
				if !ok {
					return fmt.Errorf("unknown sort key %q (number, header, type, preview)", sortBy)
				}
				order := scenes.OrderAscending
				if sortOrder != "" {
					parsed, ok := scenes.ParseSortOrder(sortOrder)
					if !ok {
						return fmt.Errorf("unknown sort order %q (asc, desc)", sortOrder)
					}
					order = parsed
				}
				orch.SetSort(key, order)
			}

			snap := orch.Snapshot()
			visible := snap.SortedScenes()

			if ctx.jsonOutput() {
				return writeJSON(cmd, map[string]any{
					"scenes": visible,
					"total":  snap.TotalScenes,
				})
			}

			rows := make([][]string, 0, len(visible))
			for _, scene := range visible {
				rows = append(rows, []string{
					scene.Number,
					scenes.SceneType(scene.Header),
					scene.Header,
					scene.BodyPreview,
				})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(out, []string{"Scene", "Type", "Header", "Preview"}, rows))
			fmt.Fprintf(out, "%d of %d scenes\n", len(visible), snap.TotalScenes)
			return nil
		},
	}

	cmd.Flags().StringVarP(&screenplayID, "screenplay", "s", "", "Screenplay identifier")
	cmd.Flags().StringVar(&search, "search", "", "Substring filter over header and preview")
	cmd.Flags().StringVar(&sceneType, "type", "", "INT/EXT filter")
	cmd.Flags().StringVar(&sortBy, "sort", "", "Sort key: number, header, type, preview")
	cmd.Flags().StringVar(&sortOrder, "order", "", "Sort order: asc or desc")
	_ = cmd.MarkFlagRequired("screenplay")
	return cmd
}

func newScenesShowCommand(ctx *commandContext) *cobra.Command {
	var screenplayID string
	var navigate string

	cmd := &cobra.Command{
		Use:   "show <scene-id>",
		Short: "Show one scene with its navigation context",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orch, err := ctx.orchestrator(screenplayID)
			if err != nil {
				return err
			}
			defer orch.Close()

			if err := orch.LoadSceneDetail(cmd.Context(), args[0]); err != nil {
				return err
			}
			if navigate != "" {
				direction, err := parseDirection(navigate)
				if err != nil {
					return err
				}
				if err := orch.NavigateScene(cmd.Context(), direction); err != nil {
					return err
				}
			}

			snap := orch.Snapshot()
			if snap.Selected == nil {
				return errors.New("scene detail unavailable")
			}

			if ctx.jsonOutput() {
				return writeJSON(cmd, map[string]any{
					"scene":      snap.Selected,
					"navigation": snap.Nav,
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Scene %s  %s\n\n", snap.Selected.Number, snap.Selected.Header)
			fmt.Fprintln(out, snap.Selected.Body)
			if snap.Nav != nil {
				fmt.Fprintf(out, "\nPosition %d of %d", snap.Nav.Position, snap.Nav.Total)
				if snap.Nav.PreviousID != "" {
					fmt.Fprintf(out, "  previous: %s", snap.Nav.PreviousID)
				}
				if snap.Nav.NextID != "" {
					fmt.Fprintf(out, "  next: %s", snap.Nav.NextID)
				}
				fmt.Fprintln(out)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&screenplayID, "screenplay", "s", "", "Screenplay identifier")
	cmd.Flags().StringVar(&navigate, "go", "", "Navigate from the scene: previous or next")
	_ = cmd.MarkFlagRequired("screenplay")
	return cmd
}

func parseDirection(value string) (scenes.Direction, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "previous", "prev":
		return scenes.DirectionPrevious, nil
	case "next":
		return scenes.DirectionNext, nil
	}
	return "", fmt.Errorf("unknown direction %q (previous, next)", value)
}

func newScenesAddCommand(ctx *commandContext) *cobra.Command {
	var screenplayID, number, header, body string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a scene",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.client()
			if err != nil {
				return err
			}
			created, err := client.AddScene(cmd.Context(), screenplayID, screenplay.SceneInput{
				Number: number,
				Header: header,
				Body:   body,
			})
			if err != nil {
				return err
			}
			if ctx.jsonOutput() {
				return writeJSON(cmd, created)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added scene %s (%s)\n", created.Number, created.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&screenplayID, "screenplay", "s", "", "Screenplay identifier")
	cmd.Flags().StringVar(&number, "number", "", "Scene number")
	cmd.Flags().StringVar(&header, "header", "", "Slugline header")
	cmd.Flags().StringVar(&body, "body", "", "Scene body text")
	_ = cmd.MarkFlagRequired("screenplay")
	_ = cmd.MarkFlagRequired("header")
	return cmd
}

func newScenesUpdateCommand(ctx *commandContext) *cobra.Command {
	var screenplayID, number, header, body string

	cmd := &cobra.Command{
		Use:   "update <scene-id>",
		Short: "Update a scene's fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.client()
			if err != nil {
				return err
			}
			updated, err := client.UpdateScene(cmd.Context(), screenplayID, args[0], screenplay.SceneInput{
				Number: number,
				Header: header,
				Body:   body,
			})
			if err != nil {
				return err
			}
			if ctx.jsonOutput() {
				return writeJSON(cmd, updated)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated scene %s\n", updated.Number)
			return nil
		},
	}

	cmd.Flags().StringVarP(&screenplayID, "screenplay", "s", "", "Screenplay identifier")
	cmd.Flags().StringVar(&number, "number", "", "Scene number")
	cmd.Flags().StringVar(&header, "header", "", "Slugline header")
	cmd.Flags().StringVar(&body, "body", "", "Scene body text")
	_ = cmd.MarkFlagRequired("screenplay")
	return cmd
}

func newScenesDeleteCommand(ctx *commandContext) *cobra.Command {
	var screenplayID string

	cmd := &cobra.Command{
		Use:   "delete <scene-id>",
		Short: "Delete a scene",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.client()
			if err != nil {
				return err
			}
			if err := client.DeleteScene(cmd.Context(), screenplayID, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted scene %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVarP(&screenplayID, "screenplay", "s", "", "Screenplay identifier")
	_ = cmd.MarkFlagRequired("screenplay")
	return cmd
}
