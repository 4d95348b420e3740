package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"mythus/internal/scenes"
)

func newBreakdownCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "breakdown",
		Short: "Manage per-scene production-element breakdowns",
	}
	cmd.AddCommand(newBreakdownKeysCommand(ctx))
	cmd.AddCommand(newBreakdownShowCommand(ctx))
	cmd.AddCommand(newBreakdownLoadCommand(ctx))
	cmd.AddCommand(newBreakdownGenerateCommand(ctx))
	cmd.AddCommand(newBreakdownSetCommand(ctx))
	return cmd
}

func newBreakdownKeysCommand(ctx *commandContext) *cobra.Command {
	var screenplayID string

	cmd := &cobra.Command{
		Use:   "keys",
		Short: "List the screenplay's element vocabulary",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.client()
			if err != nil {
				return err
			}
			keys, err := client.ElementKeys(cmd.Context(), screenplayID)
			if err != nil {
				return err
			}
			if ctx.jsonOutput() {
				return writeJSON(cmd, keys)
			}
			rows := make([][]string, 0, len(keys))
			for _, key := range keys {
				rows = append(rows, []string{key.Key, strings.Join(key.AvailableValues, ", ")})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(out, []string{"Key", "Known Values"}, rows))
			return nil
		},
	}

	cmd.Flags().StringVarP(&screenplayID, "screenplay", "s", "", "Screenplay identifier")
	_ = cmd.MarkFlagRequired("screenplay")
	return cmd
}

func newBreakdownShowCommand(ctx *commandContext) *cobra.Command {
	var screenplayID string
	var refresh bool

	cmd := &cobra.Command{
		Use:   "show <scene-number>",
		Short: "Show one scene's breakdown",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orch, err := ctx.orchestrator(screenplayID)
			if err != nil {
				return err
			}
			defer orch.Close()

			sceneNumber := args[0]
			if refresh {
				if err := orch.RefreshBreakdown(cmd.Context(), sceneNumber); err != nil {
					return err
				}
			} else if err := orch.LoadBreakdownsForScenes(cmd.Context(), []string{sceneNumber}); err != nil {
				return err
			}

			entry, ok := orch.Snapshot().BreakdownFor(sceneNumber)
			if !ok {
				return fmt.Errorf("no breakdown cached for scene %s", sceneNumber)
			}
			return printBreakdown(cmd, ctx, entry)
		},
	}

	cmd.Flags().StringVarP(&screenplayID, "screenplay", "s", "", "Screenplay identifier")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "Bypass the cache and re-fetch from the backend")
	_ = cmd.MarkFlagRequired("screenplay")
	return cmd
}

func newBreakdownLoadCommand(ctx *commandContext) *cobra.Command {
	var screenplayID string

	cmd := &cobra.Command{
		Use:   "load <scene-number>...",
		Short: "Bulk-load breakdowns for several scenes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orch, err := ctx.orchestrator(screenplayID)
			if err != nil {
				return err
			}
			defer orch.Close()

			if err := orch.LoadBreakdownsForScenes(cmd.Context(), args); err != nil {
				return err
			}

			snap := orch.Snapshot()
			if ctx.jsonOutput() {
				return writeJSON(cmd, snap.Breakdowns)
			}
			rows := make([][]string, 0, len(args))
			for _, number := range args {
				entry, ok := snap.BreakdownFor(number)
				if !ok {
					continue
				}
				filled := 0
				for _, element := range entry.Elements {
					if len(element.Values) > 0 {
						filled++
					}
				}
				status := "empty"
				if entry.HasBreakdown {
					status = "present"
				}
				rows = append(rows, []string{number, status, fmt.Sprintf("%d/%d", filled, len(entry.Elements))})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(out, []string{"Scene", "Breakdown", "Filled Keys"}, rows))
			return nil
		},
	}

	cmd.Flags().StringVarP(&screenplayID, "screenplay", "s", "", "Screenplay identifier")
	_ = cmd.MarkFlagRequired("screenplay")
	return cmd
}

func newBreakdownGenerateCommand(ctx *commandContext) *cobra.Command {
	var screenplayID string

	cmd := &cobra.Command{
		Use:   "generate <scene-number>",
		Short: "Run automated element extraction for a scene",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orch, err := ctx.orchestrator(screenplayID)
			if err != nil {
				return err
			}
			defer orch.Close()

			sceneNumber := args[0]
			if err := orch.GenerateBreakdown(cmd.Context(), sceneNumber); err != nil {
				return err
			}
			entry, ok := orch.Snapshot().BreakdownFor(sceneNumber)
			if !ok {
				return fmt.Errorf("no breakdown cached for scene %s", sceneNumber)
			}
			return printBreakdown(cmd, ctx, entry)
		},
	}

	cmd.Flags().StringVarP(&screenplayID, "screenplay", "s", "", "Screenplay identifier")
	_ = cmd.MarkFlagRequired("screenplay")
	return cmd
}

func newBreakdownSetCommand(ctx *commandContext) *cobra.Command {
	var screenplayID string

	cmd := &cobra.Command{
		Use:   "set <scene-number> <key=value,value>...",
		Short: "Set element values for a scene",
		Long: `Set element values for a scene. Each argument assigns one element key a
comma-separated value list; an empty list clears the key locally:

  mythus breakdown set -s SP 12A props=lantern,rope cast=MARA vehicles=`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			orch, err := ctx.orchestrator(screenplayID)
			if err != nil {
				return err
			}
			defer orch.Close()

			sceneNumber := args[0]
			if err := orch.LoadBreakdownsForScenes(cmd.Context(), []string{sceneNumber}); err != nil {
				return err
			}
			entry, ok := orch.Snapshot().BreakdownFor(sceneNumber)
			if !ok {
				return fmt.Errorf("no breakdown cached for scene %s", sceneNumber)
			}

			elements, err := applyElementAssignments(entry.Elements, args[1:])
			if err != nil {
				return err
			}
			if err := orch.UpdateBreakdown(cmd.Context(), sceneNumber, elements); err != nil {
				return err
			}

			updated, _ := orch.Snapshot().BreakdownFor(sceneNumber)
			return printBreakdown(cmd, ctx, updated)
		},
	}

	cmd.Flags().StringVarP(&screenplayID, "screenplay", "s", "", "Screenplay identifier")
	_ = cmd.MarkFlagRequired("screenplay")
	return cmd
}

// applyElementAssignments folds key=value,value arguments into a copy of the
// cached element list. Keys not present in the vocabulary are appended.
func applyElementAssignments(current []scenes.Element, assignments []string) ([]scenes.Element, error) {
	elements := make([]scenes.Element, len(current))
	copy(elements, current)

	index := make(map[string]int, len(elements))
	for i, element := range elements {
		index[element.Key] = i
	}

	for _, assignment := range assignments {
		key, rawValues, found := strings.Cut(assignment, "=")
		key = strings.TrimSpace(key)
		if !found || key == "" {
			return nil, fmt.Errorf("malformed assignment %q (want key=value,value)", assignment)
		}

		values := make([]string, 0)
		for _, value := range strings.Split(rawValues, ",") {
			if value = strings.TrimSpace(value); value != "" {
				values = append(values, value)
			}
		}

		if i, ok := index[key]; ok {
			elements[i].Values = values
			continue
		}
		index[key] = len(elements)
		elements = append(elements, scenes.Element{Key: key, Values: values})
	}
	return elements, nil
}

func printBreakdown(cmd *cobra.Command, ctx *commandContext, entry scenes.Breakdown) error {
	if ctx.jsonOutput() {
		return writeJSON(cmd, entry)
	}
	rows := make([][]string, 0, len(entry.Elements))
	for _, element := range entry.Elements {
		rows = append(rows, []string{
			element.Key,
			strings.Join(element.Values, ", "),
			strings.Join(element.AvailableValues, ", "),
		})
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Scene %s\n", entry.SceneNumber)
	fmt.Fprintln(out, renderTable(out, []string{"Key", "Values", "Known Values"}, rows))
	return nil
}
