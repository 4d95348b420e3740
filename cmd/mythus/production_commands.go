package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mythus/internal/production"
)

func newProductionCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "production",
		Short: "View and edit a screenplay's production info",
	}
	cmd.AddCommand(newProductionShowCommand(ctx))
	cmd.AddCommand(newProductionSetCommand(ctx))
	return cmd
}

func newProductionShowCommand(ctx *commandContext) *cobra.Command {
	var screenplayID string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show production info",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.client()
			if err != nil {
				return err
			}
			info, err := client.ProductionInfo(cmd.Context(), screenplayID)
			if err != nil {
				return err
			}
			if ctx.jsonOutput() {
				return writeJSON(cmd, info)
			}
			rows := [][]string{
				{"Production House", info.ProductionHouse},
				{"Title", info.Title},
				{"Director", info.DirectorName},
				{"Producer", info.ProducerName},
				{"Production Manager", info.ProductionManager},
				{"Assistant Director", info.AssistantDirector},
				{"Cinematographer", info.Cinematographer},
				{"Contact Number", info.ContactNumber},
				{"Genre", info.Genre},
				{"Shoot Location", info.ShootLocation},
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(out, []string{"Field", "Value"}, rows))
			return nil
		},
	}

	cmd.Flags().StringVarP(&screenplayID, "screenplay", "s", "", "Screenplay identifier")
	_ = cmd.MarkFlagRequired("screenplay")
	return cmd
}

func newProductionSetCommand(ctx *commandContext) *cobra.Command {
	var screenplayID string
	var info production.Info

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update production info fields",
		Long: `Update production info fields. Flags left unset are submitted empty; the
current values are fetched first so unset flags keep what the backend holds.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.client()
			if err != nil {
				return err
			}

			current, err := client.ProductionInfo(cmd.Context(), screenplayID)
			if err != nil {
				return err
			}
			merged := mergeProductionInfo(*current, info, cmd)
			if err := client.SaveProductionInfo(cmd.Context(), screenplayID, merged); err != nil {
				return err
			}

			if ctx.jsonOutput() {
				normalized := merged.Normalize()
				return writeJSON(cmd, normalized)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Production info saved")
			return nil
		},
	}

	cmd.Flags().StringVarP(&screenplayID, "screenplay", "s", "", "Screenplay identifier")
	cmd.Flags().StringVar(&info.ProductionHouse, "production-house", "", "Production house")
	cmd.Flags().StringVar(&info.Title, "title", "", "Screenplay title")
	cmd.Flags().StringVar(&info.DirectorName, "director", "", "Director name")
	cmd.Flags().StringVar(&info.ProducerName, "producer", "", "Producer name")
	cmd.Flags().StringVar(&info.ProductionManager, "production-manager", "", "Production manager name")
	cmd.Flags().StringVar(&info.AssistantDirector, "assistant-director", "", "Assistant director name")
	cmd.Flags().StringVar(&info.Cinematographer, "cinematographer", "", "Cinematographer name")
	cmd.Flags().StringVar(&info.ContactNumber, "contact", "", "Production contact number")
	cmd.Flags().StringVar(&info.Genre, "genre", "", "Genre")
	cmd.Flags().StringVar(&info.ShootLocation, "location", "", "Primary shoot location")
	_ = cmd.MarkFlagRequired("screenplay")
	return cmd
}

// mergeProductionInfo overlays explicitly set flags onto the current record.
// An explicitly set empty flag clears the field.
func mergeProductionInfo(current, updates production.Info, cmd *cobra.Command) production.Info {
	assign := func(flag string, target *string, value string) {
		if cmd.Flags().Changed(flag) {
			*target = value
		}
	}
	assign("production-house", &current.ProductionHouse, updates.ProductionHouse)
	assign("title", &current.Title, updates.Title)
	assign("director", &current.DirectorName, updates.DirectorName)
	assign("producer", &current.ProducerName, updates.ProducerName)
	assign("production-manager", &current.ProductionManager, updates.ProductionManager)
	assign("assistant-director", &current.AssistantDirector, updates.AssistantDirector)
	assign("cinematographer", &current.Cinematographer, updates.Cinematographer)
	assign("contact", &current.ContactNumber, updates.ContactNumber)
	assign("genre", &current.Genre, updates.Genre)
	assign("location", &current.ShootLocation, updates.ShootLocation)
	return current
}
