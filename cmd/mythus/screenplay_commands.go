package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"mythus/internal/production"
	"mythus/internal/workflow"
)

func newScreenplayCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "screenplay",
		Short: "Register and process screenplays",
	}
	cmd.AddCommand(newScreenplayNewCommand(ctx))
	cmd.AddCommand(newScreenplayListCommand(ctx))
	cmd.AddCommand(newScreenplayStatusCommand(ctx))
	return cmd
}

func newScreenplayNewCommand(ctx *commandContext) *cobra.Command {
	var (
		title      string
		scriptPath string
		info       production.Info
	)

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a screenplay, upload its script, and wait for scene extraction",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			client, err := ctx.client()
			if err != nil {
				return err
			}

			runner, err := workflow.NewRunner(workflow.Options{
				Service:         client,
				Logger:          logger,
				PollInterval:    time.Duration(cfg.Workflow.StatusPollInterval) * time.Second,
				PollMaxAttempts: cfg.Workflow.StatusPollMaxAttempts,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			if err := runner.SubmitDetails(cmd.Context(), title, info); err != nil {
				if fieldErr := runner.FieldError("title"); fieldErr != "" {
					return fmt.Errorf("title: %s", fieldErr)
				}
				return err
			}
			fmt.Fprintf(out, "Created screenplay %s\n", runner.ScreenplayID())

			script, err := os.Open(scriptPath)
			if err != nil {
				return fmt.Errorf("open script: %w", err)
			}
			defer script.Close()
			if err := runner.Upload(cmd.Context(), scriptPath, script); err != nil {
				return err
			}
			fmt.Fprintln(out, "Script uploaded, waiting for scene extraction...")

			if err := runner.AwaitProcessing(cmd.Context()); err != nil {
				return err
			}
			if err := runner.CompleteReview(); err != nil {
				return err
			}

			if ctx.jsonOutput() {
				return writeJSON(cmd, map[string]any{
					"screenplay_id": runner.ScreenplayID(),
					"scene_count":   runner.SceneCount(),
					"step":          string(runner.CurrentStep()),
				})
			}
			fmt.Fprintf(out, "Done: %d scenes extracted for %s\n", runner.SceneCount(), runner.ScreenplayID())
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Screenplay title")
	cmd.Flags().StringVar(&scriptPath, "script", "", "Path to the script file")
	cmd.Flags().StringVar(&info.ProductionHouse, "production-house", "", "Production house")
	cmd.Flags().StringVar(&info.DirectorName, "director", "", "Director name")
	cmd.Flags().StringVar(&info.ProducerName, "producer", "", "Producer name")
	cmd.Flags().StringVar(&info.ProductionManager, "production-manager", "", "Production manager name")
	cmd.Flags().StringVar(&info.AssistantDirector, "assistant-director", "", "Assistant director name")
	cmd.Flags().StringVar(&info.Cinematographer, "cinematographer", "", "Cinematographer name")
	cmd.Flags().StringVar(&info.ContactNumber, "contact", "", "Production contact number")
	cmd.Flags().StringVar(&info.Genre, "genre", "", "Genre")
	cmd.Flags().StringVar(&info.ShootLocation, "location", "", "Primary shoot location")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("script")
	return cmd
}

func newScreenplayListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List screenplays",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.client()
			if err != nil {
				return err
			}
			list, err := client.ListScreenplays(cmd.Context())
			if err != nil {
				return err
			}
			if ctx.jsonOutput() {
				return writeJSON(cmd, list)
			}
			rows := make([][]string, 0, len(list))
			for _, item := range list {
				rows = append(rows, []string{item.ID, item.Title, item.CreatedAt})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(out, []string{"ID", "Title", "Created"}, rows))
			return nil
		},
	}
}

func newScreenplayStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status <screenplay-id>",
		Short: "Show a screenplay's summarization status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.client()
			if err != nil {
				return err
			}
			status, message, err := client.ScriptStatus(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if ctx.jsonOutput() {
				return writeJSON(cmd, map[string]string{
					"status":  string(status),
					"message": message,
				})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Status: %s\n", status)
			if message != "" {
				fmt.Fprintf(out, "Message: %s\n", message)
			}
			return nil
		},
	}
}
