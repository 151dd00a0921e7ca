package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/jonathan/interview-template-editor/internal/editor"
	"github.com/jonathan/interview-template-editor/internal/observability"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print a template with its questions and keywords",
	Long:  "Load an interview template from the backend and print its questions in order and its scoring keywords grouped by category.",
	RunE:  runShowCmd,
}

var showTemplateID string

func init() {
	showCmd.Flags().StringVar(&showTemplateID, "id", "", "Template ID (required)")
	_ = showCmd.MarkFlagRequired("id")

	rootCmd.AddCommand(showCmd)
}

func runShowCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}
	client, err := newClient(cfg)
	if err != nil {
		return err
	}
	return runShow(cmd.Context(), os.Stdout, client, showTemplateID)
}

func runShow(ctx context.Context, out io.Writer, loader editor.Loader, id string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	store, err := editor.Load(ctx, loader, id)
	if err != nil {
		return fmt.Errorf("failed to load template: %w", err)
	}

	printer := observability.NewPrinter(out)
	printer.PrintTemplate(store.State())
	printer.PrintKeywordGroups(store.Keywords.GroupByCategory())
	return nil
}
