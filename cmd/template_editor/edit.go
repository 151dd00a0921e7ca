package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jonathan/interview-template-editor/internal/editor"
	"github.com/jonathan/interview-template-editor/internal/prompt"
	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit a template interactively",
	Long:  "Load a template and edit its title, description, questions and keywords from the terminal, then save.",
	RunE:  runEditCmd,
}

var editTemplateID string

func init() {
	editCmd.Flags().StringVar(&editTemplateID, "id", "", "Template ID (required)")
	_ = editCmd.MarkFlagRequired("id")

	rootCmd.AddCommand(editCmd)
}

func runEditCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}
	client, err := newClient(cfg)
	if err != nil {
		return err
	}
	return runEdit(cmd.Context(), os.Stdout, client, prompt.NewSurveyDriver(), editTemplateID, cfg.RedirectDelayDuration())
}

func runEdit(ctx context.Context, out io.Writer, backend editor.Backend, driver prompt.Driver, id string, redirectDelay time.Duration) error {
	if ctx == nil {
		ctx = context.Background()
	}

	store, err := editor.Load(ctx, backend, id)
	if err != nil {
		return fmt.Errorf("failed to load template: %w", err)
	}

	navigated := make(chan struct{})
	coord := editor.NewCoordinator(store, backend,
		editor.WithRedirectDelay(redirectDelay),
		editor.WithNavigator(func() { close(navigated) }),
	)
	defer coord.Close()

	outcome, err := prompt.NewSession(store, coord, driver, out).Run(ctx)
	if errors.Is(err, prompt.ErrAborted) {
		_, _ = fmt.Fprintln(out, "Aborted, changes discarded")
		return nil
	}
	if err != nil {
		return err
	}
	if outcome == nil {
		return nil
	}

	select {
	case <-navigated:
		_, _ = fmt.Fprintln(out, "Returning to template list")
	case <-ctx.Done():
	}
	return nil
}
