package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jonathan/interview-template-editor/internal/editor"
	"github.com/jonathan/interview-template-editor/internal/observability"
	"github.com/jonathan/interview-template-editor/internal/script"
	"github.com/spf13/cobra"
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Apply an edit script to a template and save it",
	Long: `Load a template, replay the operations of a YAML or JSON edit script against it,
then save it: first the template and its questions, then its keywords.`,
	RunE: runApplyCmd,
}

var (
	applyTemplateID string
	applyScriptPath string
	applyDryRun     bool
)

func init() {
	applyCmd.Flags().StringVar(&applyTemplateID, "id", "", "Template ID (defaults to the script's template_id)")
	applyCmd.Flags().StringVarP(&applyScriptPath, "script", "s", "", "Path to the edit script (required)")
	applyCmd.Flags().BoolVar(&applyDryRun, "dry-run", false, "Print the payloads instead of saving")
	_ = applyCmd.MarkFlagRequired("script")

	rootCmd.AddCommand(applyCmd)
}

type applyOptions struct {
	TemplateID    string
	ScriptPath    string
	DryRun        bool
	RedirectDelay time.Duration
}

func runApplyCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}
	client, err := newClient(cfg)
	if err != nil {
		return err
	}
	return runApply(cmd.Context(), os.Stdout, client, applyOptions{
		TemplateID:    applyTemplateID,
		ScriptPath:    applyScriptPath,
		DryRun:        applyDryRun,
		RedirectDelay: cfg.RedirectDelayDuration(),
	})
}

func runApply(ctx context.Context, out io.Writer, backend editor.Backend, opts applyOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	s, err := script.Load(opts.ScriptPath)
	if err != nil {
		return err
	}

	id := opts.TemplateID
	if id == "" {
		id = s.TemplateID
	}
	if id == "" {
		return fmt.Errorf("template id is required (use --id or set template_id in the script)")
	}

	store, err := editor.Load(ctx, backend, id)
	if err != nil {
		return fmt.Errorf("failed to load template: %w", err)
	}

	report, err := script.Apply(store, s)
	if err != nil {
		return fmt.Errorf("failed to apply script: %w", err)
	}
	for _, skipped := range report.Skipped {
		_, _ = fmt.Fprintf(os.Stderr, "Warning: %s\n", skipped)
	}
	_, _ = fmt.Fprintf(out, "Applied %d operation(s)\n", report.Applied)

	printer := observability.NewPrinter(out)

	if opts.DryRun {
		if err := editor.Validate(store); err != nil {
			return err
		}
		tmplReq, _ := editor.BuildTemplateRequest(store)
		return printer.PrintPayloads(tmplReq, editor.BuildKeywordsRequest(store))
	}

	navigated := make(chan struct{})
	coord := editor.NewCoordinator(store, backend,
		editor.WithRedirectDelay(opts.RedirectDelay),
		editor.WithNavigator(func() { close(navigated) }),
	)
	defer coord.Close()

	outcome, err := coord.Save(ctx)
	if err != nil {
		return err
	}
	printer.PrintSaveOutcome(outcome)

	select {
	case <-navigated:
		_, _ = fmt.Fprintln(out, "Returning to template list")
	case <-ctx.Done():
	}
	return nil
}
