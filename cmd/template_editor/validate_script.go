package main

import (
	"fmt"
	"io"
	"os"

	"github.com/jonathan/interview-template-editor/internal/script"
	"github.com/spf13/cobra"
)

var validateScriptCmd = &cobra.Command{
	Use:   "validate-script",
	Short: "Check an edit script against the edit script schema",
	RunE:  runValidateScriptCmd,
}

var validateScriptPath string

func init() {
	validateScriptCmd.Flags().StringVarP(&validateScriptPath, "script", "s", "", "Path to the edit script (required)")
	_ = validateScriptCmd.MarkFlagRequired("script")

	rootCmd.AddCommand(validateScriptCmd)
}

func runValidateScriptCmd(_ *cobra.Command, _ []string) error {
	return runValidateScript(os.Stdout, validateScriptPath)
}

func runValidateScript(out io.Writer, path string) error {
	s, err := script.Load(path)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "Script is valid: %d operation(s)\n", len(s.Operations))
	return nil
}
