// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/interview-template-editor/internal/editor"
	"github.com/jonathan/interview-template-editor/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxTextWidth is where question text is cut inside a box
	maxTextWidth = 40
)

// Printer handles formatted output
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintTemplate outputs the template header and its questions in display order.
func (p *Printer) PrintTemplate(state types.TemplateState) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("ID:       %s\n", state.ID))
	sb.WriteString(fmt.Sprintf("Title:    %s\n", state.Title))
	if state.Description != "" {
		sb.WriteString(fmt.Sprintf("About:    %s\n", state.Description))
	}
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("Questions (%d):\n", len(state.Questions)))
	for _, q := range state.Questions {
		text := strings.TrimSpace(q.Text)
		if text == "" {
			text = "(blank)"
		}
		marker := ""
		if q.ID.IsPending() {
			marker = " *"
		}
		sb.WriteString(fmt.Sprintf("  %d. %s [%s]%s\n", q.Order, truncate(text, maxTextWidth), q.TimeLimit.Label(), marker))
	}

	p.printBox("INTERVIEW TEMPLATE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintKeywordGroups outputs keywords grouped by category.
func (p *Printer) PrintKeywordGroups(groups []editor.KeywordGroup) {
	if len(groups) == 0 {
		p.printBox("SCORING KEYWORDS", "No keywords")
		return
	}

	var sb strings.Builder
	for i, group := range groups {
		sb.WriteString(fmt.Sprintf("%s (%d):\n", group.Category.Label(), len(group.Keywords)))
		for _, kw := range group.Keywords {
			sb.WriteString(fmt.Sprintf("  • %s  weight %s\n", kw.Keyword, kw.Weight.Label()))
		}
		if i < len(groups)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("SCORING KEYWORDS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSaveOutcome outputs what each save phase did.
func (p *Printer) PrintSaveOutcome(outcome *editor.SaveOutcome) {
	if outcome == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(outcome.Message() + "\n\n")

	if outcome.Template.Request != nil {
		sb.WriteString(fmt.Sprintf("Questions saved:  %d\n", len(outcome.Template.Request.Questions)))
	}
	if outcome.Template.Dropped > 0 {
		sb.WriteString(fmt.Sprintf("Blank dropped:    %d\n", outcome.Template.Dropped))
	}
	sb.WriteString(fmt.Sprintf("Keywords:         %s", outcome.Keywords.Status))
	if outcome.Keywords.Request != nil {
		sb.WriteString(fmt.Sprintf(" (%d)", len(outcome.Keywords.Request.Keywords)))
	}
	sb.WriteString("\n")
	if outcome.Keywords.Warning != nil {
		sb.WriteString(fmt.Sprintf("Warning:          %s\n", outcome.Keywords.Warning.Message))
	}

	p.printBox("SAVE RESULT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintPayloads writes the request bodies a save would send, as indented JSON.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintPayloads(tmpl *types.UpdateTemplateRequest, keywords *types.ReplaceKeywordsRequest) error {
	data, err := json.MarshalIndent(tmpl, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal template payload: %w", err)
	}
	fmt.Fprintf(p.out, "PUT template:\n%s\n", data)

	if keywords == nil {
		fmt.Fprintln(p.out, "POST keywords: skipped (no keywords)")
		return nil
	}
	data, err = json.MarshalIndent(keywords, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal keywords payload: %w", err)
	}
	fmt.Fprintf(p.out, "POST keywords:\n%s\n", data)
	return nil
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
}
