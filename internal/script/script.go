// Package script applies scripted edit sessions to a template store. A script
// is a YAML (or JSON) document listing form operations in the order a user
// would perform them.
package script

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	schemadocs "github.com/jonathan/interview-template-editor/schemas"

	"github.com/jonathan/interview-template-editor/internal/editor"
	"github.com/jonathan/interview-template-editor/internal/schemas"
	"github.com/jonathan/interview-template-editor/internal/types"
)

// Operation names.
const (
	OpSetTitle       = "set_title"
	OpSetDescription = "set_description"
	OpAddQuestion    = "add_question"
	OpRemoveQuestion = "remove_question"
	OpUpdateQuestion = "update_question"
	OpAddKeyword     = "add_keyword"
	OpRemoveKeyword  = "remove_keyword"
	OpUpdateKeyword  = "update_keyword"
)

// Script is a parsed edit script.
type Script struct {
	TemplateID  string      `yaml:"template_id,omitempty"`
	Title       *string     `yaml:"title,omitempty"`
	Description *string     `yaml:"description,omitempty"`
	Operations  []Operation `yaml:"operations,omitempty"`
}

// Operation is one form action. Positions are 1-based and refer to the list
// as it is when the operation runs.
type Operation struct {
	Op        string  `yaml:"op"`
	Position  int     `yaml:"position,omitempty"`
	Text      string  `yaml:"text,omitempty"`
	TimeLimit int     `yaml:"time_limit,omitempty"`
	Keyword   string  `yaml:"keyword,omitempty"`
	Category  string  `yaml:"category,omitempty"`
	Weight    float64 `yaml:"weight,omitempty"`
	Field     string  `yaml:"field,omitempty"`
	Value     string  `yaml:"value,omitempty"`
}

// Report summarises an Apply run.
type Report struct {
	Applied int
	// Skipped lists operations that had no effect, such as removing the last
	// question or adding a blank keyword.
	Skipped []string
}

// Load reads and parses a script file.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script %s: %w", path, err)
	}
	return Parse(data)
}

// Parse validates a script document against the edit script schema and
// decodes it. JSON input is validated as written; YAML is validated after
// decoding into plain maps.
func Parse(data []byte) (*Script, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}
	if err := validateScript(data, doc); err != nil {
		return nil, fmt.Errorf("script does not match schema: %w", err)
	}

	var s Script
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode script: %w", err)
	}
	return &s, nil
}

func validateScript(data []byte, doc any) error {
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte("{")) {
		return schemas.ValidateJSONString(string(schemadocs.EditScript), string(data))
	}
	if doc == nil {
		doc = map[string]any{}
	}
	return schemas.ValidateDocument("edit_script.schema.json", schemadocs.EditScript, doc)
}

// Apply runs the script against the store. It stops at the first operation
// that fails; operations before it stay applied.
func Apply(store *editor.Store, s *Script) (*Report, error) {
	report := &Report{}

	if s.Title != nil {
		store.Title = *s.Title
	}
	if s.Description != nil {
		store.Description = *s.Description
	}

	for i, op := range s.Operations {
		skipped, err := applyOne(store, op)
		if err != nil {
			return report, fmt.Errorf("operation %d (%s): %w", i+1, op.Op, err)
		}
		if skipped != "" {
			report.Skipped = append(report.Skipped, fmt.Sprintf("operation %d (%s): %s", i+1, op.Op, skipped))
			continue
		}
		report.Applied++
	}

	return report, nil
}

func applyOne(store *editor.Store, op Operation) (string, error) {
	switch op.Op {
	case OpSetTitle:
		store.Title = op.Value
	case OpSetDescription:
		store.Description = op.Value

	case OpAddQuestion:
		q := store.Questions.Add()
		store.Questions.SetText(q.ID, op.Text)
		if op.TimeLimit != 0 {
			limit := types.TimeLimit(op.TimeLimit)
			if !limit.Valid() {
				return "", fmt.Errorf("time limit %ds is not allowed", op.TimeLimit)
			}
			store.Questions.SetTimeLimit(q.ID, limit)
		}

	case OpRemoveQuestion:
		q, ok := store.Questions.At(op.Position)
		if !ok {
			return "", fmt.Errorf("no question at position %d", op.Position)
		}
		if !store.Questions.Remove(q.ID) {
			return "the last question cannot be removed", nil
		}

	case OpUpdateQuestion:
		q, ok := store.Questions.At(op.Position)
		if !ok {
			return "", fmt.Errorf("no question at position %d", op.Position)
		}
		if err := store.Questions.UpdateField(q.ID, editor.QuestionField(op.Field), op.Value); err != nil {
			return "", err
		}

	case OpAddKeyword:
		if op.Category != "" {
			category, err := types.ParseCategory(op.Category)
			if err != nil {
				return "", err
			}
			store.Draft.Category = category
		}
		if op.Weight != 0 {
			weight := types.Weight(op.Weight)
			if !weight.Valid() {
				return "", fmt.Errorf("weight %v is not allowed", op.Weight)
			}
			store.Draft.Weight = weight
		}
		store.Draft.Text = op.Keyword
		if _, added := store.Keywords.Add(&store.Draft); !added {
			return "blank keyword ignored", nil
		}

	case OpRemoveKeyword:
		kw, err := findKeyword(store, op)
		if err != nil {
			return "", err
		}
		store.Keywords.Remove(kw.ID)

	case OpUpdateKeyword:
		kw, ok := store.Keywords.At(op.Position)
		if !ok {
			return "", fmt.Errorf("no keyword at position %d", op.Position)
		}
		if err := store.Keywords.UpdateField(kw.ID, editor.KeywordField(op.Field), op.Value); err != nil {
			return "", err
		}

	default:
		return "", fmt.Errorf("unknown operation %q", op.Op)
	}
	return "", nil
}

func findKeyword(store *editor.Store, op Operation) (types.Keyword, error) {
	if op.Position > 0 {
		kw, ok := store.Keywords.At(op.Position)
		if !ok {
			return types.Keyword{}, fmt.Errorf("no keyword at position %d", op.Position)
		}
		return kw, nil
	}
	kw, ok := store.Keywords.Find(op.Keyword)
	if !ok {
		return types.Keyword{}, fmt.Errorf("keyword %q not found", op.Keyword)
	}
	return kw, nil
}
