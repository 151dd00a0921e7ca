package script

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/interview-template-editor/internal/editor"
	"github.com/jonathan/interview-template-editor/internal/schemas"
	"github.com/jonathan/interview-template-editor/internal/types"
)

const fullScript = `
template_id: tpl-1
title: "Senior Backend Engineer"
operations:
  - op: add_question
    text: "How do you approach code review?"
    time_limit: 180
  - op: update_question
    position: 1
    field: text
    value: "Tell us about yourself"
  - op: add_keyword
    keyword: "Kubernetes"
    category: experience
    weight: 3
  - op: remove_keyword
    keyword: go
  - op: update_keyword
    position: 1
    field: weight
    value: "5"
`

func newStore() *editor.Store {
	return editor.NewStore(types.TemplateState{
		ID:    "tpl-1",
		Title: "Backend Engineer",
		Questions: []types.Question{
			{ID: types.PersistedID("q-1"), Text: "Intro", TimeLimit: types.TimeLimit60s},
		},
		Keywords: []types.Keyword{
			{ID: types.PersistedID("k-1"), Keyword: "go", Category: types.CategoryTechnical, Weight: types.WeightHigh},
			{ID: types.PersistedID("k-2"), Keyword: "teamwork", Category: types.CategorySoftSkills, Weight: types.WeightLow},
		},
	})
}

func TestParse_Valid(t *testing.T) {
	s, err := Parse([]byte(fullScript))
	require.NoError(t, err)

	assert.Equal(t, "tpl-1", s.TemplateID)
	require.NotNil(t, s.Title)
	assert.Equal(t, "Senior Backend Engineer", *s.Title)
	assert.Nil(t, s.Description)
	require.Len(t, s.Operations, 5)
	assert.Equal(t, OpAddQuestion, s.Operations[0].Op)
	assert.Equal(t, 180, s.Operations[0].TimeLimit)
	assert.Equal(t, float64(3), s.Operations[2].Weight)
}

func TestParse_AcceptsJSON(t *testing.T) {
	s, err := Parse([]byte(`{"operations":[{"op":"set_description","value":"Phone screen"}]}`))
	require.NoError(t, err)
	require.Len(t, s.Operations, 1)
	assert.Equal(t, "Phone screen", s.Operations[0].Value)
}

func TestParse_JSONSchemaViolations(t *testing.T) {
	tests := []struct {
		name   string
		script string
	}{
		{name: "unknown op", script: `{"operations":[{"op":"rename_template"}]}`},
		{name: "weight not in set", script: `{"operations":[{"op":"add_keyword","keyword":"go","weight":4}]}`},
		{name: "unknown top level key", script: `  {"owner":"someone"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.script))
			require.Error(t, err)

			var validationErr *schemas.ValidationError
			assert.ErrorAs(t, err, &validationErr)
			assert.Contains(t, err.Error(), "script does not match schema")
		})
	}
}

func TestParse_Empty(t *testing.T) {
	s, err := Parse([]byte(""))
	require.NoError(t, err)
	assert.Empty(t, s.Operations)
}

func TestParse_SchemaViolations(t *testing.T) {
	tests := []struct {
		name   string
		script string
	}{
		{name: "unknown op", script: "operations:\n  - op: rename_template\n"},
		{name: "time limit not in set", script: "operations:\n  - op: add_question\n    time_limit: 45\n"},
		{name: "weight not in set", script: "operations:\n  - op: add_keyword\n    keyword: go\n    weight: 4\n"},
		{name: "unknown category", script: "operations:\n  - op: add_keyword\n    keyword: go\n    category: leadership\n"},
		{name: "remove without position", script: "operations:\n  - op: remove_question\n"},
		{name: "update without field", script: "operations:\n  - op: update_question\n    position: 1\n    value: x\n"},
		{name: "wrong question field", script: "operations:\n  - op: update_question\n    position: 1\n    field: weight\n    value: x\n"},
		{name: "zero position", script: "operations:\n  - op: remove_question\n    position: 0\n"},
		{name: "add keyword without keyword", script: "operations:\n  - op: add_keyword\n"},
		{name: "remove keyword without target", script: "operations:\n  - op: remove_keyword\n"},
		{name: "unknown top level key", script: "owner: someone\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.script))
			require.Error(t, err)

			var validationErr *schemas.ValidationError
			assert.ErrorAs(t, err, &validationErr)
		})
	}
}

func TestParse_MalformedYAML(t *testing.T) {
	_, err := Parse([]byte("operations: [\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse script")
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "edit.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fullScript), 0o600))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, s.Operations, 5)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestApply_FullScript(t *testing.T) {
	s, err := Parse([]byte(fullScript))
	require.NoError(t, err)
	store := newStore()

	report, err := Apply(store, s)
	require.NoError(t, err)

	assert.Equal(t, 5, report.Applied)
	assert.Empty(t, report.Skipped)
	assert.Equal(t, "Senior Backend Engineer", store.Title)

	questions := store.Questions.Questions()
	require.Len(t, questions, 2)
	assert.Equal(t, "Tell us about yourself", questions[0].Text)
	assert.Equal(t, "How do you approach code review?", questions[1].Text)
	assert.Equal(t, types.TimeLimit180s, questions[1].TimeLimit)
	assert.Equal(t, 2, questions[1].Order)

	keywords := store.Keywords.Keywords()
	require.Len(t, keywords, 2)
	assert.Equal(t, "teamwork", keywords[0].Keyword)
	assert.Equal(t, types.WeightCritical, keywords[0].Weight)
	assert.Equal(t, "kubernetes", keywords[1].Keyword)
	assert.Equal(t, types.CategoryExperience, keywords[1].Category)
	assert.Equal(t, types.WeightHigh, keywords[1].Weight)
}

func TestApply_SkipsNoOps(t *testing.T) {
	store := newStore()
	s := &Script{Operations: []Operation{
		{Op: OpRemoveQuestion, Position: 1},
		{Op: OpAddKeyword, Keyword: "   "},
		{Op: OpSetDescription, Value: "Phone screen"},
	}}

	report, err := Apply(store, s)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Applied)
	require.Len(t, report.Skipped, 2)
	assert.Contains(t, report.Skipped[0], "last question")
	assert.Contains(t, report.Skipped[1], "blank keyword")
	assert.Equal(t, 1, store.Questions.Len())
	assert.Equal(t, "Phone screen", store.Description)
}

func TestApply_StopsAtFirstError(t *testing.T) {
	store := newStore()
	s := &Script{Operations: []Operation{
		{Op: OpSetTitle, Value: "Renamed"},
		{Op: OpUpdateQuestion, Position: 7, Field: "text", Value: "nope"},
		{Op: OpSetDescription, Value: "never applied"},
	}}

	report, err := Apply(store, s)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "operation 2 (update_question)")
	assert.Equal(t, 1, report.Applied)
	assert.Equal(t, "Renamed", store.Title)
	assert.Equal(t, "", store.Description)
}

func TestApply_Errors(t *testing.T) {
	tests := []struct {
		name string
		op   Operation
	}{
		{name: "bad time limit", op: Operation{Op: OpAddQuestion, Text: "x", TimeLimit: 45}},
		{name: "remove missing question", op: Operation{Op: OpRemoveQuestion, Position: 3}},
		{name: "bad category", op: Operation{Op: OpAddKeyword, Keyword: "go", Category: "leadership"}},
		{name: "bad weight", op: Operation{Op: OpAddKeyword, Keyword: "go", Weight: 4}},
		{name: "remove unknown keyword", op: Operation{Op: OpRemoveKeyword, Keyword: "rust"}},
		{name: "remove keyword out of range", op: Operation{Op: OpRemoveKeyword, Position: 9}},
		{name: "update keyword out of range", op: Operation{Op: OpUpdateKeyword, Position: 9, Field: "weight", Value: "1"}},
		{name: "update keyword bad value", op: Operation{Op: OpUpdateKeyword, Position: 1, Field: "weight", Value: "4"}},
		{name: "unknown op", op: Operation{Op: "rename"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Apply(newStore(), &Script{Operations: []Operation{tt.op}})
			assert.Error(t, err)
		})
	}
}

func TestApply_AddKeywordKeepsCategoryForNext(t *testing.T) {
	store := newStore()
	s := &Script{Operations: []Operation{
		{Op: OpAddKeyword, Keyword: "empathy", Category: "soft_skills", Weight: 2},
		{Op: OpAddKeyword, Keyword: "listening"},
	}}

	_, err := Apply(store, s)
	require.NoError(t, err)

	last, ok := store.Keywords.At(4)
	require.True(t, ok)
	assert.Equal(t, "listening", last.Keyword)
	assert.Equal(t, types.CategorySoftSkills, last.Category)
	assert.Equal(t, types.DefaultWeight, last.Weight)
}
