package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/interview-template-editor/internal/types"
)

func TestStore_Dirty(t *testing.T) {
	tests := []struct {
		name string
		edit func(s *Store)
	}{
		{name: "title", edit: func(s *Store) { s.Title = "Changed" }},
		{name: "description", edit: func(s *Store) { s.Description = "Changed" }},
		{name: "add question", edit: func(s *Store) { s.Questions.Add() }},
		{name: "question text", edit: func(s *Store) {
			s.Questions.SetText(types.PersistedID("q-1"), "Changed")
		}},
		{name: "remove keyword", edit: func(s *Store) { s.Keywords.Remove(types.PersistedID("k-1")) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewStore(StateFromResponse("tpl-1", sampleTemplate(), sampleKeywords()))
			assert.False(t, store.Dirty())

			tt.edit(store)

			assert.True(t, store.Dirty())
		})
	}
}

func TestStore_DraftDoesNotMakeDirty(t *testing.T) {
	store := NewStore(types.TemplateState{ID: "tpl-1", Title: "T"})
	store.Draft.Text = "typing"

	assert.False(t, store.Dirty())
}

func TestStore_State(t *testing.T) {
	store := NewStore(StateFromResponse("tpl-1", sampleTemplate(), sampleKeywords()))
	store.Title = "Edited"

	state := store.State()

	assert.Equal(t, "tpl-1", state.ID)
	assert.Equal(t, "Edited", state.Title)
	assert.Len(t, state.Questions, 2)
	assert.Len(t, state.Keywords, 3)
}
