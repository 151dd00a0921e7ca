// Package editor holds the editing session for one interview template: the
// form state, the question and keyword list editors, and the two-phase save.
package editor

import (
	"github.com/jonathan/interview-template-editor/internal/types"
)

// Store is the editable form state of one template. It is owned by a single
// editing session and is not safe for concurrent use.
type Store struct {
	id          string
	Title       string
	Description string
	Questions   *QuestionList
	Keywords    *KeywordList
	Draft       KeywordDraft

	baseline snapshot
}

type snapshot struct {
	title       string
	description string
	questions   []types.Question
	keywords    []types.Keyword
}

// NewStore creates a store from loaded template state. A template without
// questions starts with one blank question.
func NewStore(state types.TemplateState) *Store {
	s := &Store{
		id:          state.ID,
		Title:       state.Title,
		Description: state.Description,
		Questions:   NewQuestionList(state.Questions),
		Keywords:    NewKeywordList(state.Keywords),
		Draft:       NewKeywordDraft(),
	}
	if s.Questions.Len() == 0 {
		s.Questions.Add()
	}
	s.markClean()
	return s
}

// ID returns the template id being edited.
func (s *Store) ID() string {
	return s.id
}

// State returns a copy of the current form state.
func (s *Store) State() types.TemplateState {
	return types.TemplateState{
		ID:          s.id,
		Title:       s.Title,
		Description: s.Description,
		Questions:   s.Questions.Questions(),
		Keywords:    s.Keywords.Keywords(),
	}
}

// Dirty reports whether the form differs from what was last loaded or saved.
func (s *Store) Dirty() bool {
	if s.Title != s.baseline.title || s.Description != s.baseline.description {
		return true
	}
	questions := s.Questions.Questions()
	if len(questions) != len(s.baseline.questions) {
		return true
	}
	for i := range questions {
		if questions[i] != s.baseline.questions[i] {
			return true
		}
	}
	keywords := s.Keywords.Keywords()
	if len(keywords) != len(s.baseline.keywords) {
		return true
	}
	for i := range keywords {
		if keywords[i] != s.baseline.keywords[i] {
			return true
		}
	}
	return false
}

func (s *Store) markClean() {
	s.markTemplateClean()
	s.markKeywordsClean()
}

// markTemplateClean records title, description and questions as saved.
func (s *Store) markTemplateClean() {
	s.baseline.title = s.Title
	s.baseline.description = s.Description
	s.baseline.questions = s.Questions.Questions()
}

// markKeywordsClean records the keyword list as saved.
func (s *Store) markKeywordsClean() {
	s.baseline.keywords = s.Keywords.Keywords()
}
