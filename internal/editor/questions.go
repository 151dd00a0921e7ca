package editor

import (
	"fmt"

	"github.com/jonathan/interview-template-editor/internal/types"
)

// QuestionField names an editable question field.
type QuestionField string

// Editable question fields.
const (
	QuestionFieldText      QuestionField = "text"
	QuestionFieldTimeLimit QuestionField = "time_limit"
)

// QuestionList is the ordered question list of a template. Every question's
// Order equals its 1-based position after each mutation.
type QuestionList struct {
	items []types.Question
}

// NewQuestionList builds a list from questions already in display order and
// renumbers them.
func NewQuestionList(questions []types.Question) *QuestionList {
	l := &QuestionList{items: append([]types.Question(nil), questions...)}
	l.renumber()
	return l
}

// Len returns the number of questions, blank ones included.
func (l *QuestionList) Len() int {
	return len(l.items)
}

// Questions returns a copy of the list in display order.
func (l *QuestionList) Questions() []types.Question {
	return append([]types.Question(nil), l.items...)
}

// At returns the question at a 1-based position.
func (l *QuestionList) At(position int) (types.Question, bool) {
	if position < 1 || position > len(l.items) {
		return types.Question{}, false
	}
	return l.items[position-1], true
}

// Add appends a blank question with a pending id and the default time limit.
func (l *QuestionList) Add() types.Question {
	q := types.Question{
		ID:        types.NewPendingID(),
		TimeLimit: types.DefaultTimeLimit,
		Order:     len(l.items) + 1,
	}
	l.items = append(l.items, q)
	return q
}

// Remove deletes the question with the given id and renumbers the rest. The
// last remaining question cannot be removed; Remove reports whether anything
// was deleted.
func (l *QuestionList) Remove(id types.RowID) bool {
	if len(l.items) <= 1 {
		return false
	}
	idx := l.indexOf(id)
	if idx < 0 {
		return false
	}
	l.items = append(l.items[:idx], l.items[idx+1:]...)
	l.renumber()
	return true
}

// UpdateField sets one field of the question with the given id. Unknown ids
// are ignored without looking at field or value. Time limits must be one of
// types.AllowedTimeLimits.
func (l *QuestionList) UpdateField(id types.RowID, field QuestionField, value string) error {
	if l.indexOf(id) < 0 {
		return nil
	}
	switch field {
	case QuestionFieldText:
		l.SetText(id, value)
		return nil
	case QuestionFieldTimeLimit:
		limit, err := types.ParseTimeLimit(value)
		if err != nil {
			return err
		}
		l.SetTimeLimit(id, limit)
		return nil
	default:
		return fmt.Errorf("unknown question field %q", field)
	}
}

// SetText replaces the text of the question with the given id.
func (l *QuestionList) SetText(id types.RowID, text string) {
	if idx := l.indexOf(id); idx >= 0 {
		l.items[idx].Text = text
	}
}

// SetTimeLimit replaces the time limit of the question with the given id.
func (l *QuestionList) SetTimeLimit(id types.RowID, limit types.TimeLimit) {
	if idx := l.indexOf(id); idx >= 0 {
		l.items[idx].TimeLimit = limit
	}
}

// adoptID swaps a row's id in place without touching its position.
func (l *QuestionList) adoptID(old, persisted types.RowID) {
	if idx := l.indexOf(old); idx >= 0 {
		l.items[idx].ID = persisted
	}
}

func (l *QuestionList) indexOf(id types.RowID) int {
	for i := range l.items {
		if l.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (l *QuestionList) renumber() {
	for i := range l.items {
		l.items[i].Order = i + 1
	}
}
