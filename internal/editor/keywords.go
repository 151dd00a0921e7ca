package editor

import (
	"fmt"
	"strings"

	"github.com/jonathan/interview-template-editor/internal/types"
)

// KeywordField names an editable keyword field.
type KeywordField string

// Editable keyword fields.
const (
	KeywordFieldKeyword  KeywordField = "keyword"
	KeywordFieldCategory KeywordField = "category"
	KeywordFieldWeight   KeywordField = "weight"
)

// KeywordDraft is the "new keyword" input buffer of the form.
type KeywordDraft struct {
	Text     string
	Category types.Category
	Weight   types.Weight
}

// NewKeywordDraft returns an empty draft with default category and weight.
func NewKeywordDraft() KeywordDraft {
	return KeywordDraft{Category: types.DefaultCategory, Weight: types.DefaultWeight}
}

// KeywordGroup is the keywords sharing one category, in insertion order.
type KeywordGroup struct {
	Category types.Category
	Keywords []types.Keyword
}

// KeywordList is the scoring keywords of a template. Keywords are never empty
// and are never deduplicated.
type KeywordList struct {
	items []types.Keyword
}

// NewKeywordList builds a list from existing keywords, dropping empty ones.
// Keyword text and category are normalised the same way user input is.
func NewKeywordList(keywords []types.Keyword) *KeywordList {
	l := &KeywordList{items: make([]types.Keyword, 0, len(keywords))}
	for _, kw := range keywords {
		kw.Keyword = types.NormalizeKeyword(kw.Keyword)
		if kw.Keyword == "" {
			continue
		}
		kw.Category = types.NormalizeCategory(kw.Category)
		l.items = append(l.items, kw)
	}
	return l
}

// Len returns the number of keywords.
func (l *KeywordList) Len() int {
	return len(l.items)
}

// Keywords returns a copy of the list in insertion order.
func (l *KeywordList) Keywords() []types.Keyword {
	return append([]types.Keyword(nil), l.items...)
}

// At returns the keyword at a 1-based position.
func (l *KeywordList) At(position int) (types.Keyword, bool) {
	if position < 1 || position > len(l.items) {
		return types.Keyword{}, false
	}
	return l.items[position-1], true
}

// Find returns the first keyword whose normalised text matches text.
func (l *KeywordList) Find(text string) (types.Keyword, bool) {
	want := types.NormalizeKeyword(text)
	for _, kw := range l.items {
		if kw.Keyword == want {
			return kw, true
		}
	}
	return types.Keyword{}, false
}

// Add appends the draft as a new keyword. A draft whose text is blank is left
// untouched and nothing is added. On success the draft's text is cleared and
// its weight reset; the category selection is kept for the next entry.
func (l *KeywordList) Add(draft *KeywordDraft) (types.Keyword, bool) {
	text := types.NormalizeKeyword(draft.Text)
	if text == "" {
		return types.Keyword{}, false
	}
	kw := types.Keyword{
		ID:       types.NewPendingID(),
		Keyword:  text,
		Category: draft.Category,
		Weight:   draft.Weight,
	}
	l.items = append(l.items, kw)

	draft.Text = ""
	draft.Weight = types.DefaultWeight
	return kw, true
}

// Remove deletes the keyword with the given id and reports whether it existed.
func (l *KeywordList) Remove(id types.RowID) bool {
	idx := l.indexOf(id)
	if idx < 0 {
		return false
	}
	l.items = append(l.items[:idx], l.items[idx+1:]...)
	return true
}

// UpdateField sets one field of the keyword with the given id. Unknown ids are
// ignored without looking at field or value.
func (l *KeywordList) UpdateField(id types.RowID, field KeywordField, value string) error {
	idx := l.indexOf(id)
	if idx < 0 {
		return nil
	}

	switch field {
	case KeywordFieldKeyword:
		text := types.NormalizeKeyword(value)
		if text == "" {
			return fmt.Errorf("keyword cannot be empty")
		}
		l.items[idx].Keyword = text
	case KeywordFieldCategory:
		category, err := types.ParseCategory(value)
		if err != nil {
			return err
		}
		l.items[idx].Category = category
	case KeywordFieldWeight:
		weight, err := types.ParseWeight(value)
		if err != nil {
			return err
		}
		l.items[idx].Weight = weight
	default:
		return fmt.Errorf("unknown keyword field %q", strings.TrimSpace(string(field)))
	}
	return nil
}

// GroupByCategory groups keywords for display. Categories appear in the order
// they are first seen; keywords keep their insertion order within a group.
func (l *KeywordList) GroupByCategory() []KeywordGroup {
	var groups []KeywordGroup
	index := make(map[types.Category]int)
	for _, kw := range l.items {
		i, ok := index[kw.Category]
		if !ok {
			i = len(groups)
			index[kw.Category] = i
			groups = append(groups, KeywordGroup{Category: kw.Category})
		}
		groups[i].Keywords = append(groups[i].Keywords, kw)
	}
	return groups
}

func (l *KeywordList) indexOf(id types.RowID) int {
	for i := range l.items {
		if l.items[i].ID == id {
			return i
		}
	}
	return -1
}
