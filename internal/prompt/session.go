package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jonathan/interview-template-editor/internal/editor"
	"github.com/jonathan/interview-template-editor/internal/observability"
	"github.com/jonathan/interview-template-editor/internal/types"
)

// Menu entries, in the order they are offered.
const (
	actionShow              = "Show template"
	actionTitle             = "Edit title"
	actionDescription       = "Edit description"
	actionAddQuestion       = "Add question"
	actionEditQuestion      = "Edit question"
	actionRemoveQuestion    = "Remove question"
	actionAddKeyword        = "Add keyword"
	actionEditKeyword       = "Edit keyword"
	actionRemoveKeyword     = "Remove keyword"
	actionSave              = "Save"
	actionQuit              = "Quit"
	questionFieldTextOption = "Text"
)

var menu = []string{
	actionShow,
	actionTitle,
	actionDescription,
	actionAddQuestion,
	actionEditQuestion,
	actionRemoveQuestion,
	actionAddKeyword,
	actionEditKeyword,
	actionRemoveKeyword,
	actionSave,
	actionQuit,
}

// Session is one interactive edit of a loaded template.
type Session struct {
	store   *editor.Store
	saver   *editor.Coordinator
	driver  Driver
	printer *observability.Printer
}

// NewSession creates a session over a loaded store.
func NewSession(store *editor.Store, saver *editor.Coordinator, driver Driver, out io.Writer) *Session {
	return &Session{
		store:   store,
		saver:   saver,
		driver:  driver,
		printer: observability.NewPrinter(out),
	}
}

// Run shows the menu until the template is saved or the user quits. It
// returns the save outcome, or nil if the user left without saving.
func (s *Session) Run(ctx context.Context) (*editor.SaveOutcome, error) {
	s.show()

	for {
		idx, err := s.driver.Select(ctx, SelectConfig{Message: "What next?", Options: menu, PageSize: len(menu)})
		if err != nil {
			return nil, err
		}
		if idx < 0 || idx >= len(menu) {
			continue
		}

		switch menu[idx] {
		case actionSave:
			outcome, err := s.save(ctx)
			if err != nil {
				return nil, err
			}
			if outcome != nil {
				return outcome, nil
			}
			continue
		case actionQuit:
			leave, err := s.confirmQuit(ctx)
			if err != nil {
				return nil, err
			}
			if leave {
				return nil, nil
			}
			continue
		}

		if err := s.apply(ctx, menu[idx]); err != nil {
			if errors.Is(err, ErrAborted) || ctx.Err() != nil {
				return nil, err
			}
			if infoErr := s.driver.Info(ctx, "Error: "+err.Error()); infoErr != nil {
				return nil, infoErr
			}
		}
	}
}

func (s *Session) apply(ctx context.Context, action string) error {
	switch action {
	case actionShow:
		s.show()

	case actionTitle:
		title, err := s.driver.Input(ctx, InputConfig{Message: "Title", Default: s.store.Title})
		if err != nil {
			return err
		}
		s.store.Title = title

	case actionDescription:
		desc, err := s.driver.Input(ctx, InputConfig{Message: "Description", Default: s.store.Description})
		if err != nil {
			return err
		}
		s.store.Description = desc

	case actionAddQuestion:
		q := s.store.Questions.Add()
		text, err := s.driver.Input(ctx, InputConfig{Message: fmt.Sprintf("Question %d", q.Order)})
		if err != nil {
			return err
		}
		s.store.Questions.SetText(q.ID, text)
		limit, err := s.pickTimeLimit(ctx, q.TimeLimit)
		if err != nil {
			return err
		}
		s.store.Questions.SetTimeLimit(q.ID, limit)

	case actionEditQuestion:
		q, ok, err := s.pickQuestion(ctx, "Which question?")
		if err != nil || !ok {
			return err
		}
		field, err := s.driver.Select(ctx, SelectConfig{Message: "Field", Options: []string{questionFieldTextOption, "Time limit"}})
		if err != nil {
			return err
		}
		if field == 0 {
			text, err := s.driver.Input(ctx, InputConfig{Message: "Question text", Default: q.Text})
			if err != nil {
				return err
			}
			s.store.Questions.SetText(q.ID, text)
			return nil
		}
		limit, err := s.pickTimeLimit(ctx, q.TimeLimit)
		if err != nil {
			return err
		}
		s.store.Questions.SetTimeLimit(q.ID, limit)

	case actionRemoveQuestion:
		if s.store.Questions.Len() <= 1 {
			return s.driver.Info(ctx, "At least one question is required.")
		}
		q, ok, err := s.pickQuestion(ctx, "Remove which question?")
		if err != nil || !ok {
			return err
		}
		s.store.Questions.Remove(q.ID)

	case actionAddKeyword:
		return s.addKeyword(ctx)

	case actionEditKeyword:
		kw, ok, err := s.pickKeyword(ctx, "Which keyword?")
		if err != nil || !ok {
			return err
		}
		fields := []editor.KeywordField{editor.KeywordFieldKeyword, editor.KeywordFieldCategory, editor.KeywordFieldWeight}
		idx, err := s.driver.Select(ctx, SelectConfig{Message: "Field", Options: []string{"Keyword", "Category", "Weight"}})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(fields) {
			return nil
		}
		value, err := s.keywordFieldValue(ctx, fields[idx], kw)
		if err != nil {
			return err
		}
		return s.store.Keywords.UpdateField(kw.ID, fields[idx], value)

	case actionRemoveKeyword:
		kw, ok, err := s.pickKeyword(ctx, "Remove which keyword?")
		if err != nil || !ok {
			return err
		}
		s.store.Keywords.Remove(kw.ID)
	}
	return nil
}

func (s *Session) addKeyword(ctx context.Context) error {
	draft := &s.store.Draft

	text, err := s.driver.Input(ctx, InputConfig{Message: "Keyword", Default: draft.Text})
	if err != nil {
		return err
	}
	category, err := s.pickCategory(ctx, draft.Category)
	if err != nil {
		return err
	}
	weight, err := s.pickWeight(ctx, draft.Weight)
	if err != nil {
		return err
	}

	draft.Text = text
	draft.Category = category
	draft.Weight = weight
	if _, added := s.store.Keywords.Add(draft); !added {
		return s.driver.Info(ctx, "Keyword is empty, nothing added.")
	}
	return nil
}

func (s *Session) keywordFieldValue(ctx context.Context, field editor.KeywordField, kw types.Keyword) (string, error) {
	switch field {
	case editor.KeywordFieldCategory:
		c, err := s.pickCategory(ctx, kw.Category)
		return string(c), err
	case editor.KeywordFieldWeight:
		w, err := s.pickWeight(ctx, kw.Weight)
		return strconv.FormatFloat(float64(w), 'g', -1, 64), err
	default:
		return s.driver.Input(ctx, InputConfig{
			Message: "Keyword",
			Default: kw.Keyword,
			Validator: func(v string) error {
				if strings.TrimSpace(v) == "" {
					return errors.New("keyword cannot be empty")
				}
				return nil
			},
		})
	}
}

func (s *Session) save(ctx context.Context) (*editor.SaveOutcome, error) {
	outcome, err := s.saver.Save(ctx)
	if err == nil {
		if outcome.Keywords.Warning != nil {
			if err := s.driver.Info(ctx, "Warning: "+outcome.Keywords.Warning.Message); err != nil {
				return nil, err
			}
		}
		s.printer.PrintSaveOutcome(outcome)
		return outcome, nil
	}

	var validationErr *editor.ValidationError
	var saveErr *editor.SaveError
	switch {
	case errors.As(err, &validationErr):
		return nil, s.driver.Info(ctx, "Cannot save: "+validationErr.Message)
	case errors.As(err, &saveErr):
		return nil, s.driver.Info(ctx, "Save failed: "+saveErr.Message)
	case errors.Is(err, editor.ErrSaveInProgress):
		return nil, s.driver.Info(ctx, "A save is already in progress.")
	default:
		return nil, err
	}
}

func (s *Session) confirmQuit(ctx context.Context) (bool, error) {
	if !s.store.Dirty() {
		return true, nil
	}
	return s.driver.Confirm(ctx, ConfirmConfig{Message: "Discard unsaved changes?"})
}

func (s *Session) show() {
	s.printer.PrintTemplate(s.store.State())
	s.printer.PrintKeywordGroups(s.store.Keywords.GroupByCategory())
}

func (s *Session) pickQuestion(ctx context.Context, message string) (types.Question, bool, error) {
	questions := s.store.Questions.Questions()
	options := make([]string, len(questions))
	for i, q := range questions {
		text := strings.TrimSpace(q.Text)
		if text == "" {
			text = "(blank)"
		}
		options[i] = fmt.Sprintf("%d. %s", q.Order, text)
	}
	idx, err := s.driver.Select(ctx, SelectConfig{Message: message, Options: options})
	if err != nil || idx < 0 || idx >= len(questions) {
		return types.Question{}, false, err
	}
	return questions[idx], true, nil
}

func (s *Session) pickKeyword(ctx context.Context, message string) (types.Keyword, bool, error) {
	keywords := s.store.Keywords.Keywords()
	if len(keywords) == 0 {
		return types.Keyword{}, false, s.driver.Info(ctx, "No keywords yet.")
	}
	options := make([]string, len(keywords))
	for i, kw := range keywords {
		options[i] = fmt.Sprintf("%s (%s, weight %s)", kw.Keyword, kw.Category.Label(), kw.Weight.Label())
	}
	idx, err := s.driver.Select(ctx, SelectConfig{Message: message, Options: options})
	if err != nil || idx < 0 || idx >= len(keywords) {
		return types.Keyword{}, false, err
	}
	return keywords[idx], true, nil
}

func (s *Session) pickTimeLimit(ctx context.Context, current types.TimeLimit) (types.TimeLimit, error) {
	options := make([]string, len(types.AllowedTimeLimits))
	def := 0
	for i, t := range types.AllowedTimeLimits {
		options[i] = t.Label()
		if t == current {
			def = i
		}
	}
	idx, err := s.driver.Select(ctx, SelectConfig{Message: "Time limit", Options: options, DefaultIndex: def})
	if err != nil {
		return current, err
	}
	if idx < 0 || idx >= len(options) {
		return current, nil
	}
	return types.AllowedTimeLimits[idx], nil
}

func (s *Session) pickCategory(ctx context.Context, current types.Category) (types.Category, error) {
	options := make([]string, len(types.AllowedCategories))
	def := 0
	for i, c := range types.AllowedCategories {
		options[i] = c.Label()
		if c == current {
			def = i
		}
	}
	idx, err := s.driver.Select(ctx, SelectConfig{Message: "Category", Options: options, DefaultIndex: def})
	if err != nil {
		return current, err
	}
	if idx < 0 || idx >= len(options) {
		return current, nil
	}
	return types.AllowedCategories[idx], nil
}

func (s *Session) pickWeight(ctx context.Context, current types.Weight) (types.Weight, error) {
	options := make([]string, len(types.AllowedWeights))
	def := 0
	for i, w := range types.AllowedWeights {
		options[i] = w.Label()
		if w == current {
			def = i
		}
	}
	idx, err := s.driver.Select(ctx, SelectConfig{Message: "Weight", Options: options, DefaultIndex: def})
	if err != nil {
		return current, err
	}
	if idx < 0 || idx >= len(options) {
		return current, nil
	}
	return types.AllowedWeights[idx], nil
}
