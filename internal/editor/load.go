package editor

import (
	"context"
	"log"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/interview-template-editor/internal/types"
)

// Loader fetches the initial form data.
type Loader interface {
	GetTemplate(ctx context.Context, id string) (*types.TemplateResponse, error)
	GetTemplateKeywords(ctx context.Context, id string) (*types.KeywordsResponse, error)
}

// Saver persists the form in two calls.
type Saver interface {
	UpdateTemplate(ctx context.Context, id string, req *types.UpdateTemplateRequest) (*types.TemplateResponse, error)
	ReplaceKeywords(ctx context.Context, id string, req *types.ReplaceKeywordsRequest) error
}

// Backend is the remote template service.
type Backend interface {
	Loader
	Saver
}

// Load fetches a template and its keywords and builds a Store from them. The
// two requests run concurrently. A failed template fetch is a LoadError; a
// failed or missing keyword list only leaves the keywords empty.
func Load(ctx context.Context, loader Loader, id string) (*Store, error) {
	if strings.TrimSpace(id) == "" {
		return nil, &LoadError{Message: MsgTemplateIDRequired}
	}

	var tmpl *types.TemplateResponse
	var keywords *types.KeywordsResponse

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		resp, err := loader.GetTemplate(gCtx, id)
		if err != nil {
			return err
		}
		tmpl = resp
		return nil
	})

	g.Go(func() error {
		resp, err := loader.GetTemplateKeywords(gCtx, id)
		if err != nil {
			log.Printf("[LOAD] Keywords for template %s unavailable, continuing without them: %v", id, err)
			return nil
		}
		keywords = resp
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, &LoadError{TemplateID: id, Message: MsgTemplateLoadFailed, Cause: err}
	}
	if tmpl == nil {
		return nil, &LoadError{TemplateID: id, Message: MsgTemplateLoadFailed}
	}

	state := StateFromResponse(id, tmpl, keywords)
	log.Printf("[LOAD] Loaded template %s: %d questions, %d keywords", id, len(state.Questions), len(state.Keywords))
	return NewStore(state), nil
}

// StateFromResponse maps backend payloads onto the form state. Questions are
// put in question_order; keywords may be nil.
func StateFromResponse(id string, tmpl *types.TemplateResponse, keywords *types.KeywordsResponse) types.TemplateState {
	state := types.TemplateState{
		ID:          id,
		Title:       tmpl.Title,
		Description: tmpl.Description,
	}

	questions := append([]types.QuestionResponse(nil), tmpl.Questions...)
	sort.SliceStable(questions, func(i, j int) bool {
		return questions[i].QuestionOrder < questions[j].QuestionOrder
	})
	for _, q := range questions {
		state.Questions = append(state.Questions, types.Question{
			ID:        rowIDFromBackend(q.ID),
			Text:      q.QuestionText,
			TimeLimit: types.TimeLimit(q.TimeLimit),
			Order:     q.QuestionOrder,
		})
	}

	if keywords != nil {
		for _, kw := range keywords.Keywords {
			state.Keywords = append(state.Keywords, types.Keyword{
				ID:       rowIDFromBackend(kw.ID),
				Keyword:  kw.Keyword,
				Category: kw.Category,
				Weight:   kw.Weight,
			})
		}
	}

	return state
}

func rowIDFromBackend(id string) types.RowID {
	if id == "" {
		return types.NewPendingID()
	}
	return types.PersistedID(id)
}
