package editor

import (
	"context"
	"sync"

	"github.com/jonathan/interview-template-editor/internal/types"
)

// fakeBackend implements Backend in memory and records every call.
type fakeBackend struct {
	mu sync.Mutex

	template    *types.TemplateResponse
	templateErr error
	keywords    *types.KeywordsResponse
	keywordsErr error

	updateResp *types.TemplateResponse
	updateErr  error
	replaceErr error

	// When set, UpdateTemplate signals entered and waits for release.
	entered chan struct{}
	release chan struct{}

	calls    []string
	updates  []*types.UpdateTemplateRequest
	replaces []*types.ReplaceKeywordsRequest
}

func (f *fakeBackend) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeBackend) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeBackend) GetTemplate(_ context.Context, _ string) (*types.TemplateResponse, error) {
	f.record("get_template")
	return f.template, f.templateErr
}

func (f *fakeBackend) GetTemplateKeywords(_ context.Context, _ string) (*types.KeywordsResponse, error) {
	f.record("get_keywords")
	return f.keywords, f.keywordsErr
}

func (f *fakeBackend) UpdateTemplate(_ context.Context, _ string, req *types.UpdateTemplateRequest) (*types.TemplateResponse, error) {
	f.record("update_template")
	if f.entered != nil {
		f.entered <- struct{}{}
		<-f.release
	}
	f.mu.Lock()
	f.updates = append(f.updates, req)
	f.mu.Unlock()
	return f.updateResp, f.updateErr
}

func (f *fakeBackend) ReplaceKeywords(_ context.Context, _ string, req *types.ReplaceKeywordsRequest) error {
	f.record("replace_keywords")
	f.mu.Lock()
	f.replaces = append(f.replaces, req)
	f.mu.Unlock()
	return f.replaceErr
}

// userMessageErr mimics a transport error carrying a backend message.
type userMessageErr struct {
	msg string
}

func (e *userMessageErr) Error() string       { return "backend said: " + e.msg }
func (e *userMessageErr) UserMessage() string { return e.msg }

func sampleTemplate() *types.TemplateResponse {
	return &types.TemplateResponse{
		ID:          "tpl-1",
		Title:       "Backend Engineer",
		Description: "Screening interview",
		Questions: []types.QuestionResponse{
			{ID: "q-2", QuestionText: "Describe a hard bug", TimeLimit: 120, QuestionOrder: 2},
			{ID: "q-1", QuestionText: "Tell me about yourself", TimeLimit: 60, QuestionOrder: 1},
		},
	}
}

func sampleKeywords() *types.KeywordsResponse {
	return &types.KeywordsResponse{Keywords: []types.KeywordResponse{
		{ID: "k-1", Keyword: "go", Category: types.CategoryTechnical, Weight: 3},
		{ID: "k-2", Keyword: "communication", Category: types.CategorySoftSkills, Weight: 2},
		{ID: "k-3", Keyword: "postgres", Category: types.CategoryTechnical, Weight: 1},
	}}
}
