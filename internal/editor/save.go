package editor

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonathan/interview-template-editor/internal/types"
)

// DefaultRedirectDelay is how long the success message stays visible before
// the session navigates away.
const DefaultRedirectDelay = 2 * time.Second

// Phase is a step of the save state machine.
type Phase int

// Save phases. Failed is reached from Validating or SavingTemplate; a keyword
// failure still ends in Done.
const (
	PhaseIdle Phase = iota
	PhaseValidating
	PhaseSavingTemplate
	PhaseSavingKeywords
	PhaseDone
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseValidating:
		return "validating"
	case PhaseSavingTemplate:
		return "saving_template"
	case PhaseSavingKeywords:
		return "saving_keywords"
	case PhaseDone:
		return "done"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// TemplateSaveResult describes the first save phase.
type TemplateSaveResult struct {
	Request  *types.UpdateTemplateRequest
	Response *types.TemplateResponse
	// Dropped counts blank questions left out of the request.
	Dropped int
}

// KeywordSaveStatus is the outcome of the keyword phase.
type KeywordSaveStatus int

// Keyword phase outcomes.
const (
	KeywordsSkipped KeywordSaveStatus = iota
	KeywordsSaved
	KeywordsFailed
)

func (s KeywordSaveStatus) String() string {
	switch s {
	case KeywordsSkipped:
		return "skipped"
	case KeywordsSaved:
		return "saved"
	case KeywordsFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// KeywordSaveResult describes the second save phase.
type KeywordSaveResult struct {
	Status  KeywordSaveStatus
	Request *types.ReplaceKeywordsRequest
	Warning *KeywordSaveWarning
}

// SaveOutcome combines both phases of a successful save.
type SaveOutcome struct {
	Template TemplateSaveResult
	Keywords KeywordSaveResult
}

// Degraded reports whether the keyword phase failed after the template saved.
func (o *SaveOutcome) Degraded() bool {
	return o.Keywords.Status == KeywordsFailed
}

// Message is the success text shown to the user.
func (o *SaveOutcome) Message() string {
	if o.Degraded() {
		return MsgKeywordsPartialResult
	}
	return "Template updated successfully"
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithRedirectDelay overrides DefaultRedirectDelay.
func WithRedirectDelay(d time.Duration) Option {
	return func(c *Coordinator) {
		c.redirectDelay = d
	}
}

// WithNavigator sets the action run after a successful save once the redirect
// delay has passed.
func WithNavigator(navigate func()) Option {
	return func(c *Coordinator) {
		c.navigate = navigate
	}
}

// WithPhaseObserver registers a callback invoked on every phase change.
func WithPhaseObserver(observe func(Phase)) Option {
	return func(c *Coordinator) {
		c.observe = observe
	}
}

// Coordinator validates the store and saves it in two sequential calls.
type Coordinator struct {
	store *Store
	saver Saver

	redirectDelay time.Duration
	navigate      func()
	observe       func(Phase)
	afterFunc     func(time.Duration, func()) *time.Timer

	saving atomic.Bool

	mu    sync.Mutex
	phase Phase
	timer *time.Timer
}

// NewCoordinator creates a Coordinator for the given store.
func NewCoordinator(store *Store, saver Saver, opts ...Option) *Coordinator {
	c := &Coordinator{
		store:         store,
		saver:         saver,
		redirectDelay: DefaultRedirectDelay,
		afterFunc:     time.AfterFunc,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Phase returns the current save phase.
func (c *Coordinator) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Saving reports whether a save is in flight. The save action should be
// disabled while this is true.
func (c *Coordinator) Saving() bool {
	return c.saving.Load()
}

// Save runs the save sequence. It returns a *ValidationError or *SaveError when
// the template is not saved, and ErrSaveInProgress when called re-entrantly.
// A keyword failure is not an error: it is reported in the outcome.
func (c *Coordinator) Save(ctx context.Context) (*SaveOutcome, error) {
	if !c.saving.CompareAndSwap(false, true) {
		return nil, ErrSaveInProgress
	}
	defer c.saving.Store(false)

	c.setPhase(PhaseValidating)
	if err := Validate(c.store); err != nil {
		c.setPhase(PhaseFailed)
		return nil, err
	}

	outcome := &SaveOutcome{}

	tmplReq, rowIDs := BuildTemplateRequest(c.store)
	outcome.Template.Request = tmplReq
	outcome.Template.Dropped = c.store.Questions.Len() - len(tmplReq.Questions)
	if outcome.Template.Dropped > 0 {
		log.Printf("[SAVE] Dropping %d blank question(s) from template %s", outcome.Template.Dropped, c.store.ID())
	}

	c.setPhase(PhaseSavingTemplate)
	resp, err := c.saver.UpdateTemplate(ctx, c.store.ID(), tmplReq)
	if err != nil {
		c.setPhase(PhaseFailed)
		saveErr := saveErrorFrom(err)
		log.Printf("[SAVE] Template %s update failed: %v", c.store.ID(), err)
		return nil, saveErr
	}
	outcome.Template.Response = resp
	c.adoptPersistedIDs(rowIDs, resp)

	kwReq := BuildKeywordsRequest(c.store)
	outcome.Keywords.Request = kwReq
	if kwReq != nil {
		c.setPhase(PhaseSavingKeywords)
		if err := c.saver.ReplaceKeywords(ctx, c.store.ID(), kwReq); err != nil {
			log.Printf("[SAVE] Warning: keywords for template %s not updated: %v", c.store.ID(), err)
			outcome.Keywords.Status = KeywordsFailed
			outcome.Keywords.Warning = &KeywordSaveWarning{Message: MsgKeywordsUpdateFailed, Cause: err}
		} else {
			outcome.Keywords.Status = KeywordsSaved
		}
	}

	c.store.markTemplateClean()
	if outcome.Keywords.Status != KeywordsFailed {
		c.store.markKeywordsClean()
	}
	c.setPhase(PhaseDone)
	c.scheduleNavigation()

	log.Printf("[SAVE] Template %s saved: %d questions, keywords %s",
		c.store.ID(), len(tmplReq.Questions), outcome.Keywords.Status)
	return outcome, nil
}

// Close stops a pending navigation. Call it when the session is discarded.
func (c *Coordinator) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Coordinator) setPhase(p Phase) {
	c.mu.Lock()
	c.phase = p
	observe := c.observe
	c.mu.Unlock()
	if observe != nil {
		observe(p)
	}
}

func (c *Coordinator) scheduleNavigation() {
	if c.navigate == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = c.afterFunc(c.redirectDelay, c.navigate)
}

// adoptPersistedIDs gives pending rows the ids the backend assigned, matching
// saved questions by their order in the request.
func (c *Coordinator) adoptPersistedIDs(rowIDs []types.RowID, resp *types.TemplateResponse) {
	if resp == nil || len(resp.Questions) == 0 {
		return
	}
	byOrder := make(map[int]string, len(resp.Questions))
	for _, q := range resp.Questions {
		if q.ID != "" {
			byOrder[q.QuestionOrder] = q.ID
		}
	}
	for i, id := range rowIDs {
		if !id.IsPending() {
			continue
		}
		if persisted, ok := byOrder[i+1]; ok {
			c.store.Questions.adoptID(id, types.PersistedID(persisted))
		}
	}
}

// Validate checks the rules that must hold before anything is sent.
func Validate(store *Store) error {
	if strings.TrimSpace(store.Title) == "" {
		return &ValidationError{Message: MsgTitleRequired}
	}
	for _, q := range store.Questions.Questions() {
		if strings.TrimSpace(q.Text) != "" {
			return nil
		}
	}
	return &ValidationError{Message: MsgQuestionRequired}
}

// BuildTemplateRequest converts the store into the template update payload.
// Blank questions are dropped, the rest are renumbered from 1, and pending
// rows are sent without an id. The returned ids line up with the request's
// questions.
func BuildTemplateRequest(store *Store) (*types.UpdateTemplateRequest, []types.RowID) {
	req := &types.UpdateTemplateRequest{
		Title:       strings.TrimSpace(store.Title),
		Description: strings.TrimSpace(store.Description),
		Questions:   []types.QuestionUpdateRequest{},
	}
	var rowIDs []types.RowID

	for _, q := range store.Questions.Questions() {
		if strings.TrimSpace(q.Text) == "" {
			continue
		}
		item := types.QuestionUpdateRequest{
			QuestionText:  q.Text,
			TimeLimit:     int(q.TimeLimit),
			QuestionOrder: len(req.Questions) + 1,
		}
		if id, ok := q.ID.Persisted(); ok {
			item.ID = id
		}
		req.Questions = append(req.Questions, item)
		rowIDs = append(rowIDs, q.ID)
	}

	return req, rowIDs
}

// BuildKeywordsRequest converts the keyword list into the replace payload, or
// returns nil when there are no keywords to send.
func BuildKeywordsRequest(store *Store) *types.ReplaceKeywordsRequest {
	keywords := store.Keywords.Keywords()
	if len(keywords) == 0 {
		return nil
	}
	req := &types.ReplaceKeywordsRequest{
		Keywords: make([]types.KeywordRequest, 0, len(keywords)),
	}
	for _, kw := range keywords {
		req.Keywords = append(req.Keywords, types.KeywordRequest{
			Keyword:  kw.Keyword,
			Category: kw.Category,
			Weight:   kw.Weight,
		})
	}
	return req
}

// userMessager is implemented by transport errors that carry a message from
// the backend's error payload.
type userMessager interface {
	UserMessage() string
}

func saveErrorFrom(err error) *SaveError {
	var um userMessager
	if errors.As(err, &um) {
		if msg := um.UserMessage(); msg != "" {
			return &SaveError{Message: msg, Cause: err}
		}
	}
	return &SaveError{Message: MsgTemplateUpdateFailed, Cause: err}
}
