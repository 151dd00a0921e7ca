package editor

import (
	"errors"
	"fmt"
)

// ErrSaveInProgress is returned when Save is called while a previous save is
// still waiting on the backend.
var ErrSaveInProgress = errors.New("save already in progress")

// Messages used for validation and transport failures.
const (
	MsgTitleRequired         = "title required"
	MsgQuestionRequired      = "at least one question required"
	MsgTemplateUpdateFailed  = "Failed to update template"
	MsgKeywordsUpdateFailed  = "Failed to update keywords"
	MsgTemplateLoadFailed    = "Failed to load template"
	MsgTemplateIDRequired    = "template id required"
	MsgKeywordsPartialResult = "Template saved, but keywords could not be updated"
)

// ValidationError blocks a save before any network call is made.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s", e.Message)
}

// LoadError indicates the initial template fetch failed.
type LoadError struct {
	TemplateID string
	Message    string
	Cause      error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("load error for template %s: %s: %v", e.TemplateID, e.Message, e.Cause)
	}
	return fmt.Sprintf("load error for template %s: %s", e.TemplateID, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// SaveError indicates the template update failed. Nothing was applied.
type SaveError struct {
	Message string
	Cause   error
}

func (e *SaveError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("save error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("save error: %s", e.Message)
}

func (e *SaveError) Unwrap() error {
	return e.Cause
}

// KeywordSaveWarning indicates the keyword replace failed after the template
// update succeeded. The template change stands.
type KeywordSaveWarning struct {
	Message string
	Cause   error
}

func (e *KeywordSaveWarning) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("keyword save warning: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("keyword save warning: %s", e.Message)
}

func (e *KeywordSaveWarning) Unwrap() error {
	return e.Cause
}
