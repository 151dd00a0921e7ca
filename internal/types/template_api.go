package types

import (
	"github.com/go-playground/validator/v10"
)

// TemplateResponse is the body of GET /templates/{id}.
type TemplateResponse struct {
	ID          string             `json:"id,omitempty"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Questions   []QuestionResponse `json:"questions"`
}

// QuestionResponse is a persisted question as returned by the backend.
type QuestionResponse struct {
	ID            string `json:"id"`
	QuestionText  string `json:"question_text"`
	TimeLimit     int    `json:"time_limit"`
	QuestionOrder int    `json:"question_order"`
}

// KeywordsResponse is the body of GET /templates/{id}/keywords.
type KeywordsResponse struct {
	Keywords []KeywordResponse `json:"keywords"`
}

// KeywordResponse is a persisted keyword as returned by the backend.
type KeywordResponse struct {
	ID       string   `json:"id"`
	Keyword  string   `json:"keyword"`
	Category Category `json:"category"`
	Weight   Weight   `json:"weight"`
}

// UpdateTemplateRequest is the body of PUT /templates/{id}.
type UpdateTemplateRequest struct {
	Title       string                  `json:"title" validate:"required"`
	Description string                  `json:"description"`
	Questions   []QuestionUpdateRequest `json:"questions" validate:"required,min=1,dive"`
}

// QuestionUpdateRequest is one question in an UpdateTemplateRequest. An empty
// ID asks the backend to create the question.
type QuestionUpdateRequest struct {
	ID            string `json:"id,omitempty"`
	QuestionText  string `json:"question_text" validate:"required"`
	TimeLimit     int    `json:"time_limit" validate:"gt=0"`
	QuestionOrder int    `json:"question_order" validate:"gte=1"`
}

// ReplaceKeywordsRequest is the body of POST /templates/{id}/keywords. The
// backend replaces the template's whole keyword set with this list.
type ReplaceKeywordsRequest struct {
	Keywords []KeywordRequest `json:"keywords" validate:"dive"`
}

// KeywordRequest is one keyword in a ReplaceKeywordsRequest. Ids are never sent.
type KeywordRequest struct {
	Keyword  string   `json:"keyword" validate:"required"`
	Category Category `json:"category" validate:"required,oneof=technical soft_skills experience general"`
	Weight   Weight   `json:"weight" validate:"gt=0"`
}

// ErrorResponse is the error payload shape the backend uses. Either field may
// carry the message.
type ErrorResponse struct {
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// Text returns whichever message field is populated.
func (e ErrorResponse) Text() string {
	if e.Error != "" {
		return e.Error
	}
	return e.Message
}

// Validate validates the UpdateTemplateRequest using the validator.
func (r *UpdateTemplateRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the ReplaceKeywordsRequest using the validator.
func (r *ReplaceKeywordsRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
