package dto

import (
	"encoding/json"
	"time"
)

// CategorizeItemDTO mirrors one item of a categorize question,
// including its ground-truth category.
type CategorizeItemDTO struct {
	ID       string `json:"id" binding:"required"`
	Text     string `json:"text" binding:"required"`
	Category string `json:"category" binding:"required"`
}

type ClozeBlankDTO struct {
	ID      string   `json:"id" binding:"required"`
	Word    string   `json:"word" binding:"required"`
	Options []string `json:"options,omitempty"`
}

type MCQDTO struct {
	ID            string   `json:"id" binding:"required"`
	Question      string   `json:"question" binding:"required"`
	Options       []string `json:"options" binding:"required,min=2"`
	CorrectAnswer int      `json:"correct_answer" binding:"min=0"`
}

// QuestionCreateDTO carries one question of a form create/replace
// request. Only the fields matching Type are expected; per-type
// payload checks happen in the service layer.
type QuestionCreateDTO struct {
	Type         string `json:"type" binding:"required,oneof=categorize cloze comprehension text dropdown checkbox radio"`
	QuestionText string `json:"question_text"`
	Required     bool   `json:"required"`
	Points       int    `json:"points" binding:"omitempty,min=1"`
	Image        string `json:"image,omitempty"`

	Categories []string            `json:"categories,omitempty"`
	Items      []CategorizeItemDTO `json:"items,omitempty" binding:"omitempty,dive"`

	ClozeText string          `json:"cloze_text,omitempty"`
	Blanks    []ClozeBlankDTO `json:"blanks,omitempty" binding:"omitempty,dive"`

	Passage string   `json:"passage,omitempty"`
	MCQs    []MCQDTO `json:"mcqs,omitempty" binding:"omitempty,dive"`

	Options       []string        `json:"options,omitempty"`
	CorrectAnswer json.RawMessage `json:"correct_answer,omitempty" swaggertype:"object"`
}

// FormCreateDTO creates a new form together with its ordered
// questions. The same shape is used for full-document replace.
type FormCreateDTO struct {
	Title                 string              `json:"title" binding:"required"`
	Description           string              `json:"description,omitempty"`
	HeaderImage           string              `json:"header_image,omitempty"`
	CollectRespondentInfo bool                `json:"collect_respondent_info"`
	AcceptingResponses    *bool               `json:"accepting_responses"` // defaults to true when omitted
	Questions             []QuestionCreateDTO `json:"questions" binding:"omitempty,dive"`
}

// AcceptingResponsesDTO toggles whether a form accepts new submissions.
type AcceptingResponsesDTO struct {
	AcceptingResponses *bool `json:"accepting_responses" binding:"required"`
}

// QuestionResponseDTO is the read view of one question, answer key
// included. The same view serves the builder and the form renderer.
type QuestionResponseDTO struct {
	ID           uint   `json:"id"`
	FormID       uint   `json:"form_id"`
	Type         string `json:"type"`
	QuestionText string `json:"question_text"`
	Required     bool   `json:"required"`
	Points       int    `json:"points"`
	Image        string `json:"image,omitempty"`
	OrderInForm  int    `json:"order_in_form"`

	Categories    json.RawMessage `json:"categories,omitempty" swaggertype:"array,string"`
	Items         json.RawMessage `json:"items,omitempty" swaggertype:"object"`
	ClozeText     string          `json:"cloze_text,omitempty"`
	Blanks        json.RawMessage `json:"blanks,omitempty" swaggertype:"object"`
	Passage       string          `json:"passage,omitempty"`
	MCQs          json.RawMessage `json:"mcqs,omitempty" swaggertype:"object"`
	Options       json.RawMessage `json:"options,omitempty" swaggertype:"array,string"`
	CorrectAnswer json.RawMessage `json:"correct_answer,omitempty" swaggertype:"object"`
}

// FormResponseDTO is the full read view of a form.
type FormResponseDTO struct {
	ID                    uint                  `json:"id"`
	Title                 string                `json:"title"`
	Description           string                `json:"description,omitempty"`
	HeaderImage           string                `json:"header_image,omitempty"`
	AcceptingResponses    bool                  `json:"accepting_responses"`
	CollectRespondentInfo bool                  `json:"collect_respondent_info"`
	Questions             []QuestionResponseDTO `json:"questions,omitempty"`
	CreatedAt             time.Time             `json:"created_at"`
	UpdatedAt             time.Time             `json:"updated_at"`
}

// FormSummaryDTO is one row of the form listing.
type FormSummaryDTO struct {
	ID                 uint      `json:"id"`
	Title              string    `json:"title"`
	Description        string    `json:"description,omitempty"`
	AcceptingResponses bool      `json:"accepting_responses"`
	QuestionCount      int       `json:"question_count"`
	ResponseCount      int       `json:"response_count"`
	CreatedAt          time.Time `json:"created_at"`
}

type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
