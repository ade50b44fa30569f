package dto

import (
	"encoding/json"
	"time"

	"github.com/openformlab/formbuilder/internal/scoring"
)

// AnswerSubmitDTO is one question's answer within a submission. Answer
// is kept as raw JSON because its shape depends on the question type.
type AnswerSubmitDTO struct {
	QuestionID uint            `json:"question_id" binding:"required"`
	Answer     json.RawMessage `json:"answer" swaggertype:"object"`
}

// ResponseSubmitDTO is the request body for submitting a form
// response. Any client-supplied score is deliberately absent: the
// server recomputes the score from the stored form and the answers.
type ResponseSubmitDTO struct {
	SubmittedBy     *string           `json:"submitted_by,omitempty"` // temporary, until auth is wired
	RespondentName  string            `json:"respondent_name,omitempty"`
	RespondentEmail string            `json:"respondent_email,omitempty"`
	Responses       []AnswerSubmitDTO `json:"responses" binding:"omitempty,dive"`
}

// ResponseDetailDTO is the full read view of one stored submission.
type ResponseDetailDTO struct {
	ID              uint                       `json:"id"`
	FormID          uint                       `json:"form_id"`
	FormTitle       string                     `json:"form_title,omitempty"`
	SubmittedBy     *string                    `json:"submitted_by,omitempty"`
	RespondentName  string                     `json:"respondent_name,omitempty"`
	RespondentEmail string                     `json:"respondent_email,omitempty"`
	Responses       map[string]json.RawMessage `json:"responses"`
	Score           int                        `json:"score"`
	MaxScore        int                        `json:"max_score"`
	Percentage      int                        `json:"percentage"`
	Completed       bool                       `json:"completed"`
	SubmittedAt     time.Time                  `json:"submitted_at"`
}

// ResponseSummaryDTO is one row of a form's response listing.
type ResponseSummaryDTO struct {
	ID             uint      `json:"id"`
	SubmittedBy    *string   `json:"submitted_by,omitempty"`
	RespondentName string    `json:"respondent_name,omitempty"`
	Score          int       `json:"score"`
	MaxScore       int       `json:"max_score"`
	Percentage     int       `json:"percentage"`
	SubmittedAt    time.Time `json:"submitted_at"`
}

// RespondentAnswerDTO is one respondent's answer to one question, as
// shown in the per-question breakdown of the responses view.
type RespondentAnswerDTO struct {
	Respondent  string          `json:"respondent"`
	Answer      json.RawMessage `json:"answer" swaggertype:"object"`
	SubmittedAt time.Time       `json:"submitted_at"`
}

// QuestionAnswersDTO groups every collected answer under its question.
type QuestionAnswersDTO struct {
	QuestionID   uint                  `json:"question_id"`
	QuestionText string                `json:"question_text"`
	Type         string                `json:"type"`
	Answers      []RespondentAnswerDTO `json:"answers"`
}

// FormResponsesDTO is the builder's responses view for one form: the
// form itself, every submission, aggregate statistics, and the
// per-question answer breakdown.
type FormResponsesDTO struct {
	Form            FormResponseDTO      `json:"form"`
	Responses       []ResponseSummaryDTO `json:"responses"`
	Statistics      scoring.Statistics   `json:"statistics"`
	QuestionAnswers []QuestionAnswersDTO `json:"question_answers"`
}
