package scoring

import (
	"encoding/json"
	"time"
)

// QuestionType tags the variant of a Question. The scorer and the
// submission validator switch exhaustively on this tag, so adding a
// new type is a localized change in this package.
type QuestionType string

const (
	TypeCategorize    QuestionType = "categorize"
	TypeCloze         QuestionType = "cloze"
	TypeComprehension QuestionType = "comprehension"
	TypeText          QuestionType = "text"
	TypeDropdown      QuestionType = "dropdown"
	TypeCheckbox      QuestionType = "checkbox"
	TypeRadio         QuestionType = "radio"
)

// CategorizeItem is one draggable item of a categorize question.
// Category holds the ground-truth category the item belongs to.
type CategorizeItem struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	Category string `json:"category"`
}

// ClozeBlank is one blank of a cloze question. Word is the ground-truth
// answer; Options are the candidate words shown to the respondent.
type ClozeBlank struct {
	ID      string   `json:"id"`
	Word    string   `json:"word"`
	Options []string `json:"options,omitempty"`
}

// MCQ is one multiple-choice sub-question of a comprehension question.
// CorrectAnswer is an index into Options.
type MCQ struct {
	ID            string   `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
}

// Question is the scoring view of a single form question. Only the
// fields matching Type are populated; the rest stay at their zero
// values. CorrectAnswer carries the ground truth for the simple scalar
// types and is nil when the question has no answer key.
type Question struct {
	ID            string
	Type          QuestionType
	QuestionText  string
	Required      bool
	Points        int
	Categories    []string
	Items         []CategorizeItem
	ClozeText     string
	Blanks        []ClozeBlank
	Passage       string
	MCQs          []MCQ
	Options       []string
	CorrectAnswer json.RawMessage
}

// Form is the scoring view of a form definition. Question order is
// significant and matches the display order.
type Form struct {
	ID                    string
	AcceptingResponses    bool
	CollectRespondentInfo bool
	Questions             []Question
}

// AnswerSet maps a question ID to the raw JSON answer payload the
// respondent submitted for it. Payload shape depends on the question
// type: a category assignment list for categorize, a string array for
// cloze and comprehension, and a scalar (or string array) for the
// simple types. Entries may be missing; a missing or undecodable entry
// simply earns no points.
type AnswerSet map[string]json.RawMessage

// CategoryAssignment is one entry of a categorize answer payload.
type CategoryAssignment struct {
	ItemID   string `json:"item_id"`
	Category string `json:"category"`
}

// Submission is the aggregation view of one stored response.
// SubmittedBy is empty for anonymous respondents.
type Submission struct {
	Score       int
	MaxScore    int
	SubmittedBy string
	SubmittedAt time.Time
}

// Result is the outcome of scoring one submission against a form.
type Result struct {
	TotalPoints int `json:"total_points"`
	MaxPoints   int `json:"max_points"`
}

// Statistics summarizes all submissions collected for one form.
type Statistics struct {
	TotalSubmissions  int     `json:"total_submissions"`
	MaxPossibleScore  int     `json:"max_possible_score"`
	AverageScore      float64 `json:"average_score"`
	HighestScore      int     `json:"highest_score"`
	AveragePercentage float64 `json:"average_percentage"`
	UniqueRespondents int     `json:"unique_respondents"`
}
