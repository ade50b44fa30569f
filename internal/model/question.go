package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Question is one typed prompt of a form. Type selects which of the
// variant columns are meaningful; the variant payloads live in JSON
// columns so each type can carry its own answer-key shape.
type Question struct {
	ID           uint   `gorm:"primarykey" json:"id"`
	FormID       uint   `json:"form_id" gorm:"not null;index"`
	Type         string `json:"type" gorm:"not null"` // "categorize", "cloze", "comprehension", "text", "dropdown", "checkbox", "radio"
	QuestionText string `json:"question_text" gorm:"type:text"`
	Required     bool   `json:"required" gorm:"not null;default:false"`
	Points       int    `json:"points" gorm:"not null;default:1"`
	Image        string `json:"image,omitempty" gorm:"type:text"`
	OrderInForm  int    `json:"order_in_form" gorm:"not null"`

	// type = "categorize"
	Categories datatypes.JSON `json:"categories,omitempty"` // []string
	Items      datatypes.JSON `json:"items,omitempty"`      // []scoring.CategorizeItem

	// type = "cloze"
	ClozeText string         `json:"cloze_text,omitempty" gorm:"type:text"`
	Blanks    datatypes.JSON `json:"blanks,omitempty"` // []scoring.ClozeBlank

	// type = "comprehension"
	Passage string         `json:"passage,omitempty" gorm:"type:text"`
	MCQs    datatypes.JSON `json:"mcqs,omitempty" gorm:"column:mcqs"` // []scoring.MCQ

	// simple scalar types
	Options       datatypes.JSON `json:"options,omitempty"`        // []string
	CorrectAnswer datatypes.JSON `json:"correct_answer,omitempty"` // answer key, shape depends on Type

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
