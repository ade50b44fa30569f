package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Response is one respondent's submission for a form. Answers maps the
// question ID (as a decimal string) to the raw answer payload. Score
// and MaxScore are computed server-side at submission time and are not
// recomputed if the form later changes.
type Response struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	FormID          uint           `json:"form_id" gorm:"not null;index"`
	Form            Form           `json:"form,omitempty" gorm:"foreignKey:FormID"`
	SubmittedBy     *string        `json:"submitted_by,omitempty" gorm:"index"`
	RespondentName  string         `json:"respondent_name,omitempty"`
	RespondentEmail string         `json:"respondent_email,omitempty"`
	Answers         datatypes.JSON `json:"answers" gorm:"not null"` // map[questionID]payload
	Score           int            `json:"score" gorm:"not null"`
	MaxScore        int            `json:"max_score" gorm:"not null"`
	Completed       bool           `json:"completed" gorm:"not null;default:true"`
	SubmittedAt     time.Time      `json:"submitted_at" gorm:"autoCreateTime"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}
