package model

import (
	"time"

	"gorm.io/gorm"
)

type Form struct {
	ID                    uint           `gorm:"primarykey" json:"id"`
	Title                 string         `json:"title" gorm:"not null"`
	Description           string         `json:"description,omitempty" gorm:"type:text"`
	HeaderImage           string         `json:"header_image,omitempty" gorm:"type:text"`
	AcceptingResponses    bool           `json:"accepting_responses" gorm:"not null;default:true"`
	CollectRespondentInfo bool           `json:"collect_respondent_info" gorm:"not null;default:false"`
	Questions             []Question     `json:"questions,omitempty" gorm:"foreignKey:FormID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt             time.Time      `json:"created_at"`
	UpdatedAt             time.Time      `json:"updated_at"`
	DeletedAt             gorm.DeletedAt `gorm:"index" json:"-"`
}
