package model

import (
	"time"

	"study-assistant-be/internal/entity"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Exam struct {
	Id             uuid.UUID                                `gorm:"type:uuid;primaryKey"`
	UserId         uuid.UUID                                `gorm:"type:uuid;not null;index"`
	Title          string                                   `gorm:"type:varchar(255);not null"`
	Questions      datatypes.JSONSlice[entity.Question]     `gorm:"not null"`
	Completed      bool                                     `gorm:"default:false"`
	Score          int                                      `gorm:"default:0"`
	TotalQuestions int                                      `gorm:"not null"`
	UserAnswers    datatypes.JSONSlice[entity.AnswerRecord] `gorm:"not null"`
	CompletedAt    *time.Time
	CreatedAt      time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`
}

func (Exam) TableName() string {
	return "exams"
}
