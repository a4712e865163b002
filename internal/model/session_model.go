package model

import (
	"time"

	"study-assistant-be/internal/entity"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// StudySession stores messages and session notes verbatim as JSON arrays.
type StudySession struct {
	Id           uuid.UUID                               `gorm:"type:uuid;primaryKey"`
	UserId       uuid.UUID                               `gorm:"type:uuid;not null;index"`
	Title        string                                  `gorm:"type:varchar(255);not null"`
	Type         string                                  `gorm:"type:varchar(32);not null;index"`
	Messages     datatypes.JSONSlice[entity.Message]     `gorm:"not null"`
	SessionNotes datatypes.JSONSlice[entity.SessionNote] `gorm:"not null"`
	CreatedAt    time.Time                               `gorm:"autoCreateTime;index"`
	UpdatedAt    time.Time                               `gorm:"autoUpdateTime"`
}

func (StudySession) TableName() string {
	return "study_sessions"
}
