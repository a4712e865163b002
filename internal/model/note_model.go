package model

import (
	"time"

	"github.com/google/uuid"
)

type Note struct {
	Id        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserId    uuid.UUID  `gorm:"type:uuid;not null;index"`
	SessionId *uuid.UUID `gorm:"type:uuid;index"`
	Title     string     `gorm:"type:varchar(255);not null"`
	Content   string     `gorm:"type:text"`
	Topic     string     `gorm:"type:varchar(255)"`
	Type      string     `gorm:"type:varchar(32);not null"`
	CreatedAt time.Time  `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime"`
}

func (Note) TableName() string {
	return "notes"
}
