package specification

import (
	"study-assistant-be/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByNoteType struct {
	Type entity.NoteType
}

func (s ByNoteType) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("type = ?", string(s.Type))
}

type BySessionID struct {
	SessionID uuid.UUID
}

func (s BySessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_id = ?", s.SessionID)
}
