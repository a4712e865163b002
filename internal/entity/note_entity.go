package entity

import (
	"time"

	"github.com/google/uuid"
)

type NoteType string

const (
	// NoteTypeGenerated marks notes produced from a chat command or a direct request.
	NoteTypeGenerated NoteType = "generated"
	// NoteTypeAutoGenerated marks notes produced from a whole stored session.
	NoteTypeAutoGenerated NoteType = "auto-generated"
)

type Note struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	SessionId *uuid.UUID
	Title     string
	Content   string
	Topic     string
	Type      NoteType
	CreatedAt time.Time
	UpdatedAt *time.Time
}
