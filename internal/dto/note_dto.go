package dto

import (
	"time"

	"study-assistant-be/internal/entity"

	"github.com/google/uuid"
)

type GenerateNoteRequest struct {
	Content string `json:"content" validate:"notblank,max=100000"`
	Title   string `json:"title" validate:"max=200"`
}

type NoteResponse struct {
	Id        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Topic     string     `json:"topic"`
	Type      string     `json:"type"`
	SessionId *uuid.UUID `json:"session_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func NewNoteResponse(n *entity.Note) *NoteResponse {
	return &NoteResponse{
		Id:        n.Id,
		Title:     n.Title,
		Content:   n.Content,
		Topic:     n.Topic,
		Type:      string(n.Type),
		SessionId: n.SessionId,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}
