package dto

import (
	"time"

	"study-assistant-be/internal/entity"

	"github.com/google/uuid"
)

type MessageDTO struct {
	Sender    string    `json:"sender"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

type SessionNoteDTO struct {
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionListItem is one row of a sidebar list. Which fields are set depends
// on the collection.
type SessionListItem struct {
	Id           uuid.UUID  `json:"id"`
	Title        string     `json:"title"`
	Type         string     `json:"type"`
	MessageCount int        `json:"message_count,omitempty"`
	NoteCount    int        `json:"note_count,omitempty"`
	Completed    *bool      `json:"completed,omitempty"`
	Score        *int       `json:"score,omitempty"`
	Total        int        `json:"total_questions,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

type SessionResponse struct {
	Id           uuid.UUID        `json:"id"`
	Title        string           `json:"title"`
	Type         string           `json:"type"`
	Messages     []MessageDTO     `json:"messages"`
	SessionNotes []SessionNoteDTO `json:"session_notes"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    *time.Time       `json:"updated_at"`
}

type RenameRequest struct {
	Title string `json:"title" validate:"notblank,max=200"`
}

func NewSessionResponse(s *entity.StudySession) *SessionResponse {
	res := &SessionResponse{
		Id:           s.Id,
		Title:        s.Title,
		Type:         string(s.Type),
		Messages:     make([]MessageDTO, 0, len(s.Messages)),
		SessionNotes: make([]SessionNoteDTO, 0, len(s.SessionNotes)),
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
	for _, m := range s.Messages {
		res.Messages = append(res.Messages, MessageDTO{Sender: string(m.Sender), Content: m.Content, Timestamp: m.Timestamp})
	}
	for _, n := range s.SessionNotes {
		res.SessionNotes = append(res.SessionNotes, SessionNoteDTO{Title: n.Title, Content: n.Content, CreatedAt: n.CreatedAt})
	}
	return res
}

func NewSessionListItem(s *entity.StudySession) SessionListItem {
	return SessionListItem{
		Id:           s.Id,
		Title:        s.Title,
		Type:         string(s.Type),
		MessageCount: len(s.Messages),
		NoteCount:    len(s.SessionNotes),
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

func NewExamListItem(e *entity.Exam) SessionListItem {
	item := SessionListItem{
		Id:        e.Id,
		Title:     e.Title,
		Type:      string(entity.SessionTypeExams),
		Completed: &e.Completed,
		Total:     e.TotalQuestions,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
	if e.Completed {
		score := e.Score
		item.Score = &score
	}
	return item
}

func NewNoteListItem(n *entity.Note) SessionListItem {
	return SessionListItem{
		Id:        n.Id,
		Title:     n.Title,
		Type:      string(n.Type),
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}
