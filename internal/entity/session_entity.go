package entity

import (
	"time"

	"github.com/google/uuid"
)

// SessionType names the collection a conversation lives in.
type SessionType string

const (
	SessionTypeStudy SessionType = "study_sessions"
	SessionTypeNotes SessionType = "notes"
	SessionTypeExams SessionType = "exams"
)

func (t SessionType) Valid() bool {
	switch t {
	case SessionTypeStudy, SessionTypeNotes, SessionTypeExams:
		return true
	}
	return false
}

type Sender string

const (
	SenderUser Sender = "user"
	SenderAI   Sender = "ai"
)

type Message struct {
	Sender    Sender    `json:"sender"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

type SessionNote struct {
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

type StudySession struct {
	Id           uuid.UUID
	UserId       uuid.UUID
	Title        string
	Type         SessionType
	Messages     []Message
	SessionNotes []SessionNote
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}

// UserMessageCount counts the turns sent by the user.
func (s *StudySession) UserMessageCount() int {
	count := 0
	for _, m := range s.Messages {
		if m.Sender == SenderUser {
			count++
		}
	}
	return count
}
