package dto

import (
	"github.com/google/uuid"
)

type SendMessageRequest struct {
	SessionId   *uuid.UUID `json:"session_id"`
	SessionType string     `json:"session_type" validate:"omitempty,oneof=study_sessions notes exams"`
	Message     string     `json:"message" validate:"notblank,max=4000"`
}

// SendMessageResponse carries the tutor reply and whatever the turn produced.
type SendMessageResponse struct {
	SessionId   uuid.UUID       `json:"session_id"`
	SessionType string          `json:"session_type"`
	Title       string          `json:"title"`
	Reply       MessageDTO      `json:"reply"`
	Action      string          `json:"action"`
	FollowUp    *MessageDTO     `json:"follow_up,omitempty"`
	Note        *NoteResponse   `json:"note,omitempty"`
	Exam        *ExamResponse   `json:"exam,omitempty"`
	SessionNote *SessionNoteDTO `json:"session_note,omitempty"`
}

type WelcomeResponse struct {
	SessionType string `json:"session_type"`
	Message     string `json:"message"`
}
