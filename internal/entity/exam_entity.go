package entity

import (
	"time"

	"github.com/google/uuid"
)

type QuestionType string

const (
	QuestionTypeMCQ   QuestionType = "mcq"
	QuestionTypeShort QuestionType = "short"
	QuestionTypeLong  QuestionType = "long"
)

type Question struct {
	Type       QuestionType `json:"type"`
	Question   string       `json:"question"`
	Options    []string     `json:"options,omitempty"`
	Correct    *int         `json:"correct,omitempty"`
	Difficulty string       `json:"difficulty,omitempty"`
}

// AnswerRecord is one graded submission. Answer holds the option index for
// mcq questions and the free text otherwise.
type AnswerRecord struct {
	Answer    interface{} `json:"answer"`
	IsCorrect bool        `json:"isCorrect"`
	Question  string      `json:"question"`
}

type Exam struct {
	Id             uuid.UUID
	UserId         uuid.UUID
	Title          string
	Questions      []Question
	Completed      bool
	Score          int
	TotalQuestions int
	UserAnswers    []AnswerRecord
	CompletedAt    *time.Time
	CreatedAt      time.Time
	UpdatedAt      *time.Time
}
