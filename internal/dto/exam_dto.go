package dto

import (
	"time"

	"study-assistant-be/internal/entity"
	"study-assistant-be/pkg/exam"

	"github.com/google/uuid"
)

// QuestionDTO never exposes the correct option.
type QuestionDTO struct {
	Type       string   `json:"type"`
	Question   string   `json:"question"`
	Options    []string `json:"options,omitempty"`
	Difficulty string   `json:"difficulty,omitempty"`
}

type AnswerRecordDTO struct {
	Answer    interface{} `json:"answer"`
	IsCorrect bool        `json:"is_correct"`
	Question  string      `json:"question"`
}

type ExamResponse struct {
	Id             uuid.UUID         `json:"id"`
	Title          string            `json:"title"`
	Questions      []QuestionDTO     `json:"questions"`
	TotalQuestions int               `json:"total_questions"`
	Completed      bool              `json:"completed"`
	Score          *int              `json:"score,omitempty"`
	UserAnswers    []AnswerRecordDTO `json:"user_answers,omitempty"`
	Result         *ExamResultDTO    `json:"result,omitempty"`
	CompletedAt    *time.Time        `json:"completed_at,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
}

type ExamResultDTO struct {
	Score      int    `json:"score"`
	Total      int    `json:"total"`
	Percentage int    `json:"percentage"`
	Grade      string `json:"grade"`
	Message    string `json:"message"`
}

type CurrentQuestionResponse struct {
	ExamId   uuid.UUID   `json:"exam_id"`
	Index    int         `json:"index"`
	Total    int         `json:"total"`
	State    string      `json:"state"`
	Question QuestionDTO `json:"question"`
}

type GenerateExamRequest struct {
	Topic string `json:"topic" validate:"max=200"`
}

type SubmitAnswerRequest struct {
	OptionIndex *int   `json:"option_index" validate:"omitempty,min=0"`
	Text        string `json:"text" validate:"max=10000"`
}

type SubmitAnswerResponse struct {
	Index         int                      `json:"index"`
	Correct       bool                     `json:"correct"`
	CorrectAnswer string                   `json:"correct_answer,omitempty"`
	Completed     bool                     `json:"completed"`
	Next          *CurrentQuestionResponse `json:"next,omitempty"`
	Result        *ExamResultDTO           `json:"result,omitempty"`
}

func NewQuestionDTO(q entity.Question) QuestionDTO {
	return QuestionDTO{Type: string(q.Type), Question: q.Question, Options: q.Options, Difficulty: q.Difficulty}
}

func NewExamResultDTO(r exam.Result) *ExamResultDTO {
	return &ExamResultDTO{Score: r.Score, Total: r.Total, Percentage: r.Percentage, Grade: r.Grade, Message: r.Message}
}

func NewExamResponse(e *entity.Exam) *ExamResponse {
	res := &ExamResponse{
		Id:             e.Id,
		Title:          e.Title,
		Questions:      make([]QuestionDTO, 0, len(e.Questions)),
		TotalQuestions: e.TotalQuestions,
		Completed:      e.Completed,
		CompletedAt:    e.CompletedAt,
		CreatedAt:      e.CreatedAt,
	}
	for _, q := range e.Questions {
		res.Questions = append(res.Questions, NewQuestionDTO(q))
	}
	if e.Completed {
		score := e.Score
		res.Score = &score
		res.Result = NewExamResultDTO(exam.NewResult(e.Score, e.TotalQuestions))
		for _, a := range e.UserAnswers {
			res.UserAnswers = append(res.UserAnswers, AnswerRecordDTO{Answer: a.Answer, IsCorrect: a.IsCorrect, Question: a.Question})
		}
	}
	return res
}
