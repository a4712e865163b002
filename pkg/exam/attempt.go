package exam

import (
	"errors"
	"time"

	"study-assistant-be/internal/entity"

	"github.com/google/uuid"
)

var (
	ErrNoQuestions      = errors.New("exam has no questions")
	ErrAlreadyCompleted = errors.New("exam already completed")
	ErrEmptyAnswer      = errors.New("please provide an answer before submitting")
)

// State is the position of an attempt in its linear walk.
type State string

const (
	StateDisplaying State = "displaying"
	StateAwaiting   State = "awaiting_answer"
	StateEvaluating State = "evaluating"
	StateAdvancing  State = "advancing"
	StateCompleted  State = "completed"
)

// Attempt is the in-memory progress through one exam. It only moves forward.
type Attempt struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Exam      *entity.Exam
	Index     int
	Answers   []entity.AnswerRecord
	Score     int
	State     State
	StartedAt time.Time
}

func NewAttempt(userID uuid.UUID, exam *entity.Exam) (*Attempt, error) {
	if exam.Completed {
		return nil, ErrAlreadyCompleted
	}
	if len(exam.Questions) == 0 {
		return nil, ErrNoQuestions
	}
	return &Attempt{
		ID:        uuid.New(),
		UserID:    userID,
		Exam:      exam,
		Answers:   make([]entity.AnswerRecord, 0, len(exam.Questions)),
		State:     StateDisplaying,
		StartedAt: time.Now(),
	}, nil
}

func (a *Attempt) Total() int {
	return len(a.Exam.Questions)
}

func (a *Attempt) Completed() bool {
	return a.State == StateCompleted
}

// Current shows the question under the cursor and waits for an answer.
func (a *Attempt) Current() (*entity.Question, error) {
	if a.Completed() {
		return nil, ErrAlreadyCompleted
	}
	a.State = StateAwaiting
	q := a.Exam.Questions[a.Index]
	return &q, nil
}

type Feedback struct {
	Index         int    `json:"index"`
	Correct       bool   `json:"correct"`
	CorrectAnswer string `json:"correct_answer,omitempty"`
	Completed     bool   `json:"completed"`
}

// Submit grades the answer for the current question and advances the cursor.
// Empty answers are rejected and leave the attempt untouched.
func (a *Attempt) Submit(ans Answer, grade Grader) (*Feedback, error) {
	if a.Completed() {
		return nil, ErrAlreadyCompleted
	}
	q := a.Exam.Questions[a.Index]
	if ans.Empty(q.Type) {
		return nil, ErrEmptyAnswer
	}
	if grade == nil {
		grade = HeuristicGrader
	}

	a.State = StateEvaluating
	correct := grade(q, ans)

	a.Answers = append(a.Answers, entity.AnswerRecord{
		Answer:    ans.Value(q.Type),
		IsCorrect: correct,
		Question:  q.Question,
	})
	if correct {
		a.Score++
	}

	fb := &Feedback{Index: a.Index, Correct: correct}
	if !correct && q.Type == entity.QuestionTypeMCQ && q.Correct != nil &&
		*q.Correct >= 0 && *q.Correct < len(q.Options) {
		fb.CorrectAnswer = q.Options[*q.Correct]
	}

	a.State = StateAdvancing
	a.Index++
	if a.Index >= a.Total() {
		a.State = StateCompleted
		fb.Completed = true
	} else {
		a.State = StateDisplaying
	}
	return fb, nil
}

// Result is only meaningful once the attempt is completed.
func (a *Attempt) Result() Result {
	return NewResult(a.Score, a.Total())
}

// Apply copies the outcome onto the exam record that gets persisted.
func (a *Attempt) Apply(now time.Time) *entity.Exam {
	a.Exam.Completed = true
	a.Exam.Score = a.Score
	a.Exam.TotalQuestions = a.Total()
	a.Exam.UserAnswers = a.Answers
	a.Exam.CompletedAt = &now
	return a.Exam
}
