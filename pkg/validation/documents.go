package validation

import (
	"study-assistant-be/internal/entity"

	"github.com/go-playground/validator/v10"
)

type messageDoc struct {
	Sender  string `json:"sender" validate:"notblank,oneof=user ai"`
	Content string `json:"content" validate:"notblank"`
}

type sessionNoteDoc struct {
	Title   string `json:"title" validate:"notblank"`
	Content string `json:"content" validate:"notblank"`
}

type sessionDoc struct {
	Title        string           `json:"title" validate:"notblank"`
	Type         string           `json:"type" validate:"oneof=study_sessions notes exams"`
	Messages     []messageDoc     `json:"messages" validate:"dive"`
	SessionNotes []sessionNoteDoc `json:"sessionNotes" validate:"dive"`
}

type noteDoc struct {
	Title   string `json:"title" validate:"notblank"`
	Content string `json:"content" validate:"notblank"`
}

type questionDoc struct {
	Type     string   `json:"type" validate:"oneof=mcq short long"`
	Question string   `json:"question" validate:"notblank"`
	Options  []string `json:"options"`
	Correct  *int     `json:"correct"`
}

type examDoc struct {
	Title     string        `json:"title" validate:"notblank"`
	Questions []questionDoc `json:"questions" validate:"min=1,dive"`
}

func questionLevel(sl validator.StructLevel) {
	q := sl.Current().Interface().(questionDoc)
	if q.Type != string(entity.QuestionTypeMCQ) {
		return
	}
	if len(q.Options) < 2 {
		sl.ReportError(q.Options, "options", "Options", "mcqoptions", "")
		return
	}
	if q.Correct == nil || *q.Correct < 0 || *q.Correct >= len(q.Options) {
		sl.ReportError(q.Correct, "correct", "Correct", "mcqcorrect", "")
	}
}

// ValidateSession checks a conversation document before it is stored.
func ValidateSession(s *entity.StudySession) error {
	doc := sessionDoc{Title: s.Title, Type: string(s.Type)}
	for _, m := range s.Messages {
		doc.Messages = append(doc.Messages, messageDoc{Sender: string(m.Sender), Content: m.Content})
	}
	for _, n := range s.SessionNotes {
		doc.SessionNotes = append(doc.SessionNotes, sessionNoteDoc{Title: n.Title, Content: n.Content})
	}
	return Struct(doc)
}

func ValidateNote(n *entity.Note) error {
	return Struct(noteDoc{Title: n.Title, Content: n.Content})
}

// ValidateExam rejects exams that could not be taken: missing title, no
// questions, unknown question types or broken multiple choice questions.
func ValidateExam(e *entity.Exam) error {
	doc := examDoc{Title: e.Title, Questions: make([]questionDoc, 0, len(e.Questions))}
	for _, q := range e.Questions {
		doc.Questions = append(doc.Questions, questionDoc{
			Type:     string(q.Type),
			Question: q.Question,
			Options:  q.Options,
			Correct:  q.Correct,
		})
	}
	return Struct(doc)
}
