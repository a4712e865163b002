package validation

import (
	"strings"

	"study-assistant-be/internal/entity"
)

var htmlEscaper = strings.NewReplacer(
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#x27;",
	"/", "&#x2F;",
)

// Sanitize escapes < > " ' and /. The ampersand is left alone, so an entity
// typed by the user ("&lt;") cannot be told apart from an escaped "<".
func Sanitize(s string) string {
	return htmlEscaper.Replace(s)
}

// SanitizeSession escapes every user visible string of a conversation in place.
// Messages or notes with no content are dropped.
func SanitizeSession(s *entity.StudySession) {
	s.Title = Sanitize(s.Title)

	messages := s.Messages[:0]
	for _, m := range s.Messages {
		if m.Sender == "" || m.Content == "" {
			continue
		}
		m.Content = Sanitize(m.Content)
		messages = append(messages, m)
	}
	s.Messages = messages

	notes := s.SessionNotes[:0]
	for _, n := range s.SessionNotes {
		if n.Title == "" || n.Content == "" {
			continue
		}
		n.Title = Sanitize(n.Title)
		n.Content = Sanitize(n.Content)
		notes = append(notes, n)
	}
	s.SessionNotes = notes
}

// SanitizeExam escapes the title, question texts and mcq options.
func SanitizeExam(e *entity.Exam) {
	e.Title = Sanitize(e.Title)

	questions := e.Questions[:0]
	for _, q := range e.Questions {
		if q.Type == "" || q.Question == "" {
			continue
		}
		q.Question = Sanitize(q.Question)
		if q.Type == entity.QuestionTypeMCQ && len(q.Options) > 0 {
			options := make([]string, len(q.Options))
			for i, o := range q.Options {
				options[i] = Sanitize(o)
			}
			q.Options = options
		}
		questions = append(questions, q)
	}
	e.Questions = questions
	e.TotalQuestions = len(questions)
}

func SanitizeNote(n *entity.Note) {
	n.Title = Sanitize(n.Title)
	n.Content = Sanitize(n.Content)
}
