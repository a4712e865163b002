package validation

import (
	"testing"

	"study-assistant-be/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int { return &i }

func TestSanitize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{`<script>alert("x")</script>`, "&lt;script&gt;alert(&quot;x&quot;)&lt;&#x2F;script&gt;"},
		{"it's a/b", "it&#x27;s a&#x2F;b"},
		{"plain text", "plain text"},
		{"&lt; stays", "&lt; stays"},
	}

	for _, tt := range tests {
		got := Sanitize(tt.in)
		if got != tt.want {
			t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
		}
		assert.Equal(t, got, Sanitize(got), "second pass changed %q", tt.in)
	}
}

func TestValidateExam(t *testing.T) {
	valid := func() *entity.Exam {
		return &entity.Exam{
			Title: "Exam",
			Questions: []entity.Question{
				{Type: entity.QuestionTypeMCQ, Question: "q1", Options: []string{"a", "b"}, Correct: intPtr(0)},
				{Type: entity.QuestionTypeShort, Question: "q2"},
				{Type: entity.QuestionTypeLong, Question: "q3"},
			},
		}
	}

	tests := []struct {
		name   string
		mutate func(e *entity.Exam)
		field  string
	}{
		{"valid", func(e *entity.Exam) {}, ""},
		{"missing title", func(e *entity.Exam) { e.Title = "  " }, "title"},
		{"no questions", func(e *entity.Exam) { e.Questions = nil }, "questions"},
		{"unknown type", func(e *entity.Exam) { e.Questions[1].Type = "essay" }, "questions[1].type"},
		{"one option", func(e *entity.Exam) { e.Questions[0].Options = []string{"a"} }, "questions[0].options"},
		{"correct out of range", func(e *entity.Exam) { e.Questions[0].Correct = intPtr(2) }, "questions[0].correct"},
		{"correct missing", func(e *entity.Exam) { e.Questions[0].Correct = nil }, "questions[0].correct"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := valid()
			tt.mutate(e)
			err := ValidateExam(e)
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			var verr *Error
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tt.field)
		})
	}
}

func TestValidateSession(t *testing.T) {
	s := &entity.StudySession{
		Title: "Physics",
		Type:  entity.SessionTypeStudy,
		Messages: []entity.Message{
			{Sender: entity.SenderUser, Content: "hi"},
			{Sender: entity.SenderAI, Content: ""},
		},
		SessionNotes: []entity.SessionNote{{Title: "", Content: "c"}},
	}

	err := ValidateSession(s)
	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "messages[1].content")
	assert.Contains(t, verr.Fields, "sessionNotes[0].title")
	assert.NotContains(t, verr.Fields, "title")

	s.Messages[1].Content = "hello"
	s.SessionNotes[0].Title = "Note"
	assert.NoError(t, ValidateSession(s))

	s.Title = ""
	require.ErrorAs(t, ValidateSession(s), &verr)
	assert.Equal(t, "title is required", verr.Fields["title"])
}

func TestValidateNote(t *testing.T) {
	assert.NoError(t, ValidateNote(&entity.Note{Title: "t", Content: "c"}))

	var verr *Error
	require.ErrorAs(t, ValidateNote(&entity.Note{Title: "t"}), &verr)
	assert.Equal(t, map[string]string{"content": "content is required"}, verr.Fields)
	assert.Equal(t, "validation failed: content: content is required", verr.Error())
}

func TestSanitizeSession(t *testing.T) {
	s := &entity.StudySession{
		Title: "<b>Atoms</b>",
		Messages: []entity.Message{
			{Sender: entity.SenderUser, Content: `say "hi"`},
			{Sender: entity.SenderAI, Content: ""},
		},
		SessionNotes: []entity.SessionNote{{Title: "a/b", Content: "it's"}},
	}

	SanitizeSession(s)

	assert.Equal(t, "&lt;b&gt;Atoms&lt;&#x2F;b&gt;", s.Title)
	require.Len(t, s.Messages, 1)
	assert.Equal(t, "say &quot;hi&quot;", s.Messages[0].Content)
	assert.Equal(t, "a&#x2F;b", s.SessionNotes[0].Title)
	assert.Equal(t, "it&#x27;s", s.SessionNotes[0].Content)
}

func TestSanitizeExam(t *testing.T) {
	correct := 0
	e := &entity.Exam{
		Title: "Q&A",
		Questions: []entity.Question{
			{Type: entity.QuestionTypeMCQ, Question: "1 < 2?", Options: []string{"<yes>", "no"}, Correct: &correct},
			{Type: entity.QuestionTypeShort, Question: ""},
		},
	}

	SanitizeExam(e)

	assert.Equal(t, "Q&A", e.Title)
	require.Len(t, e.Questions, 1)
	assert.Equal(t, 1, e.TotalQuestions)
	assert.Equal(t, "1 &lt; 2?", e.Questions[0].Question)
	assert.Equal(t, []string{"&lt;yes&gt;", "no"}, e.Questions[0].Options)
}
