package exam

import (
	"testing"

	"study-assistant-be/internal/entity"

	"github.com/stretchr/testify/assert"
)

func TestKeyPoints(t *testing.T) {
	got := KeyPoints("Explain how Photosynthesis converts light energy into chemical energy in plants")
	assert.Equal(t, []string{"explain", "photosynthesis", "converts", "light", "energy"}, got)
}

func TestKeywordGrader(t *testing.T) {
	q := entity.Question{Type: entity.QuestionTypeShort, Question: "Describe the water cycle stages"}

	tests := []struct {
		name string
		text string
		want bool
	}{
		{"too short", "water", false},
		{"mentions enough key points", "The water goes through stages of evaporation", true},
		{"off topic", "I really do not know the answer", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KeywordGrader(q, Answer{Text: tt.text}))
		})
	}

	mcq := entity.Question{Type: entity.QuestionTypeMCQ, Options: []string{"A", "B"}, Correct: intPtr(0)}
	assert.True(t, KeywordGrader(mcq, Answer{OptionIndex: intPtr(0)}))
}

func TestGraderByName(t *testing.T) {
	long := entity.Question{Type: entity.QuestionTypeLong, Question: "Discuss gravity"}
	ans := Answer{Text: "gravity pulls things down"}

	assert.False(t, GraderByName("")(long, ans))
	assert.True(t, GraderByName("KEYWORD")(long, ans))
}
