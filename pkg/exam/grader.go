package exam

import (
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"study-assistant-be/internal/entity"
)

// LongAnswerMinLength is exclusive: a long answer needs more characters than this.
const LongAnswerMinLength = 50

// Answer carries whatever the client submitted. Only the field matching the
// question type is read.
type Answer struct {
	OptionIndex *int
	Text        string
}

// Empty reports whether the answer has nothing to grade for the given type.
func (a Answer) Empty(qt entity.QuestionType) bool {
	if qt == entity.QuestionTypeMCQ {
		return a.OptionIndex == nil
	}
	return strings.TrimSpace(a.Text) == ""
}

// Value is what gets recorded in the answer history.
func (a Answer) Value(qt entity.QuestionType) interface{} {
	if qt == entity.QuestionTypeMCQ {
		if a.OptionIndex == nil {
			return nil
		}
		return *a.OptionIndex
	}
	return strings.TrimSpace(a.Text)
}

// Grader decides correctness of one answer.
type Grader func(q entity.Question, a Answer) bool

// HeuristicGrader checks mcq answers exactly. Short answers only need content
// and long answers need more than LongAnswerMinLength characters.
func HeuristicGrader(q entity.Question, a Answer) bool {
	switch q.Type {
	case entity.QuestionTypeMCQ:
		return a.OptionIndex != nil && q.Correct != nil && *a.OptionIndex == *q.Correct
	case entity.QuestionTypeShort:
		return utf8.RuneCountInString(strings.TrimSpace(a.Text)) > 0
	case entity.QuestionTypeLong:
		return utf8.RuneCountInString(strings.TrimSpace(a.Text)) > LongAnswerMinLength
	default:
		return false
	}
}

const (
	keywordMinTextLength = 10
	keywordLimit         = 5
	keywordMatchRatio    = 0.4
)

var keywordPattern = regexp.MustCompile(`\b\w{4,}\b`)

// KeyPoints picks up to five words of four or more letters from the question.
func KeyPoints(question string) []string {
	words := keywordPattern.FindAllString(strings.ToLower(question), -1)
	if len(words) > keywordLimit {
		words = words[:keywordLimit]
	}
	return words
}

// KeywordGrader grades mcq answers like HeuristicGrader. Free text needs at
// least ten characters and must mention 40% of the question's key points.
func KeywordGrader(q entity.Question, a Answer) bool {
	if q.Type == entity.QuestionTypeMCQ {
		return HeuristicGrader(q, a)
	}

	text := strings.ToLower(strings.TrimSpace(a.Text))
	if utf8.RuneCountInString(text) < keywordMinTextLength {
		return false
	}

	keys := KeyPoints(q.Question)
	matched := 0
	for _, k := range keys {
		if strings.Contains(text, k) {
			matched++
		}
	}
	return matched >= int(math.Ceil(float64(len(keys))*keywordMatchRatio))
}

// GraderByName resolves a configured grader, defaulting to HeuristicGrader.
func GraderByName(name string) Grader {
	if strings.EqualFold(name, "keyword") {
		return KeywordGrader
	}
	return HeuristicGrader
}
