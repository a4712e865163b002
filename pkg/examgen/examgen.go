package examgen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"study-assistant-be/internal/constant"
	"study-assistant-be/internal/entity"
	"study-assistant-be/pkg/llm"
	"study-assistant-be/pkg/validation"

	"github.com/google/uuid"
)

// Draft is a generated exam before it is owned and stored.
type Draft struct {
	Title     string            `json:"title"`
	Questions []entity.Question `json:"questions"`
	// Err is the generation or parse error replaced by canned questions.
	Err error `json:"-"`
}

func (d *Draft) Exam(userID uuid.UUID) *entity.Exam {
	return &entity.Exam{
		UserId:         userID,
		Title:          d.Title,
		Questions:      d.Questions,
		TotalQuestions: len(d.Questions),
		UserAnswers:    []entity.AnswerRecord{},
	}
}

type Generator struct {
	provider llm.LLMProvider
	now      func() time.Time
}

func New(provider llm.LLMProvider) *Generator {
	return &Generator{provider: provider, now: time.Now}
}

// Generate asks the model for an exam over the notes. Provider failures fall
// back to the generic exam, unusable payloads to the study skills exam.
func (g *Generator) Generate(ctx context.Context, notes, topic string) *Draft {
	if topic == "" {
		topic = constant.DefaultExamTopic
	}

	text, err := g.provider.Generate(ctx, BuildPrompt(notes, topic), llm.ExamProfile()...)
	if err != nil {
		d := FallbackExam(topic)
		d.Err = err
		return d
	}

	d, err := Parse(text)
	if err != nil {
		d = SimulatedExam(g.now())
		d.Err = err
	}
	return d
}

func BuildPrompt(notes, topic string) string {
	return fmt.Sprintf(constant.ExamPromptTemplate, constant.ExamSystemPromptV1, notes, topic, topic)
}

// Parse reads the model output, tolerating markdown code fences, and rejects
// exams that could not be taken.
func Parse(text string) (*Draft, error) {
	var d Draft
	if err := json.Unmarshal(llm.StripCodeFence(text), &d); err != nil {
		return nil, fmt.Errorf("decode exam payload: %w", err)
	}
	d.Title = strings.TrimSpace(d.Title)

	if err := validation.ValidateExam(&entity.Exam{Title: d.Title, Questions: d.Questions}); err != nil {
		return nil, err
	}
	return &d, nil
}

func intPtr(i int) *int { return &i }

func FallbackExam(topic string) *Draft {
	return &Draft{
		Title: topic + " - Exam",
		Questions: []entity.Question{
			{
				Type:     entity.QuestionTypeMCQ,
				Question: "Which of the following is a key concept from the study material?",
				Options: []string{
					"Fundamental principle A",
					"Basic concept B",
					"Important theory C",
					"All of the above",
				},
				Correct:    intPtr(3),
				Difficulty: "easy",
			},
			{
				Type:     entity.QuestionTypeMCQ,
				Question: "What is the main application of the concepts studied?",
				Options: []string{
					"Theoretical understanding",
					"Practical implementation",
					"Academic research",
					"All applications",
				},
				Correct:    intPtr(1),
				Difficulty: "medium",
			},
			{Type: entity.QuestionTypeShort, Question: "Explain the main concept discussed in the study material.", Difficulty: "medium"},
			{Type: entity.QuestionTypeShort, Question: "List three important points from the topic.", Difficulty: "easy"},
			{Type: entity.QuestionTypeLong, Question: "Provide a comprehensive explanation of the topic with examples.", Difficulty: "hard"},
		},
	}
}

func SimulatedExam(now time.Time) *Draft {
	return &Draft{
		Title: "Study Exam - " + now.Format("2006-01-02"),
		Questions: []entity.Question{
			{
				Type:     entity.QuestionTypeMCQ,
				Question: "What is the main purpose of taking structured notes during study sessions?",
				Options: []string{
					"To pass time during boring lectures",
					"To organize and retain key information for better learning",
					"To impress teachers with neat handwriting",
					"To avoid paying attention to the speaker",
				},
				Correct:    intPtr(1),
				Difficulty: "easy",
			},
			{Type: entity.QuestionTypeShort, Question: "Explain the importance of reviewing notes regularly after a study session.", Difficulty: "medium"},
			{
				Type:       entity.QuestionTypeLong,
				Question:   "Describe a comprehensive study strategy that incorporates note-taking, regular review, and active recall techniques. Explain how each component contributes to effective learning.",
				Difficulty: "hard",
			},
		},
	}
}
