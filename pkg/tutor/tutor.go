package tutor

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"study-assistant-be/internal/constant"
	"study-assistant-be/internal/entity"
	"study-assistant-be/pkg/llm"
)

type Action string

const (
	ActionChat          Action = "chat"
	ActionGenerateNotes Action = "generate_notes"
	ActionGenerateExam  Action = "generate_exam"
)

const (
	// HistoryLimit is how many turns the tutor remembers.
	HistoryLimit = 10
	// ContextWindow is how many of those turns go into the prompt.
	ContextWindow = 6
)

type Reply struct {
	Text   string
	Action Action
	// Transcript carries the remembered conversation for notes and exam commands.
	Transcript string
	// Err is the generation error that was replaced by a fallback reply.
	Err error
}

func (r *Reply) Fallback() bool {
	return r.Err != nil
}

type Tutor struct {
	provider llm.LLMProvider
	pick     func(n int) int
}

func New(provider llm.LLMProvider) *Tutor {
	return &Tutor{provider: provider, pick: rand.Intn}
}

// WithPicker replaces the random fallback selection.
func (t *Tutor) WithPicker(pick func(n int) int) *Tutor {
	t.pick = pick
	return t
}

// Respond answers the last message of history. history must already contain
// the student's message as its final entry.
func (t *Tutor) Respond(ctx context.Context, sessionType entity.SessionType, history []entity.Message) *Reply {
	window := Window(history, HistoryLimit)

	message := ""
	if len(window) > 0 {
		message = window[len(window)-1].Content
	}

	switch action := DetectCommand(message); action {
	case ActionGenerateNotes:
		return &Reply{Text: constant.NotesCommandReply, Action: action, Transcript: Transcript(window)}
	case ActionGenerateExam:
		return &Reply{Text: constant.ExamCommandReply, Action: action, Transcript: Transcript(window)}
	}

	prompt := BuildPrompt(Persona(sessionType), window, message)
	text, err := t.provider.Generate(ctx, prompt, profileFor(sessionType)...)
	if err == nil && strings.TrimSpace(text) == "" {
		err = llm.ErrEmptyResponse
	}
	if err != nil {
		return &Reply{Text: t.fallback(), Action: ActionChat, Err: err}
	}

	return &Reply{Text: strings.TrimSpace(text), Action: ActionChat}
}

func (t *Tutor) fallback() string {
	return constant.TutorFallbackReplies[t.pick(len(constant.TutorFallbackReplies))]
}

// DetectCommand checks the message for a notes or exam request.
func DetectCommand(message string) Action {
	lower := strings.ToLower(message)
	for _, keyword := range constant.NotesCommandKeywords {
		if strings.Contains(lower, keyword) {
			return ActionGenerateNotes
		}
	}
	for _, keyword := range constant.ExamCommandKeywords {
		if strings.Contains(lower, keyword) {
			return ActionGenerateExam
		}
	}
	return ActionChat
}

func Persona(sessionType entity.SessionType) string {
	switch sessionType {
	case entity.SessionTypeNotes:
		return constant.NotesAssistantSystemPromptV1
	case entity.SessionTypeExams:
		return constant.ExamCoachSystemPromptV1
	default:
		return constant.TutorSystemPromptV1
	}
}

func profileFor(sessionType entity.SessionType) []llm.Option {
	if sessionType == entity.SessionTypeStudy {
		return llm.TutorProfile()
	}
	return llm.GeneralProfile()
}

// BuildPrompt lays out persona, recent context and the student message.
func BuildPrompt(persona string, history []entity.Message, message string) string {
	var sb strings.Builder
	sb.WriteString(persona)
	sb.WriteString("\n\n")

	if recent := Window(history, ContextWindow); len(recent) > 0 {
		sb.WriteString(constant.TutorContextHeader)
		sb.WriteString(Transcript(recent))
		sb.WriteString("\n\n")
	}

	sb.WriteString(fmt.Sprintf(constant.TutorTurnTemplate, message))
	return sb.String()
}

// Window returns the last n messages.
func Window(history []entity.Message, n int) []entity.Message {
	if len(history) <= n {
		return history
	}
	return history[len(history)-n:]
}

// Transcript renders messages as "sender: content" lines.
func Transcript(messages []entity.Message) string {
	lines := make([]string, 0, len(messages))
	for _, m := range messages {
		lines = append(lines, fmt.Sprintf("%s: %s", m.Sender, m.Content))
	}
	return strings.Join(lines, "\n")
}

// Welcome is the greeting shown when a conversation of the given type starts.
func Welcome(sessionType entity.SessionType) string {
	switch sessionType {
	case entity.SessionTypeNotes:
		return constant.WelcomeNotes
	case entity.SessionTypeExams:
		return constant.WelcomeExams
	default:
		return constant.WelcomeStudySession
	}
}
