package notegen

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"study-assistant-be/internal/constant"
	"study-assistant-be/internal/entity"
	"study-assistant-be/pkg/llm"
)

var ErrEmptyTranscript = errors.New("transcript is empty")

const (
	notesTitleSuffix = " - Notes"
	maxTopicLength   = 30
	topicWords       = 3
)

var userLinePrefix = regexp.MustCompile(`(?i)^user:\s*`)

type Notes struct {
	Title   string
	Topic   string
	Content string
	// Err is the generation error replaced by the fallback content.
	Err error
}

type Generator struct {
	provider llm.LLMProvider
	now      func() time.Time
}

func New(provider llm.LLMProvider) *Generator {
	return &Generator{provider: provider, now: time.Now}
}

// Generate turns a "sender: content" transcript into structured markdown notes.
// A blank transcript never reaches the provider.
func (g *Generator) Generate(ctx context.Context, transcript, suggestedTitle string) (*Notes, error) {
	if strings.TrimSpace(transcript) == "" {
		return nil, ErrEmptyTranscript
	}

	topic := DetectTopic(transcript, suggestedTitle)
	prompt := fmt.Sprintf(constant.NotesPromptTemplate, constant.NotesSystemPromptV1, transcript, topic)

	notes := &Notes{Title: topic + notesTitleSuffix, Topic: topic}

	content, err := g.provider.Generate(ctx, prompt, llm.NotesProfile()...)
	if err == nil && strings.TrimSpace(content) == "" {
		err = llm.ErrEmptyResponse
	}
	if err != nil {
		notes.Content = fmt.Sprintf(constant.FallbackNotesTemplate, topic)
		notes.Err = err
		return notes, nil
	}

	notes.Content = strings.TrimSpace(content)
	return notes, nil
}

// SessionNote summarises a handful of recent messages into a short note.
func (g *Generator) SessionNote(ctx context.Context, messages []entity.Message) (*entity.SessionNote, error) {
	transcript := SessionTranscript(messages)
	if strings.TrimSpace(transcript) == "" {
		return nil, ErrEmptyTranscript
	}

	topic := detectSessionTopic(transcript)
	note := &entity.SessionNote{Title: topic, CreatedAt: g.now()}

	content, err := g.provider.Generate(ctx, fmt.Sprintf(constant.SessionNotePromptTemplate, topic, transcript), llm.NotesProfile()...)
	if err != nil || strings.TrimSpace(content) == "" {
		note.Content = fmt.Sprintf(constant.FallbackSessionNoteTemplate, topic)
		return note, nil
	}

	note.Content = strings.TrimSpace(content)
	return note, nil
}

// Transcript renders messages as "sender: content" lines.
func Transcript(messages []entity.Message) string {
	lines := make([]string, 0, len(messages))
	for _, m := range messages {
		if strings.TrimSpace(m.Content) == "" {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s: %s", m.Sender, m.Content))
	}
	return strings.Join(lines, "\n")
}

// SessionTranscript renders messages as "SENDER: content" paragraphs.
func SessionTranscript(messages []entity.Message) string {
	parts := make([]string, 0, len(messages))
	for _, m := range messages {
		if strings.TrimSpace(m.Content) == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", strings.ToUpper(string(m.Sender)), m.Content))
	}
	return strings.Join(parts, "\n\n")
}

// DetectTopic prefers the suggested title, then the first user line.
func DetectTopic(transcript, suggestedTitle string) string {
	if suggestedTitle != "" {
		return strings.Replace(suggestedTitle, notesTitleSuffix, "", 1)
	}

	for _, line := range strings.Split(transcript, "\n") {
		if strings.HasPrefix(line, "user:") || strings.HasPrefix(line, "USER:") {
			return ExtractTopic(userLinePrefix.ReplaceAllString(line, ""))
		}
	}

	return constant.DefaultTopic
}

func detectSessionTopic(transcript string) string {
	for _, line := range strings.Split(transcript, "\n") {
		if strings.HasPrefix(line, "USER:") {
			return ExtractTopic(userLinePrefix.ReplaceAllString(line, ""))
		}
	}
	return constant.DefaultSessionNoteTopic
}

// ExtractTopic maps a question to a known subject or its first few words.
func ExtractTopic(question string) string {
	lower := strings.ToLower(question)
	for _, keyword := range constant.TopicKeywords {
		if strings.Contains(lower, keyword) {
			return strings.ToUpper(keyword[:1]) + keyword[1:]
		}
	}

	words := strings.Split(question, " ")
	if len(words) > topicWords {
		words = words[:topicWords]
	}
	topic := strings.Join(words, " ")

	runes := []rune(topic)
	if len(runes) > maxTopicLength {
		return string(runes[:maxTopicLength])
	}
	return topic
}
