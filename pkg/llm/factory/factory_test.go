package factory

import (
	"testing"
	"time"

	"study-assistant-be/pkg/llm/gemini"
	"study-assistant-be/pkg/llm/ollama"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLLMProvider(t *testing.T) {
	p, err := NewLLMProvider(Config{Provider: "gemini", APIKey: "k", Model: "gemini-2.5-flash-lite", Timeout: time.Second})
	require.NoError(t, err)
	assert.IsType(t, &gemini.GeminiProvider{}, p)

	p, err = NewLLMProvider(Config{Provider: "ollama", Model: "llama3"})
	require.NoError(t, err)
	o, ok := p.(*ollama.OllamaProvider)
	require.True(t, ok)
	assert.Equal(t, "http://localhost:11434", o.BaseURL)

	_, err = NewLLMProvider(Config{Provider: "gemini"})
	assert.Error(t, err)

	_, err = NewLLMProvider(Config{Provider: "gpt"})
	assert.EqualError(t, err, "unsupported LLM provider: gpt")
}
