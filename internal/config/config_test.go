package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "gemini")
	t.Setenv("LLM_MODEL", "gemini-2.5-flash-lite")
	t.Setenv("LLM_TIMEOUT", "")
	t.Setenv("OTEL_ENABLED", "")
	t.Setenv("EXAM_GRADER", "")
	os.Unsetenv("EXAM_GRADER")

	cfg := Load()

	assert.Equal(t, "gemini", cfg.Ai.Provider)
	assert.Equal(t, "gemini-2.5-flash-lite", cfg.Ai.Model)
	assert.Equal(t, 60*time.Second, cfg.Ai.Timeout)
	assert.False(t, cfg.Otel.Enabled)
	assert.Equal(t, "heuristic", cfg.App.ExamGrader)
}

func TestLoadExamGrader(t *testing.T) {
	t.Setenv("EXAM_GRADER", "Keyword")
	assert.Equal(t, "keyword", Load().App.ExamGrader)
}

func TestLoadOllamaOverrides(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "OLLAMA")
	t.Setenv("LLM_MODEL", "qwen2.5")
	t.Setenv("LLM_BASE_URL", "http://ollama:11434")
	t.Setenv("LLM_TIMEOUT", "90s")
	t.Setenv("OTEL_ENABLED", "true")
	t.Setenv("GO_ENV", "production")

	cfg := Load()

	assert.Equal(t, "ollama", cfg.Ai.Provider)
	assert.Equal(t, "qwen2.5", cfg.Ai.Model)
	assert.Equal(t, "http://ollama:11434", cfg.Ai.BaseURL)
	assert.Equal(t, 90*time.Second, cfg.Ai.Timeout)
	assert.True(t, cfg.Otel.Enabled)
	assert.True(t, cfg.IsProduction())
}

func TestEnvHelpers(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  int
	}{
		{"valid", "42", 42},
		{"invalid falls back", "abc", 7},
		{"empty falls back", "", 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_INT", tt.value)
			assert.Equal(t, tt.want, getEnvAsInt("TEST_INT", 7))
		})
	}
}
