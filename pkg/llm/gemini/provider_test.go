package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"study-assistant-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeminiProviderSendsGenerationConfig(t *testing.T) {
	var captured geminiRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/gemini-2.5-flash-lite:generateContent", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("x-goog-api-key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"Inertia is..."}]}}]}`))
	}))
	defer srv.Close()

	p := NewGeminiProvider(srv.URL, "secret", "gemini-2.5-flash-lite", 5*time.Second)

	out, err := p.Chat(context.Background(), []llm.Message{
		{Role: llm.RoleSystem, Content: "You are a tutor"},
		{Role: llm.RoleUser, Content: "hi"},
		{Role: llm.RoleAssistant, Content: "hello"},
		{Role: llm.RoleUser, Content: "what is inertia"},
	}, llm.TutorProfile()...)

	require.NoError(t, err)
	assert.Equal(t, "Inertia is...", out)

	require.NotNil(t, captured.SystemInstruction)
	assert.Equal(t, "You are a tutor", captured.SystemInstruction.Parts[0].Text)
	require.Len(t, captured.Contents, 3)
	assert.Equal(t, "model", captured.Contents[1].Role)
	assert.Equal(t, 0.8, captured.GenerationConfig.Temperature)
	assert.Equal(t, 40, captured.GenerationConfig.TopK)
	assert.Equal(t, 0.95, captured.GenerationConfig.TopP)
	assert.Equal(t, 1024, captured.GenerationConfig.MaxOutputTokens)
}

func TestGeminiProviderErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{"non 200", http.StatusTooManyRequests, `{"error":"quota"}`, "status error, got status 429"},
		{"no candidates", http.StatusOK, `{"candidates":[]}`, llm.ErrEmptyResponse.Error()},
		{"bad json", http.StatusOK, `{`, "unexpected end of JSON input"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			p := NewGeminiProvider(srv.URL, "k", "m", time.Second)
			_, err := p.Generate(context.Background(), "prompt")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGeminiProviderHonoursContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewGeminiProvider(srv.URL, "k", "m", 5*time.Second)
	_, err := p.Generate(ctx, "prompt")
	assert.ErrorIs(t, err, context.Canceled)
}
