package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n{\"a\":1}```", `{"a":1}`},
		{`  {"a":1}  `, `{"a":1}`},
	}
	for _, tt := range tests {
		if got := string(StripCodeFence(tt.in)); got != tt.want {
			t.Errorf("StripCodeFence(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestApplyDefaults(t *testing.T) {
	o := Apply()
	assert.Equal(t, 0.7, o.Temperature)

	o = Apply(ExamProfile()...)
	assert.Equal(t, 0.3, o.Temperature)
	assert.Equal(t, 0.8, o.TopP)
}

type stubProvider struct {
	out string
	err error
}

func (s stubProvider) Chat(ctx context.Context, history []Message, opts ...Option) (string, error) {
	return s.out, s.err
}

func (s stubProvider) Generate(ctx context.Context, prompt string, opts ...Option) (string, error) {
	return s.out, s.err
}

type recordingLogger struct {
	infos, errors int
}

func (r *recordingLogger) Info(module, message string, details map[string]interface{}) { r.infos++ }
func (r *recordingLogger) Error(module, message string, details map[string]interface{}) {
	r.errors++
}

func TestWithLogging(t *testing.T) {
	rec := &recordingLogger{}

	out, err := WithLogging(stubProvider{out: "ok"}, "stub", rec).Generate(context.Background(), "p")
	assert.NoError(t, err)
	assert.Equal(t, "ok", out)

	_, err = WithLogging(stubProvider{err: errors.New("down")}, "stub", rec).Chat(context.Background(), nil)
	assert.Error(t, err)

	assert.Equal(t, 1, rec.infos)
	assert.Equal(t, 1, rec.errors)
}
