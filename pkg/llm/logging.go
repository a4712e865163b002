package llm

import (
	"context"
	"time"
)

// Logger is the subset of the application logger the decorator needs.
type Logger interface {
	Info(module, message string, details map[string]interface{})
	Error(module, message string, details map[string]interface{})
}

type loggingProvider struct {
	next   LLMProvider
	logger Logger
	name   string
}

// WithLogging records every generation call with its latency.
func WithLogging(next LLMProvider, name string, logger Logger) LLMProvider {
	return &loggingProvider{next: next, logger: logger, name: name}
}

func (p *loggingProvider) Chat(ctx context.Context, history []Message, opts ...Option) (string, error) {
	start := time.Now()
	out, err := p.next.Chat(ctx, history, opts...)
	p.record("chat", start, len(history), out, err, opts)
	return out, err
}

func (p *loggingProvider) Generate(ctx context.Context, prompt string, opts ...Option) (string, error) {
	start := time.Now()
	out, err := p.next.Generate(ctx, prompt, opts...)
	p.record("generate", start, 1, out, err, opts)
	return out, err
}

func (p *loggingProvider) record(kind string, start time.Time, messages int, out string, err error, opts []Option) {
	options := Apply(opts...)
	details := map[string]interface{}{
		"provider":    p.name,
		"kind":        kind,
		"messages":    messages,
		"temperature": options.Temperature,
		"duration_ms": time.Since(start).Milliseconds(),
	}
	if err != nil {
		details["error"] = err.Error()
		p.logger.Error("LLM", "Generation failed", details)
		return
	}
	details["response_chars"] = len(out)
	p.logger.Info("LLM", "Generation completed", details)
}
