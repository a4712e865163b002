// Package llmtest provides a scripted provider for tests.
package llmtest

import (
	"context"
	"sync"

	"study-assistant-be/pkg/llm"
)

type Response struct {
	Text string
	Err  error
}

// Provider answers with queued responses in order and records every prompt.
// Once the queue is empty it repeats the last response.
type Provider struct {
	mu        sync.Mutex
	responses []Response
	prompts   []string
	options   []*llm.Options
}

func New(responses ...Response) *Provider {
	return &Provider{responses: responses}
}

func Text(text string) *Provider {
	return New(Response{Text: text})
}

func Failing(err error) *Provider {
	return New(Response{Err: err})
}

func (p *Provider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	prompt := ""
	if len(history) > 0 {
		prompt = history[len(history)-1].Content
	}
	return p.Generate(ctx, prompt, opts...)
}

func (p *Provider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.prompts = append(p.prompts, prompt)
	p.options = append(p.options, llm.Apply(opts...))

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(p.responses) == 0 {
		return "", llm.ErrEmptyResponse
	}

	r := p.responses[0]
	if len(p.responses) > 1 {
		p.responses = p.responses[1:]
	}
	return r.Text, r.Err
}

func (p *Provider) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.prompts)
}

func (p *Provider) Prompt(i int) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.prompts[i]
}

func (p *Provider) LastPrompt() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.prompts) == 0 {
		return ""
	}
	return p.prompts[len(p.prompts)-1]
}

func (p *Provider) LastOptions() *llm.Options {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.options) == 0 {
		return nil
	}
	return p.options[len(p.options)-1]
}
