// Package assistant is the single entry point the application uses to talk to
// a language model.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ai-summarizer-be/pkg/chat/prompt"
	"ai-summarizer-be/pkg/llm"
)

var ErrEmptyReply = errors.New("model returned an empty reply")

// Gateway produces chat replies and summaries.
type Gateway interface {
	Reply(ctx context.Context, message, docContext string, history []llm.Message) (string, error)
	Summarize(ctx context.Context, text string, preset prompt.Preset) (string, error)
}

type Assistant struct {
	provider    llm.LLMProvider
	builder     *prompt.Builder
	temperature float64
}

var _ Gateway = &Assistant{}

func New(provider llm.LLMProvider, builder *prompt.Builder, temperature float64) *Assistant {
	return &Assistant{provider: provider, builder: builder, temperature: temperature}
}

func (a *Assistant) Reply(ctx context.Context, message, docContext string, history []llm.Message) (string, error) {
	return a.complete(ctx, a.builder.Chat(message, docContext, history))
}

func (a *Assistant) Summarize(ctx context.Context, text string, preset prompt.Preset) (string, error) {
	return a.complete(ctx, a.builder.Summary(text, preset))
}

func (a *Assistant) complete(ctx context.Context, messages []llm.Message) (string, error) {
	reply, err := a.provider.Chat(ctx, messages, llm.WithTemperature(a.temperature))
	if err != nil {
		return "", fmt.Errorf("llm chat: %w", err)
	}
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return "", ErrEmptyReply
	}
	return reply, nil
}
