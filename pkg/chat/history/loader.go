package history

import (
	"context"

	"ai-summarizer-be/internal/entity"
	"ai-summarizer-be/internal/repository/specification"
	"ai-summarizer-be/internal/repository/unitofwork"
	"ai-summarizer-be/pkg/llm"

	"github.com/google/uuid"
)

// Loader reads conversation history in chronological order.
type Loader struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewLoader(uowFactory unitofwork.RepositoryFactory) *Loader {
	return &Loader{uowFactory: uowFactory}
}

// Messages returns the session's messages oldest first. A positive limit keeps
// only the most recent limit messages, still oldest first.
func (l *Loader) Messages(ctx context.Context, sessionId uuid.UUID, limit int) ([]*entity.ChatMessage, error) {
	uow := l.uowFactory.NewUnitOfWork(ctx)
	if limit <= 0 {
		return uow.ChatMessageRepository().FindAll(ctx,
			specification.ByChatSessionID{ChatSessionID: sessionId},
			specification.OrderBy{Field: "created_at"},
		)
	}

	recent, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: sessionId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit},
	)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(recent)-1; i < j; i, j = i+1, j-1 {
		recent[i], recent[j] = recent[j], recent[i]
	}
	return recent, nil
}

// WithoutCurrent drops the last message of a window, which is the turn being
// answered and is sent to the model separately.
func WithoutCurrent(window []*entity.ChatMessage) []*entity.ChatMessage {
	if len(window) == 0 {
		return []*entity.ChatMessage{}
	}
	return window[:len(window)-1]
}

func ToLLM(messages []*entity.ChatMessage) []llm.Message {
	out := make([]llm.Message, 0, len(messages))
	for _, m := range messages {
		role := llm.RoleUser
		if m.Role == entity.MessageRoleAssistant {
			role = llm.RoleAssistant
		}
		out = append(out, llm.Message{Role: role, Content: m.Content})
	}
	return out
}
