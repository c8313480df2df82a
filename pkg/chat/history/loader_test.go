package history

import (
	"testing"

	"ai-summarizer-be/internal/entity"
	"ai-summarizer-be/pkg/llm"

	"github.com/stretchr/testify/assert"
)

func TestWithoutCurrent(t *testing.T) {
	assert.Empty(t, WithoutCurrent(nil))
	assert.NotNil(t, WithoutCurrent(nil))

	window := []*entity.ChatMessage{
		{Role: entity.MessageRoleUser, Content: "a"},
		{Role: entity.MessageRoleAssistant, Content: "b"},
		{Role: entity.MessageRoleUser, Content: "c"},
	}
	trimmed := WithoutCurrent(window)
	assert.Len(t, trimmed, 2)
	assert.Equal(t, "b", trimmed[1].Content)
}

func TestToLLM(t *testing.T) {
	got := ToLLM([]*entity.ChatMessage{
		{Role: entity.MessageRoleUser, Content: "hi"},
		{Role: entity.MessageRoleAssistant, Content: "hello"},
	})
	assert.Equal(t, []llm.Message{
		{Role: llm.RoleUser, Content: "hi"},
		{Role: llm.RoleAssistant, Content: "hello"},
	}, got)
}
