package mapper

import (
	"testing"
	"time"

	"ai-summarizer-be/internal/entity"
	"ai-summarizer-be/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestChatMessageAttachmentRoundTrip(t *testing.T) {
	m := NewChatMapper()
	msg := &entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: uuid.New(),
		Role:          entity.MessageRoleUser,
		Content:       "what does this say?",
		Attachment:    &entity.Attachment{Filename: "a.pdf", ContentType: "application/pdf", Chars: 42},
		CreatedAt:     time.Now(),
	}

	back := m.ChatMessageToEntity(m.ChatMessageToModel(msg))
	require.NotNil(t, back.Attachment)
	assert.Equal(t, *msg.Attachment, *back.Attachment)
}

func TestAttachmentFromDatabaseNumbers(t *testing.T) {
	m := NewChatMapper()
	got := m.ChatMessageToEntity(&model.ChatMessage{
		Role:       "assistant",
		Attachment: datatypes.JSONMap{"filename": "notes.txt", "chars": float64(7)},
	})
	require.NotNil(t, got.Attachment)
	assert.Equal(t, 7, got.Attachment.Chars)
	assert.Equal(t, entity.MessageRoleAssistant, got.Role)

	assert.Nil(t, m.ChatMessageToEntity(&model.ChatMessage{}).Attachment)
}
