package mapper

import (
	"ai-summarizer-be/internal/entity"
	"ai-summarizer-be/internal/model"

	"gorm.io/datatypes"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

// Session Mappers

func (m *ChatMapper) ChatSessionToEntity(s *model.ChatSession) *entity.ChatSession {
	if s == nil {
		return nil
	}
	return &entity.ChatSession{
		Id:        s.Id,
		UserId:    s.UserId,
		Title:     s.Title,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func (m *ChatMapper) ChatSessionToModel(s *entity.ChatSession) *model.ChatSession {
	if s == nil {
		return nil
	}
	return &model.ChatSession{
		Id:        s.Id,
		UserId:    s.UserId,
		Title:     s.Title,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// Message Mappers

func (m *ChatMapper) ChatMessageToEntity(msg *model.ChatMessage) *entity.ChatMessage {
	if msg == nil {
		return nil
	}
	return &entity.ChatMessage{
		Id:            msg.Id,
		ChatSessionId: msg.ChatSessionId,
		Role:          entity.MessageRole(msg.Role),
		Content:       msg.Content,
		Attachment:    attachmentFromJSON(msg.Attachment),
		CreatedAt:     msg.CreatedAt,
	}
}

func (m *ChatMapper) ChatMessageToModel(msg *entity.ChatMessage) *model.ChatMessage {
	if msg == nil {
		return nil
	}
	return &model.ChatMessage{
		Id:            msg.Id,
		ChatSessionId: msg.ChatSessionId,
		Role:          string(msg.Role),
		Content:       msg.Content,
		Attachment:    attachmentToJSON(msg.Attachment),
		CreatedAt:     msg.CreatedAt,
	}
}

func (m *ChatMapper) ChatMessagesToEntities(models []*model.ChatMessage) []*entity.ChatMessage {
	entities := make([]*entity.ChatMessage, len(models))
	for i, msg := range models {
		entities[i] = m.ChatMessageToEntity(msg)
	}
	return entities
}

func attachmentToJSON(a *entity.Attachment) datatypes.JSONMap {
	if a == nil {
		return nil
	}
	return datatypes.JSONMap{
		"filename":     a.Filename,
		"content_type": a.ContentType,
		"chars":        a.Chars,
	}
}

func attachmentFromJSON(j datatypes.JSONMap) *entity.Attachment {
	if len(j) == 0 {
		return nil
	}
	a := &entity.Attachment{}
	a.Filename, _ = j["filename"].(string)
	a.ContentType, _ = j["content_type"].(string)
	// Values read back from the database decode as float64.
	switch v := j["chars"].(type) {
	case float64:
		a.Chars = int(v)
	case int:
		a.Chars = v
	}
	return a
}
