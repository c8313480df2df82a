package entity

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type MessageRole string

var ErrInvalidRole = errors.New("invalid message role")

const (
	MessageRoleUser      MessageRole = "user"
	MessageRoleAssistant MessageRole = "assistant"
)

func (r MessageRole) IsValid() bool {
	return r == MessageRoleUser || r == MessageRoleAssistant
}

// ParseMessageRole only accepts the two roles a conversation can contain.
func ParseMessageRole(s string) (MessageRole, error) {
	role := MessageRole(s)
	if !role.IsValid() {
		return "", fmt.Errorf("%w %q", ErrInvalidRole, s)
	}
	return role, nil
}

type ChatMessage struct {
	Id            uuid.UUID
	ChatSessionId uuid.UUID
	Role          MessageRole
	Content       string
	Attachment    *Attachment
	CreatedAt     time.Time
}

// Attachment describes a file the user sent along with a message. Only the
// metadata is kept; the extracted text is used as one-off context.
type Attachment struct {
	Filename    string
	ContentType string
	Chars       int
}
