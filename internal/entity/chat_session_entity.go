package entity

import (
	"time"

	"github.com/google/uuid"
)

type ChatSession struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Title     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OwnedBy reports whether the session belongs to the given user.
func (s *ChatSession) OwnedBy(userId uuid.UUID) bool {
	return s != nil && s.UserId == userId
}
