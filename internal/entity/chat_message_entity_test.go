package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestParseMessageRole(t *testing.T) {
	role, err := ParseMessageRole("user")
	assert.NoError(t, err)
	assert.Equal(t, MessageRoleUser, role)

	role, err = ParseMessageRole("assistant")
	assert.NoError(t, err)
	assert.Equal(t, MessageRoleAssistant, role)

	for _, bad := range []string{"", "model", "system", "User"} {
		_, err := ParseMessageRole(bad)
		assert.ErrorIs(t, err, ErrInvalidRole, bad)
	}
}

func TestChatSessionOwnedBy(t *testing.T) {
	owner := uuid.New()
	s := &ChatSession{Id: uuid.New(), UserId: owner}

	assert.True(t, s.OwnedBy(owner))
	assert.False(t, s.OwnedBy(uuid.New()))

	var missing *ChatSession
	assert.False(t, missing.OwnedBy(owner))
}
