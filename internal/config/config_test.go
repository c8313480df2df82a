package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CHAT_HISTORY_WINDOW", "")
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "")

	cfg := Load()

	assert.Equal(t, 10, cfg.Chat.HistoryWindow)
	assert.Equal(t, 50, cfg.Chat.SessionListLimit)
	assert.Equal(t, 200, cfg.Chat.TitleMaxLength)
	assert.Equal(t, 24*time.Hour, cfg.Auth.AccessTokenTTL)
	assert.Equal(t, 30000, cfg.Summarize.MaxInputLength)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("CHAT_HISTORY_WINDOW", "4")
	t.Setenv("CHAT_DEFAULT_TITLES", " New Chat , ,Draft")
	t.Setenv("LLM_TEMPERATURE", "0.2")
	t.Setenv("GO_ENV", "production")

	cfg := Load()

	assert.Equal(t, 4, cfg.Chat.HistoryWindow)
	assert.Equal(t, []string{"New Chat", "Draft"}, cfg.Chat.DefaultTitles)
	assert.InDelta(t, 0.2, cfg.Ai.Temperature, 1e-9)
	assert.True(t, cfg.IsProduction())
}

func TestGetEnvAsIntFallsBackOnGarbage(t *testing.T) {
	t.Setenv("SOME_INT", "abc")
	assert.Equal(t, 7, getEnvAsInt("SOME_INT", 7))
}
