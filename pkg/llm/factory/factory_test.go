package factory

import (
	"testing"
	"time"

	"ai-summarizer-be/internal/config"
	"ai-summarizer-be/pkg/llm/gemini"
	"ai-summarizer-be/pkg/llm/ollama"
	"ai-summarizer-be/pkg/llm/openai"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLLMProvider(t *testing.T) {
	base := config.AIConfig{LLMModel: "m", Timeout: time.Second, GeminiAPIKey: "k", OpenAIBaseURL: "http://localhost/v1/"}

	cfg := base
	cfg.LLMProvider = "gemini"
	p, err := NewLLMProvider(cfg)
	require.NoError(t, err)
	assert.IsType(t, &gemini.GeminiProvider{}, p)

	cfg.LLMProvider = "Ollama"
	p, err = NewLLMProvider(cfg)
	require.NoError(t, err)
	assert.IsType(t, &ollama.OllamaProvider{}, p)

	cfg.LLMProvider = "openai"
	p, err = NewLLMProvider(cfg)
	require.NoError(t, err)
	assert.IsType(t, &openai.OpenAIProvider{}, p)

	cfg.LLMProvider = "bard"
	_, err = NewLLMProvider(cfg)
	assert.Error(t, err)

	cfg = base
	cfg.LLMProvider = "gemini"
	cfg.GeminiAPIKey = ""
	_, err = NewLLMProvider(cfg)
	assert.Error(t, err)
}
