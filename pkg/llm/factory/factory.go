package factory

import (
	"fmt"
	"net/http"
	"strings"

	"ai-summarizer-be/internal/config"
	"ai-summarizer-be/pkg/llm"
	"ai-summarizer-be/pkg/llm/gemini"
	"ai-summarizer-be/pkg/llm/ollama"
	"ai-summarizer-be/pkg/llm/openai"

	"github.com/openai/openai-go/option"
)

func NewLLMProvider(cfg config.AIConfig) (llm.LLMProvider, error) {
	switch strings.ToLower(cfg.LLMProvider) {
	case "gemini", "":
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("gemini provider requires GOOGLE_GEMINI_API_KEY")
		}
		return gemini.NewGeminiProvider(cfg.GeminiBaseURL, cfg.GeminiAPIKey, cfg.LLMModel, cfg.Timeout), nil
	case "ollama":
		baseURL := cfg.OllamaBaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
		return ollama.NewOllamaProvider(baseURL, cfg.LLMModel, cfg.Timeout), nil
	case "openai":
		return openai.NewOpenAIProvider(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.LLMModel,
			option.WithHTTPClient(&http.Client{Timeout: cfg.Timeout})), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.LLMProvider)
	}
}
