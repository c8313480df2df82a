package prompt

import (
	"fmt"
	"strings"

	"ai-summarizer-be/pkg/llm"
)

const DefaultSystemPrompt = `You are a helpful assistant for reading, summarizing and discussing documents.
Answer in the language the user writes in. Be accurate and concise.
When reference material is provided, base your answer on it and say so when it does not contain what is asked.`

// Builder assembles provider-agnostic message lists.
type Builder struct {
	systemPrompt string
}

func NewBuilder(systemPrompt string) *Builder {
	if strings.TrimSpace(systemPrompt) == "" {
		systemPrompt = DefaultSystemPrompt
	}
	return &Builder{systemPrompt: systemPrompt}
}

// Chat returns system prompt, then history, then the current message.
// Context, when present, is appended to the system prompt as-is.
func (b *Builder) Chat(message, context string, history []llm.Message) []llm.Message {
	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: b.system(context)})
	messages = append(messages, history...)
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: message})
	return messages
}

func (b *Builder) system(context string) string {
	if context == "" {
		return b.systemPrompt
	}
	var sb strings.Builder
	sb.WriteString(b.systemPrompt)
	sb.WriteString("\n\n<reference_material>\n")
	sb.WriteString(context)
	sb.WriteString("\n</reference_material>")
	return sb.String()
}

// Summary asks for a summary of text at the preset's length.
func (b *Builder) Summary(text string, preset Preset) []llm.Message {
	l := preset.Length()

	var sb strings.Builder
	sb.WriteString("<task>\n")
	fmt.Fprintf(&sb, "Summarize the text below as %s.\n", l.Style)
	fmt.Fprintf(&sb, "Use between %d and %d words.\n", l.MinWords, l.MaxWords)
	sb.WriteString("Write in the same language as the text. Return only the summary, without a heading or preamble.\n")
	sb.WriteString("</task>\n\n<text>\n")
	sb.WriteString(text)
	sb.WriteString("\n</text>")

	return []llm.Message{
		{Role: llm.RoleSystem, Content: b.systemPrompt},
		{Role: llm.RoleUser, Content: sb.String()},
	}
}
