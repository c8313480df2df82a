package prompt

import (
	"testing"

	"ai-summarizer-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_Chat(t *testing.T) {
	b := NewBuilder("sys")
	history := []llm.Message{
		{Role: llm.RoleUser, Content: "q1"},
		{Role: llm.RoleAssistant, Content: "a1"},
	}

	msgs := b.Chat("q2", "", history)
	require.Len(t, msgs, 4)
	assert.Equal(t, llm.Message{Role: llm.RoleSystem, Content: "sys"}, msgs[0])
	assert.Equal(t, history, msgs[1:3])
	assert.Equal(t, llm.Message{Role: llm.RoleUser, Content: "q2"}, msgs[3])

	withCtx := b.Chat("q", "[File: a.txt]\nbody", nil)
	require.Len(t, withCtx, 2)
	assert.Contains(t, withCtx[0].Content, "<reference_material>\n[File: a.txt]\nbody\n</reference_material>")
}

func TestBuilder_Summary(t *testing.T) {
	msgs := NewBuilder("").Summary("some text", PresetShort)
	require.Len(t, msgs, 2)
	assert.Equal(t, DefaultSystemPrompt, msgs[0].Content)
	assert.Contains(t, msgs[1].Content, "between 20 and 80 words")
	assert.Contains(t, msgs[1].Content, "<text>\nsome text\n</text>")
}

func TestParsePreset(t *testing.T) {
	assert.Equal(t, PresetShort, ParsePreset("short"))
	assert.Equal(t, PresetDetailed, ParsePreset(" Detailed "))
	assert.Equal(t, PresetMedium, ParsePreset(""))
	assert.Equal(t, PresetMedium, ParsePreset("tiny"))
	assert.Equal(t, 150, PresetMedium.Length().MaxWords)
	assert.Equal(t, 80, PresetDetailed.Length().MinWords)
}
