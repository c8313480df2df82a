package prompt

import "strings"

type Preset string

const (
	PresetShort    Preset = "short"
	PresetMedium   Preset = "medium"
	PresetDetailed Preset = "detailed"
)

// Length is a target summary size in words.
type Length struct {
	MinWords int
	MaxWords int
	Style    string
}

var lengths = map[Preset]Length{
	PresetShort:    {MinWords: 20, MaxWords: 80, Style: "a brief overview in 2-3 sentences"},
	PresetMedium:   {MinWords: 40, MaxWords: 150, Style: "one paragraph covering the key points"},
	PresetDetailed: {MinWords: 80, MaxWords: 250, Style: "several paragraphs covering all main points and supporting details"},
}

// ParsePreset falls back to medium for unknown or empty values.
func ParsePreset(s string) Preset {
	p := Preset(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := lengths[p]; ok {
		return p
	}
	return PresetMedium
}

func (p Preset) Length() Length {
	if l, ok := lengths[p]; ok {
		return l
	}
	return lengths[PresetMedium]
}
