package session

import (
	"strings"
	"time"
	"unicode/utf8"
)

const (
	defaultTitlePrefix = "Chat "
	defaultTitleLayout = "2006-01-02 15:04"
	ellipsis           = "..."
)

// DefaultTitle is the title given to sessions created without one.
func DefaultTitle(now time.Time) string {
	return defaultTitlePrefix + now.UTC().Format(defaultTitleLayout)
}

// TitlePolicy decides when a session still carries a placeholder title and
// derives a real one from the first user message.
type TitlePolicy struct {
	sentinels map[string]struct{}
	maxLength int
}

func NewTitlePolicy(sentinels []string, maxLength int) *TitlePolicy {
	set := make(map[string]struct{}, len(sentinels))
	for _, s := range sentinels {
		set[strings.TrimSpace(s)] = struct{}{}
	}
	if maxLength <= 0 {
		maxLength = 200
	}
	return &TitlePolicy{sentinels: set, maxLength: maxLength}
}

// IsSentinel reports whether title is empty, one of the configured
// placeholders, or the DefaultTitle generated for a session created at
// createdAt. A default-looking title from any other minute was chosen by the
// user and is kept.
func (p *TitlePolicy) IsSentinel(title string, createdAt time.Time) bool {
	title = strings.TrimSpace(title)
	if title == "" {
		return true
	}
	if _, ok := p.sentinels[title]; ok {
		return true
	}
	return title == DefaultTitle(createdAt)
}

// Derive cuts message to maxLength characters, marking the cut with "...".
// It counts runes and ignores word boundaries.
func (p *TitlePolicy) Derive(message string) string {
	if utf8.RuneCountInString(message) <= p.maxLength {
		return message
	}
	runes := []rune(message)
	return string(runes[:p.maxLength]) + ellipsis
}
