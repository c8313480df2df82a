// Package extractor turns uploaded files and web pages into plain text.
package extractor

import (
	"context"
	"errors"
)

var (
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrExtraction      = errors.New("text extraction failed")
)

// DefaultMaxBytes caps uploads and downloaded pages.
const DefaultMaxBytes = 10 << 20

type FileExtractor interface {
	Extract(ctx context.Context, filename string, data []byte) (string, error)
}

type URLExtractor interface {
	ExtractURL(ctx context.Context, rawURL string) (string, error)
}
