package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"ai-summarizer-be/internal/config"
	"ai-summarizer-be/internal/dto"
	"ai-summarizer-be/internal/pkg/apperror"
	"ai-summarizer-be/internal/pkg/logger"
	"ai-summarizer-be/pkg/extractor"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPages struct {
	text string
	err  error
}

func (p stubPages) ExtractURL(ctx context.Context, rawURL string) (string, error) {
	return p.text, p.err
}

func newTestSummarizeService(gateway *fakeGateway, pages extractor.URLExtractor) ISummarizeService {
	return NewSummarizeService(
		gateway,
		extractor.NewFiles(extractor.DefaultMaxBytes),
		pages,
		nil,
		nil,
		config.SummarizeConfig{MaxInputLength: 30000},
		logger.NewNopLogger(),
	)
}

func TestSummarizeText_Metrics(t *testing.T) {
	text := strings.Repeat("abcd ", 20) // 100 chars, 20 words
	gateway := &fakeGateway{summary: strings.Repeat("x", 25)}
	svc := newTestSummarizeService(gateway, stubPages{})

	resp, err := svc.SummarizeText(context.Background(), text, "short")
	require.NoError(t, err)
	assert.Equal(t, 0.25, resp.CompressionRatio)
	assert.Equal(t, 20, resp.OriginalLength)
	assert.Equal(t, 1, resp.SummaryLength)
}

func TestSummarizeText_LongInputCountsFullText(t *testing.T) {
	text := strings.Repeat("abcd ", 12000) // 60000 chars, 12000 words
	gateway := &fakeGateway{summary: strings.Repeat("y", 600)}
	svc := newTestSummarizeService(gateway, stubPages{})

	resp, err := svc.SummarizeText(context.Background(), text, "detailed")
	require.NoError(t, err)
	assert.Equal(t, 12000, resp.OriginalLength)
	assert.Equal(t, 0.01, resp.CompressionRatio)
	assert.Len(t, []rune(gateway.lastText), 30000)
}

func TestSummarizeText_RejectsBlankBeforeGateway(t *testing.T) {
	gateway := &fakeGateway{summary: "never"}
	svc := newTestSummarizeService(gateway, stubPages{})

	for _, text := range []string{"", "   ", "\n\t "} {
		_, err := svc.SummarizeText(context.Background(), text, "medium")
		assert.ErrorIs(t, err, apperror.ErrEmptyInput)
	}
	assert.Equal(t, 0, gateway.summaries)
}

func TestSummarizeText_GatewayFailure(t *testing.T) {
	svc := newTestSummarizeService(&fakeGateway{err: errors.New("quota exceeded")}, stubPages{})

	_, err := svc.SummarizeText(context.Background(), "some real text", "detailed")
	assert.ErrorIs(t, err, apperror.ErrGatewayFailure)
	assert.Equal(t, 500, apperror.HTTPStatus(err))
}

func TestSummarizeURL(t *testing.T) {
	gateway := &fakeGateway{summary: "short"}

	svc := newTestSummarizeService(gateway, stubPages{text: "page body text"})
	resp, err := svc.SummarizeURL(context.Background(), "https://example.com", "")
	require.NoError(t, err)
	assert.Equal(t, "short", resp.Summary)
	assert.Equal(t, 3, resp.OriginalLength)

	svc = newTestSummarizeService(gateway, stubPages{err: extractor.ErrExtraction})
	_, err = svc.SummarizeURL(context.Background(), "https://example.com", "")
	assert.ErrorIs(t, err, apperror.ErrExtractionFailure)

	svc = newTestSummarizeService(gateway, stubPages{text: "  "})
	_, err = svc.SummarizeURL(context.Background(), "https://example.com", "")
	assert.ErrorIs(t, err, apperror.ErrEmptyInput)
}

func TestSummarizeFile(t *testing.T) {
	gateway := &fakeGateway{summary: "a summary"}
	svc := newTestSummarizeService(gateway, stubPages{})

	resp, err := svc.SummarizeFile(context.Background(), &dto.UploadedFile{Filename: "a.txt", Data: []byte("one two three four")}, "short")
	require.NoError(t, err)
	assert.Equal(t, 4, resp.OriginalLength)

	_, err = svc.SummarizeFile(context.Background(), &dto.UploadedFile{Filename: "a.exe", Data: []byte("MZ")}, "short")
	assert.ErrorIs(t, err, apperror.ErrExtractionFailure)
}

func TestCompressionRatio(t *testing.T) {
	assert.Equal(t, 0.33, CompressionRatio("abc", "abcdefghi"))
	assert.Equal(t, 0.0, CompressionRatio("abc", ""))
	// Counted in characters, not bytes.
	assert.Equal(t, 0.5, CompressionRatio("ab", "héhé"))
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "héll", truncateRunes("héllo", 4))
	assert.Equal(t, "héllo", truncateRunes("héllo", 0))
	assert.Equal(t, "héllo", truncateRunes("héllo", 10))
}
