package service

import (
	"context"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"ai-summarizer-be/internal/config"
	"ai-summarizer-be/internal/dto"
	"ai-summarizer-be/internal/pkg/apperror"
	"ai-summarizer-be/internal/pkg/logger"
	"ai-summarizer-be/pkg/assistant"
	"ai-summarizer-be/pkg/chat/prompt"
	"ai-summarizer-be/pkg/events"
	"ai-summarizer-be/pkg/extractor"
	"ai-summarizer-be/pkg/metrics"
)

const summarizeModule = "SUMMARIZE"

const (
	sourceText = "text"
	sourceURL  = "url"
	sourceFile = "file"
)

type ISummarizeService interface {
	SummarizeText(ctx context.Context, text, length string) (*dto.SummarizeResponse, error)
	SummarizeURL(ctx context.Context, url, length string) (*dto.SummarizeResponse, error)
	SummarizeFile(ctx context.Context, file *dto.UploadedFile, length string) (*dto.SummarizeResponse, error)
}

type summarizeService struct {
	gateway   assistant.Gateway
	files     extractor.FileExtractor
	pages     extractor.URLExtractor
	publisher IPublisherService
	metrics   *metrics.Metrics
	cfg       config.SummarizeConfig
	log       logger.ILogger
}

func NewSummarizeService(
	gateway assistant.Gateway,
	files extractor.FileExtractor,
	pages extractor.URLExtractor,
	publisher IPublisherService,
	m *metrics.Metrics,
	cfg config.SummarizeConfig,
	log logger.ILogger,
) ISummarizeService {
	if m == nil {
		m = metrics.NewNop()
	}
	return &summarizeService{
		gateway:   gateway,
		files:     files,
		pages:     pages,
		publisher: publisher,
		metrics:   m,
		cfg:       cfg,
		log:       log,
	}
}

func (s *summarizeService) SummarizeText(ctx context.Context, text, length string) (*dto.SummarizeResponse, error) {
	return s.summarize(ctx, sourceText, text, length)
}

func (s *summarizeService) SummarizeURL(ctx context.Context, url, length string) (*dto.SummarizeResponse, error) {
	text, err := s.pages.ExtractURL(ctx, url)
	if err != nil {
		s.metrics.ExtractionFailures.WithLabelValues(sourceURL).Inc()
		s.log.Warn(summarizeModule, "URL extraction failed", map[string]interface{}{
			"url":   url,
			"error": err.Error(),
		})
		return nil, apperror.WithMessage(apperror.ErrExtractionFailure, "Could not extract text from URL", err)
	}
	return s.summarize(ctx, sourceURL, text, length)
}

func (s *summarizeService) SummarizeFile(ctx context.Context, file *dto.UploadedFile, length string) (*dto.SummarizeResponse, error) {
	text, err := s.files.Extract(ctx, file.Filename, file.Data)
	if err != nil {
		s.metrics.ExtractionFailures.WithLabelValues(sourceFile).Inc()
		s.log.Warn(summarizeModule, "File extraction failed", map[string]interface{}{
			"filename": file.Filename,
			"error":    err.Error(),
		})
		return nil, extractionError(file.Filename, err)
	}
	return s.summarize(ctx, sourceFile, text, length)
}

// summarize rejects blank input before the model is called. Only the model
// sees the input truncated to the configured length; the reported counts and
// ratio describe the full text.
func (s *summarizeService) summarize(ctx context.Context, source, text, length string) (*dto.SummarizeResponse, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperror.ErrEmptyInput
	}
	preset := prompt.ParsePreset(length)

	started := time.Now()
	summary, err := s.gateway.Summarize(ctx, truncateRunes(text, s.cfg.MaxInputLength), preset)
	s.metrics.ObserveGateway("summarize", started)
	if err != nil {
		s.log.Error(summarizeModule, "Summary generation failed", map[string]interface{}{
			"source": source,
			"preset": string(preset),
			"error":  err.Error(),
		})
		return nil, apperror.Wrap(apperror.ErrGatewayFailure, err)
	}
	s.metrics.Summaries.WithLabelValues(source, string(preset)).Inc()

	resp := &dto.SummarizeResponse{
		Summary:          summary,
		OriginalLength:   len(strings.Fields(text)),
		SummaryLength:    len(strings.Fields(summary)),
		CompressionRatio: CompressionRatio(summary, text),
	}

	publishEvent(ctx, s.publisher, s.log, summarizeModule, events.New(events.TypeSummaryGenerated, map[string]interface{}{
		"source":            source,
		"preset":            string(preset),
		"original_length":   resp.OriginalLength,
		"summary_length":    resp.SummaryLength,
		"compression_ratio": resp.CompressionRatio,
	}))
	return resp, nil
}

// CompressionRatio is the summary's character count over the original's,
// rounded to two decimals.
func CompressionRatio(summary, original string) float64 {
	originalChars := utf8.RuneCountInString(original)
	if originalChars == 0 {
		return 0
	}
	ratio := float64(utf8.RuneCountInString(summary)) / float64(originalChars)
	return math.Round(ratio*100) / 100
}

func truncateRunes(s string, max int) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}
