package dto

type SummarizeTextRequest struct {
	Text   string `json:"text" validate:"required"`
	Length string `json:"length" validate:"omitempty,oneof=short medium detailed"`
}

type SummarizeURLRequest struct {
	URL    string `json:"url" validate:"required,url"`
	Length string `json:"length" validate:"omitempty,oneof=short medium detailed"`
}

type SummarizeResponse struct {
	Summary          string  `json:"summary"`
	OriginalLength   int     `json:"original_length"`
	SummaryLength    int     `json:"summary_length"`
	CompressionRatio float64 `json:"compression_ratio"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Name    string `json:"name"`
	Version string `json:"version"`
}
