package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateSessionRequest struct {
	Title string `json:"title" validate:"omitempty,max=255"`
}

type SessionResponse struct {
	Id        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type SendMessageRequest struct {
	Message string `json:"message" validate:"required,notblank"`
	Context string `json:"context,omitempty"`
}

type UpdateTitleRequest struct {
	Title string `json:"title" query:"title" validate:"required,notblank,max=255"`
}

type AttachmentDTO struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Chars       int    `json:"chars"`
}

type MessageResponse struct {
	Id         uuid.UUID      `json:"id"`
	Role       string         `json:"role"`
	Content    string         `json:"content"`
	Attachment *AttachmentDTO `json:"attachment,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

type SendMessageResponse struct {
	SessionId uuid.UUID        `json:"session_id"`
	Title     string           `json:"title"`
	Response  string           `json:"response"`
	Sent      *MessageResponse `json:"sent"`
	Reply     *MessageResponse `json:"reply"`
}

type HistoryResponse struct {
	SessionId uuid.UUID          `json:"session_id"`
	Title     string             `json:"title"`
	Messages  []*MessageResponse `json:"messages"`
}

// UploadedFile is an in-memory copy of a multipart upload.
type UploadedFile struct {
	Filename string
	Data     []byte
}
