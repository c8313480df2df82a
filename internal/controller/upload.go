package controller

import (
	"fmt"
	"io"

	"ai-summarizer-be/internal/dto"
	"ai-summarizer-be/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// readUpload loads a multipart file into memory, refusing anything above maxBytes.
func readUpload(ctx *fiber.Ctx, field string, maxBytes int64) (*dto.UploadedFile, error) {
	header, err := ctx.FormFile(field)
	if err != nil {
		return nil, apperror.WithMessage(apperror.ErrValidation, fmt.Sprintf("%s is required", field), err)
	}
	if header.Size > maxBytes {
		return nil, apperror.WithMessage(apperror.ErrValidation, fmt.Sprintf("%s is larger than %d bytes", field, maxBytes), nil)
	}

	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > maxBytes {
		return nil, apperror.WithMessage(apperror.ErrValidation, fmt.Sprintf("%s is larger than %d bytes", field, maxBytes), nil)
	}
	return &dto.UploadedFile{Filename: header.Filename, Data: data}, nil
}

// sessionIdParam parses :id. A malformed id can never name a session, so it is a 404.
func sessionIdParam(ctx *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return uuid.Nil, apperror.Wrap(apperror.ErrSessionNotFound, err)
	}
	return id, nil
}
