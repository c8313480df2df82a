package controller

import (
	"ai-summarizer-be/internal/dto"
	"ai-summarizer-be/internal/pkg/serverutils"
	"ai-summarizer-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISummarizeController interface {
	RegisterRoutes(r fiber.Router)
	SummarizeText(ctx *fiber.Ctx) error
	SummarizeURL(ctx *fiber.Ctx) error
	SummarizeFile(ctx *fiber.Ctx) error
}

type summarizeController struct {
	service       service.ISummarizeService
	maxUploadSize int64
}

func NewSummarizeController(service service.ISummarizeService, maxUploadSize int64) ISummarizeController {
	return &summarizeController{service: service, maxUploadSize: maxUploadSize}
}

func (c *summarizeController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/summarize")
	h.Post("/text", c.SummarizeText)
	h.Post("/url", c.SummarizeURL)
	h.Post("/file", c.SummarizeFile)
}

func (c *summarizeController) SummarizeText(ctx *fiber.Ctx) error {
	var req dto.SummarizeTextRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.SummarizeText(ctx.UserContext(), req.Text, req.Length)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success summarize text", res))
}

func (c *summarizeController) SummarizeURL(ctx *fiber.Ctx) error {
	var req dto.SummarizeURLRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.SummarizeURL(ctx.UserContext(), req.URL, req.Length)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success summarize url", res))
}

// SummarizeFile reads the length preset from the form or the query string.
func (c *summarizeController) SummarizeFile(ctx *fiber.Ctx) error {
	file, err := readUpload(ctx, "file", c.maxUploadSize)
	if err != nil {
		return err
	}
	length := ctx.FormValue("length")
	if length == "" {
		length = ctx.Query("length")
	}

	res, err := c.service.SummarizeFile(ctx.UserContext(), file, length)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success summarize file", res))
}
