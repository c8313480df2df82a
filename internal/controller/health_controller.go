package controller

import (
	"ai-summarizer-be/internal/dto"
	"ai-summarizer-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
)

type IHealthController interface {
	RegisterRoutes(r fiber.Router)
	Health(ctx *fiber.Ctx) error
}

type healthController struct {
	name    string
	version string
}

func NewHealthController(name, version string) IHealthController {
	return &healthController{name: name, version: version}
}

func (c *healthController) RegisterRoutes(r fiber.Router) {
	r.Get("/health", c.Health)
}

func (c *healthController) Health(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("OK", dto.HealthResponse{
		Status:  "healthy",
		Name:    c.name,
		Version: c.version,
	}))
}
