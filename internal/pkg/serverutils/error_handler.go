package serverutils

import (
	"errors"
	"net/http"

	"ai-summarizer-be/internal/pkg/apperror"
	"ai-summarizer-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware renders any error returned down the chain into the
// BaseResponse envelope. Unclassified errors are logged and answered with a
// generic message.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		code, message := resolveError(err)
		if code >= http.StatusInternalServerError {
			log.Error("HTTP", "Request failed", map[string]interface{}{
				"method": ctx.Method(),
				"path":   ctx.Path(),
				"error":  err.Error(),
			})
		}

		return ctx.Status(code).JSON(ErrorResponse(code, message))
	}
}

func resolveError(err error) (int, string) {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code, fiberErr.Message
	}

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		if detail, ok := apperror.Detail(err); ok {
			return appErr.Code, detail
		}
		return appErr.Code, appErr.Message
	}

	return http.StatusInternalServerError, "internal server error"
}
