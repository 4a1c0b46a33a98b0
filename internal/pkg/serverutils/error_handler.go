package serverutils

import (
	"errors"

	"labnotebook-be/internal/pkg/apperror"
	"labnotebook-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware turns service errors into JSON responses. Typed
// AppErrors keep their status and message; everything else is logged and
// collapsed into a generic 500 so internals never reach the client.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		if appErr, ok := apperror.AsAppError(err); ok {
			if appErr.Err != nil {
				log.Warn("http", "request failed", map[string]interface{}{
					"path":  ctx.Path(),
					"code":  appErr.Code,
					"cause": appErr.Err.Error(),
				})
			}
			return ctx.Status(appErr.Code).JSON(ErrorResponse(appErr.Code, appErr.Message))
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		log.Error("http", "unhandled error", map[string]interface{}{
			"path":  ctx.Path(),
			"error": err.Error(),
		})
		return ctx.Status(fiber.StatusInternalServerError).
			JSON(ErrorResponse(fiber.StatusInternalServerError, "Internal server error"))
	}
}
