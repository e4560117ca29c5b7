package serverutils

import (
	"github.com/gofiber/fiber/v2"

	"orgnotes-be/internal/pkg/apperrors"
)

func statusForKind(kind apperrors.Kind) int {
	switch kind {
	case apperrors.KindAuth:
		return fiber.StatusUnauthorized
	case apperrors.KindAccessDenied:
		return fiber.StatusForbidden
	case apperrors.KindNotFound:
		return fiber.StatusNotFound
	case apperrors.KindValidation:
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorHandlerMiddleware converts errors returned from controllers into the
// standard response envelope. Every failure becomes a discrete, readable
// message; nothing is silently swallowed.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		if fiberErr, ok := err.(*fiber.Error); ok {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		status := statusForKind(apperrors.KindOf(err))
		return ctx.Status(status).JSON(ErrorResponse(status, apperrors.MessageOf(err)))
	}
}
