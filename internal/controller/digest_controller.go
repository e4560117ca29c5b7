package controller

import (
	"orgnotes-be/internal/pkg/apperrors"
	"orgnotes-be/internal/pkg/serverutils"
	"orgnotes-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IDigestController interface {
	RegisterRoutes(r fiber.Router)
	Digest(ctx *fiber.Ctx) error
}

type digestController struct {
	digestService service.IDigestService
}

func NewDigestController(digestService service.IDigestService) IDigestController {
	return &digestController{
		digestService: digestService,
	}
}

func (c *digestController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/digest/v1")
	h.Get("", c.Digest)
}

// Digest re-derives the caller from the Authorization header itself instead
// of going through the shared middleware. The endpoint runs with elevated
// database access, so identity must come from the forwarded token and
// nothing else.
func (c *digestController) Digest(ctx *fiber.Ctx) error {
	claims, err := serverutils.ParseBearerToken(ctx.Get("Authorization"))
	if err != nil {
		return ctx.SendStatus(fiber.StatusUnauthorized)
	}

	userId, err := uuid.Parse(claims.UserID)
	if err != nil {
		return ctx.SendStatus(fiber.StatusUnauthorized)
	}

	res, err := c.digestService.Digest(ctx.Context(), userId)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).
			JSON(serverutils.ErrorResponse(fiber.StatusInternalServerError, apperrors.MessageOf(err)))
	}

	return ctx.JSON(serverutils.SuccessResponse("Success digest", res))
}
