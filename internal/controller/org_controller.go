package controller

import (
	"orgnotes-be/internal/dto"
	"orgnotes-be/internal/pkg/apperrors"
	"orgnotes-be/internal/pkg/serverutils"
	"orgnotes-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IOrgController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
}

type orgController struct {
	orgService service.IOrgService
}

func NewOrgController(orgService service.IOrgService) IOrgController {
	return &orgController{
		orgService: orgService,
	}
}

func (c *orgController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/org/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.List)
	h.Post("", c.Create)
}

func (c *orgController) List(ctx *fiber.Ctx) error {
	userId, _ := uuid.Parse(ctx.Locals("user_id").(string))

	// The client reports which org it had selected; the service decides
	// whether that selection is still valid.
	var selected *uuid.UUID
	if raw := ctx.Query("selected_org_id"); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			selected = &id
		}
	}

	res, err := c.orgService.ListMyOrganizations(ctx.Context(), userId, selected)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list organizations", res))
}

func (c *orgController) Create(ctx *fiber.Ctx) error {
	userId, _ := uuid.Parse(ctx.Locals("user_id").(string))

	var req dto.CreateOrganizationRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperrors.Validation("invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.orgService.CreateOrganization(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create organization", res))
}
