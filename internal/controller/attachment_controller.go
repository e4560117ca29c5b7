package controller

import (
	"orgnotes-be/internal/pkg/apperrors"
	"orgnotes-be/internal/pkg/serverutils"
	"orgnotes-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAttachmentController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Upload(ctx *fiber.Ctx) error
	SignedURL(ctx *fiber.Ctx) error
}

type attachmentController struct {
	attachmentService service.IAttachmentService
}

func NewAttachmentController(attachmentService service.IAttachmentService) IAttachmentController {
	return &attachmentController{
		attachmentService: attachmentService,
	}
}

func (c *attachmentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/attachment/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.List)
	h.Post("", c.Upload)
	h.Get("signed-url", c.SignedURL)
}

func (c *attachmentController) List(ctx *fiber.Ctx) error {
	userId, _ := uuid.Parse(ctx.Locals("user_id").(string))

	orgId, err := uuid.Parse(ctx.Query("org_id"))
	if err != nil {
		return apperrors.Validation("org_id must be a valid uuid")
	}

	res, err := c.attachmentService.List(ctx.Context(), userId, orgId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list attachments", res))
}

func (c *attachmentController) Upload(ctx *fiber.Ctx) error {
	userId, _ := uuid.Parse(ctx.Locals("user_id").(string))

	orgId, err := uuid.Parse(ctx.FormValue("org_id"))
	if err != nil {
		return apperrors.Validation("org_id must be a valid uuid")
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return apperrors.Validation("file is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return apperrors.Backend("failed to read uploaded file", err)
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	res, err := c.attachmentService.Upload(ctx.Context(), userId, orgId, fileHeader.Filename, contentType, file, fileHeader.Size)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success upload attachment", res))
}

func (c *attachmentController) SignedURL(ctx *fiber.Ctx) error {
	userId, _ := uuid.Parse(ctx.Locals("user_id").(string))

	path := ctx.Query("path")
	if path == "" {
		return apperrors.Validation("path is required")
	}

	res, err := c.attachmentService.SignedURL(ctx.Context(), userId, path)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success sign attachment url", res))
}
