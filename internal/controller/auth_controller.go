package controller

import (
	"strings"

	"orgnotes-be/internal/dto"
	"orgnotes-be/internal/pkg/apperrors"
	"orgnotes-be/internal/pkg/serverutils"
	"orgnotes-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router)
	RequestSignIn(ctx *fiber.Ctx) error
	VerifySignIn(ctx *fiber.Ctx) error
	Session(ctx *fiber.Ctx) error
	SignOut(ctx *fiber.Ctx) error
}

type authController struct {
	authService service.IAuthService
}

func NewAuthController(authService service.IAuthService) IAuthController {
	return &authController{
		authService: authService,
	}
}

func (c *authController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/auth/v1")
	h.Post("signin-request", c.RequestSignIn)
	h.Post("verify", c.VerifySignIn)
	h.Get("session", serverutils.JwtMiddleware, c.Session)
	h.Post("signout", serverutils.JwtMiddleware, c.SignOut)
}

func (c *authController) RequestSignIn(ctx *fiber.Ctx) error {
	var req dto.SignInRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperrors.Validation("invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.authService.RequestSignIn(ctx.Context(), &req); err != nil {
		return err
	}

	// Same response whether or not the address was known before.
	return ctx.JSON(serverutils.SuccessResponse("Sign-in link sent", struct{}{}))
}

func (c *authController) VerifySignIn(ctx *fiber.Ctx) error {
	var req dto.VerifySignInRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperrors.Validation("invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.authService.VerifySignIn(ctx.Context(), &req, ctx.IP(), ctx.Get("User-Agent"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Signed in", res))
}

func (c *authController) Session(ctx *fiber.Ctx) error {
	userId, _ := uuid.Parse(ctx.Locals("user_id").(string))
	rawToken := strings.TrimPrefix(ctx.Get("Authorization"), "Bearer ")

	res, err := c.authService.CurrentSession(ctx.Context(), userId, rawToken)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Session active", res))
}

func (c *authController) SignOut(ctx *fiber.Ctx) error {
	userId, _ := uuid.Parse(ctx.Locals("user_id").(string))
	sessionId, _ := uuid.Parse(ctx.Locals("session_id").(string))

	if err := c.authService.SignOut(ctx.Context(), userId, sessionId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Signed out", struct{}{}))
}
