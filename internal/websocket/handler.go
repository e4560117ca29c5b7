package websocket

import (
	"context"

	"orgnotes-be/internal/pkg/apperrors"
	"orgnotes-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// MembershipGuard reports whether a user may join an org room. Wired to the
// org service so the feed enforces the same tenancy rule as the REST surface.
type MembershipGuard func(ctx context.Context, orgID, userID uuid.UUID) error

type Handler struct {
	hub   *Hub
	guard MembershipGuard
}

func NewHandler(hub *Hub, guard MembershipGuard) *Handler {
	return &Handler{hub: hub, guard: guard}
}

// UpgradeMiddleware authenticates the upgrade request before the protocol
// switch. Browsers cannot set headers on websocket dials, so the access token
// rides in the query string instead of an Authorization header.
func (h *Handler) UpgradeMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}

		claims, err := serverutils.ParseAccessToken(c.Query("token"))
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).
				JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, "invalid or missing token"))
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).
				JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, "invalid or missing token"))
		}

		orgID, err := uuid.Parse(c.Query("org_id"))
		if err != nil {
			return c.Status(fiber.StatusUnprocessableEntity).
				JSON(serverutils.ErrorResponse(fiber.StatusUnprocessableEntity, "org_id must be a valid uuid"))
		}

		if err := h.guard(c.Context(), orgID, userID); err != nil {
			status := fiber.StatusForbidden
			if apperrors.KindOf(err) == apperrors.KindBackend {
				status = fiber.StatusInternalServerError
			}
			return c.Status(status).
				JSON(serverutils.ErrorResponse(status, apperrors.MessageOf(err)))
		}

		c.Locals("user_id", userID.String())
		c.Locals("org_id", orgID.String())
		return c.Next()
	}
}

// ServeWs registers the upgraded connection into its org room and runs the
// read/write pumps until the peer goes away.
func (h *Handler) ServeWs() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		userID, err := uuid.Parse(conn.Locals("user_id").(string))
		if err != nil {
			conn.Close()
			return
		}
		orgID, err := uuid.Parse(conn.Locals("org_id").(string))
		if err != nil {
			conn.Close()
			return
		}

		client := &Client{
			Hub:    h.hub,
			Conn:   conn,
			Send:   make(chan []byte, 256),
			OrgID:  orgID,
			UserID: userID,
		}
		h.hub.register <- client

		go client.writePump()
		client.readPump()
	})
}
