package serverutils

import (
	"errors"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims is what a verified access token carries.
type SessionClaims struct {
	UserID    string
	SessionID string
}

// ParseBearerToken verifies a raw "Bearer ..." Authorization header value and
// returns the claims. Shared by the middleware, the websocket handshake and
// the digest endpoint (which must re-derive identity itself instead of
// trusting locals set upstream).
func ParseBearerToken(authHeader string) (*SessionClaims, error) {
	if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		return nil, errors.New("missing bearer token")
	}
	return ParseAccessToken(authHeader[7:])
}

// ParseAccessToken verifies a bare JWT string.
func ParseAccessToken(tokenStr string) (*SessionClaims, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}

	userID, _ := claims["user_id"].(string)
	sessionID, _ := claims["session_id"].(string)
	if userID == "" {
		return nil, errors.New("invalid claims")
	}

	return &SessionClaims{UserID: userID, SessionID: sessionID}, nil
}

// JwtMiddleware authenticates by signature and expiry only; the session row
// is consulted at /session and on the websocket handshake. A revoked session
// keeps its REST access until token expiry, which is why the access-token
// TTL is short.
func JwtMiddleware(ctx *fiber.Ctx) error {
	claims, err := ParseBearerToken(ctx.Get("Authorization"))
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Missing or invalid token"})
	}

	ctx.Locals("user_id", claims.UserID)
	ctx.Locals("session_id", claims.SessionID)
	return ctx.Next()
}
