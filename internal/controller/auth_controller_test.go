package controller

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"orgnotes-be/internal/dto"
	"orgnotes-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAuthService struct {
	requests []dto.SignInRequest
}

func (s *stubAuthService) RequestSignIn(ctx context.Context, req *dto.SignInRequest) error {
	s.requests = append(s.requests, *req)
	return nil
}

func (s *stubAuthService) VerifySignIn(ctx context.Context, req *dto.VerifySignInRequest, ipAddress, userAgent string) (*dto.VerifySignInResponse, error) {
	return &dto.VerifySignInResponse{}, nil
}

func (s *stubAuthService) CurrentSession(ctx context.Context, userID uuid.UUID, rawToken string) (*dto.SessionResponse, error) {
	return &dto.SessionResponse{}, nil
}

func (s *stubAuthService) SignOut(ctx context.Context, userID, sessionID uuid.UUID) error {
	return nil
}

func newAuthTestApp(svc *stubAuthService) *fiber.App {
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	api := app.Group("/api")
	NewAuthController(svc).RegisterRoutes(api)
	return app
}

func TestRequestSignInBodyHandling(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"valid body", `{"email":"a@example.com"}`, 200},
		{"malformed json", `{"email":`, 422},
		{"missing email", `{}`, 422},
		{"bad email", `{"email":"not-an-email"}`, 422},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubAuthService{}
			app := newAuthTestApp(svc)

			req := httptest.NewRequest("POST", "/api/auth/v1/signin-request", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			if tt.wantStatus != 200 {
				// Parse failures never reach the service.
				assert.Empty(t, svc.requests)

				body, _ := io.ReadAll(resp.Body)
				assert.Contains(t, string(body), "message")
			}
		})
	}
}
