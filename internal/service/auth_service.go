package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"orgnotes-be/internal/config"
	"orgnotes-be/internal/dto"
	"orgnotes-be/internal/entity"
	"orgnotes-be/internal/pkg/apperrors"
	"orgnotes-be/internal/pkg/mailer"
	"orgnotes-be/internal/repository/memory"
	"orgnotes-be/internal/repository/specification"
	"orgnotes-be/internal/repository/unitofwork"
	"orgnotes-be/internal/websocket"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type IAuthService interface {
	RequestSignIn(ctx context.Context, req *dto.SignInRequest) error
	VerifySignIn(ctx context.Context, req *dto.VerifySignInRequest, ipAddress, userAgent string) (*dto.VerifySignInResponse, error)
	CurrentSession(ctx context.Context, userID uuid.UUID, rawToken string) (*dto.SessionResponse, error)
	SignOut(ctx context.Context, userID, sessionID uuid.UUID) error
}

type authService struct {
	uowFactory   unitofwork.RepositoryFactory
	emailService mailer.IEmailService
	tokens       *memory.SignInTokenRepository
	hub          *websocket.Hub
	authCfg      config.AuthConfig
	clientURL    string
}

func NewAuthService(
	uowFactory unitofwork.RepositoryFactory,
	emailService mailer.IEmailService,
	tokens *memory.SignInTokenRepository,
	hub *websocket.Hub,
	authCfg config.AuthConfig,
	clientURL string,
) IAuthService {
	return &authService{
		uowFactory:   uowFactory,
		emailService: emailService,
		tokens:       tokens,
		hub:          hub,
		authCfg:      authCfg,
		clientURL:    clientURL,
	}
}

func hashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// RequestSignIn mails a one-time sign-in link. A user row is created on the
// first request for an address; the email itself is the proof of identity, so
// there is nothing else to check here.
func (s *authService) RequestSignIn(ctx context.Context, req *dto.SignInRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return apperrors.Backend("failed to look up user", err)
	}

	if user == nil {
		user = &entity.User{
			Id:        uuid.New(),
			Email:     req.Email,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		if err := uow.UserRepository().Create(ctx, user); err != nil {
			return apperrors.Backend("failed to create user", err)
		}
	}

	rawToken := uuid.NewString()
	link := fmt.Sprintf("%s/auth/callback?token=%s", s.clientURL, rawToken)
	if err := s.emailService.SendSignInLink(user.Email, link, s.authCfg.SignInTokenTTLMin); err != nil {
		return apperrors.Backend("failed to send sign-in email", err)
	}

	// Stored only once the mail is out the door. A link that was never
	// delivered must not be redeemable.
	s.tokens.Save(hashToken(rawToken), &memory.SignInToken{
		UserId: user.Id,
		Email:  user.Email,
	})

	return nil
}

// VerifySignIn exchanges a clicked link for a session. The one-time token is
// consumed atomically, so a replayed link fails even within its TTL.
func (s *authService) VerifySignIn(ctx context.Context, req *dto.VerifySignInRequest, ipAddress, userAgent string) (*dto.VerifySignInResponse, error) {
	pending, ok := s.tokens.Consume(hashToken(req.Token))
	if !ok {
		return nil, apperrors.Auth("sign-in link is invalid or expired")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: pending.UserId})
	if err != nil {
		return nil, apperrors.Backend("failed to look up user", err)
	}
	if user == nil {
		return nil, apperrors.Auth("sign-in link is invalid or expired")
	}

	now := time.Now()
	session := &entity.UserSession{
		Id:        uuid.New(),
		UserId:    user.Id,
		ExpiresAt: now.Add(time.Duration(s.authCfg.SessionTTLHours) * time.Hour),
		IpAddress: ipAddress,
		UserAgent: userAgent,
		CreatedAt: now,
	}

	// The session row stores the hash of the access token it backs, so a
	// presented token can be matched to its row without trusting the claims.
	accessToken, err := s.issueAccessToken(user.Id, session.Id)
	if err != nil {
		return nil, apperrors.Backend("failed to sign access token", err)
	}
	session.TokenHash = hashToken(accessToken)

	if err := uow.Begin(ctx); err != nil {
		return nil, apperrors.Backend("failed to start transaction", err)
	}
	defer uow.Rollback()

	if err := uow.UserRepository().CreateSession(ctx, session); err != nil {
		return nil, apperrors.Backend("failed to create session", err)
	}

	user.LastSignInAt = &now
	user.UpdatedAt = now
	if err := uow.UserRepository().Update(ctx, user); err != nil {
		return nil, apperrors.Backend("failed to update user", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, apperrors.Backend("failed to commit session", err)
	}

	return &dto.VerifySignInResponse{
		AccessToken: accessToken,
		User: dto.UserDTO{
			Id:    user.Id,
			Email: user.Email,
		},
	}, nil
}

func (s *authService) issueAccessToken(userID, sessionID uuid.UUID) (string, error) {
	claims := jwt.MapClaims{
		"user_id":    userID.String(),
		"session_id": sessionID.String(),
		"exp":        time.Now().Add(time.Duration(s.authCfg.AccessTokenTTLHours) * time.Hour).Unix(),
		"iat":        time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.authCfg.JWTSecret))
}

// CurrentSession reports who the bearer token belongs to, as long as the
// session row behind it is still live. The row is found by the hash of the
// presented token, so a valid JWT over a revoked (or foreign) session is
// rejected: the row is the source of truth, not the signature.
func (s *authService) CurrentSession(ctx context.Context, userID uuid.UUID, rawToken string) (*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.UserRepository().FindSession(ctx, specification.ByTokenHash{TokenHash: hashToken(rawToken)})
	if err != nil {
		return nil, apperrors.Backend("failed to look up session", err)
	}
	if session == nil || session.Revoked || session.UserId != userID || time.Now().After(session.ExpiresAt) {
		return nil, apperrors.Auth("session is no longer valid")
	}

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userID})
	if err != nil {
		return nil, apperrors.Backend("failed to look up user", err)
	}
	if user == nil {
		return nil, apperrors.Auth("session is no longer valid")
	}

	return &dto.SessionResponse{
		User: dto.UserDTO{
			Id:    user.Id,
			Email: user.Email,
		},
		ExpiresAt:    session.ExpiresAt,
		LastSignInAt: user.LastSignInAt,
	}, nil
}

// SignOut revokes the session and drops any live feed connections held by
// the user, so a sign-out fully detaches the client from tenant data.
func (s *authService) SignOut(ctx context.Context, userID, sessionID uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.UserRepository().FindSession(ctx, specification.ByID{ID: sessionID})
	if err != nil {
		return apperrors.Backend("failed to look up session", err)
	}
	if session == nil || session.UserId != userID {
		return apperrors.Auth("session is no longer valid")
	}

	if err := uow.UserRepository().RevokeSession(ctx, sessionID); err != nil {
		return apperrors.Backend("failed to revoke session", err)
	}

	if s.hub != nil {
		s.hub.DisconnectUser(userID)
	}

	return nil
}
