package service

import (
	"context"

	"orgnotes-be/internal/dto"
	"orgnotes-be/internal/pkg/apperrors"
	"orgnotes-be/internal/repository/specification"
	"orgnotes-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IDigestService interface {
	Digest(ctx context.Context, userID uuid.UUID) (*dto.DigestResponse, error)
}

type digestService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewDigestService(uowFactory unitofwork.RepositoryFactory) IDigestService {
	return &digestService{uowFactory: uowFactory}
}

// Digest counts the caller's memberships. The aggregation runs with elevated
// database access but is scoped to the identity derived from the token, so
// it can never leak another user's rows.
func (s *digestService) Digest(ctx context.Context, userID uuid.UUID) (*dto.DigestResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	count, err := uow.MembershipRepository().Count(ctx, specification.MembershipUser{UserID: userID})
	if err != nil {
		return nil, apperrors.Backend("failed to count memberships", err)
	}

	return &dto.DigestResponse{
		UserId:    userID,
		OrgsCount: count,
	}, nil
}
