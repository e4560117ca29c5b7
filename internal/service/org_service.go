package service

import (
	"context"
	"fmt"
	"time"

	"orgnotes-be/internal/dto"
	"orgnotes-be/internal/entity"
	"orgnotes-be/internal/pkg/apperrors"
	"orgnotes-be/internal/repository/specification"
	"orgnotes-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IOrgService interface {
	ListMyOrganizations(ctx context.Context, userID uuid.UUID, selectedOrgID *uuid.UUID) (*dto.ListOrganizationsResponse, error)
	CreateOrganization(ctx context.Context, userID uuid.UUID, req *dto.CreateOrganizationRequest) (*dto.CreateOrganizationResponse, error)
	RequireMembership(ctx context.Context, orgID, userID uuid.UUID) error
}

type orgService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewOrgService(uowFactory unitofwork.RepositoryFactory) IOrgService {
	return &orgService{uowFactory: uowFactory}
}

// ListMyOrganizations returns the caller's organizations ordered by name,
// and resolves the effective selection: the claimed org when the caller still
// belongs to it, otherwise the first org in the list, otherwise nothing.
func (s *orgService) ListMyOrganizations(ctx context.Context, userID uuid.UUID, selectedOrgID *uuid.UUID) (*dto.ListOrganizationsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	orgs, err := uow.OrganizationRepository().FindAll(ctx,
		specification.MemberOrgs{UserID: userID},
		specification.OrderBy{Field: "organizations.name"},
	)
	if err != nil {
		return nil, apperrors.Backend("failed to list organizations", err)
	}

	result := make([]dto.OrganizationDTO, 0, len(orgs))
	for _, org := range orgs {
		membership, err := uow.MembershipRepository().FindOne(ctx, specification.MembershipOf{OrgID: org.Id, UserID: userID})
		if err != nil {
			return nil, apperrors.Backend("failed to load membership", err)
		}
		role := string(entity.MembershipRoleMember)
		if membership != nil {
			role = string(membership.Role)
		}
		result = append(result, dto.OrganizationDTO{
			Id:        org.Id,
			Name:      org.Name,
			OwnerId:   org.OwnerId,
			Role:      role,
			CreatedAt: org.CreatedAt,
		})
	}

	var selected *uuid.UUID
	if selectedOrgID != nil {
		for _, org := range result {
			if org.Id == *selectedOrgID {
				selected = selectedOrgID
				break
			}
		}
	}
	if selected == nil && len(result) > 0 {
		selected = &result[0].Id
	}

	return &dto.ListOrganizationsResponse{
		Organizations: result,
		SelectedOrgId: selected,
	}, nil
}

// CreateOrganization inserts the org and the creator's owner membership as
// two separate writes. When the second write fails the org row is left
// behind and the error says so, naming the orphan so an operator can
// reconcile it. This mirrors how the two rows are created by independent
// statements upstream; the gap is reported, not papered over.
func (s *orgService) CreateOrganization(ctx context.Context, userID uuid.UUID, req *dto.CreateOrganizationRequest) (*dto.CreateOrganizationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	now := time.Now()
	org := &entity.Organization{
		Id:        uuid.New(),
		Name:      req.Name,
		OwnerId:   userID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uow.OrganizationRepository().Create(ctx, org); err != nil {
		return nil, apperrors.Backend("failed to create organization", err)
	}

	membership := &entity.Membership{
		Id:        uuid.New(),
		OrgId:     org.Id,
		UserId:    userID,
		Role:      entity.MembershipRoleOwner,
		CreatedAt: now,
	}

	if err := uow.MembershipRepository().Create(ctx, membership); err != nil {
		return nil, apperrors.InconsistentWrite(
			fmt.Sprintf("organization %s was created but the owner membership failed; the organization is orphaned", org.Id),
			err,
		)
	}

	return &dto.CreateOrganizationResponse{
		Id:   org.Id,
		Name: org.Name,
	}, nil
}

// RequireMembership is the tenancy gate used by every org-scoped operation.
// Missing membership and nonexistent org are indistinguishable to the caller.
func (s *orgService) RequireMembership(ctx context.Context, orgID, userID uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	membership, err := uow.MembershipRepository().FindOne(ctx, specification.MembershipOf{OrgID: orgID, UserID: userID})
	if err != nil {
		return apperrors.Backend("failed to check membership", err)
	}
	if membership == nil {
		return apperrors.AccessDenied("you are not a member of this organization")
	}
	return nil
}
