package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"orgnotes-be/internal/dto"
	"orgnotes-be/internal/entity"
	"orgnotes-be/internal/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedOrg(uow *fakeUnitOfWork, name string, userID uuid.UUID, role entity.MembershipRole) *entity.Organization {
	org := &entity.Organization{
		Id:        uuid.New(),
		Name:      name,
		OwnerId:   userID,
		CreatedAt: time.Now(),
	}
	uow.orgs.orgs = append(uow.orgs.orgs, org)
	uow.memberships.memberships = append(uow.memberships.memberships, &entity.Membership{
		Id:     uuid.New(),
		OrgId:  org.Id,
		UserId: userID,
		Role:   role,
	})
	return org
}

func TestListMyOrganizations(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	uow := newFakeUnitOfWork()
	svc := NewOrgService(&fakeFactory{uow: uow})

	zulu := seedOrg(uow, "Zulu", userID, entity.MembershipRoleOwner)
	alpha := seedOrg(uow, "Alpha", userID, entity.MembershipRoleMember)

	// An org the user does not belong to must never appear.
	seedOrg(uow, "Other", uuid.New(), entity.MembershipRoleOwner)

	t.Run("orders by name and hides foreign orgs", func(t *testing.T) {
		res, err := svc.ListMyOrganizations(ctx, userID, nil)
		require.NoError(t, err)
		require.Len(t, res.Organizations, 2)
		assert.Equal(t, "Alpha", res.Organizations[0].Name)
		assert.Equal(t, "Zulu", res.Organizations[1].Name)
		assert.Equal(t, "member", res.Organizations[0].Role)
		assert.Equal(t, "owner", res.Organizations[1].Role)
	})

	t.Run("defaults selection to first org", func(t *testing.T) {
		res, err := svc.ListMyOrganizations(ctx, userID, nil)
		require.NoError(t, err)
		require.NotNil(t, res.SelectedOrgId)
		assert.Equal(t, alpha.Id, *res.SelectedOrgId)
	})

	t.Run("keeps a valid claimed selection", func(t *testing.T) {
		res, err := svc.ListMyOrganizations(ctx, userID, &zulu.Id)
		require.NoError(t, err)
		require.NotNil(t, res.SelectedOrgId)
		assert.Equal(t, zulu.Id, *res.SelectedOrgId)
	})

	t.Run("replaces a stale claimed selection", func(t *testing.T) {
		stale := uuid.New()
		res, err := svc.ListMyOrganizations(ctx, userID, &stale)
		require.NoError(t, err)
		require.NotNil(t, res.SelectedOrgId)
		assert.Equal(t, alpha.Id, *res.SelectedOrgId)
	})

	t.Run("no orgs means no selection", func(t *testing.T) {
		empty := newFakeUnitOfWork()
		emptySvc := NewOrgService(&fakeFactory{uow: empty})
		res, err := emptySvc.ListMyOrganizations(ctx, uuid.New(), nil)
		require.NoError(t, err)
		assert.Empty(t, res.Organizations)
		assert.Nil(t, res.SelectedOrgId)
	})
}

func TestCreateOrganization(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("creates org with owner membership", func(t *testing.T) {
		uow := newFakeUnitOfWork()
		svc := NewOrgService(&fakeFactory{uow: uow})

		res, err := svc.CreateOrganization(ctx, userID, &dto.CreateOrganizationRequest{Name: "Acme"})
		require.NoError(t, err)
		assert.Equal(t, "Acme", res.Name)

		require.Len(t, uow.memberships.memberships, 1)
		assert.Equal(t, entity.MembershipRoleOwner, uow.memberships.memberships[0].Role)
		assert.Equal(t, res.Id, uow.memberships.memberships[0].OrgId)
	})

	t.Run("membership failure leaves orphaned org and reports it", func(t *testing.T) {
		uow := newFakeUnitOfWork()
		uow.memberships.createErr = errors.New("connection reset")
		svc := NewOrgService(&fakeFactory{uow: uow})

		_, err := svc.CreateOrganization(ctx, userID, &dto.CreateOrganizationRequest{Name: "Acme"})
		require.Error(t, err)
		assert.Equal(t, apperrors.KindInconsistentWrite, apperrors.KindOf(err))

		// The org row survives: the error names the orphan instead of
		// pretending nothing happened.
		assert.Len(t, uow.orgs.orgs, 1)
		assert.Contains(t, err.Error(), uow.orgs.orgs[0].Id.String())
	})
}

func TestRequireMembership(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	uow := newFakeUnitOfWork()
	svc := NewOrgService(&fakeFactory{uow: uow})
	org := seedOrg(uow, "Acme", userID, entity.MembershipRoleOwner)

	assert.NoError(t, svc.RequireMembership(ctx, org.Id, userID))

	err := svc.RequireMembership(ctx, org.Id, uuid.New())
	require.Error(t, err)
	assert.Equal(t, apperrors.KindAccessDenied, apperrors.KindOf(err))

	// A nonexistent org answers the same as a foreign one.
	err = svc.RequireMembership(ctx, uuid.New(), userID)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindAccessDenied, apperrors.KindOf(err))
}
