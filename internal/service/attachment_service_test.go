package service

import (
	"context"
	"testing"
	"time"

	"orgnotes-be/internal/entity"
	"orgnotes-be/internal/pkg/apperrors"
	"orgnotes-be/pkg/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The fixtures below run with a nil object store: every covered path decides
// before the blob write (membership, path ownership, metadata lookups), which
// is exactly where the tenancy rules live. Blob round-trips are exercised by
// the integration tests.

func newAttachmentFixture() (*fakeUnitOfWork, IAttachmentService, uuid.UUID, *entity.Organization) {
	uow := newFakeUnitOfWork()
	orgSvc := NewOrgService(&fakeFactory{uow: uow})
	svc := NewAttachmentService(&fakeFactory{uow: uow}, orgSvc, nil)

	userID := uuid.New()
	org := seedOrg(uow, "Acme", userID, entity.MembershipRoleOwner)
	return uow, svc, userID, org
}

func TestAttachmentList(t *testing.T) {
	ctx := context.Background()
	uow, svc, userID, org := newAttachmentFixture()

	uow.attachments.attachments = []*entity.Attachment{
		{Path: "org/" + org.Id.String() + "/1-a.txt", OrgId: org.Id, CreatedBy: userID, CreatedAt: time.Now().Add(-time.Hour)},
		{Path: "org/" + org.Id.String() + "/2-b.txt", OrgId: org.Id, CreatedBy: userID, CreatedAt: time.Now()},
		{Path: "org/foreign/3-c.txt", OrgId: uuid.New(), CreatedBy: userID, CreatedAt: time.Now()},
	}

	res, err := svc.List(ctx, userID, org.Id)
	require.NoError(t, err)
	require.Len(t, res, 2)

	// Newest first.
	assert.Contains(t, res[0].Path, "2-b.txt")
	assert.Contains(t, res[1].Path, "1-a.txt")

	t.Run("non-member denied", func(t *testing.T) {
		_, err := svc.List(ctx, uuid.New(), org.Id)
		require.Error(t, err)
		assert.Equal(t, apperrors.KindAccessDenied, apperrors.KindOf(err))
	})
}

func TestAttachmentUploadDenied(t *testing.T) {
	ctx := context.Background()
	_, svc, _, org := newAttachmentFixture()

	_, err := svc.Upload(ctx, uuid.New(), org.Id, "a.txt", "text/plain", nil, 0)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindAccessDenied, apperrors.KindOf(err))
}

func TestAttachmentKeyNamespacing(t *testing.T) {
	orgID := uuid.New().String()
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	key := storage.AttachmentKey(orgID, at, "report.pdf")
	assert.Contains(t, key, "org/"+orgID+"/")
	assert.Contains(t, key, "-report.pdf")

	// Directory components are stripped so a crafted filename cannot escape
	// the org prefix.
	escaped := storage.AttachmentKey(orgID, at, "../../etc/passwd")
	assert.Contains(t, escaped, "org/"+orgID+"/")
	assert.NotContains(t, escaped, "..")
}

func TestAttachmentSignedURL(t *testing.T) {
	ctx := context.Background()
	uow, svc, userID, org := newAttachmentFixture()

	key := "org/" + org.Id.String() + "/1-a.txt"
	uow.attachments.attachments = append(uow.attachments.attachments, &entity.Attachment{
		Path:      key,
		OrgId:     org.Id,
		CreatedBy: userID,
		CreatedAt: time.Now(),
	})

	t.Run("unknown path", func(t *testing.T) {
		_, err := svc.SignedURL(ctx, userID, "org/nope/1-x.txt")
		require.Error(t, err)
		assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	})

	t.Run("non-member denied by the row's org", func(t *testing.T) {
		_, err := svc.SignedURL(ctx, uuid.New(), key)
		require.Error(t, err)
		assert.Equal(t, apperrors.KindAccessDenied, apperrors.KindOf(err))
	})
}
