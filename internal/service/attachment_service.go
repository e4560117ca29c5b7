package service

import (
	"context"
	"io"
	"time"

	"orgnotes-be/internal/dto"
	"orgnotes-be/internal/entity"
	"orgnotes-be/internal/pkg/apperrors"
	"orgnotes-be/internal/repository/specification"
	"orgnotes-be/internal/repository/unitofwork"
	"orgnotes-be/pkg/storage"

	"github.com/google/uuid"
)

type IAttachmentService interface {
	List(ctx context.Context, userID, orgID uuid.UUID) ([]dto.AttachmentDTO, error)
	Upload(ctx context.Context, userID, orgID uuid.UUID, filename, contentType string, body io.Reader, size int64) (*dto.UploadAttachmentResponse, error)
	SignedURL(ctx context.Context, userID uuid.UUID, path string) (*dto.SignedURLResponse, error)
}

type attachmentService struct {
	uowFactory unitofwork.RepositoryFactory
	orgService IOrgService
	store      *storage.S3
}

func NewAttachmentService(
	uowFactory unitofwork.RepositoryFactory,
	orgService IOrgService,
	store *storage.S3,
) IAttachmentService {
	return &attachmentService{
		uowFactory: uowFactory,
		orgService: orgService,
		store:      store,
	}
}

// List returns the org's attachment metadata, newest first.
func (s *attachmentService) List(ctx context.Context, userID, orgID uuid.UUID) ([]dto.AttachmentDTO, error) {
	if err := s.orgService.RequireMembership(ctx, orgID, userID); err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	attachments, err := uow.AttachmentRepository().FindAll(ctx,
		specification.ByOrgID{OrgID: orgID},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, apperrors.Backend("failed to list attachments", err)
	}

	result := make([]dto.AttachmentDTO, 0, len(attachments))
	for _, a := range attachments {
		result = append(result, dto.AttachmentDTO{
			Path:      a.Path,
			OrgId:     a.OrgId,
			NoteId:    a.NoteId,
			CreatedBy: a.CreatedBy,
			CreatedAt: a.CreatedAt,
		})
	}
	return result, nil
}

// Upload writes the blob first and the metadata row second. A blob that
// uploaded but failed its metadata write is reported as an inconsistent
// write and left in place; re-uploading the same file repairs it because the
// metadata write is an upsert on path.
func (s *attachmentService) Upload(ctx context.Context, userID, orgID uuid.UUID, filename, contentType string, body io.Reader, size int64) (*dto.UploadAttachmentResponse, error) {
	if err := s.orgService.RequireMembership(ctx, orgID, userID); err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	now := time.Now()
	key := storage.AttachmentKey(orgID.String(), now, filename)

	// The millisecond prefix makes collisions rare but not impossible.
	// Overwriting your own earlier blob is allowed (same semantics as the
	// metadata upsert); overwriting someone else's is not.
	existing, err := uow.AttachmentRepository().FindOne(ctx, specification.ByPath{Path: key})
	if err != nil {
		return nil, apperrors.Backend("failed to check attachment path", err)
	}
	if existing != nil && existing.CreatedBy != userID {
		return nil, apperrors.AccessDenied("attachment path is already in use")
	}

	if err := s.store.Upload(ctx, key, contentType, body, size); err != nil {
		return nil, apperrors.Backend("failed to upload attachment", err)
	}

	noteID, err := s.latestNoteID(ctx, uow, orgID)
	if err != nil {
		return nil, err
	}

	attachment := &entity.Attachment{
		Path:      key,
		OrgId:     orgID,
		NoteId:    noteID,
		CreatedBy: userID,
		CreatedAt: now,
	}

	if err := uow.AttachmentRepository().Save(ctx, attachment); err != nil {
		return nil, apperrors.InconsistentWrite(
			"attachment blob was stored but its metadata write failed; re-upload the file to repair",
			err,
		)
	}

	return &dto.UploadAttachmentResponse{
		Path:   attachment.Path,
		NoteId: attachment.NoteId,
	}, nil
}

// latestNoteID associates an upload with the org's most recently updated
// note, if any. Uploads into an org with no notes are kept unassociated.
func (s *attachmentService) latestNoteID(ctx context.Context, uow unitofwork.UnitOfWork, orgID uuid.UUID) (*uuid.UUID, error) {
	notes, err := uow.NoteRepository().FindAll(ctx,
		specification.ByOrgID{OrgID: orgID},
		specification.OrderBy{Field: "updated_at", Desc: true},
		specification.Pagination{Limit: 1},
	)
	if err != nil {
		return nil, apperrors.Backend("failed to resolve note for attachment", err)
	}
	if len(notes) == 0 {
		return nil, nil
	}
	id := notes[0].Id
	return &id, nil
}

// SignedURL mints a short-lived download link for a stored blob. Access is
// decided by the metadata row's org, never by the caller's claim.
func (s *attachmentService) SignedURL(ctx context.Context, userID uuid.UUID, path string) (*dto.SignedURLResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	attachment, err := uow.AttachmentRepository().FindOne(ctx, specification.ByPath{Path: path})
	if err != nil {
		return nil, apperrors.Backend("failed to look up attachment", err)
	}
	if attachment == nil {
		return nil, apperrors.NotFound("attachment not found")
	}

	if err := s.orgService.RequireMembership(ctx, attachment.OrgId, userID); err != nil {
		return nil, err
	}

	exists, err := s.store.Exists(ctx, attachment.Path)
	if err != nil {
		return nil, apperrors.Backend("failed to check attachment blob", err)
	}
	if !exists {
		return nil, apperrors.NotFound("attachment blob is missing")
	}

	ttl := s.store.SignedURLTTL()
	url, err := s.store.GeneratePresignedDownloadURL(ctx, attachment.Path, ttl)
	if err != nil {
		return nil, apperrors.Backend("failed to sign download url", err)
	}

	return &dto.SignedURLResponse{
		URL:       url,
		ExpiresIn: int(ttl.Seconds()),
	}, nil
}
