package contract

import (
	"context"

	"orgnotes-be/internal/entity"
	"orgnotes-be/internal/repository/specification"
)

type AttachmentRepository interface {
	Create(ctx context.Context, attachment *entity.Attachment) error
	Save(ctx context.Context, attachment *entity.Attachment) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Attachment, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Attachment, error)
}
