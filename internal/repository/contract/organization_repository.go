package contract

import (
	"context"

	"orgnotes-be/internal/entity"
	"orgnotes-be/internal/repository/specification"
)

type OrganizationRepository interface {
	Create(ctx context.Context, org *entity.Organization) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Organization, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Organization, error)
}

type MembershipRepository interface {
	Create(ctx context.Context, membership *entity.Membership) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Membership, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
