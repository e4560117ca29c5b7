package contract

import (
	"context"

	"orgnotes-be/internal/entity"
	"orgnotes-be/internal/repository/specification"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, user *entity.User) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	CreateSession(ctx context.Context, session *entity.UserSession) error
	FindSession(ctx context.Context, specs ...specification.Specification) (*entity.UserSession, error)
	RevokeSession(ctx context.Context, id uuid.UUID) error
}
