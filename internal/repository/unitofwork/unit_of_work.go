package unitofwork

import (
	"context"

	"orgnotes-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	OrganizationRepository() contract.OrganizationRepository
	MembershipRepository() contract.MembershipRepository
	NoteRepository() contract.NoteRepository
	AttachmentRepository() contract.AttachmentRepository
}
