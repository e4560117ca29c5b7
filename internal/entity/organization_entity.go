package entity

import (
	"time"

	"github.com/google/uuid"
)

type MembershipRole string

const (
	MembershipRoleOwner  MembershipRole = "owner"
	MembershipRoleMember MembershipRole = "member"
)

// Organization is the tenant boundary. Every note and attachment belongs to
// exactly one.
type Organization struct {
	Id        uuid.UUID
	Name      string
	OwnerId   uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Membership joins a user to an organization. All tenant-scoped access is
// derived from the existence of this row.
type Membership struct {
	Id        uuid.UUID
	OrgId     uuid.UUID
	UserId    uuid.UUID
	Role      MembershipRole
	CreatedAt time.Time
}
