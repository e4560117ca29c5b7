package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByOrgID scopes a query to one tenant's rows.
type ByOrgID struct {
	OrgID uuid.UUID
}

func (s ByOrgID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("org_id = ?", s.OrgID)
}

// MembershipOf matches the single membership row joining a user to an org.
type MembershipOf struct {
	OrgID  uuid.UUID
	UserID uuid.UUID
}

func (s MembershipOf) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("org_id = ? AND user_id = ?", s.OrgID, s.UserID)
}

// MemberOrgs joins organizations to memberships so a listing only ever
// returns orgs the user belongs to. This join is the tenant-isolation
// boundary for the directory; there is no unrestricted org listing.
type MemberOrgs struct {
	UserID uuid.UUID
}

func (s MemberOrgs) Apply(db *gorm.DB) *gorm.DB {
	return db.
		Joins("INNER JOIN memberships ON memberships.org_id = organizations.id").
		Where("memberships.user_id = ?", s.UserID)
}

// MembershipUser filters membership rows by user.
type MembershipUser struct {
	UserID uuid.UUID
}

func (s MembershipUser) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}
