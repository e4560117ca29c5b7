package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the authenticated identity. There are no passwords: a user row is
// created on the first sign-in request and proven by clicking the mailed link.
type User struct {
	Id           uuid.UUID
	Email        string
	LastSignInAt *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserSession is a server-side session established by a verified sign-in
// link. The access JWT references it by id so sign-out can revoke it.
type UserSession struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	TokenHash string
	ExpiresAt time.Time
	Revoked   bool
	IpAddress string
	UserAgent string
	CreatedAt time.Time
}
