package dto

import "github.com/google/uuid"

// DigestResponse is the cross-membership aggregate: the caller's own
// membership count, never another tenant's data.
type DigestResponse struct {
	UserId    uuid.UUID `json:"user_id"`
	OrgsCount int64     `json:"orgs_count"`
}
