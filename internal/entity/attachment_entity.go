package entity

import (
	"time"

	"github.com/google/uuid"
)

// Attachment is the metadata row for a blob stored under a tenant-namespaced
// key. The blob itself lives in the object store; the row is written only
// after the blob upload succeeded.
type Attachment struct {
	Path      string
	OrgId     uuid.UUID
	NoteId    *uuid.UUID
	CreatedBy uuid.UUID
	CreatedAt time.Time
}
