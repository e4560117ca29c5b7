package dto

import (
	"time"

	"github.com/google/uuid"
)

type AttachmentDTO struct {
	Path      string     `json:"path"`
	OrgId     uuid.UUID  `json:"org_id"`
	NoteId    *uuid.UUID `json:"note_id,omitempty"`
	CreatedBy uuid.UUID  `json:"created_by"`
	CreatedAt time.Time  `json:"created_at"`
}

type UploadAttachmentResponse struct {
	Path   string     `json:"path"`
	NoteId *uuid.UUID `json:"note_id,omitempty"`
}

type SignedURLResponse struct {
	URL       string `json:"url"`
	ExpiresIn int    `json:"expires_in"`
}
