package dto

import (
	"time"

	"github.com/google/uuid"
)

type NoteDTO struct {
	Id        uuid.UUID  `json:"id"`
	OrgId     uuid.UUID  `json:"org_id"`
	AuthorId  uuid.UUID  `json:"author_id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

type CreateNoteRequest struct {
	OrgId   uuid.UUID `json:"org_id" validate:"required"`
	Title   string    `json:"title" validate:"required"`
	Content string    `json:"content"`
}

type CreateNoteResponse struct {
	Id uuid.UUID `json:"id"`
}

type UpdateNoteRequest struct {
	Id      uuid.UUID
	Title   string `json:"title" validate:"required"`
	Content string `json:"content"`
}

type UpdateNoteResponse struct {
	Id uuid.UUID `json:"id"`
}

// NoteChangeMessage is the internal bus payload emitted after every note
// mutation. Action is one of "created", "updated", "deleted".
type NoteChangeMessage struct {
	OrgId  uuid.UUID `json:"org_id"`
	NoteId uuid.UUID `json:"note_id"`
	Action string    `json:"action"`
}
