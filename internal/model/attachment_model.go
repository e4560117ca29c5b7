package model

import (
	"time"

	"github.com/google/uuid"
)

type Attachment struct {
	Path      string     `gorm:"type:text;primaryKey"`
	OrgId     uuid.UUID  `gorm:"type:uuid;not null;index"`
	NoteId    *uuid.UUID `gorm:"type:uuid;index"`
	CreatedBy uuid.UUID  `gorm:"type:uuid;not null"`
	CreatedAt time.Time  `gorm:"autoCreateTime"`
}

func (Attachment) TableName() string {
	return "attachments"
}
