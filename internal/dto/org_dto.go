package dto

import (
	"time"

	"github.com/google/uuid"
)

type OrganizationDTO struct {
	Id        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	OwnerId   uuid.UUID `json:"owner_id"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// ListOrganizationsResponse carries the caller's organizations (name ASC)
// plus the effective selection: the claimed selection when it is still one of
// the caller's orgs, otherwise the first org in the list.
type ListOrganizationsResponse struct {
	Organizations []OrganizationDTO `json:"organizations"`
	SelectedOrgId *uuid.UUID        `json:"selected_org_id"`
}

type CreateOrganizationRequest struct {
	Name string `json:"name" validate:"required,min=1,max=255"`
}

type CreateOrganizationResponse struct {
	Id   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}
