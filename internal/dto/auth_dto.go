package dto

import (
	"time"

	"github.com/google/uuid"
)

type SignInRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type VerifySignInRequest struct {
	Token string `json:"token" validate:"required"`
}

type VerifySignInResponse struct {
	AccessToken string  `json:"access_token"`
	User        UserDTO `json:"user"`
}

type UserDTO struct {
	Id    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

type SessionResponse struct {
	User         UserDTO    `json:"user"`
	ExpiresAt    time.Time  `json:"expires_at"`
	LastSignInAt *time.Time `json:"last_sign_in_at,omitempty"`
}
