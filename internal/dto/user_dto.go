package dto

import (
	"time"

	"github.com/google/uuid"
)

type UserProfileResponse struct {
	Id          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
}

type UpdateProfileRequest struct {
	DisplayName string `json:"display_name" validate:"notblank,max=100"`
}
