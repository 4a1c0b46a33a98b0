package dto

import (
	"time"

	"github.com/google/uuid"
)

type ActivityLogResponse struct {
	Id           uuid.UUID `json:"id"`
	Action       string    `json:"action"`
	ResourceType string    `json:"resource_type"`
	ResourceId   uuid.UUID `json:"resource_id"`
	Detail       string    `json:"detail"`
	CreatedAt    time.Time `json:"created_at"`
}
