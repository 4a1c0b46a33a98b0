package entity

import (
	"time"

	"github.com/google/uuid"
)

type ActivityLog struct {
	Id           uuid.UUID
	UserId       uuid.UUID
	Action       string
	ResourceType string
	ResourceId   uuid.UUID
	Detail       string
	CreatedAt    time.Time
}
