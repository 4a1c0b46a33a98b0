package dto

import "github.com/google/uuid"

// PublishActivityMessage is the payload mutating services emit on the
// activity topic. The consumer persists it as an ActivityLog row.
type PublishActivityMessage struct {
	UserId       uuid.UUID `json:"user_id"`
	Action       string    `json:"action"`
	ResourceType string    `json:"resource_type"`
	ResourceId   uuid.UUID `json:"resource_id"`
	Detail       string    `json:"detail"`
}
