package models

import (
	"time"

	"github.com/google/uuid"
)

const DefaultProjectEmoji = "🛐"

type Project struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Emoji       string    `json:"emoji"`
	WorkspaceID uuid.UUID `json:"workspace_id"`
	CreatedBy   uuid.UUID `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
