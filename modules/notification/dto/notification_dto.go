package dto

import "github.com/google/uuid"

type CreateNotificationRequest struct {
	UserID  uuid.UUID              `json:"user_id"`
	Title   string                 `json:"title"`
	Message string                 `json:"message"`
	Type    string                 `json:"type"`
	Data    map[string]interface{} `json:"data,omitempty"`
}

type MarkAsReadRequest struct {
	IDs []string `json:"ids"`
}
