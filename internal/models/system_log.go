package models

import (
	"time"

	"gorm.io/datatypes"
)

// SystemLog stores WARN-and-above log records for later inspection.
type SystemLog struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Timestamp time.Time      `gorm:"not null;index" json:"timestamp"`
	Level     string         `gorm:"size:10;not null;index" json:"level"`
	Message   string         `gorm:"type:text" json:"message"`
	RequestID string         `gorm:"size:36;index" json:"request_id"`
	UserEmail *string        `gorm:"size:120" json:"user_email"`
	Action    string         `gorm:"size:100" json:"action"`
	Error     string         `gorm:"type:text" json:"error"`
	LatencyMs int            `json:"latency_ms"`
	Extra     datatypes.JSON `gorm:"default:'{}'" json:"extra"`
	CreatedAt time.Time      `json:"created_at"`
}
