package models

import "time"

// AuditLog records booking flow events. It is an operational trail, not a
// reservation store: the calendar remains the source of truth.
type AuditLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	SessionID string `gorm:"size:36;index" json:"session_id"`
	Action    string `gorm:"size:50;not null" json:"action"`

	Entity   string `gorm:"size:50" json:"entity"`
	EntityID string `gorm:"size:255" json:"entity_id"`
	Metadata string `gorm:"type:text" json:"metadata"`

	CreatedAt time.Time `json:"created_at"`
}
