package models

import (
	"time"

	"gorm.io/datatypes"
)

// AuditLog records destructive operations (deletes, wipes) with a JSON
// snapshot of what was removed. Best-effort: a failed audit write never
// blocks the operation it describes.
type AuditLog struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Action    string         `json:"action" gorm:"type:varchar(30)"` // "delete" | "wipe"
	Entity    string         `json:"entity" gorm:"type:varchar(30)"` // "inventory", "sales", ...
	EntityId  string         `json:"entity_id"`
	Actor     string         `json:"actor"` // user id from the JWT subject
	Details   datatypes.JSON `json:"details" gorm:"type:jsonb"`
	CreatedAt time.Time      `json:"created_at"`
}
