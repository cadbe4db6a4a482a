package models

import (
	"database/sql"
	"time"
)

// ActivityLog is one row of the activity feed.
type ActivityLog struct {
	ActivityID string         `db:"activity_id"`
	ShopID     sql.NullString `db:"shop_id"`
	UserID     string         `db:"user_id"`
	Action     string         `db:"action"`
	EntityType string         `db:"entity_type"`
	EntityID   string         `db:"entity_id"`
	Message    string         `db:"message"`
	MessageEn  string         `db:"message_en"`
	IsRead     bool           `db:"is_read"`
	CreatedAt  time.Time      `db:"created_at"`
}
