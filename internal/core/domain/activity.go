package domain

import "time"

// ActivityAction names what happened in an activity log entry.
type ActivityAction string

const (
	ActionCreate ActivityAction = "CREATE"
	ActionUpdate ActivityAction = "UPDATE"
	ActionDelete ActivityAction = "DELETE"
	ActionClose  ActivityAction = "CLOSE"
	ActionLogin  ActivityAction = "LOGIN"
)

// ActivityLog is one entry of the shop activity and notification feed.
type ActivityLog struct {
	ActivityID string         `json:"activityID"`
	ShopID     string         `json:"shopID"`
	UserID     string         `json:"userID"`
	Action     ActivityAction `json:"action"`
	EntityType string         `json:"entityType"`
	EntityID   string         `json:"entityID"`
	Message    string         `json:"message"`
	MessageEn  string         `json:"messageEn"`
	IsRead     bool           `json:"isRead"`
	CreatedAt  time.Time      `json:"createdAt"`
}
