package mapping

import (
	"github.com/hossamSharif/shop_ledger/internal/core/domain"
	"github.com/hossamSharif/shop_ledger/internal/models"
)

// ToModelActivityLog converts a domain ActivityLog to a model ActivityLog
func ToModelActivityLog(d domain.ActivityLog) models.ActivityLog {
	return models.ActivityLog{
		ActivityID: d.ActivityID,
		ShopID:     nullString(d.ShopID),
		UserID:     d.UserID,
		Action:     string(d.Action),
		EntityType: d.EntityType,
		EntityID:   d.EntityID,
		Message:    d.Message,
		MessageEn:  d.MessageEn,
		IsRead:     d.IsRead,
		CreatedAt:  d.CreatedAt,
	}
}

// ToDomainActivityLog converts a model ActivityLog to a domain ActivityLog
func ToDomainActivityLog(m models.ActivityLog) domain.ActivityLog {
	return domain.ActivityLog{
		ActivityID: m.ActivityID,
		ShopID:     m.ShopID.String,
		UserID:     m.UserID,
		Action:     domain.ActivityAction(m.Action),
		EntityType: m.EntityType,
		EntityID:   m.EntityID,
		Message:    m.Message,
		MessageEn:  m.MessageEn,
		IsRead:     m.IsRead,
		CreatedAt:  m.CreatedAt,
	}
}
