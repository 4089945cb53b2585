package messaging

import (
	"context"

	"github.com/1Kunalvats9/chatx/internal/models"
	"gorm.io/gorm"
)

// NotificationEmitter accepts fire-and-forget notification records. A send
// emits exactly one MESSAGE notification after the message is durable;
// emission failure never rolls the message back.
type NotificationEmitter interface {
	Emit(ctx context.Context, fromID, toID string, notifType models.NotificationType) error
}

// GormNotificationEmitter persists notifications to the primary database
// for the inbox endpoints to serve.
type GormNotificationEmitter struct {
	db *gorm.DB
}

func NewGormNotificationEmitter(db *gorm.DB) *GormNotificationEmitter {
	return &GormNotificationEmitter{db: db}
}

func (e *GormNotificationEmitter) Emit(ctx context.Context, fromID, toID string, notifType models.NotificationType) error {
	notification := models.Notification{
		UserID:  toID,
		ActorID: fromID,
		Type:    notifType,
	}
	return e.db.WithContext(ctx).Create(&notification).Error
}
