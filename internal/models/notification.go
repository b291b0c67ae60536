package models

import "time"

type NotificationType string

const (
	NotificationRentExpiry  NotificationType = "rent_expiry"
	NotificationPaymentDue  NotificationType = "payment_due"
	NotificationMaintenance NotificationType = "maintenance"
	NotificationGeneral     NotificationType = "general"
)

type NotificationStatus string

const (
	NotificationPending NotificationStatus = "pending"
	NotificationSent    NotificationStatus = "sent"
	NotificationRead    NotificationStatus = "read"
	NotificationFailed  NotificationStatus = "failed"
)

type Notification struct {
	ID     uint `gorm:"primaryKey"`
	UserID uint `gorm:"index;not null"`
	User   User `gorm:"foreignKey:UserID"`

	Title            string             `gorm:"size:200;not null"`
	Message          string             `gorm:"size:2000;not null"`
	NotificationType NotificationType   `gorm:"size:30;not null"`
	Status           NotificationStatus `gorm:"size:20;default:pending"`

	// Delivery flags are recorded but nothing in this service sends.
	EmailSent bool `gorm:"default:false"`
	SMSSent   bool `gorm:"default:false"`
	PushSent  bool `gorm:"default:false"`

	ScheduledAt *time.Time
	SentAt      *time.Time
	ReadAt      *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
