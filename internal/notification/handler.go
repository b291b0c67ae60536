package notification

import (
	"time"

	"propman-backend/internal/auth"
	"propman-backend/internal/database"
	"propman-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type NotificationResponse struct {
	ID               uint   `json:"id"`
	Title            string `json:"title"`
	Message          string `json:"message"`
	NotificationType string `json:"notification_type"`
	Status           string `json:"status"`
	EmailSent        bool   `json:"email_sent"`
	SMSSent          bool   `json:"sms_sent"`
	PushSent         bool   `json:"push_sent"`
	ScheduledAt      string `json:"scheduled_at,omitempty"`
	SentAt           string `json:"sent_at,omitempty"`
	ReadAt           string `json:"read_at,omitempty"`
	CreatedAt        string `json:"created_at"`
}

func toResponse(n *models.Notification) NotificationResponse {
	res := NotificationResponse{
		ID:               n.ID,
		Title:            n.Title,
		Message:          n.Message,
		NotificationType: string(n.NotificationType),
		Status:           string(n.Status),
		EmailSent:        n.EmailSent,
		SMSSent:          n.SMSSent,
		PushSent:         n.PushSent,
		CreatedAt:        n.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if n.ScheduledAt != nil {
		res.ScheduledAt = n.ScheduledAt.Format("2006-01-02 15:04:05")
	}
	if n.SentAt != nil {
		res.SentAt = n.SentAt.Format("2006-01-02 15:04:05")
	}
	if n.ReadAt != nil {
		res.ReadAt = n.ReadAt.Format("2006-01-02 15:04:05")
	}
	return res
}

// GET /api/v1/notifications
func ListNotificationsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := auth.PrincipalFromCtx(c)

		var notifications []models.Notification
		if err := database.DB.
			Where("user_id = ?", p.UserID).
			Order("created_at DESC").
			Find(&notifications).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list notifications")
		}

		res := make([]NotificationResponse, 0, len(notifications))
		for i := range notifications {
			res = append(res, toResponse(&notifications[i]))
		}
		return c.JSON(res)
	}
}

// GET /api/v1/notifications/unread
func UnreadCountHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := auth.PrincipalFromCtx(c)

		var count int64
		if err := database.DB.Model(&models.Notification{}).
			Where("user_id = ? AND status = ?", p.UserID, models.NotificationPending).
			Count(&count).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not count notifications")
		}

		return c.JSON(fiber.Map{"unread_count": count})
	}
}

// POST /api/v1/notifications/:id/read
func MarkReadHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := auth.PrincipalFromCtx(c)

		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid notification id")
		}

		var notification models.Notification
		if err := database.DB.
			First(&notification, "id = ? AND user_id = ?", id, p.UserID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Notification not found")
		}

		now := time.Now()
		notification.Status = models.NotificationRead
		notification.ReadAt = &now

		if err := database.DB.Save(&notification).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update notification")
		}

		return c.JSON(fiber.Map{"message": "Notification marked as read"})
	}
}

// POST /api/v1/notifications/mark-all-read
func MarkAllReadHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := auth.PrincipalFromCtx(c)

		now := time.Now()
		if err := database.DB.Model(&models.Notification{}).
			Where("user_id = ? AND status = ?", p.UserID, models.NotificationPending).
			Updates(map[string]interface{}{
				"status":  models.NotificationRead,
				"read_at": now,
			}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update notifications")
		}

		return c.JSON(fiber.Map{"message": "All notifications marked as read"})
	}
}

// DELETE /api/v1/notifications/:id
func DeleteNotificationHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := auth.PrincipalFromCtx(c)

		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid notification id")
		}

		var notification models.Notification
		if err := database.DB.
			First(&notification, "id = ? AND user_id = ?", id, p.UserID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Notification not found")
		}

		if err := database.DB.Delete(&notification).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete notification")
		}

		return c.JSON(fiber.Map{"message": "Notification deleted successfully"})
	}
}
