package notification

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"propman-backend/internal/auth"
	"propman-backend/internal/database"
	"propman-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Use(db))
	return db
}

func testApp(p auth.Principal) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{"detail": e.Message})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": err.Error()})
		},
	})
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(auth.CtxUserIDKey, p.UserID)
		c.Locals(auth.CtxUserRoleKey, p.Role)
		return c.Next()
	})
	app.Get("/notifications", ListNotificationsHandler())
	app.Get("/notifications/unread", UnreadCountHandler())
	app.Post("/notifications/mark-all-read", MarkAllReadHandler())
	app.Post("/notifications/:id/read", MarkReadHandler())
	app.Delete("/notifications/:id", DeleteNotificationHandler())
	return app
}

func do(t *testing.T, app *fiber.App, method, target string) *http.Response {
	req := httptest.NewRequest(method, target, nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func seedNotification(t *testing.T, db *gorm.DB, userID uint, status models.NotificationStatus) *models.Notification {
	n := &models.Notification{
		UserID:           userID,
		Title:            "Lease ending soon",
		Message:          "The lease on Elm Cottage ends in 30 days.",
		NotificationType: models.NotificationRentExpiry,
		Status:           status,
	}
	require.NoError(t, db.Create(n).Error)
	return n
}

func TestListReturnsOnlyOwnNotifications(t *testing.T) {
	db := setupTestDB(t)
	seedNotification(t, db, 1, models.NotificationPending)
	seedNotification(t, db, 2, models.NotificationPending)

	app := testApp(auth.Principal{UserID: 1, Role: models.RoleOwner})
	resp := do(t, app, "GET", "/notifications")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var list []NotificationResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	assert.Len(t, list, 1)
}

func TestUnreadCountsPendingOnly(t *testing.T) {
	db := setupTestDB(t)
	seedNotification(t, db, 1, models.NotificationPending)
	seedNotification(t, db, 1, models.NotificationPending)
	seedNotification(t, db, 1, models.NotificationRead)
	seedNotification(t, db, 2, models.NotificationPending)

	app := testApp(auth.Principal{UserID: 1, Role: models.RoleOwner})
	resp := do(t, app, "GET", "/notifications/unread")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body map[string]int64
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, int64(2), body["unread_count"])
}

func TestMarkReadStampsReadAt(t *testing.T) {
	db := setupTestDB(t)
	n := seedNotification(t, db, 1, models.NotificationPending)

	app := testApp(auth.Principal{UserID: 1, Role: models.RoleOwner})
	resp := do(t, app, "POST", "/notifications/"+strconv.Itoa(int(n.ID))+"/read")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var got models.Notification
	require.NoError(t, db.First(&got, n.ID).Error)
	assert.Equal(t, models.NotificationRead, got.Status)
	assert.NotNil(t, got.ReadAt)
}

func TestMarkReadOnForeignNotificationIsNotFound(t *testing.T) {
	db := setupTestDB(t)
	n := seedNotification(t, db, 2, models.NotificationPending)

	app := testApp(auth.Principal{UserID: 1, Role: models.RoleOwner})
	resp := do(t, app, "POST", "/notifications/"+strconv.Itoa(int(n.ID))+"/read")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestMarkAllReadOnlyTouchesOwnPending(t *testing.T) {
	db := setupTestDB(t)
	seedNotification(t, db, 1, models.NotificationPending)
	seedNotification(t, db, 1, models.NotificationPending)
	sent := seedNotification(t, db, 1, models.NotificationSent)
	other := seedNotification(t, db, 2, models.NotificationPending)

	app := testApp(auth.Principal{UserID: 1, Role: models.RoleOwner})
	resp := do(t, app, "POST", "/notifications/mark-all-read")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var count int64
	db.Model(&models.Notification{}).
		Where("user_id = ? AND status = ?", 1, models.NotificationRead).
		Count(&count)
	assert.Equal(t, int64(2), count)

	var got models.Notification
	require.NoError(t, db.First(&got, sent.ID).Error)
	assert.Equal(t, models.NotificationSent, got.Status)

	got = models.Notification{}
	require.NoError(t, db.First(&got, other.ID).Error)
	assert.Equal(t, models.NotificationPending, got.Status)
}

func TestDeleteOwnNotification(t *testing.T) {
	db := setupTestDB(t)
	n := seedNotification(t, db, 1, models.NotificationPending)

	app := testApp(auth.Principal{UserID: 1, Role: models.RoleOwner})
	resp := do(t, app, "DELETE", "/notifications/"+strconv.Itoa(int(n.ID)))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var count int64
	db.Model(&models.Notification{}).Count(&count)
	assert.Zero(t, count)
}
