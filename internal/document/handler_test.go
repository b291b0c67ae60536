package document

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"propman-backend/internal/auth"
	"propman-backend/internal/config"
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

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		UploadDir:         t.TempDir(),
		MaxFileSize:       10 * 1024 * 1024,
		AllowedExtensions: []string{".pdf", ".jpg", ".jpeg", ".png", ".doc", ".docx"},
	}
}

func testApp(cfg *config.Config, store *Store, p auth.Principal) *fiber.App {
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
	app.Get("/documents", ListDocumentsHandler())
	app.Post("/documents/upload", UploadDocumentHandler(cfg, store))
	app.Get("/documents/:id", GetDocumentHandler())
	app.Delete("/documents/:id", DeleteDocumentHandler(store))
	return app
}

func seedProperty(t *testing.T, db *gorm.DB, ownerID uint) *models.Property {
	prop := &models.Property{
		OwnerID: ownerID,
		Title:   "Oak Duplex",
		Address: "3 Oak Ln",
		City:    "Austin",
		State:   "TX",
		ZipCode: "78701",
	}
	require.NoError(t, db.Create(prop).Error)
	return prop
}

func uploadRequest(t *testing.T, propertyID uint, filename string, content []byte) *http.Request {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("property_id", strconv.Itoa(int(propertyID))))
	require.NoError(t, w.WriteField("document_type", "lease_agreement"))
	require.NoError(t, w.WriteField("title", "Signed lease"))
	fw, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/documents/upload", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestUploadStoresBlobAndRow(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig(t)
	store := NewStore(cfg.UploadDir)
	prop := seedProperty(t, db, 1)
	app := testApp(cfg, store, auth.Principal{UserID: 1, Role: models.RoleOwner})

	resp, err := app.Test(uploadRequest(t, prop.ID, "lease.pdf", []byte("%PDF-1.4 fake")))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var doc models.Document
	require.NoError(t, db.First(&doc, "property_id = ?", prop.ID).Error)
	assert.Equal(t, "lease.pdf", doc.FileName)
	assert.Equal(t, int64(len("%PDF-1.4 fake")), doc.FileSize)
	// Storage name is generated, never the client filename
	assert.NotEqual(t, "lease.pdf", filepath.Base(doc.FilePath))
	assert.Equal(t, ".pdf", filepath.Ext(doc.FilePath))

	data, err := os.ReadFile(doc.FilePath)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4 fake"), data)
}

func TestUploadRejectsDisallowedExtension(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig(t)
	store := NewStore(cfg.UploadDir)
	prop := seedProperty(t, db, 1)
	app := testApp(cfg, store, auth.Principal{UserID: 1, Role: models.RoleOwner})

	resp, err := app.Test(uploadRequest(t, prop.ID, "malware.exe", []byte("MZ")))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestUploadAcceptsUppercaseExtension(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig(t)
	store := NewStore(cfg.UploadDir)
	prop := seedProperty(t, db, 1)
	app := testApp(cfg, store, auth.Principal{UserID: 1, Role: models.RoleOwner})

	resp, err := app.Test(uploadRequest(t, prop.ID, "LEASE.PDF", []byte("%PDF-1.4")))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
}

func TestUploadRejectsOversizedFile(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig(t)
	cfg.MaxFileSize = 8
	store := NewStore(cfg.UploadDir)
	prop := seedProperty(t, db, 1)
	app := testApp(cfg, store, auth.Principal{UserID: 1, Role: models.RoleOwner})

	resp, err := app.Test(uploadRequest(t, prop.ID, "big.pdf", bytes.Repeat([]byte("x"), 64)))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var count int64
	db.Model(&models.Document{}).Count(&count)
	assert.Zero(t, count)
}

func TestUploadForbiddenOnForeignProperty(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig(t)
	store := NewStore(cfg.UploadDir)
	prop := seedProperty(t, db, 1)
	app := testApp(cfg, store, auth.Principal{UserID: 2, Role: models.RoleOwner})

	resp, err := app.Test(uploadRequest(t, prop.ID, "lease.pdf", []byte("%PDF-1.4")))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestDeleteRemovesBlobAndRow(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig(t)
	store := NewStore(cfg.UploadDir)
	prop := seedProperty(t, db, 1)
	app := testApp(cfg, store, auth.Principal{UserID: 1, Role: models.RoleOwner})

	path, err := store.Save("abc123.pdf", []byte("%PDF-1.4"))
	require.NoError(t, err)
	doc := models.Document{
		PropertyID: prop.ID,
		Title:      "Signed lease",
		FileName:   "lease.pdf",
		FilePath:   path,
	}
	require.NoError(t, db.Create(&doc).Error)

	req := httptest.NewRequest("DELETE", "/documents/"+strconv.Itoa(int(doc.ID)), nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var count int64
	db.Model(&models.Document{}).Count(&count)
	assert.Zero(t, count)
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestDeleteSucceedsWhenBlobAlreadyGone(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig(t)
	store := NewStore(cfg.UploadDir)
	prop := seedProperty(t, db, 1)
	app := testApp(cfg, store, auth.Principal{UserID: 1, Role: models.RoleOwner})

	doc := models.Document{
		PropertyID: prop.ID,
		Title:      "Signed lease",
		FileName:   "lease.pdf",
		FilePath:   filepath.Join(cfg.UploadDir, "never-written.pdf"),
	}
	require.NoError(t, db.Create(&doc).Error)

	req := httptest.NewRequest("DELETE", "/documents/"+strconv.Itoa(int(doc.ID)), nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var count int64
	db.Model(&models.Document{}).Count(&count)
	assert.Zero(t, count)
}

func TestListDocumentsScoped(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig(t)
	store := NewStore(cfg.UploadDir)
	mine := seedProperty(t, db, 1)
	theirs := seedProperty(t, db, 2)

	for _, prop := range []*models.Property{mine, theirs} {
		require.NoError(t, db.Create(&models.Document{
			PropertyID: prop.ID,
			Title:      "Doc",
			FileName:   "doc.pdf",
			FilePath:   filepath.Join(cfg.UploadDir, "x.pdf"),
		}).Error)
	}

	app := testApp(cfg, store, auth.Principal{UserID: 1, Role: models.RoleOwner})
	req := httptest.NewRequest("GET", "/documents", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var docs []DocumentResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&docs))
	require.Len(t, docs, 1)
	assert.Equal(t, mine.ID, docs[0].PropertyID)

	// Asking for someone else's property directly is a 403
	req = httptest.NewRequest("GET", "/documents?property_id="+strconv.Itoa(int(theirs.ID)), nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
