package document

import (
	"io"
	"log"
	"path/filepath"
	"strconv"
	"strings"

	"propman-backend/internal/access"
	"propman-backend/internal/auth"
	"propman-backend/internal/config"
	"propman-backend/internal/database"
	"propman-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type DocumentResponse struct {
	ID                uint   `json:"id"`
	PropertyID        uint   `json:"property_id"`
	RentalAgreementID *uint  `json:"rental_agreement_id,omitempty"`
	Title             string `json:"title"`
	Description       string `json:"description"`
	FileName          string `json:"file_name"`
	FileSize          int64  `json:"file_size"`
	FileType          string `json:"file_type"`
	DocumentType      string `json:"document_type"`
	IsVerified        bool   `json:"is_verified"`
	FileURL           string `json:"file_url"`
	CreatedAt         string `json:"created_at"`
}

func toResponse(d *models.Document) DocumentResponse {
	return DocumentResponse{
		ID:                d.ID,
		PropertyID:        d.PropertyID,
		RentalAgreementID: d.RentalAgreementID,
		Title:             d.Title,
		Description:       d.Description,
		FileName:          d.FileName,
		FileSize:          d.FileSize,
		FileType:          d.FileType,
		DocumentType:      d.DocumentType,
		IsVerified:        d.IsVerified,
		FileURL:           "/uploads/" + filepath.Base(d.FilePath),
		CreatedAt:         d.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

func allowedExtension(cfg *config.Config, ext string) bool {
	for _, allowed := range cfg.AllowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

func findDocument(c *fiber.Ctx) (*models.Document, error) {
	id, err := c.ParamsInt("id")
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid document id")
	}

	var doc models.Document
	if err := database.DB.First(&doc, "id = ?", id).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Document not found")
	}

	p := auth.PrincipalFromCtx(c)
	if _, err := access.RequireProperty(database.DB, p, doc.PropertyID); err != nil {
		return nil, err
	}
	return &doc, nil
}

// GET /api/v1/documents
func ListDocumentsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := auth.PrincipalFromCtx(c)

		query := database.DB.Model(&models.Document{})

		if raw := c.Query("property_id"); raw != "" {
			propertyID, err := strconv.Atoi(raw)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Invalid property_id")
			}
			if _, err := access.RequireProperty(database.DB, p, uint(propertyID)); err != nil {
				return err
			}
			query = query.Where("property_id = ?", propertyID)
		} else {
			var err error
			query, err = access.ScopeToOwner(database.DB, p, query)
			if err != nil {
				return err
			}
		}

		var docs []models.Document
		if err := query.Order("created_at DESC").Find(&docs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list documents")
		}

		res := make([]DocumentResponse, 0, len(docs))
		for i := range docs {
			res = append(res, toResponse(&docs[i]))
		}
		return c.JSON(res)
	}
}

// POST /api/v1/documents/upload
//
// Multipart form: property_id, document_type, title, description?,
// rental_agreement_id?, file. The stored name is a fresh uuid plus the
// original extension, the client filename only survives as display
// metadata. Size is checked twice: against the declared multipart size
// before reading and against the bytes actually read.
func UploadDocumentHandler(cfg *config.Config, store *Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := auth.PrincipalFromCtx(c)

		propertyID, err := strconv.Atoi(c.FormValue("property_id"))
		if err != nil || propertyID <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "property_id is required")
		}
		title := strings.TrimSpace(c.FormValue("title"))
		documentType := strings.TrimSpace(c.FormValue("document_type"))
		if title == "" || documentType == "" {
			return fiber.NewError(fiber.StatusBadRequest, "title and document_type are required")
		}

		if _, err := access.RequireProperty(database.DB, p, uint(propertyID)); err != nil {
			return err
		}

		fileHeader, err := c.FormFile("file")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "file is required")
		}

		ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
		if !allowedExtension(cfg, ext) {
			return fiber.NewError(fiber.StatusBadRequest,
				"File type not allowed. Allowed types: "+strings.Join(cfg.AllowedExtensions, ", "))
		}

		if fileHeader.Size > cfg.MaxFileSize {
			return fiber.NewError(fiber.StatusBadRequest,
				"File too large. Maximum size: "+strconv.FormatInt(cfg.MaxFileSize/(1024*1024), 10)+"MB")
		}

		src, err := fileHeader.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Could not read uploaded file")
		}
		defer src.Close()

		data, err := io.ReadAll(src)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Could not read uploaded file")
		}
		// The declared size is client input, re-check what actually arrived.
		if int64(len(data)) > cfg.MaxFileSize {
			return fiber.NewError(fiber.StatusBadRequest,
				"File too large. Maximum size: "+strconv.FormatInt(cfg.MaxFileSize/(1024*1024), 10)+"MB")
		}

		storageName := uuid.NewString() + ext
		path, err := store.Save(storageName, data)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not store file")
		}

		doc := models.Document{
			PropertyID:   uint(propertyID),
			Title:        title,
			Description:  c.FormValue("description"),
			FileName:     fileHeader.Filename,
			FilePath:     path,
			FileSize:     int64(len(data)),
			FileType:     fileHeader.Header.Get("Content-Type"),
			DocumentType: documentType,
		}

		if raw := c.FormValue("rental_agreement_id"); raw != "" {
			agreementID, err := strconv.Atoi(raw)
			if err != nil || agreementID <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Invalid rental_agreement_id")
			}
			id := uint(agreementID)
			doc.RentalAgreementID = &id
		}

		if err := database.DB.Create(&doc).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create document")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message":  "Document uploaded successfully",
			"document": toResponse(&doc),
		})
	}
}

// GET /api/v1/documents/:id
func GetDocumentHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		doc, err := findDocument(c)
		if err != nil {
			return err
		}
		return c.JSON(toResponse(doc))
	}
}

// DELETE /api/v1/documents/:id
func DeleteDocumentHandler(store *Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		doc, err := findDocument(c)
		if err != nil {
			return err
		}

		// Best effort: a blob that cannot be removed does not block the
		// delete, the row is authoritative.
		if err := store.Remove(doc.FilePath); err != nil {
			log.Printf("could not remove file %s: %v", doc.FilePath, err)
		}

		if err := database.DB.Delete(doc).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete document")
		}

		return c.JSON(fiber.Map{"message": "Document deleted successfully"})
	}
}
