package property

import (
	"strings"

	"propman-backend/internal/access"
	"propman-backend/internal/auth"
	"propman-backend/internal/database"
	"propman-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type PropertyResponse struct {
	ID                uint    `json:"id"`
	OwnerID           uint    `json:"owner_id"`
	Title             string  `json:"title"`
	Description       string  `json:"description"`
	Address           string  `json:"address"`
	City              string  `json:"city"`
	State             string  `json:"state"`
	ZipCode           string  `json:"zip_code"`
	Country           string  `json:"country"`
	PropertyType      string  `json:"property_type"`
	Bedrooms          int     `json:"bedrooms"`
	Bathrooms         float64 `json:"bathrooms"`
	SquareFeet        float64 `json:"square_feet"`
	YearBuilt         int     `json:"year_built"`
	MonthlyRent       float64 `json:"monthly_rent"`
	SecurityDeposit   float64 `json:"security_deposit"`
	UtilitiesIncluded bool    `json:"utilities_included"`
	IsAvailable       bool    `json:"is_available"`
	IsActive          bool    `json:"is_active"`
	CreatedAt         string  `json:"created_at"`
	UpdatedAt         string  `json:"updated_at"`
}

// EmbeddedTenantRequest lets a landlord register the sitting tenant in the
// same call that creates the property.
type EmbeddedTenantRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Employer  string `json:"employer"`
	JobTitle  string `json:"job_title"`
}

type CreatePropertyRequest struct {
	Title             string                 `json:"title"`
	Description       string                 `json:"description"`
	Address           string                 `json:"address"`
	City              string                 `json:"city"`
	State             string                 `json:"state"`
	ZipCode           string                 `json:"zip_code"`
	Country           string                 `json:"country"`
	PropertyType      string                 `json:"property_type"`
	Bedrooms          int                    `json:"bedrooms"`
	Bathrooms         float64                `json:"bathrooms"`
	SquareFeet        float64                `json:"square_feet"`
	YearBuilt         int                    `json:"year_built"`
	MonthlyRent       float64                `json:"monthly_rent"`
	SecurityDeposit   float64                `json:"security_deposit"`
	UtilitiesIncluded bool                   `json:"utilities_included"`
	Tenant            *EmbeddedTenantRequest `json:"tenant"`
}

type UpdatePropertyRequest struct {
	Title             *string  `json:"title"`
	Description       *string  `json:"description"`
	Address           *string  `json:"address"`
	City              *string  `json:"city"`
	State             *string  `json:"state"`
	ZipCode           *string  `json:"zip_code"`
	Country           *string  `json:"country"`
	PropertyType      *string  `json:"property_type"`
	Bedrooms          *int     `json:"bedrooms"`
	Bathrooms         *float64 `json:"bathrooms"`
	SquareFeet        *float64 `json:"square_feet"`
	YearBuilt         *int     `json:"year_built"`
	MonthlyRent       *float64 `json:"monthly_rent"`
	SecurityDeposit   *float64 `json:"security_deposit"`
	UtilitiesIncluded *bool    `json:"utilities_included"`
	IsAvailable       *bool    `json:"is_available"`
	IsActive          *bool    `json:"is_active"`
}

func toResponse(p *models.Property) PropertyResponse {
	return PropertyResponse{
		ID:                p.ID,
		OwnerID:           p.OwnerID,
		Title:             p.Title,
		Description:       p.Description,
		Address:           p.Address,
		City:              p.City,
		State:             p.State,
		ZipCode:           p.ZipCode,
		Country:           p.Country,
		PropertyType:      p.PropertyType,
		Bedrooms:          p.Bedrooms,
		Bathrooms:         p.Bathrooms,
		SquareFeet:        p.SquareFeet,
		YearBuilt:         p.YearBuilt,
		MonthlyRent:       p.MonthlyRent,
		SecurityDeposit:   p.SecurityDeposit,
		UtilitiesIncluded: p.UtilitiesIncluded,
		IsAvailable:       p.IsAvailable,
		IsActive:          p.IsActive,
		CreatedAt:         p.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:         p.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

// GET /api/v1/properties
func ListPropertiesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := auth.PrincipalFromCtx(c)

		query := database.DB.Model(&models.Property{})
		if !p.IsAdmin() {
			query = query.Where("owner_id = ?", p.UserID)
		}

		var properties []models.Property
		if err := query.Order("created_at DESC").Find(&properties).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list properties")
		}

		res := make([]PropertyResponse, 0, len(properties))
		for i := range properties {
			res = append(res, toResponse(&properties[i]))
		}
		return c.JSON(res)
	}
}

// POST /api/v1/properties
//
// The optional embedded tenant is created in the same transaction as the
// property, so a failed tenant insert never leaves an orphan property.
func CreatePropertyHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := auth.PrincipalFromCtx(c)

		var body CreatePropertyRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Title = strings.TrimSpace(body.Title)
		if body.Title == "" || body.Address == "" || body.City == "" || body.State == "" || body.ZipCode == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Title, address, city, state and zip_code are required")
		}
		if body.Country == "" {
			body.Country = "USA"
		}

		prop := models.Property{
			OwnerID:           p.UserID,
			Title:             body.Title,
			Description:       body.Description,
			Address:           body.Address,
			City:              body.City,
			State:             body.State,
			ZipCode:           body.ZipCode,
			Country:           body.Country,
			PropertyType:      body.PropertyType,
			Bedrooms:          body.Bedrooms,
			Bathrooms:         body.Bathrooms,
			SquareFeet:        body.SquareFeet,
			YearBuilt:         body.YearBuilt,
			MonthlyRent:       body.MonthlyRent,
			SecurityDeposit:   body.SecurityDeposit,
			UtilitiesIncluded: body.UtilitiesIncluded,
			IsAvailable:       true,
			IsActive:          true,
		}

		err := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&prop).Error; err != nil {
				return err
			}
			if body.Tenant == nil {
				return nil
			}
			tenant := models.Tenant{
				PropertyID: prop.ID,
				FirstName:  strings.TrimSpace(body.Tenant.FirstName),
				LastName:   strings.TrimSpace(body.Tenant.LastName),
				Email:      strings.TrimSpace(strings.ToLower(body.Tenant.Email)),
				Phone:      strings.TrimSpace(body.Tenant.Phone),
				Employer:   body.Tenant.Employer,
				JobTitle:   body.Tenant.JobTitle,
				IsActive:   true,
			}
			return tx.Create(&tenant).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create property")
		}

		return c.Status(fiber.StatusCreated).JSON(toResponse(&prop))
	}
}

// GET /api/v1/properties/:id
func GetPropertyHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := auth.PrincipalFromCtx(c)

		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid property id")
		}

		prop, err := access.RequireProperty(database.DB, p, uint(id))
		if err != nil {
			return err
		}
		return c.JSON(toResponse(prop))
	}
}

// PUT /api/v1/properties/:id
func UpdatePropertyHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := auth.PrincipalFromCtx(c)

		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid property id")
		}

		prop, err := access.RequireProperty(database.DB, p, uint(id))
		if err != nil {
			return err
		}

		var body UpdatePropertyRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.Title != nil {
			title := strings.TrimSpace(*body.Title)
			if title == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Title cannot be empty")
			}
			prop.Title = title
		}
		if body.Description != nil {
			prop.Description = *body.Description
		}
		if body.Address != nil {
			prop.Address = *body.Address
		}
		if body.City != nil {
			prop.City = *body.City
		}
		if body.State != nil {
			prop.State = *body.State
		}
		if body.ZipCode != nil {
			prop.ZipCode = *body.ZipCode
		}
		if body.Country != nil {
			prop.Country = *body.Country
		}
		if body.PropertyType != nil {
			prop.PropertyType = *body.PropertyType
		}
		if body.Bedrooms != nil {
			prop.Bedrooms = *body.Bedrooms
		}
		if body.Bathrooms != nil {
			prop.Bathrooms = *body.Bathrooms
		}
		if body.SquareFeet != nil {
			prop.SquareFeet = *body.SquareFeet
		}
		if body.YearBuilt != nil {
			prop.YearBuilt = *body.YearBuilt
		}
		if body.MonthlyRent != nil {
			prop.MonthlyRent = *body.MonthlyRent
		}
		if body.SecurityDeposit != nil {
			prop.SecurityDeposit = *body.SecurityDeposit
		}
		if body.UtilitiesIncluded != nil {
			prop.UtilitiesIncluded = *body.UtilitiesIncluded
		}
		if body.IsAvailable != nil {
			prop.IsAvailable = *body.IsAvailable
		}
		if body.IsActive != nil {
			prop.IsActive = *body.IsActive
		}

		if err := database.DB.Save(prop).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update property")
		}

		return c.JSON(toResponse(prop))
	}
}

// DELETE /api/v1/properties/:id
func DeletePropertyHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := auth.PrincipalFromCtx(c)

		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid property id")
		}

		prop, err := access.RequireProperty(database.DB, p, uint(id))
		if err != nil {
			return err
		}

		if err := database.DB.Delete(prop).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete property")
		}

		return c.JSON(fiber.Map{"message": "Property deleted successfully"})
	}
}
