package tenant

import (
	"strings"
	"time"

	"propman-backend/internal/access"
	"propman-backend/internal/auth"
	"propman-backend/internal/database"
	"propman-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type TenantResponse struct {
	ID                           uint   `json:"id"`
	PropertyID                   uint   `json:"property_id"`
	FirstName                    string `json:"first_name"`
	LastName                     string `json:"last_name"`
	Email                        string `json:"email"`
	Phone                        string `json:"phone"`
	DateOfBirth                  string `json:"date_of_birth,omitempty"`
	EmergencyContactName         string `json:"emergency_contact_name"`
	EmergencyContactPhone        string `json:"emergency_contact_phone"`
	EmergencyContactRelationship string `json:"emergency_contact_relationship"`
	Employer                     string `json:"employer"`
	JobTitle                     string `json:"job_title"`
	MonthlyIncome                int    `json:"monthly_income"`
	IsActive                     bool   `json:"is_active"`
	CreatedAt                    string `json:"created_at"`
	UpdatedAt                    string `json:"updated_at"`
}

type CreateTenantRequest struct {
	PropertyID                   uint   `json:"property_id"`
	FirstName                    string `json:"first_name"`
	LastName                     string `json:"last_name"`
	Email                        string `json:"email"`
	Phone                        string `json:"phone"`
	DateOfBirth                  string `json:"date_of_birth"` // "2006-01-02"
	EmergencyContactName         string `json:"emergency_contact_name"`
	EmergencyContactPhone        string `json:"emergency_contact_phone"`
	EmergencyContactRelationship string `json:"emergency_contact_relationship"`
	Employer                     string `json:"employer"`
	JobTitle                     string `json:"job_title"`
	MonthlyIncome                int    `json:"monthly_income"`
}

type UpdateTenantRequest struct {
	FirstName                    *string `json:"first_name"`
	LastName                     *string `json:"last_name"`
	Email                        *string `json:"email"`
	Phone                        *string `json:"phone"`
	DateOfBirth                  *string `json:"date_of_birth"`
	EmergencyContactName         *string `json:"emergency_contact_name"`
	EmergencyContactPhone        *string `json:"emergency_contact_phone"`
	EmergencyContactRelationship *string `json:"emergency_contact_relationship"`
	Employer                     *string `json:"employer"`
	JobTitle                     *string `json:"job_title"`
	MonthlyIncome                *int    `json:"monthly_income"`
	IsActive                     *bool   `json:"is_active"`
}

func toResponse(t *models.Tenant) TenantResponse {
	res := TenantResponse{
		ID:                           t.ID,
		PropertyID:                   t.PropertyID,
		FirstName:                    t.FirstName,
		LastName:                     t.LastName,
		Email:                        t.Email,
		Phone:                        t.Phone,
		EmergencyContactName:         t.EmergencyContactName,
		EmergencyContactPhone:        t.EmergencyContactPhone,
		EmergencyContactRelationship: t.EmergencyContactRelationship,
		Employer:                     t.Employer,
		JobTitle:                     t.JobTitle,
		MonthlyIncome:                t.MonthlyIncome,
		IsActive:                     t.IsActive,
		CreatedAt:                    t.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:                    t.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
	if t.DateOfBirth != nil {
		res.DateOfBirth = t.DateOfBirth.Format("2006-01-02")
	}
	return res
}

// findTenant loads the tenant and checks access through its owning
// property. The tenant 404 comes before any permission answer.
func findTenant(c *fiber.Ctx) (*models.Tenant, error) {
	id, err := c.ParamsInt("id")
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid tenant id")
	}

	var tenant models.Tenant
	if err := database.DB.First(&tenant, "id = ?", id).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Tenant not found")
	}

	p := auth.PrincipalFromCtx(c)
	if _, err := access.RequireProperty(database.DB, p, tenant.PropertyID); err != nil {
		return nil, err
	}
	return &tenant, nil
}

// GET /api/v1/tenants
func ListTenantsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := auth.PrincipalFromCtx(c)

		query, err := access.ScopeToOwner(database.DB, p, database.DB.Model(&models.Tenant{}))
		if err != nil {
			return err
		}

		var tenants []models.Tenant
		if err := query.Order("created_at DESC").Find(&tenants).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list tenants")
		}

		res := make([]TenantResponse, 0, len(tenants))
		for i := range tenants {
			res = append(res, toResponse(&tenants[i]))
		}
		return c.JSON(res)
	}
}

// POST /api/v1/tenants
func CreateTenantHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := auth.PrincipalFromCtx(c)

		var body CreateTenantRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.FirstName = strings.TrimSpace(body.FirstName)
		body.LastName = strings.TrimSpace(body.LastName)
		body.Email = strings.TrimSpace(strings.ToLower(body.Email))
		body.Phone = strings.TrimSpace(body.Phone)
		if body.PropertyID == 0 || body.FirstName == "" || body.LastName == "" || body.Email == "" || body.Phone == "" {
			return fiber.NewError(fiber.StatusBadRequest, "property_id, first_name, last_name, email and phone are required")
		}

		if _, err := access.RequireProperty(database.DB, p, body.PropertyID); err != nil {
			return err
		}

		tenant := models.Tenant{
			PropertyID:                   body.PropertyID,
			FirstName:                    body.FirstName,
			LastName:                     body.LastName,
			Email:                        body.Email,
			Phone:                        body.Phone,
			EmergencyContactName:         body.EmergencyContactName,
			EmergencyContactPhone:        body.EmergencyContactPhone,
			EmergencyContactRelationship: body.EmergencyContactRelationship,
			Employer:                     body.Employer,
			JobTitle:                     body.JobTitle,
			MonthlyIncome:                body.MonthlyIncome,
			IsActive:                     true,
		}

		if body.DateOfBirth != "" {
			dob, err := time.Parse("2006-01-02", body.DateOfBirth)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "date_of_birth must be 'YYYY-MM-DD'")
			}
			tenant.DateOfBirth = &dob
		}

		if err := database.DB.Create(&tenant).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create tenant")
		}

		return c.Status(fiber.StatusCreated).JSON(toResponse(&tenant))
	}
}

// GET /api/v1/tenants/:id
func GetTenantHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tenant, err := findTenant(c)
		if err != nil {
			return err
		}
		return c.JSON(toResponse(tenant))
	}
}

// PUT /api/v1/tenants/:id
func UpdateTenantHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tenant, err := findTenant(c)
		if err != nil {
			return err
		}

		var body UpdateTenantRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.FirstName != nil {
			tenant.FirstName = strings.TrimSpace(*body.FirstName)
		}
		if body.LastName != nil {
			tenant.LastName = strings.TrimSpace(*body.LastName)
		}
		if body.Email != nil {
			tenant.Email = strings.TrimSpace(strings.ToLower(*body.Email))
		}
		if body.Phone != nil {
			tenant.Phone = strings.TrimSpace(*body.Phone)
		}
		if body.DateOfBirth != nil {
			dob, err := time.Parse("2006-01-02", *body.DateOfBirth)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "date_of_birth must be 'YYYY-MM-DD'")
			}
			tenant.DateOfBirth = &dob
		}
		if body.EmergencyContactName != nil {
			tenant.EmergencyContactName = *body.EmergencyContactName
		}
		if body.EmergencyContactPhone != nil {
			tenant.EmergencyContactPhone = *body.EmergencyContactPhone
		}
		if body.EmergencyContactRelationship != nil {
			tenant.EmergencyContactRelationship = *body.EmergencyContactRelationship
		}
		if body.Employer != nil {
			tenant.Employer = *body.Employer
		}
		if body.JobTitle != nil {
			tenant.JobTitle = *body.JobTitle
		}
		if body.MonthlyIncome != nil {
			tenant.MonthlyIncome = *body.MonthlyIncome
		}
		if body.IsActive != nil {
			tenant.IsActive = *body.IsActive
		}

		if err := database.DB.Save(tenant).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update tenant")
		}

		return c.JSON(toResponse(tenant))
	}
}

// DELETE /api/v1/tenants/:id
func DeleteTenantHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tenant, err := findTenant(c)
		if err != nil {
			return err
		}

		if err := database.DB.Delete(tenant).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete tenant")
		}

		return c.JSON(fiber.Map{"message": "Tenant deleted successfully"})
	}
}
