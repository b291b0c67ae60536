package agreement

import (
	"time"

	"propman-backend/internal/access"
	"propman-backend/internal/auth"
	"propman-backend/internal/config"
	"propman-backend/internal/database"
	"propman-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type AgreementResponse struct {
	ID                uint    `json:"id"`
	AgreementNumber   string  `json:"agreement_number"`
	PropertyID        uint    `json:"property_id"`
	TenantID          uint    `json:"tenant_id"`
	StartDate         string  `json:"start_date"`
	EndDate           string  `json:"end_date"`
	MonthlyRent       float64 `json:"monthly_rent"`
	SecurityDeposit   float64 `json:"security_deposit"`
	LeaseTerms        string  `json:"lease_terms"`
	UtilitiesIncluded bool    `json:"utilities_included"`
	PetPolicy         string  `json:"pet_policy"`
	Status            string  `json:"status"`
	IsActive          bool    `json:"is_active"`
	SignedAt          string  `json:"signed_at,omitempty"`
	CreatedAt         string  `json:"created_at"`
	UpdatedAt         string  `json:"updated_at"`
}

type CreateAgreementRequest struct {
	PropertyID        uint                    `json:"property_id"`
	TenantID          uint                    `json:"tenant_id"`
	StartDate         string                  `json:"start_date"` // "2006-01-02"
	EndDate           string                  `json:"end_date"`
	MonthlyRent       float64                 `json:"monthly_rent"`
	SecurityDeposit   float64                 `json:"security_deposit"`
	LeaseTerms        string                  `json:"lease_terms"`
	UtilitiesIncluded bool                    `json:"utilities_included"`
	PetPolicy         string                  `json:"pet_policy"`
	Status            *models.AgreementStatus `json:"status"`
}

type UpdateAgreementRequest struct {
	StartDate         *string                 `json:"start_date"`
	EndDate           *string                 `json:"end_date"`
	MonthlyRent       *float64                `json:"monthly_rent"`
	SecurityDeposit   *float64                `json:"security_deposit"`
	LeaseTerms        *string                 `json:"lease_terms"`
	UtilitiesIncluded *bool                   `json:"utilities_included"`
	PetPolicy         *string                 `json:"pet_policy"`
	Status            *models.AgreementStatus `json:"status"`
	IsActive          *bool                   `json:"is_active"`
}

func validStatus(s models.AgreementStatus) bool {
	switch s {
	case models.AgreementDraft, models.AgreementActive, models.AgreementExpired, models.AgreementTerminated:
		return true
	}
	return false
}

func toResponse(a *models.RentalAgreement) AgreementResponse {
	res := AgreementResponse{
		ID:                a.ID,
		AgreementNumber:   a.AgreementNumber,
		PropertyID:        a.PropertyID,
		TenantID:          a.TenantID,
		StartDate:         a.StartDate.Format("2006-01-02"),
		EndDate:           a.EndDate.Format("2006-01-02"),
		MonthlyRent:       a.MonthlyRent,
		SecurityDeposit:   a.SecurityDeposit,
		LeaseTerms:        a.LeaseTerms,
		UtilitiesIncluded: a.UtilitiesIncluded,
		PetPolicy:         a.PetPolicy,
		Status:            string(a.Status),
		IsActive:          a.IsActive,
		CreatedAt:         a.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:         a.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
	if a.SignedAt != nil {
		res.SignedAt = a.SignedAt.Format("2006-01-02 15:04:05")
	}
	return res
}

func findAgreement(c *fiber.Ctx) (*models.RentalAgreement, error) {
	id, err := c.ParamsInt("id")
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid agreement id")
	}

	var agreement models.RentalAgreement
	if err := database.DB.First(&agreement, "id = ?", id).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Rental agreement not found")
	}

	p := auth.PrincipalFromCtx(c)
	if _, err := access.RequireProperty(database.DB, p, agreement.PropertyID); err != nil {
		return nil, err
	}
	return &agreement, nil
}

// GET /api/v1/rental-agreements
func ListAgreementsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := auth.PrincipalFromCtx(c)

		query, err := access.ScopeToOwner(database.DB, p, database.DB.Model(&models.RentalAgreement{}))
		if err != nil {
			return err
		}

		var agreements []models.RentalAgreement
		if err := query.Order("created_at DESC").Find(&agreements).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list rental agreements")
		}

		res := make([]AgreementResponse, 0, len(agreements))
		for i := range agreements {
			res = append(res, toResponse(&agreements[i]))
		}
		return c.JSON(res)
	}
}

// POST /api/v1/rental-agreements
func CreateAgreementHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := auth.PrincipalFromCtx(c)

		var body CreateAgreementRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.PropertyID == 0 || body.TenantID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "property_id and tenant_id are required")
		}

		prop, err := access.RequireProperty(database.DB, p, body.PropertyID)
		if err != nil {
			return err
		}

		start, err := time.Parse("2006-01-02", body.StartDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "start_date must be 'YYYY-MM-DD'")
		}
		end, err := time.Parse("2006-01-02", body.EndDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "end_date must be 'YYYY-MM-DD'")
		}
		if !end.After(start) {
			return fiber.NewError(fiber.StatusBadRequest, "end_date must be after start_date")
		}

		status := models.AgreementDraft
		if body.Status != nil {
			if !validStatus(*body.Status) {
				return fiber.NewError(fiber.StatusBadRequest, "Invalid agreement status")
			}
			status = *body.Status
		}

		agreement := models.RentalAgreement{
			AgreementNumber:   GenerateNumber(time.Now(), prop.ID),
			PropertyID:        prop.ID,
			TenantID:          body.TenantID,
			StartDate:         start,
			EndDate:           end,
			MonthlyRent:       body.MonthlyRent,
			SecurityDeposit:   body.SecurityDeposit,
			LeaseTerms:        body.LeaseTerms,
			UtilitiesIncluded: body.UtilitiesIncluded,
			PetPolicy:         body.PetPolicy,
			Status:            status,
			IsActive:          true,
		}

		if err := database.DB.Create(&agreement).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create rental agreement")
		}

		return c.Status(fiber.StatusCreated).JSON(toResponse(&agreement))
	}
}

// GET /api/v1/rental-agreements/:id
func GetAgreementHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		agreement, err := findAgreement(c)
		if err != nil {
			return err
		}
		return c.JSON(toResponse(agreement))
	}
}

// PUT /api/v1/rental-agreements/:id
func UpdateAgreementHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		agreement, err := findAgreement(c)
		if err != nil {
			return err
		}

		var body UpdateAgreementRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		start := agreement.StartDate
		end := agreement.EndDate
		if body.StartDate != nil {
			start, err = time.Parse("2006-01-02", *body.StartDate)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "start_date must be 'YYYY-MM-DD'")
			}
		}
		if body.EndDate != nil {
			end, err = time.Parse("2006-01-02", *body.EndDate)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "end_date must be 'YYYY-MM-DD'")
			}
		}
		if !end.After(start) {
			return fiber.NewError(fiber.StatusBadRequest, "end_date must be after start_date")
		}
		agreement.StartDate = start
		agreement.EndDate = end

		if body.MonthlyRent != nil {
			agreement.MonthlyRent = *body.MonthlyRent
		}
		if body.SecurityDeposit != nil {
			agreement.SecurityDeposit = *body.SecurityDeposit
		}
		if body.LeaseTerms != nil {
			agreement.LeaseTerms = *body.LeaseTerms
		}
		if body.UtilitiesIncluded != nil {
			agreement.UtilitiesIncluded = *body.UtilitiesIncluded
		}
		if body.PetPolicy != nil {
			agreement.PetPolicy = *body.PetPolicy
		}
		if body.Status != nil {
			if !validStatus(*body.Status) {
				return fiber.NewError(fiber.StatusBadRequest, "Invalid agreement status")
			}
			agreement.Status = *body.Status
		}
		if body.IsActive != nil {
			agreement.IsActive = *body.IsActive
		}

		if err := database.DB.Save(agreement).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update rental agreement")
		}

		return c.JSON(toResponse(agreement))
	}
}

// POST /api/v1/rental-agreements/:id/sign
//
// Signing stamps signed_at and moves the agreement to active regardless of
// its current status, so an active agreement can be signed again. Matches
// the upstream behavior until product says otherwise.
func SignAgreementHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		agreement, err := findAgreement(c)
		if err != nil {
			return err
		}

		now := time.Now()
		agreement.Status = models.AgreementActive
		agreement.SignedAt = &now

		if err := database.DB.Save(agreement).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not sign rental agreement")
		}

		return c.JSON(fiber.Map{
			"message":   "Rental agreement signed successfully",
			"agreement": toResponse(agreement),
		})
	}
}

// GET /api/v1/rental-agreements/expiring-soon
func ExpiringSoonHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := auth.PrincipalFromCtx(c)

		expiry := time.Now().AddDate(0, 0, cfg.ExpiryWindowDays)

		query := database.DB.Model(&models.RentalAgreement{}).
			Where("status = ? AND end_date <= ?", models.AgreementActive, expiry)
		query, err := access.ScopeToOwner(database.DB, p, query)
		if err != nil {
			return err
		}

		var agreements []models.RentalAgreement
		if err := query.Order("end_date ASC").Find(&agreements).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list expiring agreements")
		}

		res := make([]AgreementResponse, 0, len(agreements))
		for i := range agreements {
			res = append(res, toResponse(&agreements[i]))
		}
		return c.JSON(fiber.Map{"expiring_agreements": res})
	}
}
