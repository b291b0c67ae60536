// Package access holds the one rule shared by every resource in the API:
// a record is visible to admins and to the user owning the property it
// hangs off, and to nobody else.
package access

import (
	"propman-backend/internal/auth"
	"propman-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Allow reports whether p may act on a resource anchored at prop.
func Allow(p auth.Principal, prop *models.Property) bool {
	return p.IsAdmin() || prop.OwnerID == p.UserID
}

// RequireProperty loads the property and applies Allow. A missing property
// is always reported before a denied one, so callers cannot probe for
// existence through 403s.
func RequireProperty(db *gorm.DB, p auth.Principal, propertyID uint) (*models.Property, error) {
	var prop models.Property
	if err := db.First(&prop, "id = ?", propertyID).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Property not found")
	}
	if !Allow(p, &prop) {
		return nil, fiber.NewError(fiber.StatusForbidden, "Not enough permissions")
	}
	return &prop, nil
}

// OwnedPropertyIDs returns the ids of every property owned by p.
func OwnedPropertyIDs(db *gorm.DB, p auth.Principal) ([]uint, error) {
	var ids []uint
	err := db.Model(&models.Property{}).
		Where("owner_id = ?", p.UserID).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Could not resolve owned properties")
	}
	return ids, nil
}

// ScopeToOwner narrows a query over property-linked rows to what p may
// list: admins see everything, owners see rows under their own properties.
func ScopeToOwner(db *gorm.DB, p auth.Principal, query *gorm.DB) (*gorm.DB, error) {
	if p.IsAdmin() {
		return query, nil
	}
	ids, err := OwnedPropertyIDs(db, p)
	if err != nil {
		return nil, err
	}
	return query.Where("property_id IN ?", ids), nil
}
