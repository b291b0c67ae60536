package models

import "time"

type Property struct {
	ID      uint `gorm:"primaryKey"`
	OwnerID uint `gorm:"index;not null"`
	Owner   User `gorm:"foreignKey:OwnerID"`

	Title       string `gorm:"size:200;not null"`
	Description string `gorm:"size:2000"`
	Address     string `gorm:"size:255;not null"`
	City        string `gorm:"size:100;not null"`
	State       string `gorm:"size:100;not null"`
	ZipCode     string `gorm:"size:20;not null"`
	Country     string `gorm:"size:100;default:USA"`

	// Structural details
	PropertyType string `gorm:"size:50"` // apartment, house, commercial, ...
	Bedrooms     int
	Bathrooms    float64
	SquareFeet   float64
	YearBuilt    int

	// Financial details
	MonthlyRent       float64
	SecurityDeposit   float64
	UtilitiesIncluded bool `gorm:"default:false"`

	IsAvailable bool `gorm:"default:true"`
	IsActive    bool `gorm:"default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Tenants          []Tenant          `gorm:"foreignKey:PropertyID"`
	Documents        []Document        `gorm:"foreignKey:PropertyID"`
	RentalAgreements []RentalAgreement `gorm:"foreignKey:PropertyID"`
}
