package models

import "time"

type AgreementStatus string

const (
	AgreementDraft      AgreementStatus = "draft"
	AgreementActive     AgreementStatus = "active"
	AgreementExpired    AgreementStatus = "expired"
	AgreementTerminated AgreementStatus = "terminated"
)

type RentalAgreement struct {
	ID              uint   `gorm:"primaryKey"`
	AgreementNumber string `gorm:"size:50;uniqueIndex;not null"`

	PropertyID uint     `gorm:"index;not null"`
	Property   Property `gorm:"foreignKey:PropertyID"`
	TenantID   uint     `gorm:"index;not null"`
	Tenant     Tenant   `gorm:"foreignKey:TenantID"`

	StartDate       time.Time `gorm:"not null"`
	EndDate         time.Time `gorm:"not null"`
	MonthlyRent     float64   `gorm:"not null"`
	SecurityDeposit float64   `gorm:"not null"`

	// Terms
	LeaseTerms        string `gorm:"size:2000"`
	UtilitiesIncluded bool   `gorm:"default:false"`
	PetPolicy         string `gorm:"size:255"`

	Status   AgreementStatus `gorm:"size:20;default:draft"`
	IsActive bool            `gorm:"default:true"`
	SignedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	Documents []Document `gorm:"foreignKey:RentalAgreementID"`
}
