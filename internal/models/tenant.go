package models

import "time"

type Tenant struct {
	ID         uint     `gorm:"primaryKey"`
	PropertyID uint     `gorm:"index;not null"`
	Property   Property `gorm:"foreignKey:PropertyID"`

	FirstName   string `gorm:"size:100;not null"`
	LastName    string `gorm:"size:100;not null"`
	Email       string `gorm:"size:100;not null"`
	Phone       string `gorm:"size:50;not null"`
	DateOfBirth *time.Time

	// Emergency contact
	EmergencyContactName         string `gorm:"size:100"`
	EmergencyContactPhone        string `gorm:"size:50"`
	EmergencyContactRelationship string `gorm:"size:50"`

	// Employment
	Employer      string `gorm:"size:100"`
	JobTitle      string `gorm:"size:100"`
	MonthlyIncome int

	IsActive bool `gorm:"default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time

	RentalAgreements []RentalAgreement `gorm:"foreignKey:TenantID"`
}
