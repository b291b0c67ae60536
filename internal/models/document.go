package models

import "time"

type Document struct {
	ID         uint     `gorm:"primaryKey"`
	PropertyID uint     `gorm:"index;not null"`
	Property   Property `gorm:"foreignKey:PropertyID"`

	RentalAgreementID *uint            `gorm:"index"`
	RentalAgreement   *RentalAgreement `gorm:"foreignKey:RentalAgreementID"`

	Title       string `gorm:"size:200;not null"`
	Description string `gorm:"size:1000"`

	// FileName is the name the client uploaded under, kept for display.
	// FilePath is the generated storage location and never derives from
	// client input.
	FileName string `gorm:"size:255;not null"`
	FilePath string `gorm:"size:255;not null"`
	FileSize int64
	FileType string `gorm:"size:100"` // MIME type

	DocumentType string `gorm:"size:50"` // lease_agreement, id_proof, ...
	IsVerified   bool   `gorm:"default:false"`
	IsActive     bool   `gorm:"default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
