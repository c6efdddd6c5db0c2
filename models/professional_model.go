package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	VerificationPending  = "pending"
	VerificationInReview = "in_review"
	VerificationVerified = "verified"
	VerificationRejected = "rejected"
)

type Professional struct {
	UserID            uuid.UUID `gorm:"primary_key" json:"user_id"`
	AreaOfExpertise   *string   `gorm:"size:50" json:"area_of_expertise"`
	YearsOfExperience *string   `gorm:"size:20" json:"years_of_experience"`
	Bio               *string   `gorm:"type:text" json:"bio"`
	Location          *string   `gorm:"size:100" json:"location"`

	VerificationStatus string `gorm:"size:20;not null;default:'pending'" json:"verification_status"`
	TotalConsultations int    `gorm:"not null;default:0" json:"total_consultations"`

	User User `gorm:"foreignkey:UserID" json:"user"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// IsBookable reports whether clients may see this professional's slots
// and create bookings against them.
func (p *Professional) IsBookable() bool {
	return p.VerificationStatus == VerificationVerified
}
