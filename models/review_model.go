package models

import (
	"time"

	"github.com/google/uuid"
)

// Review is one client's rating of a professional. A client may review a
// professional once, and only after a completed consultation.
type Review struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ClientID       uuid.UUID `gorm:"not null;uniqueIndex:idx_review_client_professional" json:"client_id"`
	ProfessionalID uuid.UUID `gorm:"not null;uniqueIndex:idx_review_client_professional" json:"professional_id"`

	Rating     int    `gorm:"not null" json:"rating"`
	ReviewNote string `gorm:"size:500" json:"review_note"`

	Client       User         `gorm:"foreignkey:ClientID" json:"client,omitempty"`
	Professional Professional `gorm:"foreignkey:ProfessionalID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}
