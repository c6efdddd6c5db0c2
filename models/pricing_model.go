package models

import (
	"time"

	"github.com/google/uuid"
)

// ProfessionalPricing is the per-professional fee table. A booking
// snapshots the resolved fee at creation time, so later edits here never
// change existing bookings.
type ProfessionalPricing struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ProfessionalID uuid.UUID `gorm:"not null;unique" json:"-"`

	Fee30Min  float64 `gorm:"type:numeric(10,2);not null;default:500.00" json:"fee_30_min"`
	Fee60Min  float64 `gorm:"type:numeric(10,2);not null;default:1000.00" json:"fee_60_min"`
	Fee90Min  float64 `gorm:"type:numeric(10,2);not null;default:1400.00" json:"fee_90_min"`
	Fee120Min float64 `gorm:"type:numeric(10,2);not null;default:1800.00" json:"fee_120_min"`

	OfflineConsultationExtra float64 `gorm:"type:numeric(10,2);not null;default:200.00" json:"offline_consultation_extra"`

	AcceptsOnline  bool `gorm:"not null;default:true" json:"accepts_online"`
	AcceptsOffline bool `gorm:"not null;default:true" json:"accepts_offline"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// FeeForDuration returns the base fee for a consultation length. Unknown
// durations fall back to the 60-minute fee.
func (p *ProfessionalPricing) FeeForDuration(minutes int) float64 {
	switch minutes {
	case 30:
		return p.Fee30Min
	case 60:
		return p.Fee60Min
	case 90:
		return p.Fee90Min
	case 120:
		return p.Fee120Min
	}
	return p.Fee60Min
}
