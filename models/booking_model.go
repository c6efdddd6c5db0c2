package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	BookingPending                 = "pending"
	BookingConfirmed               = "confirmed"
	BookingCompleted               = "completed"
	BookingCancelledByClient       = "cancelled_by_client"
	BookingCancelledByProfessional = "cancelled_by_professional"
)

type Booking struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ClientID       uuid.UUID `gorm:"not null;index" json:"client_id"`
	ProfessionalID uuid.UUID `gorm:"not null;index" json:"professional_id"`
	SlotID         uuid.UUID `gorm:"not null" json:"slot_id"`

	ConsultationType string  `gorm:"size:10;not null" json:"consultation_type"`
	ConsultationFee  float64 `gorm:"type:numeric(10,2);not null" json:"consultation_fee"`
	Status           string  `gorm:"size:30;not null;default:'pending'" json:"status"`

	ProblemDescription string `gorm:"type:text" json:"problem_description"`
	ContactPreference  string `gorm:"size:50" json:"contact_preference"`

	MeetingLink     *string `gorm:"size:255" json:"meeting_link,omitempty"`
	MeetingID       *string `gorm:"size:100" json:"meeting_id,omitempty"`
	MeetingPassword *string `gorm:"size:50" json:"-"`

	ConsultationAddress string `gorm:"size:500" json:"consultation_address,omitempty"`

	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`

	CancellationReason string     `gorm:"size:500" json:"cancellation_reason,omitempty"`
	CancelledBy        *uuid.UUID `json:"cancelled_by,omitempty"`
	CancellationFee    float64    `gorm:"type:numeric(10,2);not null;default:0" json:"cancellation_fee"`

	Client       User             `gorm:"foreignkey:ClientID" json:"client,omitempty"`
	Professional Professional     `gorm:"foreignkey:ProfessionalID" json:"professional,omitempty"`
	Slot         ConsultationSlot `gorm:"foreignkey:SlotID" json:"slot,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsTerminal reports whether the booking has reached a state that admits
// no further transitions.
func (b *Booking) IsTerminal() bool {
	switch b.Status {
	case BookingCompleted, BookingCancelledByClient, BookingCancelledByProfessional:
		return true
	}
	return false
}

// IsCancelled reports whether the booking was cancelled by either party.
func (b *Booking) IsCancelled() bool {
	return b.Status == BookingCancelledByClient || b.Status == BookingCancelledByProfessional
}

// CanBeCancelledByClient applies the client-side cancellation guard: the
// booking must still be pending or confirmed, and the cancellation must
// happen at least buffer before the slot starts.
func (b *Booking) CanBeCancelledByClient(now, slotStart time.Time, buffer time.Duration) bool {
	if b.Status != BookingPending && b.Status != BookingConfirmed {
		return false
	}
	return now.Before(slotStart.Add(-buffer))
}

// CanBeCancelledByProfessional applies the professional-side guard. The
// professional bears no timing restriction.
func (b *Booking) CanBeCancelledByProfessional() bool {
	return b.Status == BookingPending || b.Status == BookingConfirmed
}
