package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	SlotAvailable = "available"
	SlotHeld      = "held"
	SlotBooked    = "booked"
	SlotBlocked   = "blocked"
)

// ConsultationSlot is a materialized slot instance. Slots only exist as
// rows once they leave the available state (held, booked or blocked);
// purely available slots are derived on the fly from the professional's
// availability pattern. The natural key (professional, start, end) is
// unique so concurrent claims of the same slot collapse to one row.
type ConsultationSlot struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ProfessionalID uuid.UUID `gorm:"not null;uniqueIndex:idx_slot_natural_key" json:"-"`
	StartTime      time.Time `gorm:"not null;uniqueIndex:idx_slot_natural_key" json:"start_time"`
	EndTime        time.Time `gorm:"not null;uniqueIndex:idx_slot_natural_key" json:"end_time"`
	Status         string    `gorm:"size:20;not null;default:'available'" json:"status"`

	HeldBy    *uuid.UUID `json:"held_by,omitempty"`
	HeldUntil *time.Time `json:"held_until,omitempty"`

	CustomRate *float64 `gorm:"type:numeric(10,2)" json:"custom_rate,omitempty"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// HoldExpired reports whether a hold on the slot has lapsed. Expired
// holds are treated as available again; callers that observe an expired
// hold are expected to reset the hold fields (lazy expiry on read).
func (s *ConsultationSlot) HoldExpired(now time.Time) bool {
	return s.Status == SlotHeld && s.HeldUntil != nil && now.After(*s.HeldUntil)
}

// ClaimableBy reports whether userID may transition this slot to booked
// right now: the slot is available, or held by this same user, or the
// hold has lapsed.
func (s *ConsultationSlot) ClaimableBy(userID uuid.UUID, now time.Time) bool {
	switch s.Status {
	case SlotAvailable:
		return true
	case SlotHeld:
		if s.HoldExpired(now) {
			return true
		}
		return s.HeldBy != nil && *s.HeldBy == userID
	}
	return false
}

// ClearHold resets the hold bookkeeping fields.
func (s *ConsultationSlot) ClearHold() {
	s.HeldBy = nil
	s.HeldUntil = nil
}
