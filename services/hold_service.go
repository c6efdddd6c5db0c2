package services

import (
	"errors"
	"log"
	"time"

	"github.com/adityavk98/consult_connect/database"
	"github.com/adityavk98/consult_connect/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// HoldSlot places a short-lived soft reservation on a derived slot while
// the client finishes the booking flow. The hold lapses after the
// configured TTL; expiry is detected lazily on the next read or claim, so
// no sweeper is strictly required (one runs anyway for responsiveness).
func HoldSlot(userID, professionalID uuid.UUID, slotID string, now time.Time) (*models.ConsultationSlot, error) {
	professional, patterns, pricing, err := loadBookingContext(professionalID)
	if err != nil {
		return nil, err
	}
	if !professional.IsBookable() {
		return nil, NewNotBookableError("professional is not verified for bookings")
	}

	derived, err := FindDerivedSlot(professionalID, patterns, pricing, slotID, now)
	if err != nil {
		return nil, err
	}

	var slot *models.ConsultationSlot
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		slot, err = lockOrCreateSlot(tx, derived, userID, now, models.SlotHeld)
		return err
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Slot %s held by %s until %s", slotID, userID, slot.HeldUntil.Format(time.RFC3339))
	return slot, nil
}

// ReleaseHold drops a hold the user placed earlier, returning the slot to
// the available pool.
func ReleaseHold(userID, professionalID uuid.UUID, slotID string, now time.Time) error {
	_, patterns, pricing, err := loadBookingContext(professionalID)
	if err != nil {
		return err
	}
	derived, err := FindDerivedSlot(professionalID, patterns, pricing, slotID, now)
	if err != nil {
		return err
	}

	return database.DB.Transaction(func(tx *gorm.DB) error {
		var slot models.ConsultationSlot
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("professional_id = ? AND start_time = ? AND end_time = ?",
				derived.ProfessionalID, derived.StartTime, derived.EndTime).
			First(&slot).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewNotFoundError("no hold exists for this slot")
		}
		if err != nil {
			return err
		}

		if slot.Status != models.SlotHeld {
			return NewInvalidStateError("slot is not held")
		}
		if slot.HeldBy == nil || *slot.HeldBy != userID {
			return NewUnauthorizedError("slot is held by another user")
		}

		slot.Status = models.SlotAvailable
		slot.ClearHold()
		return tx.Save(&slot).Error
	})
}

// BlockSlot lets a professional take one of their own derived slots out
// of the booking pool. Booked slots cannot be blocked.
func BlockSlot(professionalUserID uuid.UUID, slotID string, now time.Time) (*models.ConsultationSlot, error) {
	_, patterns, pricing, err := loadBookingContext(professionalUserID)
	if err != nil {
		return nil, err
	}
	derived, err := FindDerivedSlot(professionalUserID, patterns, pricing, slotID, now)
	if err != nil {
		return nil, err
	}

	var slot *models.ConsultationSlot
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		slot, err = lockOrCreateSlot(tx, derived, professionalUserID, now, models.SlotBlocked)
		return err
	})
	if err != nil {
		return nil, err
	}
	return slot, nil
}

// UnblockSlot reverses BlockSlot.
func UnblockSlot(professionalUserID uuid.UUID, slotRowID uuid.UUID) error {
	return database.DB.Transaction(func(tx *gorm.DB) error {
		var slot models.ConsultationSlot
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&slot, "id = ?", slotRowID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewNotFoundError("slot not found")
		}
		if err != nil {
			return err
		}

		if slot.ProfessionalID != professionalUserID {
			return NewUnauthorizedError("slot belongs to another professional")
		}
		if slot.Status != models.SlotBlocked {
			return NewInvalidStateError("slot is not blocked")
		}

		slot.Status = models.SlotAvailable
		return tx.Save(&slot).Error
	})
}

// SetCustomRate attaches (or clears, with nil) a per-slot rate override.
// The override replaces the duration fee for future claims of this slot;
// already-created bookings keep their snapshotted fee, so changing the
// rate on a booked slot is rejected.
func SetCustomRate(professionalUserID uuid.UUID, slotID string, rate *float64, now time.Time) (*models.ConsultationSlot, error) {
	_, patterns, pricing, err := loadBookingContext(professionalUserID)
	if err != nil {
		return nil, err
	}
	derived, err := FindDerivedSlot(professionalUserID, patterns, pricing, slotID, now)
	if err != nil {
		return nil, err
	}

	var slot models.ConsultationSlot
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("professional_id = ? AND start_time = ? AND end_time = ?",
				derived.ProfessionalID, derived.StartTime, derived.EndTime).
			First(&slot).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			slot = models.ConsultationSlot{
				ProfessionalID: derived.ProfessionalID,
				StartTime:      derived.StartTime,
				EndTime:        derived.EndTime,
				Status:         models.SlotAvailable,
				CustomRate:     rate,
			}
			return tx.Create(&slot).Error
		}
		if err != nil {
			return err
		}

		if slot.Status == models.SlotBooked {
			return NewInvalidStateError("slot is already booked, its fee is frozen")
		}
		slot.CustomRate = rate
		return tx.Save(&slot).Error
	})
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

// ReleaseExpiredHolds resets every lapsed hold in one statement. Called
// by the cron sweeper; the claim path does not depend on it because holds
// are also expired lazily on read.
func ReleaseExpiredHolds(now time.Time) (int64, error) {
	result := database.DB.Model(&models.ConsultationSlot{}).
		Where("status = ? AND held_until < ?", models.SlotHeld, now).
		Updates(map[string]interface{}{
			"status":     models.SlotAvailable,
			"held_by":    nil,
			"held_until": nil,
		})
	return result.RowsAffected, result.Error
}
