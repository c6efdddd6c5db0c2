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

type CreateBookingInput struct {
	SlotID              string
	ConsultationType    string
	ProblemDescription  string
	ContactPreference   string
	ConsultationAddress string
}

type ConfirmBookingInput struct {
	MeetingLink         string
	MeetingID           string
	MeetingPassword     string
	ConsultationAddress string
}

// CreateBooking atomically claims a slot for a client and opens a pending
// booking. The slot is materialized on first claim, keyed by its natural
// key (professional, start, end); the unique index on that key plus the
// row lock taken here guarantee that of two concurrent claims exactly one
// succeeds and the other observes a conflict.
func CreateBooking(clientID, professionalID uuid.UUID, in CreateBookingInput, now time.Time) (*models.Booking, error) {
	if in.ConsultationType != models.ConsultationOnline && in.ConsultationType != models.ConsultationOffline {
		return nil, NewValidationError("consultation type must be online or offline")
	}

	professional, patterns, pricing, err := loadBookingContext(professionalID)
	if err != nil {
		return nil, err
	}
	if !professional.IsBookable() {
		return nil, NewNotBookableError("professional is not verified for bookings")
	}

	derived, err := FindDerivedSlot(professionalID, patterns, pricing, in.SlotID, now)
	if err != nil {
		return nil, err
	}
	if !derived.StartTime.After(now) {
		return nil, NewValidationError("slot start time is in the past")
	}
	if !slotAllowsType(derived, in.ConsultationType) {
		return nil, NewValidationError("requested consultation type is not offered for this slot")
	}
	if !TypeAccepted(pricing, in.ConsultationType) {
		return nil, NewValidationError("professional does not accept this consultation type")
	}

	var booking models.Booking
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		slot, err := lockOrCreateSlot(tx, derived, clientID, now, models.SlotBooked)
		if err != nil {
			return err
		}

		fee := FeeForSlot(pricing, derived.DurationMinutes, in.ConsultationType, slot.CustomRate)

		address := ""
		if in.ConsultationType == models.ConsultationOffline {
			address = in.ConsultationAddress
		}

		booking = models.Booking{
			ClientID:            clientID,
			ProfessionalID:      professionalID,
			SlotID:              slot.ID,
			ConsultationType:    in.ConsultationType,
			ConsultationFee:     fee,
			Status:              models.BookingPending,
			ProblemDescription:  in.ProblemDescription,
			ContactPreference:   in.ContactPreference,
			ConsultationAddress: address,
		}
		if err := tx.Create(&booking).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return NewConflictError("slot is no longer available, please pick another slot")
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Booking %s created for slot %s (client %s)", booking.ID, in.SlotID, clientID)
	return &booking, nil
}

// ConfirmBooking moves a pending booking to confirmed and attaches the
// meeting credentials (online) or consultation address (offline). Only
// the assigned professional may confirm.
func ConfirmBooking(professionalUserID, bookingID uuid.UUID, in ConfirmBookingInput, now time.Time) (*models.Booking, error) {
	var booking models.Booking
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := lockBooking(tx, bookingID, &booking); err != nil {
			return err
		}
		if booking.ProfessionalID != professionalUserID {
			return NewUnauthorizedError("only the assigned professional can confirm this booking")
		}
		if booking.Status != models.BookingPending {
			return NewInvalidStateError("only pending bookings can be confirmed")
		}

		booking.Status = models.BookingConfirmed
		booking.ConfirmedAt = &now
		if booking.ConsultationType == models.ConsultationOnline {
			booking.MeetingLink = optional(in.MeetingLink)
			booking.MeetingID = optional(in.MeetingID)
			booking.MeetingPassword = optional(in.MeetingPassword)
		} else if in.ConsultationAddress != "" {
			booking.ConsultationAddress = in.ConsultationAddress
		}
		return tx.Save(&booking).Error
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// CompleteBooking moves a confirmed booking to completed and bumps the
// professional's consultation counter. Completed bookings make the client
// eligible to review the professional.
func CompleteBooking(professionalUserID, bookingID uuid.UUID, now time.Time) (*models.Booking, error) {
	var booking models.Booking
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := lockBooking(tx, bookingID, &booking); err != nil {
			return err
		}
		if booking.ProfessionalID != professionalUserID {
			return NewUnauthorizedError("only the assigned professional can complete this booking")
		}
		if booking.Status != models.BookingConfirmed {
			return NewInvalidStateError("only confirmed bookings can be completed")
		}

		booking.Status = models.BookingCompleted
		booking.CompletedAt = &now
		if err := tx.Save(&booking).Error; err != nil {
			return err
		}

		return tx.Model(&models.Professional{}).
			Where("user_id = ?", booking.ProfessionalID).
			Update("total_consultations", gorm.Expr("total_consultations + 1")).Error
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// CancelBooking cancels a pending or confirmed booking and releases its
// slot. Clients may only cancel up to the configured buffer before the
// slot starts; professionals may cancel any time. Late client
// cancellations inside the fee window carry a cancellation fee, recorded
// on the booking for the payment system to collect.
func CancelBooking(actingUserID, bookingID uuid.UUID, reason string, now time.Time) (*models.Booking, error) {
	var booking models.Booking
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := lockBooking(tx, bookingID, &booking); err != nil {
			return err
		}

		var slot models.ConsultationSlot
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&slot, "id = ?", booking.SlotID).Error; err != nil {
			return err
		}

		if booking.IsTerminal() {
			return NewInvalidStateError("booking is already " + booking.Status)
		}

		var cancelledByClient bool
		switch actingUserID {
		case booking.ClientID:
			cancelledByClient = true
			if !booking.CanBeCancelledByClient(now, slot.StartTime, CancellationBuffer()) {
				return NewPolicyViolationError("bookings can only be cancelled up to the cancellation deadline before the consultation starts")
			}
			booking.Status = models.BookingCancelledByClient
		case booking.ProfessionalID:
			if !booking.CanBeCancelledByProfessional() {
				return NewInvalidStateError("booking can no longer be cancelled")
			}
			booking.Status = models.BookingCancelledByProfessional
		default:
			return NewUnauthorizedError("you can only cancel your own bookings")
		}

		booking.CancelledAt = &now
		booking.CancelledBy = &actingUserID
		booking.CancellationReason = reason
		booking.CancellationFee = CancellationFeeFor(booking.ConsultationFee, now, slot.StartTime, cancelledByClient)
		if err := tx.Save(&booking).Error; err != nil {
			return err
		}

		slot.Status = models.SlotAvailable
		slot.ClearHold()
		return tx.Save(&slot).Error
	})
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Booking %s cancelled by %s", booking.ID, actingUserID)
	return &booking, nil
}

// GetBookingForUser loads a booking visible to the given user (its client
// or its professional).
func GetBookingForUser(userID, bookingID uuid.UUID) (*models.Booking, error) {
	var booking models.Booking
	err := database.DB.Preload("Slot").Preload("Client").First(&booking, "id = ?", bookingID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("booking not found")
		}
		return nil, err
	}
	if booking.ClientID != userID && booking.ProfessionalID != userID {
		return nil, NewUnauthorizedError("permission denied")
	}
	return &booking, nil
}

func lockBooking(tx *gorm.DB, bookingID uuid.UUID, out *models.Booking) error {
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(out, "id = ?", bookingID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NewNotFoundError("booking not found")
	}
	return err
}

// lockOrCreateSlot acquires the materialized slot row for a derived slot
// under a FOR UPDATE lock, creating the row in the target status when the
// slot has never been persisted. The unique natural key converts a lost
// creation race into a conflict for the second writer.
func lockOrCreateSlot(tx *gorm.DB, derived *DerivedSlot, userID uuid.UUID, now time.Time, targetStatus string) (*models.ConsultationSlot, error) {
	var slot models.ConsultationSlot
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("professional_id = ? AND start_time = ? AND end_time = ?",
			derived.ProfessionalID, derived.StartTime, derived.EndTime).
		First(&slot).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		slot = models.ConsultationSlot{
			ProfessionalID: derived.ProfessionalID,
			StartTime:      derived.StartTime,
			EndTime:        derived.EndTime,
			Status:         targetStatus,
		}
		applyHoldFields(&slot, userID, now, targetStatus)
		if err := tx.Create(&slot).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, NewConflictError("slot is no longer available, please pick another slot")
			}
			return nil, err
		}
		return &slot, nil
	}
	if err != nil {
		return nil, err
	}

	if !slot.ClaimableBy(userID, now) {
		return nil, NewConflictError("slot is no longer available, please pick another slot")
	}

	slot.Status = targetStatus
	slot.ClearHold()
	applyHoldFields(&slot, userID, now, targetStatus)
	if err := tx.Save(&slot).Error; err != nil {
		return nil, err
	}
	return &slot, nil
}

func applyHoldFields(slot *models.ConsultationSlot, userID uuid.UUID, now time.Time, targetStatus string) {
	if targetStatus != models.SlotHeld {
		return
	}
	heldUntil := now.Add(HoldTTL())
	slot.HeldBy = &userID
	slot.HeldUntil = &heldUntil
}

func slotAllowsType(derived *DerivedSlot, consultationType string) bool {
	if derived.ConsultationType == models.ConsultationBoth {
		return consultationType == models.ConsultationOnline || consultationType == models.ConsultationOffline
	}
	return derived.ConsultationType == consultationType
}

func loadBookingContext(professionalID uuid.UUID) (*models.Professional, []models.ConsultationAvailability, *models.ProfessionalPricing, error) {
	var professional models.Professional
	err := database.DB.First(&professional, "user_id = ?", professionalID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, nil, NewNotFoundError("professional not found")
		}
		return nil, nil, nil, err
	}

	var patterns []models.ConsultationAvailability
	if err := database.DB.Where("professional_id = ?", professionalID).Find(&patterns).Error; err != nil {
		return nil, nil, nil, err
	}
	if len(patterns) == 0 {
		return nil, nil, nil, NewNotFoundError("professional has not set availability")
	}

	var pricing *models.ProfessionalPricing
	var pricingRow models.ProfessionalPricing
	err = database.DB.First(&pricingRow, "professional_id = ?", professionalID).Error
	if err == nil {
		pricing = &pricingRow
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, nil, err
	}

	return &professional, patterns, pricing, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
