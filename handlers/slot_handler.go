package handlers

import (
	"time"

	"github.com/adityavk98/consult_connect/database"
	"github.com/adityavk98/consult_connect/models"
	"github.com/adityavk98/consult_connect/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// GetProfessionalSlots is the public calendar: the derived slot sequence
// for a verified professional over an optional date range (defaults to
// the next 30 days).
func GetProfessionalSlots(c *fiber.Ctx) error {
	professionalID, err := uuid.Parse(c.Params("professionalId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid professional ID"})
	}

	var professional models.Professional
	err = database.DB.First(&professional, "user_id = ?", professionalID).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Professional not found"})
	}
	if !professional.IsBookable() {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Professional is not verified for bookings"})
	}

	dateFrom, dateTo, parseErr := dateRange(c)
	if parseErr != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": parseErr})
	}

	patterns, pricing, err := loadCalendarInputs(professionalID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch slots"})
	}

	slots, err := services.ListSlots(professionalID, patterns, pricing, dateFrom, dateTo, time.Now())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch slots"})
	}

	if consultationType := c.Query("consultation_type"); consultationType != "" {
		filtered := slots[:0]
		for _, slot := range slots {
			if slot.ConsultationType == consultationType || slot.ConsultationType == models.ConsultationBoth {
				filtered = append(filtered, slot)
			}
		}
		slots = filtered
	}

	p := pagination(c)
	return c.JSON(paginatedResponse(pageOfSlots(slots, p), int64(len(slots)), p))
}

// GetMySlots is the professional's own calendar, verified or not.
func GetMySlots(c *fiber.Ctx) error {
	professionalID := currentUserID(c)

	dateFrom, dateTo, parseErr := dateRange(c)
	if parseErr != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": parseErr})
	}

	patterns, pricing, err := loadCalendarInputs(professionalID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch slots"})
	}

	slots, err := services.ListSlots(professionalID, patterns, pricing, dateFrom, dateTo, time.Now())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch slots"})
	}

	p := pagination(c)
	return c.JSON(paginatedResponse(pageOfSlots(slots, p), int64(len(slots)), p))
}

// HoldSlot places a short-lived reservation on a slot for the
// authenticated client.
func HoldSlot(c *fiber.Ctx) error {
	userID := currentUserID(c)

	professionalID, err := uuid.Parse(c.Params("professionalId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid professional ID"})
	}
	slotID := c.Params("slotId")

	slot, err := services.HoldSlot(userID, professionalID, slotID, time.Now())
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message":    "Slot held",
		"slot_id":    slotID,
		"held_until": slot.HeldUntil,
	})
}

// ReleaseHold drops a hold the authenticated client placed earlier.
func ReleaseHold(c *fiber.Ctx) error {
	userID := currentUserID(c)

	professionalID, err := uuid.Parse(c.Params("professionalId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid professional ID"})
	}
	slotID := c.Params("slotId")

	if err := services.ReleaseHold(userID, professionalID, slotID, time.Now()); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Hold released"})
}

// BlockSlot takes one of the professional's own derived slots out of the
// booking pool.
func BlockSlot(c *fiber.Ctx) error {
	professionalID := currentUserID(c)
	slotID := c.Params("slotId")

	slot, err := services.BlockSlot(professionalID, slotID, time.Now())
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Slot blocked", "slot": slot})
}

type CustomRateRequest struct {
	CustomRate *float64 `json:"custom_rate" validate:"omitempty,gt=0"`
}

// SetSlotCustomRate attaches a per-slot rate override, or clears it when
// custom_rate is null.
func SetSlotCustomRate(c *fiber.Ctx) error {
	professionalID := currentUserID(c)
	slotID := c.Params("slotId")

	var req CustomRateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	slot, err := services.SetCustomRate(professionalID, slotID, req.CustomRate, time.Now())
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Custom rate updated", "slot": slot})
}

// UnblockSlot reverses BlockSlot, addressed by the materialized row id
// returned when blocking.
func UnblockSlot(c *fiber.Ctx) error {
	professionalID := currentUserID(c)

	slotRowID, err := uuid.Parse(c.Params("slotId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid slot ID"})
	}

	if err := services.UnblockSlot(professionalID, slotRowID); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Slot unblocked"})
}

func dateRange(c *fiber.Ctx) (time.Time, time.Time, string) {
	var dateFrom, dateTo time.Time
	var err error

	if raw := c.Query("date_from"); raw != "" {
		dateFrom, err = time.Parse(dateLayout, raw)
		if err != nil {
			return dateFrom, dateTo, "date_from must be in YYYY-MM-DD format"
		}
	}
	if raw := c.Query("date_to"); raw != "" {
		dateTo, err = time.Parse(dateLayout, raw)
		if err != nil {
			return dateFrom, dateTo, "date_to must be in YYYY-MM-DD format"
		}
	}
	if !dateFrom.IsZero() && !dateTo.IsZero() && dateTo.Before(dateFrom) {
		return dateFrom, dateTo, "date_to must not be before date_from"
	}
	return dateFrom, dateTo, ""
}

// pageOfSlots slices one page out of a fully derived sequence. Derivation
// is cheap enough that paginating after the fact beats complicating the
// deriver with offsets.
func pageOfSlots(slots []services.DerivedSlot, p paginationParams) []services.DerivedSlot {
	if p.Offset >= len(slots) {
		return []services.DerivedSlot{}
	}
	end := p.Offset + p.PageSize
	if end > len(slots) {
		end = len(slots)
	}
	return slots[p.Offset:end]
}

func loadCalendarInputs(professionalID uuid.UUID) ([]models.ConsultationAvailability, *models.ProfessionalPricing, error) {
	var patterns []models.ConsultationAvailability
	if err := database.DB.Where("professional_id = ?", professionalID).Find(&patterns).Error; err != nil {
		return nil, nil, err
	}

	var pricing *models.ProfessionalPricing
	var pricingRow models.ProfessionalPricing
	if err := database.DB.First(&pricingRow, "professional_id = ?", professionalID).Error; err == nil {
		pricing = &pricingRow
	}

	return patterns, pricing, nil
}
