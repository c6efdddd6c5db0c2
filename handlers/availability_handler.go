package handlers

import (
	"time"

	"github.com/adityavk98/consult_connect/database"
	"github.com/adityavk98/consult_connect/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AvailabilityRequest struct {
	Monday    bool `json:"monday"`
	Tuesday   bool `json:"tuesday"`
	Wednesday bool `json:"wednesday"`
	Thursday  bool `json:"thursday"`
	Friday    bool `json:"friday"`
	Saturday  bool `json:"saturday"`
	Sunday    bool `json:"sunday"`

	FromTime string `json:"from_time" validate:"required"`
	ToTime   string `json:"to_time" validate:"required"`

	SlotDurationMinutes int    `json:"slot_duration_minutes" validate:"required"`
	ConsultationType    string `json:"consultation_type" validate:"required,oneof=online offline both"`

	BufferMinutes      int  `json:"buffer_minutes" validate:"min=0,max=60"`
	MaxSessionsPerDay  *int `json:"max_sessions_per_day" validate:"omitempty,min=1"`
	AdvanceBookingDays int  `json:"advance_booking_days" validate:"omitempty,min=1,max=90"`
}

type PricingRequest struct {
	Fee30Min  float64 `json:"fee_30_min" validate:"required,gt=0"`
	Fee60Min  float64 `json:"fee_60_min" validate:"required,gt=0"`
	Fee90Min  float64 `json:"fee_90_min" validate:"required,gt=0"`
	Fee120Min float64 `json:"fee_120_min" validate:"required,gt=0"`

	OfflineConsultationExtra float64 `json:"offline_consultation_extra" validate:"min=0"`

	AcceptsOnline  bool `json:"accepts_online"`
	AcceptsOffline bool `json:"accepts_offline"`
}

// AddAvailability creates a new recurring weekly pattern for the
// authenticated professional. Existing patterns are untouched; a
// professional may keep several (e.g. weekday mornings and weekend
// afternoons with different durations).
func AddAvailability(c *fiber.Ctx) error {
	professionalID := currentUserID(c)

	var req AvailabilityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if msg := validateAvailability(&req); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
	}

	pattern := models.ConsultationAvailability{
		ProfessionalID:      professionalID,
		Monday:              req.Monday,
		Tuesday:             req.Tuesday,
		Wednesday:           req.Wednesday,
		Thursday:            req.Thursday,
		Friday:              req.Friday,
		Saturday:            req.Saturday,
		Sunday:              req.Sunday,
		FromTime:            req.FromTime,
		ToTime:              req.ToTime,
		SlotDurationMinutes: req.SlotDurationMinutes,
		ConsultationType:    req.ConsultationType,
		BufferMinutes:       req.BufferMinutes,
		MaxSessionsPerDay:   req.MaxSessionsPerDay,
		AdvanceBookingDays:  req.AdvanceBookingDays,
	}
	if pattern.AdvanceBookingDays == 0 {
		pattern.AdvanceBookingDays = 30
	}

	if err := database.DB.Create(&pattern).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not save availability"})
	}

	return c.Status(fiber.StatusCreated).JSON(pattern)
}

// UpdateAvailability replaces the fields of one existing pattern.
func UpdateAvailability(c *fiber.Ctx) error {
	professionalID := currentUserID(c)

	patternID, err := uuid.Parse(c.Params("availabilityId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid availability ID"})
	}

	var req AvailabilityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if msg := validateAvailability(&req); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
	}

	var pattern models.ConsultationAvailability
	err = database.DB.First(&pattern, "id = ? AND professional_id = ?", patternID, professionalID).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Availability not found"})
	}

	pattern.Monday = req.Monday
	pattern.Tuesday = req.Tuesday
	pattern.Wednesday = req.Wednesday
	pattern.Thursday = req.Thursday
	pattern.Friday = req.Friday
	pattern.Saturday = req.Saturday
	pattern.Sunday = req.Sunday
	pattern.FromTime = req.FromTime
	pattern.ToTime = req.ToTime
	pattern.SlotDurationMinutes = req.SlotDurationMinutes
	pattern.ConsultationType = req.ConsultationType
	pattern.BufferMinutes = req.BufferMinutes
	pattern.MaxSessionsPerDay = req.MaxSessionsPerDay
	if req.AdvanceBookingDays > 0 {
		pattern.AdvanceBookingDays = req.AdvanceBookingDays
	}

	if err := database.DB.Save(&pattern).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not update availability"})
	}

	return c.JSON(pattern)
}

// DeleteAvailability removes one pattern. Already-booked slots derived
// from it keep their bookings; only future derivation stops.
func DeleteAvailability(c *fiber.Ctx) error {
	professionalID := currentUserID(c)

	patternID, err := uuid.Parse(c.Params("availabilityId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid availability ID"})
	}

	result := database.DB.Where("id = ? AND professional_id = ?", patternID, professionalID).
		Delete(&models.ConsultationAvailability{})
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not delete availability"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Availability not found"})
	}

	return c.JSON(fiber.Map{"message": "Availability deleted"})
}

// GetMyAvailability lists the authenticated professional's patterns.
func GetMyAvailability(c *fiber.Ctx) error {
	professionalID := currentUserID(c)

	var patterns []models.ConsultationAvailability
	err := database.DB.Where("professional_id = ?", professionalID).
		Order("created_at ASC").Find(&patterns).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch availability"})
	}

	return c.JSON(patterns)
}

// SetPricing upserts the professional's fee table.
func SetPricing(c *fiber.Ctx) error {
	professionalID := currentUserID(c)

	var req PricingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if !req.AcceptsOnline && !req.AcceptsOffline {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "At least one consultation type must be accepted"})
	}

	var pricing models.ProfessionalPricing
	err := database.DB.Where("professional_id = ?", professionalID).First(&pricing).Error
	if err != nil {
		pricing = models.ProfessionalPricing{ProfessionalID: professionalID}
	}

	pricing.Fee30Min = req.Fee30Min
	pricing.Fee60Min = req.Fee60Min
	pricing.Fee90Min = req.Fee90Min
	pricing.Fee120Min = req.Fee120Min
	pricing.OfflineConsultationExtra = req.OfflineConsultationExtra
	pricing.AcceptsOnline = req.AcceptsOnline
	pricing.AcceptsOffline = req.AcceptsOffline

	if err := database.DB.Save(&pricing).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not save pricing"})
	}

	return c.JSON(pricing)
}

// GetMyPricing returns the professional's fee table, or the defaults if
// none has been saved yet.
func GetMyPricing(c *fiber.Ctx) error {
	professionalID := currentUserID(c)

	var pricing models.ProfessionalPricing
	err := database.DB.Where("professional_id = ?", professionalID).First(&pricing).Error
	if err != nil {
		return c.JSON(fiber.Map{"pricing": nil, "message": "No pricing saved yet, defaults apply"})
	}

	return c.JSON(pricing)
}

func validateAvailability(req *AvailabilityRequest) string {
	if !models.IsAllowedDuration(req.SlotDurationMinutes) {
		return "Slot duration must be 30, 60, 90 or 120 minutes"
	}

	from, err := time.Parse("15:04", req.FromTime)
	if err != nil {
		return "from_time must be in HH:MM format"
	}
	to, err := time.Parse("15:04", req.ToTime)
	if err != nil {
		return "to_time must be in HH:MM format"
	}
	if !from.Before(to) {
		return "from_time must be before to_time"
	}
	if to.Sub(from) < time.Duration(req.SlotDurationMinutes)*time.Minute {
		return "Daily window is shorter than one slot"
	}

	if !req.Monday && !req.Tuesday && !req.Wednesday && !req.Thursday &&
		!req.Friday && !req.Saturday && !req.Sunday {
		return "At least one weekday must be selected"
	}

	return ""
}
