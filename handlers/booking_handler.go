package handlers

import (
	"fmt"
	"time"

	"github.com/adityavk98/consult_connect/database"
	"github.com/adityavk98/consult_connect/models"
	"github.com/adityavk98/consult_connect/notifications"
	"github.com/adityavk98/consult_connect/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	ProfessionalID      string `json:"professional_id" validate:"required,uuid"`
	SlotID              string `json:"slot_id" validate:"required,len=32,hexadecimal"`
	ConsultationType    string `json:"consultation_type" validate:"required,oneof=online offline"`
	ProblemDescription  string `json:"problem_description" validate:"max=2000"`
	ContactPreference   string `json:"contact_preference" validate:"omitempty,oneof=email phone"`
	ConsultationAddress string `json:"consultation_address" validate:"max=500"`
}

type ConfirmBookingRequest struct {
	MeetingLink         string `json:"meeting_link" validate:"omitempty,url"`
	MeetingID           string `json:"meeting_id" validate:"max=100"`
	MeetingPassword     string `json:"meeting_password" validate:"max=100"`
	ConsultationAddress string `json:"consultation_address" validate:"max=500"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason" validate:"max=1000"`
}

// CreateBooking claims a slot for the authenticated client and opens a
// pending booking against it.
func CreateBooking(c *fiber.Ctx) error {
	clientID := currentUserID(c)

	var req CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	professionalID, _ := uuid.Parse(req.ProfessionalID)

	booking, err := services.CreateBooking(clientID, professionalID, services.CreateBookingInput{
		SlotID:              req.SlotID,
		ConsultationType:    req.ConsultationType,
		ProblemDescription:  req.ProblemDescription,
		ContactPreference:   req.ContactPreference,
		ConsultationAddress: req.ConsultationAddress,
	}, time.Now())
	if err != nil {
		return respondServiceError(c, err)
	}

	go notifyBookingParties(booking.ID, "Consultation request received",
		"A new consultation has been requested. The professional will confirm it shortly.")

	return c.Status(fiber.StatusCreated).JSON(booking)
}

// ConfirmBooking lets the assigned professional accept a pending booking
// and attach the meeting details.
func ConfirmBooking(c *fiber.Ctx) error {
	professionalID := currentUserID(c)

	bookingID, err := uuid.Parse(c.Params("bookingId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking ID"})
	}

	var req ConfirmBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	booking, err := services.ConfirmBooking(professionalID, bookingID, services.ConfirmBookingInput{
		MeetingLink:         req.MeetingLink,
		MeetingID:           req.MeetingID,
		MeetingPassword:     req.MeetingPassword,
		ConsultationAddress: req.ConsultationAddress,
	}, time.Now())
	if err != nil {
		return respondServiceError(c, err)
	}

	go notifyBookingParties(booking.ID, "Consultation confirmed",
		"Your consultation has been confirmed. Meeting details are available on the booking.")

	return c.JSON(booking)
}

// CompleteBooking marks a confirmed booking as completed.
func CompleteBooking(c *fiber.Ctx) error {
	professionalID := currentUserID(c)

	bookingID, err := uuid.Parse(c.Params("bookingId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking ID"})
	}

	booking, err := services.CompleteBooking(professionalID, bookingID, time.Now())
	if err != nil {
		return respondServiceError(c, err)
	}

	go notifyBookingParties(booking.ID, "Consultation completed",
		"Your consultation has been marked as completed. You can now leave a review.")

	return c.JSON(booking)
}

// CancelBooking cancels a booking for either party and frees its slot.
func CancelBooking(c *fiber.Ctx) error {
	userID := currentUserID(c)

	bookingID, err := uuid.Parse(c.Params("bookingId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking ID"})
	}

	var req CancelBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	booking, err := services.CancelBooking(userID, bookingID, req.Reason, time.Now())
	if err != nil {
		return respondServiceError(c, err)
	}

	go notifyBookingParties(booking.ID, "Consultation cancelled",
		"The consultation has been cancelled and the slot has been released.")

	return c.JSON(booking)
}

// GetMyBookings lists the authenticated client's bookings, optionally
// filtered by status.
func GetMyBookings(c *fiber.Ctx) error {
	clientID := currentUserID(c)
	p := pagination(c)

	query := database.DB.Model(&models.Booking{}).Where("client_id = ?", clientID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch bookings"})
	}

	var bookings []models.Booking
	err := query.Preload("Slot").Preload("Professional.User").
		Order("created_at DESC").
		Offset(p.Offset).Limit(p.PageSize).
		Find(&bookings).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch bookings"})
	}

	return c.JSON(paginatedResponse(bookings, total, p))
}

// GetProfessionalBookings lists bookings assigned to the authenticated
// professional.
func GetProfessionalBookings(c *fiber.Ctx) error {
	professionalID := currentUserID(c)
	p := pagination(c)

	query := database.DB.Model(&models.Booking{}).Where("professional_id = ?", professionalID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch bookings"})
	}

	var bookings []models.Booking
	err := query.Preload("Slot").Preload("Client").
		Order("created_at DESC").
		Offset(p.Offset).Limit(p.PageSize).
		Find(&bookings).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch bookings"})
	}

	return c.JSON(paginatedResponse(bookings, total, p))
}

// GetBookingDetail returns one booking visible to the caller.
func GetBookingDetail(c *fiber.Ctx) error {
	userID := currentUserID(c)

	bookingID, err := uuid.Parse(c.Params("bookingId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking ID"})
	}

	booking, err := services.GetBookingForUser(userID, bookingID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(booking)
}

// notifyBookingParties emails both sides of a booking. Fire-and-forget:
// failures are logged by the email service, never surfaced to the caller.
func notifyBookingParties(bookingID uuid.UUID, subject, message string) {
	var booking models.Booking
	err := database.DB.Preload("Client").Preload("Professional.User").Preload("Slot").
		First(&booking, "id = ?", bookingID).Error
	if err != nil {
		return
	}

	body := fmt.Sprintf("<p>%s</p><p>Consultation time: %s</p>",
		message, booking.Slot.StartTime.Format("Mon, 02 Jan 2006 15:04 MST"))

	notifications.SendEmail(booking.Client.FullName, booking.Client.Email, subject, body)
	notifications.SendEmail(booking.Professional.User.FullName, booking.Professional.User.Email, subject, body)
}
