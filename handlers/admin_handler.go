package handlers

import (
	"log"

	"github.com/adityavk98/consult_connect/database"
	"github.com/adityavk98/consult_connect/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type VerificationRequest struct {
	Status string `json:"status" validate:"required,oneof=pending in_review verified rejected"`
}

// SetVerificationStatus moves a professional through the verification
// pipeline. Only verified professionals are bookable.
func SetVerificationStatus(c *fiber.Ctx) error {
	professionalID, err := uuid.Parse(c.Params("professionalId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid professional ID"})
	}

	var req VerificationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var professional models.Professional
	if err := database.DB.First(&professional, "user_id = ?", professionalID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Professional not found"})
	}

	professional.VerificationStatus = req.Status
	if err := database.DB.Save(&professional).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not update verification status"})
	}

	log.Printf("✅ Professional %s verification status set to %s", professionalID, req.Status)
	return c.JSON(professional)
}

// ListProfessionalsForReview shows the admin queue, filterable by status.
func ListProfessionalsForReview(c *fiber.Ctx) error {
	p := pagination(c)

	query := database.DB.Model(&models.Professional{})
	if status := c.Query("status"); status != "" {
		query = query.Where("verification_status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch professionals"})
	}

	var professionals []models.Professional
	err := query.Preload("User").
		Order("created_at ASC").
		Offset(p.Offset).Limit(p.PageSize).
		Find(&professionals).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch professionals"})
	}

	return c.JSON(paginatedResponse(professionals, total, p))
}
