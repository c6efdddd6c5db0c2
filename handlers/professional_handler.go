package handlers

import (
	"github.com/adityavk98/consult_connect/database"
	"github.com/adityavk98/consult_connect/models"
	"github.com/adityavk98/consult_connect/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ListVerifiedProfessionals is the public directory. Only verified
// professionals appear; optional filters on expertise and location.
func ListVerifiedProfessionals(c *fiber.Ctx) error {
	p := pagination(c)

	query := database.DB.Model(&models.Professional{}).
		Where("verification_status = ?", models.VerificationVerified)

	if expertise := c.Query("expertise"); expertise != "" {
		query = query.Where("area_of_expertise ILIKE ?", "%"+expertise+"%")
	}
	if location := c.Query("location"); location != "" {
		query = query.Where("location ILIKE ?", "%"+location+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch professionals"})
	}

	var professionals []models.Professional
	err := query.Preload("User").
		Order("total_consultations DESC").
		Offset(p.Offset).Limit(p.PageSize).
		Find(&professionals).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch professionals"})
	}

	return c.JSON(paginatedResponse(professionals, total, p))
}

// GetProfessionalProfile returns one verified professional's public
// profile together with their pricing and review summary.
func GetProfessionalProfile(c *fiber.Ctx) error {
	professionalID, err := uuid.Parse(c.Params("professionalId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid professional ID"})
	}

	var professional models.Professional
	err = database.DB.Preload("User").
		First(&professional, "user_id = ? AND verification_status = ?",
			professionalID, models.VerificationVerified).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Professional not found"})
	}

	var pricing *models.ProfessionalPricing
	var pricingRow models.ProfessionalPricing
	if err := database.DB.First(&pricingRow, "professional_id = ?", professionalID).Error; err == nil {
		pricing = &pricingRow
	}

	summary, err := services.GetReviewSummary(professionalID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"professional":   professional,
		"pricing":        pricing,
		"review_summary": summary,
	})
}
