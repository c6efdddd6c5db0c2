package handlers

import (
	"github.com/adityavk98/consult_connect/database"
	"github.com/adityavk98/consult_connect/models"
	"github.com/adityavk98/consult_connect/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CreateReviewRequest struct {
	ProfessionalID string `json:"professional_id" validate:"required,uuid"`
	Rating         int    `json:"rating" validate:"required,min=1,max=5"`
	ReviewNote     string `json:"review_note" validate:"max=2000"`
}

// CreateReview records the authenticated client's rating of a
// professional they have completed a consultation with.
func CreateReview(c *fiber.Ctx) error {
	clientID := currentUserID(c)

	var req CreateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	professionalID, _ := uuid.Parse(req.ProfessionalID)

	review, err := services.CreateReview(clientID, professionalID, req.Rating, req.ReviewNote)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(review)
}

// GetProfessionalReviews is the public review feed for a professional.
func GetProfessionalReviews(c *fiber.Ctx) error {
	professionalID, err := uuid.Parse(c.Params("professionalId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid professional ID"})
	}
	p := pagination(c)

	query := database.DB.Model(&models.Review{}).Where("professional_id = ?", professionalID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch reviews"})
	}

	var reviews []models.Review
	err = query.Preload("Client").
		Order("created_at DESC").
		Offset(p.Offset).Limit(p.PageSize).
		Find(&reviews).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch reviews"})
	}

	return c.JSON(paginatedResponse(reviews, total, p))
}

// GetReviewSummary returns the aggregated star distribution.
func GetReviewSummary(c *fiber.Ctx) error {
	professionalID, err := uuid.Parse(c.Params("professionalId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid professional ID"})
	}

	summary, err := services.GetReviewSummary(professionalID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(summary)
}

// GetMyReviews lists the reviews the authenticated client has written.
func GetMyReviews(c *fiber.Ctx) error {
	clientID := currentUserID(c)

	var reviews []models.Review
	err := database.DB.Where("client_id = ?", clientID).
		Order("created_at DESC").Find(&reviews).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch reviews"})
	}

	return c.JSON(reviews)
}
