package services

import (
	"errors"

	"github.com/adityavk98/consult_connect/database"
	"github.com/adityavk98/consult_connect/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CreateReview records a client's rating of a professional and recomputes
// the professional's review summary in the same transaction. Eligibility:
// at least one completed booking between the pair, and no prior review.
func CreateReview(clientID, professionalID uuid.UUID, rating int, note string) (*models.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, NewValidationError("rating must be between 1 and 5")
	}

	var review models.Review
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var professional models.Professional
		if err := tx.First(&professional, "user_id = ?", professionalID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NewNotFoundError("professional not found")
			}
			return err
		}

		var completedCount int64
		tx.Model(&models.Booking{}).
			Where("client_id = ? AND professional_id = ? AND status = ?",
				clientID, professionalID, models.BookingCompleted).
			Count(&completedCount)
		if completedCount == 0 {
			return NewPolicyViolationError("reviews can only be written after a completed consultation")
		}

		var existing models.Review
		err := tx.Where("client_id = ? AND professional_id = ?", clientID, professionalID).
			First(&existing).Error
		if err == nil {
			return NewConflictError("you have already reviewed this professional")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		review = models.Review{
			ClientID:       clientID,
			ProfessionalID: professionalID,
			Rating:         rating,
			ReviewNote:     note,
		}
		if err := tx.Create(&review).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return NewConflictError("you have already reviewed this professional")
			}
			return err
		}

		return RecomputeReviewSummary(tx, professionalID)
	})
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// RecomputeReviewSummary rebuilds the denormalized star-distribution row
// for a professional from the reviews table.
func RecomputeReviewSummary(tx *gorm.DB, professionalID uuid.UUID) error {
	type ratingCount struct {
		Rating int
		Count  int
	}
	var counts []ratingCount
	err := tx.Model(&models.Review{}).
		Select("rating, count(*) as count").
		Where("professional_id = ?", professionalID).
		Group("rating").
		Scan(&counts).Error
	if err != nil {
		return err
	}

	summary := models.ReviewSummary{ProfessionalID: professionalID}
	total := 0
	weighted := 0
	for _, rc := range counts {
		total += rc.Count
		weighted += rc.Rating * rc.Count
		switch rc.Rating {
		case 5:
			summary.FiveStarCount = rc.Count
		case 4:
			summary.FourStarCount = rc.Count
		case 3:
			summary.ThreeStarCount = rc.Count
		case 2:
			summary.TwoStarCount = rc.Count
		case 1:
			summary.OneStarCount = rc.Count
		}
	}
	summary.TotalReviews = total
	if total > 0 {
		summary.AverageRating = float64(weighted) / float64(total)
	}

	return tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&summary).Error
}

// GetReviewSummary returns the aggregate for a professional, lazily
// creating an empty row the first time it is requested.
func GetReviewSummary(professionalID uuid.UUID) (*models.ReviewSummary, error) {
	var professional models.Professional
	if err := database.DB.First(&professional, "user_id = ?", professionalID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("professional not found")
		}
		return nil, err
	}

	var summary models.ReviewSummary
	err := database.DB.First(&summary, "professional_id = ?", professionalID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if err := RecomputeReviewSummary(database.DB, professionalID); err != nil {
			return nil, err
		}
		err = database.DB.First(&summary, "professional_id = ?", professionalID).Error
	}
	if err != nil {
		return nil, err
	}
	return &summary, nil
}
