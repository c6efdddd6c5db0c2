package models

import (
	"time"

	"github.com/google/uuid"
)

// ReviewSummary is the denormalized rating aggregate for a professional,
// recomputed whenever a review is written.
type ReviewSummary struct {
	ProfessionalID uuid.UUID `gorm:"primary_key" json:"professional_id"`

	AverageRating float64 `gorm:"type:numeric(3,2);not null;default:0" json:"average_rating"`
	TotalReviews  int     `gorm:"not null;default:0" json:"total_reviews"`

	FiveStarCount  int `gorm:"not null;default:0" json:"five_star_count"`
	FourStarCount  int `gorm:"not null;default:0" json:"four_star_count"`
	ThreeStarCount int `gorm:"not null;default:0" json:"three_star_count"`
	TwoStarCount   int `gorm:"not null;default:0" json:"two_star_count"`
	OneStarCount   int `gorm:"not null;default:0" json:"one_star_count"`

	LastUpdated time.Time `gorm:"autoUpdateTime" json:"last_updated"`
}
