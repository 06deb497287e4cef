package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	MinRating = 1
	MaxRating = 5
)

// Review is a customer rating of a product. ProductID refers back to the
// owning product by identity only.
type Review struct {
	ID        uuid.UUID
	ProductID uuid.UUID
	UserName  string
	Rating    int
	Comment   string
	CreatedAt time.Time
}

// NewReview creates a review after validating the author and rating.
func NewReview(userName string, rating int, comment string) (*Review, error) {
	if strings.TrimSpace(userName) == "" {
		return nil, ErrMissingUserName
	}
	if err := ValidateRating(rating); err != nil {
		return nil, err
	}

	return &Review{
		ID:        uuid.New(),
		UserName:  userName,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// ValidateRating returns ErrInvalidRating unless rating is within 1..5.
func ValidateRating(rating int) error {
	if rating < MinRating || rating > MaxRating {
		return ErrInvalidRating
	}
	return nil
}

// UpdateRating changes the rating, rejecting out-of-range values.
func (r *Review) UpdateRating(rating int) error {
	if err := ValidateRating(rating); err != nil {
		return err
	}
	r.Rating = rating
	return nil
}

// UpdateComment replaces the comment text.
func (r *Review) UpdateComment(comment string) {
	r.Comment = comment
}

// IsPositive reports a rating of 4 or more.
func (r *Review) IsPositive() bool {
	return r.Rating >= 4
}

// IsNegative reports a rating of 2 or less.
func (r *Review) IsNegative() bool {
	return r.Rating <= 2
}

// RatingDescription returns the tier label of the review's rating.
func (r *Review) RatingDescription() string {
	return RatingDescription(r.Rating)
}

// RatingDescription maps a rating to its tier label.
func RatingDescription(rating int) string {
	switch rating {
	case 1:
		return "Very Poor"
	case 2:
		return "Poor"
	case 3:
		return "Average"
	case 4:
		return "Good"
	case 5:
		return "Excellent"
	default:
		return "Unknown"
	}
}

// ReviewStatistics summarises all reviews.
type ReviewStatistics struct {
	TotalReviews    int64   `json:"totalReviews"`
	AverageRating   float64 `json:"averageRating"`
	PositiveReviews int64   `json:"positiveReviews"`
	NegativeReviews int64   `json:"negativeReviews"`
}

// ProductRating is a per-product rating aggregate.
type ProductRating struct {
	ProductID     uuid.UUID `json:"productId"`
	AverageRating float64   `json:"averageRating"`
	ReviewCount   int64     `json:"reviewCount"`
}
