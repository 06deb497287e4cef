package model

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a catalogue entry that owns its reviews.
//
// Reviews is nil until the reviews have been loaded. A product whose
// reviews were loaded but which has none carries an empty, non-nil slice.
type Product struct {
	ID          uuid.UUID
	Name        string
	Description string
	Price       decimal.Decimal
	Category    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Reviews     []Review
}

// NewProduct creates a product with a fresh identity and timestamps.
func NewProduct(name, description string, price decimal.Decimal, category string) (*Product, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrMissingName
	}
	if price.IsNegative() {
		return nil, ErrInvalidPrice
	}

	now := time.Now().UTC()
	return &Product{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		Price:       price,
		Category:    category,
		CreatedAt:   now,
		UpdatedAt:   now,
		Reviews:     []Review{},
	}, nil
}

// AddReview attaches a review to the product.
func (p *Product) AddReview(review Review) {
	review.ProductID = p.ID
	if p.Reviews == nil {
		p.Reviews = []Review{}
	}
	p.Reviews = append(p.Reviews, review)
	p.touch()
}

// RemoveReview detaches the review with the given ID and reports whether it was present.
func (p *Product) RemoveReview(id uuid.UUID) bool {
	for i, r := range p.Reviews {
		if r.ID == id {
			p.Reviews = slices.Delete(slices.Clone(p.Reviews), i, i+1)
			p.touch()
			return true
		}
	}
	return false
}

// SetReviews replaces the loaded review collection.
func (p *Product) SetReviews(reviews []Review) {
	if reviews == nil {
		reviews = []Review{}
	}
	p.Reviews = reviews
}

// UpdatePrice changes the product price.
func (p *Product) UpdatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return ErrInvalidPrice
	}
	p.Price = price
	p.touch()
	return nil
}

// UpdateDetails changes the descriptive fields. A blank name keeps the current one.
func (p *Product) UpdateDetails(name, description, category string) {
	if strings.TrimSpace(name) != "" {
		p.Name = name
	}
	p.Description = description
	p.Category = category
	p.touch()
}

// ReviewsLoaded reports whether the review collection has been fetched.
func (p *Product) ReviewsLoaded() bool {
	return p.Reviews != nil
}

// HasReviews reports whether at least one review is loaded.
func (p *Product) HasReviews() bool {
	return len(p.Reviews) > 0
}

// ReviewCount returns the number of loaded reviews.
func (p *Product) ReviewCount() int {
	return len(p.Reviews)
}

// AverageRating returns the mean rating of the loaded reviews, or 0 when there are none.
func (p *Product) AverageRating() float64 {
	if len(p.Reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range p.Reviews {
		sum += r.Rating
	}
	return float64(sum) / float64(len(p.Reviews))
}

func (p *Product) touch() {
	p.UpdatedAt = time.Now().UTC()
}

// ProductFilter narrows product listings. Nil fields are not applied.
type ProductFilter struct {
	Category  *string
	MinPrice  *decimal.Decimal
	MaxPrice  *decimal.Decimal
	MinRating *float64
}

// ProductStatistics summarises the whole catalogue.
type ProductStatistics struct {
	TotalProducts   int64
	TotalCategories int64
	AveragePrice    decimal.Decimal
	MinPrice        decimal.Decimal
	MaxPrice        decimal.Decimal
}
