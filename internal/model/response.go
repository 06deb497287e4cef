package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TimestampLayout is the wire format of response timestamps.
const TimestampLayout = "2006-01-02 15:04:05"

// Timestamp serialises a time using TimestampLayout.
type Timestamp time.Time

// MarshalJSON implements json.Marshaler.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Time(t).Format(TimestampLayout) + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	parsed, err := time.Parse(`"`+TimestampLayout+`"`, string(data))
	if err != nil {
		return fmt.Errorf("invalid timestamp %s: %w", data, err)
	}
	*t = Timestamp(parsed)
	return nil
}

// ProductResponse is the flat projection of a product and its loaded reviews.
type ProductResponse struct {
	ID            uuid.UUID        `json:"id"`
	Name          string           `json:"name"`
	Description   string           `json:"description,omitempty"`
	Price         float64          `json:"price"`
	Category      string           `json:"category,omitempty"`
	CreatedAt     Timestamp        `json:"createdAt"`
	UpdatedAt     Timestamp        `json:"updatedAt"`
	AverageRating float64          `json:"averageRating"`
	ReviewCount   int              `json:"reviewCount"`
	Reviews       []ReviewResponse `json:"reviews,omitempty"`
}

// ReviewResponse is the projection of a single review.
type ReviewResponse struct {
	ID                uuid.UUID `json:"id"`
	UserName          string    `json:"userName"`
	Rating            int       `json:"rating"`
	RatingDescription string    `json:"ratingDescription"`
	Comment           string    `json:"comment,omitempty"`
	CreatedAt         Timestamp `json:"createdAt"`
	IsPositive        bool      `json:"isPositive"`
	IsNegative        bool      `json:"isNegative"`
}

// NewProductResponse projects a product. Aggregates are computed from the
// reviews already held by p; nothing is fetched here.
func NewProductResponse(p Product, includeReviews bool) ProductResponse {
	resp := ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price.InexactFloat64(),
		Category:      p.Category,
		CreatedAt:     Timestamp(p.CreatedAt),
		UpdatedAt:     Timestamp(p.UpdatedAt),
		AverageRating: p.AverageRating(),
		ReviewCount:   p.ReviewCount(),
	}

	if includeReviews && p.HasReviews() {
		resp.Reviews = NewReviewResponses(p.Reviews)
	}

	return resp
}

// NewProductResponses projects a product list, preserving order.
func NewProductResponses(products []Product, includeReviews bool) []ProductResponse {
	out := make([]ProductResponse, len(products))
	for i, p := range products {
		out[i] = NewProductResponse(p, includeReviews)
	}
	return out
}

// NewReviewResponse projects a review.
func NewReviewResponse(r Review) ReviewResponse {
	return ReviewResponse{
		ID:                r.ID,
		UserName:          r.UserName,
		Rating:            r.Rating,
		RatingDescription: r.RatingDescription(),
		Comment:           r.Comment,
		CreatedAt:         Timestamp(r.CreatedAt),
		IsPositive:        r.IsPositive(),
		IsNegative:        r.IsNegative(),
	}
}

// NewReviewResponses projects a review list, preserving order.
func NewReviewResponses(reviews []Review) []ReviewResponse {
	out := make([]ReviewResponse, len(reviews))
	for i, r := range reviews {
		out[i] = NewReviewResponse(r)
	}
	return out
}

// PerformanceComparisonResponse is the wire form of a strategy comparison.
type PerformanceComparisonResponse struct {
	N1ExecutionTimeMs        int64  `json:"n1ExecutionTime"`
	OptimizedExecutionTimeMs int64  `json:"optimizedExecutionTime"`
	N1ProductCount           int    `json:"n1ProductCount"`
	OptimizedProductCount    int    `json:"optimizedProductCount"`
	N1QueryCount             int    `json:"n1QueryCount"`
	OptimizedQueryCount      int    `json:"optimizedQueryCount"`
	PerformanceImprovement   string `json:"performanceImprovement"`
	Description              string `json:"description"`
}

// ProductStatisticsResponse is the wire form of ProductStatistics. Prices are
// JSON numbers, like ProductResponse.Price.
type ProductStatisticsResponse struct {
	TotalProducts   int64   `json:"totalProducts"`
	TotalCategories int64   `json:"totalCategories"`
	AveragePrice    float64 `json:"averagePrice"`
	MinPrice        float64 `json:"minPrice"`
	MaxPrice        float64 `json:"maxPrice"`
}

// StatisticsResponse combines catalogue and review statistics.
type StatisticsResponse struct {
	Products ProductStatisticsResponse `json:"products"`
	Reviews  ReviewStatistics          `json:"reviews"`
}

// NewStatisticsResponse projects product and review statistics.
func NewStatisticsResponse(products ProductStatistics, reviews ReviewStatistics) StatisticsResponse {
	return StatisticsResponse{
		Products: ProductStatisticsResponse{
			TotalProducts:   products.TotalProducts,
			TotalCategories: products.TotalCategories,
			AveragePrice:    products.AveragePrice.InexactFloat64(),
			MinPrice:        products.MinPrice.InexactFloat64(),
			MaxPrice:        products.MaxPrice.InexactFloat64(),
		},
		Reviews: reviews,
	}
}
