package model

import (
	"github.com/shopspring/decimal"
)

// CreateProductRequest represents the request payload for creating a product.
type CreateProductRequest struct {
	Name        string                `json:"name"`
	Description string                `json:"description,omitempty"`
	Price       *decimal.Decimal      `json:"price"`
	Category    string                `json:"category,omitempty"`
	Reviews     []CreateReviewRequest `json:"reviews,omitempty"`
}

// UpdateProductRequest represents the request payload for updating product details.
type UpdateProductRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// UpdatePriceRequest represents the request payload for changing a price.
type UpdatePriceRequest struct {
	Price *decimal.Decimal `json:"price"`
}

// CreateReviewRequest represents the request payload for adding a review.
type CreateReviewRequest struct {
	UserName string `json:"userName"`
	Rating   int    `json:"rating"`
	Comment  string `json:"comment,omitempty"`
}

// UpdateReviewRequest represents the request payload for changing a review.
// Nil fields are left untouched.
type UpdateReviewRequest struct {
	Rating  *int    `json:"rating,omitempty"`
	Comment *string `json:"comment,omitempty"`
}
