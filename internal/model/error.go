package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON      = "INVALID_JSON"
	ErrCodeMissingField     = "MISSING_FIELD"
	ErrCodeInvalidParameter = "INVALID_PARAMETER"
	ErrCodeInvalidRating    = "INVALID_RATING"
	ErrCodeInvalidPrice     = "INVALID_PRICE"
	ErrCodeProductNotFound  = "PRODUCT_NOT_FOUND"
	ErrCodeReviewNotFound   = "REVIEW_NOT_FOUND"
	ErrCodeUnauthorised     = "UNAUTHORIZED"
	ErrCodeInternalError    = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrInvalidRating   = NewDomainError(ErrCodeInvalidRating, "Rating must be between 1 and 5")
	ErrMissingName     = NewDomainError(ErrCodeMissingField, "Product name is required")
	ErrMissingPrice    = NewDomainError(ErrCodeMissingField, "Product price is required")
	ErrMissingUserName = NewDomainError(ErrCodeMissingField, "Review user name is required")
	ErrInvalidPrice    = NewDomainError(ErrCodeInvalidPrice, "Price must not be negative")
	ErrProductNotFound = NewDomainError(ErrCodeProductNotFound, "Product not found")
	ErrReviewNotFound  = NewDomainError(ErrCodeReviewNotFound, "Review not found")
	ErrUnknownStrategy = NewDomainError(ErrCodeInvalidParameter, "Fetch strategy must be lazy or eager")
)
