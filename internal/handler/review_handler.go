package handler

import (
	"net/http"
	"strconv"

	"catalog-n1/internal/model"
	"catalog-n1/internal/service"

	"github.com/rs/zerolog"
)

// ReviewHandler handles review-related HTTP requests.
type ReviewHandler struct {
	service service.ReviewService
	logger  zerolog.Logger
}

// NewReviewHandler creates a new review handler.
func NewReviewHandler(service service.ReviewService, logger zerolog.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		logger:  logger.With().Str("handler", "review").Logger(),
	}
}

// ListByProduct handles GET /api/v1/products/{id}/reviews requests.
func (h *ReviewHandler) ListByProduct(w http.ResponseWriter, r *http.Request) {
	productID, ok := pathID(w, r, "id", h.logger)
	if !ok {
		return
	}

	reviews, err := h.service.ListByProduct(r.Context(), productID)
	if err != nil {
		writeServiceError(w, err, "failed to retrieve reviews", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, model.NewReviewResponses(reviews))
}

// Rating handles GET /api/v1/products/{id}/rating requests.
func (h *ReviewHandler) Rating(w http.ResponseWriter, r *http.Request) {
	productID, ok := pathID(w, r, "id", h.logger)
	if !ok {
		return
	}

	rating, err := h.service.Rating(r.Context(), productID)
	if err != nil {
		writeServiceError(w, err, "failed to retrieve rating", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, rating)
}

// Add handles POST /api/v1/products/{id}/reviews requests.
func (h *ReviewHandler) Add(w http.ResponseWriter, r *http.Request) {
	productID, ok := pathID(w, r, "id", h.logger)
	if !ok {
		return
	}

	var req model.CreateReviewRequest
	if !decodeBody(w, r, &req, h.logger) {
		return
	}

	review, err := h.service.Add(r.Context(), productID, &req)
	if err != nil {
		writeServiceError(w, err, "failed to add review", h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, model.NewReviewResponse(*review))
}

// Search handles GET /api/v1/reviews requests. Exactly one of rating,
// user or sentiment selects the query.
func (h *ReviewHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var (
		reviews []model.Review
		err     error
	)

	switch {
	case query.Get("rating") != "":
		rating, convErr := strconv.Atoi(query.Get("rating"))
		if convErr != nil {
			writeError(w, http.StatusBadRequest, model.ErrCodeInvalidParameter, "invalid rating parameter", h.logger)
			return
		}
		reviews, err = h.service.FindByRating(r.Context(), rating)
	case query.Get("user") != "":
		reviews, err = h.service.FindByUserName(r.Context(), query.Get("user"))
	case query.Get("sentiment") == "positive":
		reviews, err = h.service.FindPositive(r.Context())
	case query.Get("sentiment") == "negative":
		reviews, err = h.service.FindNegative(r.Context())
	default:
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField,
			"one of rating, user or sentiment=positive|negative is required", h.logger)
		return
	}

	if err != nil {
		writeServiceError(w, err, "failed to retrieve reviews", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, model.NewReviewResponses(reviews))
}

// Update handles PATCH /api/v1/reviews/{id} requests.
func (h *ReviewHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", h.logger)
	if !ok {
		return
	}

	var req model.UpdateReviewRequest
	if !decodeBody(w, r, &req, h.logger) {
		return
	}

	review, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		writeServiceError(w, err, "failed to update review", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, model.NewReviewResponse(*review))
}

// Delete handles DELETE /api/v1/reviews/{id} requests.
func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", h.logger)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err, "failed to delete review", h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
