package handler

import (
	"net/http"
	"strconv"

	"catalog-n1/internal/model"
	"catalog-n1/internal/service"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// ProductHandler handles product-related HTTP requests.
type ProductHandler struct {
	service service.ProductService
	logger  zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(service service.ProductService, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger.With().Str("handler", "product").Logger(),
	}
}

// List handles GET /api/v1/products requests with optional filters.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, ok := h.parseFilter(w, r)
	if !ok {
		return
	}

	products, err := h.service.List(r.Context(), filter)
	if err != nil {
		writeServiceError(w, err, "failed to retrieve products", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, model.NewProductResponses(products, true))
}

// Create handles POST /api/v1/products requests.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateProductRequest
	if !decodeBody(w, r, &req, h.logger) {
		return
	}

	product, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err, "failed to create product", h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, model.NewProductResponse(*product, true))
}

// GetByID handles GET /api/v1/products/{id} requests.
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", h.logger)
	if !ok {
		return
	}

	product, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "failed to retrieve product", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, model.NewProductResponse(*product, true))
}

// Update handles PUT /api/v1/products/{id} requests.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", h.logger)
	if !ok {
		return
	}

	var req model.UpdateProductRequest
	if !decodeBody(w, r, &req, h.logger) {
		return
	}

	product, err := h.service.UpdateDetails(r.Context(), id, &req)
	if err != nil {
		writeServiceError(w, err, "failed to update product", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, model.NewProductResponse(*product, true))
}

// UpdatePrice handles PATCH /api/v1/products/{id}/price requests.
func (h *ProductHandler) UpdatePrice(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", h.logger)
	if !ok {
		return
	}

	var req model.UpdatePriceRequest
	if !decodeBody(w, r, &req, h.logger) {
		return
	}
	if req.Price == nil {
		writeServiceError(w, model.ErrMissingPrice, "", h.logger)
		return
	}

	product, err := h.service.UpdatePrice(r.Context(), id, *req.Price)
	if err != nil {
		writeServiceError(w, err, "failed to update price", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, model.NewProductResponse(*product, true))
}

// Delete handles DELETE /api/v1/products/{id} requests.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", h.logger)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err, "failed to delete product", h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// TopRated handles GET /api/v1/products/top-rated requests.
func (h *ProductHandler) TopRated(w http.ResponseWriter, r *http.Request) {
	minReviews, ok := h.intParam(w, r, "min_reviews", 1)
	if !ok {
		return
	}
	limit, ok := h.intParam(w, r, "limit", 10)
	if !ok {
		return
	}

	ratings, err := h.service.TopRated(r.Context(), minReviews, limit)
	if err != nil {
		writeServiceError(w, err, "failed to retrieve top rated products", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, ratings)
}

// Statistics handles GET /api/v1/statistics requests.
func (h *ProductHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Statistics(r.Context())
	if err != nil {
		writeServiceError(w, err, "failed to retrieve statistics", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

func (h *ProductHandler) parseFilter(w http.ResponseWriter, r *http.Request) (model.ProductFilter, bool) {
	var filter model.ProductFilter
	query := r.URL.Query()

	if category := query.Get("category"); category != "" {
		filter.Category = &category
	}

	for _, p := range []struct {
		name string
		dst  **decimal.Decimal
	}{
		{"min_price", &filter.MinPrice},
		{"max_price", &filter.MaxPrice},
	} {
		raw := query.Get(p.name)
		if raw == "" {
			continue
		}
		value, err := decimal.NewFromString(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, model.ErrCodeInvalidParameter, "invalid "+p.name+" parameter", h.logger)
			return filter, false
		}
		*p.dst = &value
	}

	if raw := query.Get("min_rating"); raw != "" {
		rating, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, model.ErrCodeInvalidParameter, "invalid min_rating parameter", h.logger)
			return filter, false
		}
		filter.MinRating = &rating
	}

	return filter, true
}

func (h *ProductHandler) intParam(w http.ResponseWriter, r *http.Request, name string, def int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, true
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidParameter, "invalid "+name+" parameter", h.logger)
		return 0, false
	}
	return value, true
}
