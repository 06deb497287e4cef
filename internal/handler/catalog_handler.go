package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"catalog-n1/internal/model"
	"catalog-n1/internal/service"

	"github.com/rs/zerolog"
)

const comparisonDescription = "N+1 vs Optimized query performance comparison"

// retrievalsHeader carries the number of store calls a listing took.
const retrievalsHeader = "X-Store-Retrievals"

// CatalogHandler exposes both listing plans and their comparison.
type CatalogHandler struct {
	service service.CatalogService
	logger  zerolog.Logger
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(service service.CatalogService, logger zerolog.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		logger:  logger.With().Str("handler", "catalog").Logger(),
	}
}

// ListWithN1 handles GET /api/v1/products/with-n1-bug requests.
func (h *CatalogHandler) ListWithN1(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListWithN1(r.Context())
	if err != nil {
		writeServiceError(w, err, "failed to retrieve products", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, products)
}

// ListOptimized handles GET /api/v1/products/optimized requests.
func (h *CatalogHandler) ListOptimized(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListOptimized(r.Context())
	if err != nil {
		writeServiceError(w, err, "failed to retrieve products", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, products)
}

// List handles GET /api/v1/products/fetch?strategy=lazy|eager requests.
// The strategy defaults to eager.
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	strategy := service.FetchEager
	if raw := r.URL.Query().Get("strategy"); raw != "" {
		parsed, err := service.ParseFetchStrategy(raw)
		if err != nil {
			writeServiceError(w, err, "invalid fetch strategy", h.logger)
			return
		}
		strategy = parsed
	}

	products, retrievals, err := h.service.List(r.Context(), strategy)
	if err != nil {
		writeServiceError(w, err, "failed to retrieve products", h.logger)
		return
	}

	w.Header().Set(retrievalsHeader, strconv.Itoa(retrievals))
	writeJSON(w, http.StatusOK, products)
}

// ComparePerformance handles GET /api/v1/products/performance-comparison requests.
func (h *CatalogHandler) ComparePerformance(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ComparePerformance(r.Context())
	if err != nil {
		writeServiceError(w, err, "failed to compare performance", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, newComparisonResponse(result))
}

func newComparisonResponse(c *service.PerformanceComparison) model.PerformanceComparisonResponse {
	return model.PerformanceComparisonResponse{
		N1ExecutionTimeMs:        c.N1ExecutionTime.Milliseconds(),
		OptimizedExecutionTimeMs: c.OptimizedExecutionTime.Milliseconds(),
		N1ProductCount:           c.N1ProductCount,
		OptimizedProductCount:    c.OptimizedProductCount,
		N1QueryCount:             c.N1Retrievals,
		OptimizedQueryCount:      c.OptimizedRetrievals,
		PerformanceImprovement:   fmt.Sprintf("%.2f%%", c.Improvement()),
		Description:              comparisonDescription,
	}
}
