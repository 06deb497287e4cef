package router

import (
	"net/http"

	"catalog-n1/internal/handler"
	"catalog-n1/internal/middleware"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Handlers groups the HTTP handlers served by the router.
type Handlers struct {
	Catalog *handler.CatalogHandler
	Product *handler.ProductHandler
	Review  *handler.ReviewHandler
}

// New creates a new HTTP router with all routes and middleware configured.
// Metrics are registered with reg and exposed from gatherer on /metrics.
func New(
	h Handlers,
	apiKey string,
	reg prometheus.Registerer,
	gatherer prometheus.Gatherer,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})
	mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	// Retrieval plans
	mux.HandleFunc("GET /api/v1/products/fetch", h.Catalog.List)
	mux.HandleFunc("GET /api/v1/products/with-n1-bug", h.Catalog.ListWithN1)
	mux.HandleFunc("GET /api/v1/products/optimized", h.Catalog.ListOptimized)
	mux.HandleFunc("GET /api/v1/products/performance-comparison", h.Catalog.ComparePerformance)

	// Products
	mux.HandleFunc("GET /api/v1/products", h.Product.List)
	mux.HandleFunc("POST /api/v1/products", h.Product.Create)
	mux.HandleFunc("GET /api/v1/products/top-rated", h.Product.TopRated)
	mux.HandleFunc("GET /api/v1/products/{id}", h.Product.GetByID)
	mux.HandleFunc("PUT /api/v1/products/{id}", h.Product.Update)
	mux.HandleFunc("DELETE /api/v1/products/{id}", h.Product.Delete)
	mux.HandleFunc("PATCH /api/v1/products/{id}/price", h.Product.UpdatePrice)
	mux.HandleFunc("GET /api/v1/statistics", h.Product.Statistics)

	// Reviews
	mux.HandleFunc("GET /api/v1/products/{id}/reviews", h.Review.ListByProduct)
	mux.HandleFunc("POST /api/v1/products/{id}/reviews", h.Review.Add)
	mux.HandleFunc("GET /api/v1/products/{id}/rating", h.Review.Rating)
	mux.HandleFunc("GET /api/v1/reviews", h.Review.Search)
	mux.HandleFunc("PATCH /api/v1/reviews/{id}", h.Review.Update)
	mux.HandleFunc("DELETE /api/v1/reviews/{id}", h.Review.Delete)

	// Apply middleware in order: Recovery -> Logging -> CORS -> Metrics -> APIKeyAuth
	var handler http.Handler = mux
	handler = middleware.APIKeyAuth(apiKey, logger)(handler)
	handler = middleware.Metrics(reg)(handler)
	handler = middleware.CORS(handler)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.Recovery(logger)(handler)

	return handler
}
