package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/scelleo/Sealed-Market-Tracker-Backend/internal/api/handlers"
	custommiddleware "github.com/scelleo/Sealed-Market-Tracker-Backend/internal/api/middleware"
	"github.com/scelleo/Sealed-Market-Tracker-Backend/internal/config"
	"github.com/scelleo/Sealed-Market-Tracker-Backend/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	systemService *service.SystemService,
	marketService *service.MarketService,
	indexService *service.IndexService,
	seriesService *service.SeriesService,
	settingsService *service.SettingsService,
	cfg *config.Config,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(systemService)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/product", func(r chi.Router) {
			productHandler := handlers.NewProductHandler(marketService)
			r.Get("/", productHandler.Products)
			r.Post("/", productHandler.CreateProduct)
			r.Get("/metrics", productHandler.AllProductMetrics)
			r.Route("/{productId}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateProductIDMiddleware)
				r.Get("/metrics", productHandler.ProductMetrics)
				r.Post("/price", productHandler.AddPrice)
			})
		})

		r.Route("/index", func(r chi.Router) {
			indexHandler := handlers.NewIndexHandler(indexService)
			r.Get("/", indexHandler.Summary)
			r.Get("/history", indexHandler.History)
			r.Get("/snapshots", indexHandler.Snapshots)
			r.Get("/variation", indexHandler.Variation)
		})

		r.Route("/series", func(r chi.Router) {
			seriesHandler := handlers.NewSeriesHandler(seriesService)
			r.Get("/", seriesHandler.Summaries)
			r.Get("/kpis", seriesHandler.KPIs)
			r.Get("/signals", seriesHandler.Signals)
		})

		r.Route("/settings", func(r chi.Router) {
			settingsHandler := handlers.NewSettingsHandler(settingsService)
			r.Get("/marketplace-token", settingsHandler.MarketplaceTokenStatus)
			r.Put("/marketplace-token", settingsHandler.SetMarketplaceToken)
		})
	})

	return r
}
