// Package middleware provides HTTP middleware for request validation and processing.
package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/scelleo/Sealed-Market-Tracker-Backend/internal/api/response"
	"github.com/scelleo/Sealed-Market-Tracker-Backend/internal/validation"
)

// ValidateProductIDMiddleware validates that the productId URL parameter is
// present and a valid UUID. Returns 400 Bad Request otherwise.
//
// Example usage in router:
//
//	r.Route("/{productId}", func(r chi.Router) {
//	    r.Use(middleware.ValidateProductIDMiddleware)
//	    r.Get("/metrics", handler.ProductMetrics)
//	})
func ValidateProductIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		productID := chi.URLParam(r, "productId")

		if productID == "" {
			response.RespondError(w, http.StatusBadRequest, "valid product ID is required", "")
			return
		}

		if err := validation.ValidateUUID(productID); err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid product ID format", err.Error())
			return
		}

		next.ServeHTTP(w, r)
	})
}
