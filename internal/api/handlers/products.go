package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/scelleo/Sealed-Market-Tracker-Backend/internal/api/request"
	"github.com/scelleo/Sealed-Market-Tracker-Backend/internal/apperrors"
	"github.com/scelleo/Sealed-Market-Tracker-Backend/internal/model"
	"github.com/scelleo/Sealed-Market-Tracker-Backend/internal/service"
)

// ProductHandler handles HTTP requests for product endpoints. It is the
// HTTP-layer adapter: parse the request, delegate to the market service,
// serialize the result.
type ProductHandler struct {
	marketService *service.MarketService
}

// NewProductHandler creates a new ProductHandler with the provided service dependency.
func NewProductHandler(marketService *service.MarketService) *ProductHandler {
	return &ProductHandler{
		marketService: marketService,
	}
}

// Products handles GET requests to retrieve all tracked products.
//
// Endpoint: GET /api/product
// Response: 200 OK with array of products
// Error: 500 Internal Server Error if retrieval fails
func (h *ProductHandler) Products(w http.ResponseWriter, r *http.Request) {
	products, err := h.marketService.GetProducts()
	if err != nil {
		errorResponse := map[string]string{
			"error":  apperrors.ErrFailedToRetrieveProducts.Error(),
			"detail": err.Error(),
		}
		respondJSON(w, http.StatusInternalServerError, errorResponse)
		return
	}

	respondJSON(w, http.StatusOK, products)
}

// CreateProductRequest is the POST body for adding a product to the catalog.
type CreateProductRequest struct {
	Name        string  `json:"name"`
	SeriesName  string  `json:"seriesName"`
	RetailPrice float64 `json:"retailPrice"`
	EAN         string  `json:"ean"`
	Language    string  `json:"language"`
}

// CreateProduct handles POST requests adding a product to the catalog.
//
// Endpoint: POST /api/product
// Response: 201 Created with the stored product
// Error: 400 on missing name or negative retail price
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	product, err := h.marketService.CreateProduct(model.Product{
		Name:        req.Name,
		SeriesName:  req.SeriesName,
		RetailPrice: req.RetailPrice,
		EAN:         req.EAN,
		Language:    req.Language,
	})
	if errors.Is(err, apperrors.ErrMissingRequiredField) || errors.Is(err, apperrors.ErrNegativePrice) {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err != nil {
		errorResponse := map[string]string{
			"error":  apperrors.ErrFailedToRetrieveProducts.Error(),
			"detail": err.Error(),
		}
		respondJSON(w, http.StatusInternalServerError, errorResponse)
		return
	}

	respondJSON(w, http.StatusCreated, product)
}

// AddPriceRequest is the POST body for a manual price observation.
type AddPriceRequest struct {
	ObservedAt string  `json:"observedAt"` // YYYY-MM-DD, defaults to now
	Price      float64 `json:"price"`
	Source     string  `json:"source"`
}

// AddPrice handles POST requests recording a manual price observation.
//
// Endpoint: POST /api/product/{productId}/price
// Response: 201 Created with the stored observation
// Error: 400 on non-positive price or bad date, 404 on unknown product
func (h *ProductHandler) AddPrice(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")

	var req AddPriceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	var observedAt time.Time
	if req.ObservedAt != "" {
		parsed, err := time.Parse("2006-01-02", req.ObservedAt)
		if err != nil {
			respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid observedAt date"})
			return
		}
		observedAt = parsed.UTC()
	}

	obs, err := h.marketService.AddObservation(productID, observedAt, req.Price, req.Source)
	if errors.Is(err, apperrors.ErrNegativePrice) {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if errors.Is(err, apperrors.ErrProductNotFound) {
		respondJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	if err != nil {
		errorResponse := map[string]string{
			"error":  apperrors.ErrFailedToRetrievePrices.Error(),
			"detail": err.Error(),
		}
		respondJSON(w, http.StatusInternalServerError, errorResponse)
		return
	}

	respondJSON(w, http.StatusCreated, obs)
}

// ProductMetrics handles GET requests for one product's finance metrics.
//
// Endpoint: GET /api/product/{productId}/metrics?asOf=YYYY-MM-DD
// Response: 200 OK with the product and its FinanceMetrics
// Error: 404 if the product does not exist, 500 on computation failure
func (h *ProductHandler) ProductMetrics(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")

	asOf, err := request.ParseAsOf(r.URL.Query().Get("asOf"), time.Now())
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	metrics, err := h.marketService.GetProductMetrics(productID, asOf)
	if errors.Is(err, apperrors.ErrProductNotFound) {
		respondJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	if err != nil {
		errorResponse := map[string]string{
			"error":  apperrors.ErrFailedToComputeMetrics.Error(),
			"detail": err.Error(),
		}
		respondJSON(w, http.StatusInternalServerError, errorResponse)
		return
	}

	respondJSON(w, http.StatusOK, metrics)
}

// AllProductMetrics handles GET requests for the whole catalog's metrics.
//
// Endpoint: GET /api/product/metrics?asOf=YYYY-MM-DD
// Response: 200 OK with an array of product/metrics pairs
func (h *ProductHandler) AllProductMetrics(w http.ResponseWriter, r *http.Request) {
	asOf, err := request.ParseAsOf(r.URL.Query().Get("asOf"), time.Now())
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	metrics, err := h.marketService.GetAllProductMetrics(r.Context(), asOf)
	if err != nil {
		errorResponse := map[string]string{
			"error":  apperrors.ErrFailedToComputeMetrics.Error(),
			"detail": err.Error(),
		}
		respondJSON(w, http.StatusInternalServerError, errorResponse)
		return
	}

	respondJSON(w, http.StatusOK, metrics)
}
