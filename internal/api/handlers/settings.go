package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/scelleo/Sealed-Market-Tracker-Backend/internal/apperrors"
	"github.com/scelleo/Sealed-Market-Tracker-Backend/internal/service"
	"github.com/scelleo/Sealed-Market-Tracker-Backend/internal/validation"
)

// SettingsHandler handles HTTP requests for application settings.
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler with the provided service dependency.
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
	}
}

// MarketplaceTokenRequest is the PUT body for storing a marketplace token.
type MarketplaceTokenRequest struct {
	Token string `json:"token"`
}

// MarketplaceTokenStatus handles GET requests for the token configuration
// state. The token itself is never returned.
//
// Endpoint: GET /api/settings/marketplace-token
func (h *SettingsHandler) MarketplaceTokenStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.settingsService.MarketplaceTokenStatus()
	if err != nil {
		errorResponse := map[string]string{
			"error":  apperrors.ErrFailedToRetrieveSetting.Error(),
			"detail": err.Error(),
		}
		respondJSON(w, http.StatusInternalServerError, errorResponse)
		return
	}

	respondJSON(w, http.StatusOK, status)
}

// SetMarketplaceToken handles PUT requests storing a new marketplace token.
//
// Endpoint: PUT /api/settings/marketplace-token
// Error: 400 on empty token, 503 when no encryption key is configured
func (h *SettingsHandler) SetMarketplaceToken(w http.ResponseWriter, r *http.Request) {
	var req MarketplaceTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if err := validation.ValidateMarketplaceToken(req.Token); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "token is required"})
		return
	}

	err := h.settingsService.SetMarketplaceToken(req.Token)
	if errors.Is(err, apperrors.ErrEncryptionUnavailable) {
		respondJSON(w, http.StatusServiceUnavailable, map[string]string{"error": err.Error()})
		return
	}
	if err != nil {
		errorResponse := map[string]string{
			"error":  apperrors.ErrFailedToStoreSetting.Error(),
			"detail": err.Error(),
		}
		respondJSON(w, http.StatusInternalServerError, errorResponse)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "success"})
}
