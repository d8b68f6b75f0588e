package handlers

import (
	"net/http"
	"time"

	"github.com/scelleo/Sealed-Market-Tracker-Backend/internal/api/request"
	"github.com/scelleo/Sealed-Market-Tracker-Backend/internal/apperrors"
	"github.com/scelleo/Sealed-Market-Tracker-Backend/internal/service"
)

// SeriesHandler handles HTTP requests for series rollup endpoints.
type SeriesHandler struct {
	seriesService *service.SeriesService
}

// NewSeriesHandler creates a new SeriesHandler with the provided service dependency.
func NewSeriesHandler(seriesService *service.SeriesService) *SeriesHandler {
	return &SeriesHandler{
		seriesService: seriesService,
	}
}

// Summaries handles GET requests for all series finance summaries.
//
// Endpoint: GET /api/series?asOf=YYYY-MM-DD
func (h *SeriesHandler) Summaries(w http.ResponseWriter, r *http.Request) {
	asOf, err := request.ParseAsOf(r.URL.Query().Get("asOf"), time.Now())
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	summaries, err := h.seriesService.GetSummaries(asOf)
	if err != nil {
		errorResponse := map[string]string{
			"error":  apperrors.ErrFailedToBuildSeriesSummaries.Error(),
			"detail": err.Error(),
		}
		respondJSON(w, http.StatusInternalServerError, errorResponse)
		return
	}

	respondJSON(w, http.StatusOK, summaries)
}

// KPIs handles GET requests for the cross-series KPI aggregates.
//
// Endpoint: GET /api/series/kpis?asOf=YYYY-MM-DD
func (h *SeriesHandler) KPIs(w http.ResponseWriter, r *http.Request) {
	asOf, err := request.ParseAsOf(r.URL.Query().Get("asOf"), time.Now())
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	kpis, err := h.seriesService.GetKPIs(asOf)
	if err != nil {
		errorResponse := map[string]string{
			"error":  apperrors.ErrFailedToBuildSeriesSummaries.Error(),
			"detail": err.Error(),
		}
		respondJSON(w, http.StatusInternalServerError, errorResponse)
		return
	}

	respondJSON(w, http.StatusOK, kpis)
}

// Signals handles GET requests for per-series qualitative signals.
//
// Endpoint: GET /api/series/signals?asOf=YYYY-MM-DD
func (h *SeriesHandler) Signals(w http.ResponseWriter, r *http.Request) {
	asOf, err := request.ParseAsOf(r.URL.Query().Get("asOf"), time.Now())
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	signals, err := h.seriesService.GetSignals(asOf)
	if err != nil {
		errorResponse := map[string]string{
			"error":  apperrors.ErrFailedToBuildSeriesSummaries.Error(),
			"detail": err.Error(),
		}
		respondJSON(w, http.StatusInternalServerError, errorResponse)
		return
	}

	respondJSON(w, http.StatusOK, signals)
}
