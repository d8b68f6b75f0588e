package handlers

import (
	"net/http"
	"time"

	"github.com/scelleo/Sealed-Market-Tracker-Backend/internal/api/request"
	"github.com/scelleo/Sealed-Market-Tracker-Backend/internal/apperrors"
	"github.com/scelleo/Sealed-Market-Tracker-Backend/internal/service"
)

// IndexHandler handles HTTP requests for the ISP-FR index endpoints.
type IndexHandler struct {
	indexService *service.IndexService
}

// NewIndexHandler creates a new IndexHandler with the provided service dependency.
func NewIndexHandler(indexService *service.IndexService) *IndexHandler {
	return &IndexHandler{
		indexService: indexService,
	}
}

// Summary handles GET requests for the index dashboard summary.
//
// Endpoint: GET /api/index?asOf=YYYY-MM-DD
// Response: 200 OK with ISPIndexSummary (including full history)
func (h *IndexHandler) Summary(w http.ResponseWriter, r *http.Request) {
	asOf, err := request.ParseAsOf(r.URL.Query().Get("asOf"), time.Now())
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	summary, err := h.indexService.GetSummary(asOf)
	if err != nil {
		errorResponse := map[string]string{
			"error":  apperrors.ErrFailedToBuildIndex.Error(),
			"detail": err.Error(),
		}
		respondJSON(w, http.StatusInternalServerError, errorResponse)
		return
	}

	respondJSON(w, http.StatusOK, summary)
}

// History handles GET requests for the raw chained index history.
//
// Endpoint: GET /api/index/history
// Response: 200 OK with array of ISPIndexPoint
func (h *IndexHandler) History(w http.ResponseWriter, r *http.Request) {
	history, err := h.indexService.BuildIndex()
	if err != nil {
		errorResponse := map[string]string{
			"error":  apperrors.ErrFailedToBuildIndex.Error(),
			"detail": err.Error(),
		}
		respondJSON(w, http.StatusInternalServerError, errorResponse)
		return
	}

	respondJSON(w, http.StatusOK, history)
}

// Snapshots handles GET requests for the persisted daily snapshot trail.
//
// Endpoint: GET /api/index/snapshots
func (h *IndexHandler) Snapshots(w http.ResponseWriter, r *http.Request) {
	snapshots, err := h.indexService.GetSnapshots()
	if err != nil {
		errorResponse := map[string]string{
			"error":  apperrors.ErrFailedToRetrieveSnapshots.Error(),
			"detail": err.Error(),
		}
		respondJSON(w, http.StatusInternalServerError, errorResponse)
		return
	}

	respondJSON(w, http.StatusOK, snapshots)
}

// Variation handles GET requests for the day-over-day variation audit.
//
// Endpoint: GET /api/index/variation?from=YYYY-MM-DD&to=YYYY-MM-DD
// Response: 200 OK with per-item before/after prices sorted by |change|
// Error: 400 Bad Request on a missing or inverted date range
func (h *IndexHandler) Variation(w http.ResponseWriter, r *http.Request) {
	from, to, err := request.ParseDateRange(r.URL.Query().Get("from"), r.URL.Query().Get("to"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	variations, err := h.indexService.GetVariation(from, to)
	if err != nil {
		errorResponse := map[string]string{
			"error":  apperrors.ErrFailedToBuildIndex.Error(),
			"detail": err.Error(),
		}
		respondJSON(w, http.StatusInternalServerError, errorResponse)
		return
	}

	respondJSON(w, http.StatusOK, variations)
}
