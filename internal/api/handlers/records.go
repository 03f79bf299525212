package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/wonny/cyberdash/internal/contracts"
	"github.com/wonny/cyberdash/internal/universe"
	"github.com/wonny/cyberdash/pkg/logger"
)

// RecordReader reads stored company records.
type RecordReader interface {
	ListRecords(ctx context.Context) ([]*contracts.CompanyRecord, error)
	GetRecord(ctx context.Context, symbol string) (*contracts.CompanyRecord, error)
}

// Refresher re-runs the analysis pipeline on demand.
type Refresher interface {
	Refresh(ctx context.Context) ([]*contracts.CompanyRecord, error)
}

// RecordHandler serves the dashboard's record endpoints.
type RecordHandler struct {
	store     RecordReader
	refresher Refresher
	logger    *logger.Logger
}

// NewRecordHandler creates a new record handler.
func NewRecordHandler(store RecordReader, refresher Refresher, log *logger.Logger) *RecordHandler {
	return &RecordHandler{
		store:     store,
		refresher: refresher,
		logger:    log,
	}
}

// List returns every stored record.
// GET /api/records
func (h *RecordHandler) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.store.ListRecords(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to list records")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve records")
		return
	}

	// Optional group filter: ?bucket=pure_play
	if group := r.URL.Query().Get("bucket"); group != "" {
		filtered := records[:0]
		for _, rec := range records {
			if rec.Group == group {
				filtered = append(filtered, rec)
			}
		}
		records = filtered
	}

	respondJSON(w, http.StatusOK, records)
}

// Get returns the record for one symbol.
// GET /api/records/{symbol}
func (h *RecordHandler) Get(w http.ResponseWriter, r *http.Request) {
	symbol := mux.Vars(r)["symbol"]

	record, err := h.store.GetRecord(r.Context(), symbol)
	if err != nil {
		h.logger.WithError(err).WithField("symbol", symbol).Warn("Record not found")
		respondError(w, http.StatusNotFound, "Record not found")
		return
	}

	respondJSON(w, http.StatusOK, record)
}

// Universe returns the watchlist with group labels.
// GET /api/universe
func (h *RecordHandler) Universe(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, universe.Watchlist())
}

// Refresh re-runs the pipeline and returns the fresh records.
// POST /api/refresh
func (h *RecordHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	records, err := h.refresher.Refresh(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Refresh failed")
		respondError(w, http.StatusInternalServerError, "Refresh failed")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"refreshed": len(records),
	})
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}
