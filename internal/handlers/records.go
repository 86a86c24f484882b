package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/idlens/idlens/internal/models"
)

// HandleExtractions lists recent extraction records.
func (h *Handler) HandleExtractions(w http.ResponseWriter, r *http.Request) {
	records := h.recordStore.GetAll()
	recordList := make([]*models.ExtractionRecord, 0, len(records))
	for _, record := range records {
		recordList = append(recordList, record)
	}
	h.writeJSON(w, recordList)
}

// HandleExtractionDetail returns a single extraction record by ID.
func (h *Handler) HandleExtractionDetail(w http.ResponseWriter, r *http.Request) {
	recordID := chi.URLParam(r, "id")

	record, exists := h.recordStore.Get(recordID)
	if !exists {
		h.writeError(w, "Extraction record not found", http.StatusNotFound)
		return
	}

	h.writeJSON(w, record)
}
