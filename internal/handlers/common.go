package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/idlens/idlens/internal/extract"
	"github.com/idlens/idlens/internal/gemini"
	"github.com/idlens/idlens/internal/storage"
)

// Extractor is the upstream client the handlers call for each upload.
type Extractor interface {
	Extract(ctx context.Context, req gemini.Request) (extract.Result, error)
}

// Cache holds previously extracted results keyed by image content hash.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
}

type Handler struct {
	extractor   Extractor
	task        extract.Task
	recordStore *storage.RecordStore
	cache       Cache
	indexPath   string
}

func New(extractor Extractor, task extract.Task, indexPath string) *Handler {
	return &Handler{
		extractor:   extractor,
		task:        task,
		recordStore: storage.New(),
		indexPath:   indexPath,
	}
}

func (h *Handler) SetCache(cache Cache) {
	h.cache = cache
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	slog.Error(message)
	http.Error(w, message, code)
}
