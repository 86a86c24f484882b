package handlers

import (
	"log/slog"
	"net/http"
	"os"
)

// HandleIndex serves the upload form from the configured HTML file.
func (h *Handler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	content, err := os.ReadFile(h.indexPath)
	if err != nil {
		slog.Error("HTML input form not found", "path", h.indexPath, "err", err)
		w.WriteHeader(http.StatusInternalServerError)
		if _, err := w.Write([]byte("<h1>Error: HTML input form not found.</h1>")); err != nil {
			slog.Error("Unable to write error fragment", "err", err)
		}
		return
	}

	if _, err := w.Write(content); err != nil {
		slog.Error("Unable to write index page", "err", err)
	}
}
