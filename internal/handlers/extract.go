package handlers

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/idlens/idlens/internal/extract"
	"github.com/idlens/idlens/internal/gemini"
	"github.com/idlens/idlens/internal/metrics"
	"github.com/idlens/idlens/internal/models"
	"github.com/idlens/idlens/internal/utils"
)

// Limit uploads to 10MB
const maxUploadBytes = 10 * 1024 * 1024

func (h *Handler) HandleExtract(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.writeError(w, "Failed to read file: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	mimeType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(mimeType, "image/") {
		h.writeError(w, fmt.Sprintf("Invalid file type: %s. Only image files are supported.", mimeType), http.StatusBadRequest)
		return
	}

	fileData, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		h.writeError(w, "Could not read file content.", http.StatusInternalServerError)
		return
	}

	if len(fileData) >= maxUploadBytes {
		h.writeError(w, "File too large (max 10MB)", http.StatusBadRequest)
		return
	}

	contentHash := utils.CalculateDataMD5(fileData)

	if result, ok := h.cachedResult(r, contentHash); ok {
		slog.Info("Extraction served from cache", "hash", contentHash)
		h.storeRecord(contentHash, header.Filename, mimeType, len(fileData), result, true)
		metrics.ExtractionsTotal("cached")
		h.writeJSON(w, result)
		return
	}

	start := time.Now()
	result, err := h.extractor.Extract(r.Context(), gemini.Request{
		ImageBase64: base64.StdEncoding.EncodeToString(fileData),
		MIMEType:    mimeType,
		Prompt:      h.task.Prompt,
		Schema:      h.task.Schema,
	})
	if err != nil {
		outcome := classifyFailure(err)
		metrics.ExtractionsTotal(outcome)
		metrics.ExtractionDuration(outcome, time.Since(start))

		if errors.Is(err, gemini.ErrMissingAPIKey) {
			h.writeError(w, "API key is missing. Set GEMINI_API_KEY in your environment or .env file.", http.StatusUnauthorized)
			return
		}
		slog.Error("Extraction failed", "filename", header.Filename, "err", err)
		h.writeError(w, "Extraction failed or returned an unstructured response after multiple retries.", http.StatusServiceUnavailable)
		return
	}

	metrics.ExtractionsTotal("success")
	metrics.ExtractionDuration("success", time.Since(start))

	h.cacheResult(r, contentHash, result)
	h.storeRecord(contentHash, header.Filename, mimeType, len(fileData), result, false)

	h.writeJSON(w, result)
}

func classifyFailure(err error) string {
	switch {
	case errors.Is(err, gemini.ErrMissingAPIKey):
		return "auth_error"
	case errors.Is(err, gemini.ErrEmptyResponse):
		return "empty_response"
	case errors.Is(err, gemini.ErrRetriesExhausted):
		return "retries_exhausted"
	case errors.Is(err, gemini.ErrMalformedOutput):
		return "malformed_output"
	default:
		return "upstream_error"
	}
}

func (h *Handler) cachedResult(r *http.Request, key string) (extract.Result, bool) {
	if h.cache == nil {
		return nil, false
	}

	cached, found, err := h.cache.Get(r.Context(), key)
	if err != nil {
		slog.Warn("Cache get failed", "hash", key, "err", err)
		return nil, false
	}
	if !found {
		return nil, false
	}

	var result extract.Result
	if err := json.Unmarshal([]byte(cached), &result); err != nil {
		slog.Warn("Discarding unparseable cache entry", "hash", key, "err", err)
		return nil, false
	}
	return result, true
}

func (h *Handler) cacheResult(r *http.Request, key string, result extract.Result) {
	if h.cache == nil {
		return
	}

	encoded, err := json.Marshal(result)
	if err != nil {
		slog.Warn("Failed to encode result for cache", "hash", key, "err", err)
		return
	}
	if err := h.cache.Set(r.Context(), key, string(encoded)); err != nil {
		slog.Warn("Cache set failed", "hash", key, "err", err)
	}
}

func (h *Handler) storeRecord(hash, filename, mimeType string, size int, result extract.Result, cached bool) {
	recordID := fmt.Sprintf("%s_%d", hash, time.Now().Unix())
	h.recordStore.Set(recordID, &models.ExtractionRecord{
		ID:        recordID,
		Filename:  filename,
		MIMEType:  mimeType,
		SizeBytes: size,
		Fields:    result,
		Cached:    cached,
		CreatedAt: time.Now(),
	})
}
