package models

import (
	"time"

	"github.com/idlens/idlens/internal/extract"
)

// ExtractionRecord captures one completed extraction for the records API
type ExtractionRecord struct {
	ID        string         `json:"id"`
	Filename  string         `json:"filename"`
	MIMEType  string         `json:"mime_type"`
	SizeBytes int            `json:"size_bytes"`
	Fields    extract.Result `json:"fields"`
	Cached    bool           `json:"cached"`
	CreatedAt time.Time      `json:"created_at"`
}
