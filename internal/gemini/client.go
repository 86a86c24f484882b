package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/idlens/idlens/internal/config"
	"github.com/idlens/idlens/internal/extract"
)

// systemInstruction pins the model to its extractor role so the response
// carries nothing but the schema's fields.
const systemInstruction = "You are an expert visual data extractor and summarizer. " +
	"Your task is to analyze the provided image and generate a concise, " +
	"accurate JSON object that strictly adheres to the given schema and " +
	"answers the user's prompt. Do not include any external commentary."

// Client calls the Gemini generateContent REST API with bounded retries.
type Client struct {
	cfg   config.GeminiConfig
	httpc *http.Client
	sleep func(time.Duration)
}

// New returns a client bound to the given immutable configuration.
func New(cfg config.GeminiConfig) *Client {
	return &Client{
		cfg: cfg,
		httpc: &http.Client{
			Timeout: cfg.Timeout,
		},
		sleep: time.Sleep,
	}
}

// Request is one logical "extract structured data from image" operation.
type Request struct {
	ImageBase64 string
	MIMEType    string
	Prompt      string
	Schema      extract.Schema
}

type generateRequest struct {
	Contents          []content        `json:"contents"`
	SystemInstruction *content         `json:"systemInstruction,omitempty"`
	GenerationConfig  generationConfig `json:"generationConfig"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type generationConfig struct {
	ResponseMIMEType string          `json:"responseMimeType"`
	ResponseSchema   *extract.Schema `json:"responseSchema,omitempty"`
}

type generateResponse struct {
	Candidates []candidate `json:"candidates"`
}

type candidate struct {
	Content *content `json:"content"`
}

// Extract sends the image and prompt to the model and returns the parsed
// structured fields. Transient upstream statuses (429, 500, 503) are retried
// with exponential backoff up to the configured attempt ceiling; every other
// failure is surfaced immediately.
func (c *Client) Extract(ctx context.Context, req Request) (extract.Result, error) {
	if c.cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	payload := generateRequest{
		Contents: []content{
			{
				Role: "user",
				Parts: []part{
					{Text: req.Prompt},
					{InlineData: &inlineData{
						MimeType: req.MIMEType,
						Data:     req.ImageBase64,
					}},
				},
			},
		},
		SystemInstruction: &content{
			Parts: []part{{Text: systemInstruction}},
		},
		GenerationConfig: generationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   &req.Schema,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	url := fmt.Sprintf("%s%s:generateContent?key=%s", c.cfg.BaseURL, c.cfg.Model, c.cfg.APIKey)

	for attempt := 0; attempt < c.cfg.MaxRetries; attempt++ {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("failed to create new request: %w", err)
		}
		httpReq.Header.Set("Content-Type", "application/json")

		resp, err := c.httpc.Do(httpReq)
		if err != nil {
			// Network-level failures are not retried.
			return nil, fmt.Errorf("failed to send request: %w", err)
		}

		if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
			respBody, _ := io.ReadAll(resp.Body)
			resp.Body.Close()

			if delay, retry := decide(attempt, c.cfg.MaxRetries, resp.StatusCode); retry {
				slog.Warn("Transient upstream status, backing off",
					"status", resp.StatusCode,
					"attempt", attempt+1,
					"max_retries", c.cfg.MaxRetries,
					"delay", delay)
				c.sleep(delay)
				continue
			}

			if retryable(resp.StatusCode) {
				return nil, fmt.Errorf("%w: last status %d", ErrRetriesExhausted, resp.StatusCode)
			}
			return nil, &StatusError{
				StatusCode: resp.StatusCode,
				Body:       strings.TrimSpace(string(respBody)),
			}
		}

		var gr generateResponse
		err = json.NewDecoder(resp.Body).Decode(&gr)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to decode response body: %w", err)
		}

		if len(gr.Candidates) == 0 {
			return nil, ErrEmptyResponse
		}
		cand := gr.Candidates[0]
		if cand.Content == nil || len(cand.Content.Parts) == 0 {
			return nil, ErrEmptyResponse
		}

		// The model returns a string holding the JSON object, so parse it.
		var result extract.Result
		if err := json.Unmarshal([]byte(cand.Content.Parts[0].Text), &result); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
		}
		return result, nil
	}

	return nil, ErrRetriesExhausted
}
