package eval

import (
	"context"
	"encoding/base64"
	"log/slog"
	"net/http"
	"os"

	"github.com/idlens/idlens/internal/extract"
	"github.com/idlens/idlens/internal/gemini"
)

// Extractor is the upstream client the runner calls per case.
type Extractor interface {
	Extract(ctx context.Context, req gemini.Request) (extract.Result, error)
}

// CaseResult is the outcome of evaluating a single dataset case.
type CaseResult struct {
	Image      string         `yaml:"image"`
	Extracted  extract.Result `yaml:"extracted,omitempty"`
	Comparison *Comparison    `yaml:"comparison,omitempty"`
	Error      string         `yaml:"error,omitempty"`
}

// Runner evaluates extraction accuracy over a labeled dataset.
type Runner struct {
	extractor Extractor
	task      extract.Task
}

func NewRunner(extractor Extractor, task extract.Task) *Runner {
	return &Runner{
		extractor: extractor,
		task:      task,
	}
}

// Run evaluates up to sample cases from the dataset. A sample of 0 or less
// runs every case. Failed cases are recorded, not fatal, so one bad image
// does not sink an entire run.
func (r *Runner) Run(ctx context.Context, dataset *Dataset, sample int) []CaseResult {
	cases := dataset.Cases
	if sample > 0 && sample < len(cases) {
		cases = cases[:sample]
	}

	results := make([]CaseResult, 0, len(cases))
	for i, c := range cases {
		slog.Info("Evaluating case", "case", i+1, "total", len(cases), "image", c.Image)

		result := CaseResult{Image: c.Image}

		imageData, err := os.ReadFile(c.Image)
		if err != nil {
			result.Error = "failed to read image: " + err.Error()
			results = append(results, result)
			continue
		}

		mimeType := c.MIMEType
		if mimeType == "" {
			mimeType = http.DetectContentType(imageData)
		}

		extracted, err := r.extractor.Extract(ctx, gemini.Request{
			ImageBase64: base64.StdEncoding.EncodeToString(imageData),
			MIMEType:    mimeType,
			Prompt:      r.task.Prompt,
			Schema:      r.task.Schema,
		})
		if err != nil {
			slog.Warn("Extraction failed for case", "image", c.Image, "err", err)
			result.Error = err.Error()
			results = append(results, result)
			continue
		}

		result.Extracted = extracted
		result.Comparison = Compare(c.Expected, extracted)
		results = append(results, result)
	}

	return results
}
