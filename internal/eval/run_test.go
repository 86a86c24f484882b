package eval

import (
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/idlens/idlens/internal/extract"
	"github.com/idlens/idlens/internal/gemini"
)

type fakeExtractor struct {
	results map[string]extract.Result
	err     error
	reqs    []gemini.Request
}

func (f *fakeExtractor) Extract(ctx context.Context, req gemini.Request) (extract.Result, error) {
	f.reqs = append(f.reqs, req)
	if f.err != nil {
		return nil, f.err
	}
	return f.results[req.ImageBase64], nil
}

func TestRunnerRun(t *testing.T) {
	dir := t.TempDir()

	jpeg := []byte{0xff, 0xd8, 0xff, 0xe0, 0x00, 0x10, 'J', 'F', 'I', 'F'}
	imagePath := filepath.Join(dir, "1.jpg")
	if err := os.WriteFile(imagePath, jpeg, 0644); err != nil {
		t.Fatalf("Failed to write image: %v", err)
	}

	encoded := base64.StdEncoding.EncodeToString(jpeg)
	extractor := &fakeExtractor{
		results: map[string]extract.Result{
			encoded: {"Name": "Jane Doe", "IDNumber": "X999"},
		},
	}
	runner := NewRunner(extractor, extract.IDDocumentTask())

	dataset := &Dataset{
		Cases: []Case{
			{
				Image:    imagePath,
				MIMEType: "image/jpeg",
				Expected: extract.Result{"Name": "Jane Doe", "IDNumber": "X123"},
			},
			{
				Image: filepath.Join(dir, "missing.jpg"),
			},
		},
	}

	results := runner.Run(context.Background(), dataset, 0)
	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}

	first := results[0]
	if first.Error != "" {
		t.Fatalf("Expected first case to succeed, got error %q", first.Error)
	}
	if first.Comparison == nil {
		t.Fatal("Expected comparison for first case")
	}
	if first.Comparison.FieldsMatched != 1 || first.Comparison.FieldsIncorrect != 1 {
		t.Errorf("Unexpected comparison: %+v", first.Comparison)
	}

	if results[1].Error == "" {
		t.Error("Expected error for missing image")
	}

	if len(extractor.reqs) != 1 {
		t.Fatalf("Expected one extraction call, got %d", len(extractor.reqs))
	}
	if extractor.reqs[0].MIMEType != "image/jpeg" {
		t.Errorf("Unexpected mime type: %s", extractor.reqs[0].MIMEType)
	}
}

func TestRunnerSample(t *testing.T) {
	dir := t.TempDir()
	var cases []Case
	for _, name := range []string{"1.jpg", "2.jpg", "3.jpg"} {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte{0xff, 0xd8}, 0644); err != nil {
			t.Fatalf("Failed to write image: %v", err)
		}
		cases = append(cases, Case{Image: path, MIMEType: "image/jpeg"})
	}

	extractor := &fakeExtractor{results: map[string]extract.Result{}}
	runner := NewRunner(extractor, extract.IDDocumentTask())

	results := runner.Run(context.Background(), &Dataset{Cases: cases}, 2)
	if len(results) != 2 {
		t.Errorf("Expected 2 sampled results, got %d", len(results))
	}
	if len(extractor.reqs) != 2 {
		t.Errorf("Expected 2 extraction calls, got %d", len(extractor.reqs))
	}
}
