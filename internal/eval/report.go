package eval

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// ReportConfig records the settings an evaluation ran with.
type ReportConfig struct {
	Model       string `yaml:"model"`
	Prompt      string `yaml:"prompt"`
	DatasetPath string `yaml:"datasetpath"`
	SampleSize  int    `yaml:"samplesize"`
	Timestamp   string `yaml:"timestamp"`
}

// Report is the complete saved output of one evaluation run.
type Report struct {
	Config  ReportConfig `yaml:"config"`
	Results []CaseResult `yaml:"results"`
}

// SaveToYAML writes evaluation results to a timestamped YAML file in outputDir.
func SaveToYAML(outputDir, model, prompt, datasetPath string, sampleSize int, results []CaseResult) (string, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")

	report := Report{
		Config: ReportConfig{
			Model:       model,
			Prompt:      prompt,
			DatasetPath: datasetPath,
			SampleSize:  sampleSize,
			Timestamp:   timestamp,
		},
		Results: results,
	}

	data, err := yaml.Marshal(&report)
	if err != nil {
		return "", fmt.Errorf("failed to marshal report: %w", err)
	}

	path := filepath.Join(outputDir, fmt.Sprintf("eval_%s.yaml", timestamp))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}

	return path, nil
}

// Summarize aggregates per-case scores into run totals.
func Summarize(results []CaseResult) (avgScore float64, evaluated, failed int) {
	total := 0.0
	for _, r := range results {
		if r.Error != "" {
			failed++
			continue
		}
		if r.Comparison != nil {
			total += r.Comparison.OverallScore
			evaluated++
		}
	}
	if evaluated > 0 {
		avgScore = total / float64(evaluated)
	}
	return avgScore, evaluated, failed
}
