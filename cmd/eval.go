package cmd

import (
	"fmt"
	"log/slog"

	"github.com/idlens/idlens/internal/config"
	"github.com/idlens/idlens/internal/eval"
	"github.com/idlens/idlens/internal/extract"
	"github.com/idlens/idlens/internal/gemini"
	"github.com/spf13/cobra"
)

func newEvalCmd() *cobra.Command {
	var (
		datasetPath string
		outputDir   string
		sample      int
	)

	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Evaluate extraction accuracy against a labeled dataset",
		Long: `Runs the extraction pipeline over a YAML dataset of document images with
hand-labeled expected fields, scores the results per field, and saves a
report to the output directory.`,
		Example: `  # Evaluate every case in a dataset
  idlens eval --dataset testdata/ids.yaml

  # Evaluate the first 10 cases only
  idlens eval --dataset testdata/ids.yaml --sample 10`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			task := extract.IDDocumentTask()
			if cfg.Server.TaskPath != "" {
				task, err = extract.LoadTaskFile(cfg.Server.TaskPath)
				if err != nil {
					return fmt.Errorf("failed to load extraction task: %w", err)
				}
			}

			dataset, err := eval.LoadDataset(datasetPath)
			if err != nil {
				return fmt.Errorf("failed to load dataset: %w", err)
			}

			runner := eval.NewRunner(gemini.New(cfg.Gemini), task)
			results := runner.Run(cmd.Context(), dataset, sample)

			avgScore, evaluated, failed := eval.Summarize(results)
			slog.Info("Evaluation complete",
				"dataset", datasetPath,
				"evaluated", evaluated,
				"failed", failed,
				"avg_score", fmt.Sprintf("%.3f", avgScore))

			path, err := eval.SaveToYAML(outputDir, cfg.Gemini.Model, task.Prompt, datasetPath, sample, results)
			if err != nil {
				return fmt.Errorf("failed to save report: %w", err)
			}
			slog.Info("Report saved", "path", path)

			return nil
		},
	}

	cmd.Flags().StringVarP(&datasetPath, "dataset", "d", "", "Path to YAML evaluation dataset (required)")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "evals", "Directory to write the report to")
	cmd.Flags().IntVarP(&sample, "sample", "n", 0, "Evaluate only the first N cases (0 = all)")
	_ = cmd.MarkFlagRequired("dataset")

	return cmd
}
