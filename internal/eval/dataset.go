package eval

import (
	"fmt"
	"os"

	"github.com/idlens/idlens/internal/extract"
	"gopkg.in/yaml.v3"
)

// Case is one labeled document image in an evaluation dataset.
type Case struct {
	Image    string         `yaml:"image"`
	MIMEType string         `yaml:"mime_type"`
	Expected extract.Result `yaml:"expected"`
}

// Dataset is a hand-labeled set of document images with their expected fields.
type Dataset struct {
	Name  string `yaml:"name"`
	Cases []Case `yaml:"cases"`
}

// LoadDataset reads an evaluation dataset from a YAML file.
func LoadDataset(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset file: %w", err)
	}

	var dataset Dataset
	if err := yaml.Unmarshal(data, &dataset); err != nil {
		return nil, fmt.Errorf("failed to parse dataset file: %w", err)
	}

	if len(dataset.Cases) == 0 {
		return nil, fmt.Errorf("dataset %s contains no cases", path)
	}

	for i, c := range dataset.Cases {
		if c.Image == "" {
			return nil, fmt.Errorf("dataset case %d has no image path", i)
		}
	}

	return &dataset, nil
}
