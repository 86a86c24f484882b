package eval

import (
	"strings"

	"github.com/idlens/idlens/internal/extract"
)

// Comparison scores an extraction result against the labeled fields of a case.
type Comparison struct {
	OverallScore    float64            `yaml:"overallscore"`
	FieldScores     map[string]float64 `yaml:"fieldscores"`
	FieldsMatched   int                `yaml:"fieldsmatched"`
	FieldsMissing   int                `yaml:"fieldsmissing"`
	FieldsIncorrect int                `yaml:"fieldsincorrect"`
}

// Compare scores each expected field with a normalized exact match. Fields
// labeled empty in the dataset are skipped so optional fields absent from a
// document do not dilute the score.
func Compare(expected, got extract.Result) *Comparison {
	comparison := &Comparison{
		FieldScores: make(map[string]float64),
	}

	scored := 0
	for field, want := range expected {
		if normalize(want) == "" {
			continue
		}
		scored++

		have, ok := got[field]
		if !ok || normalize(have) == "" {
			comparison.FieldsMissing++
			comparison.FieldScores[field] = 0
			continue
		}

		if normalize(have) == normalize(want) {
			comparison.FieldsMatched++
			comparison.FieldScores[field] = 1
		} else {
			comparison.FieldsIncorrect++
			comparison.FieldScores[field] = 0
		}
	}

	if scored > 0 {
		comparison.OverallScore = float64(comparison.FieldsMatched) / float64(scored)
	}

	return comparison
}

func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
