package extract

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Result maps a schema field name to the value the model extracted for it.
// Fields the model could not find hold an empty string.
type Result map[string]string

// Property describes a single field of the response schema.
type Property struct {
	Type        string `json:"type" yaml:"type"`
	Description string `json:"description" yaml:"description"`
}

// Schema declares the object shape the model is required to respond with.
// It is passed through verbatim to the generateContent responseSchema field,
// so the type names use the API's uppercase spelling.
type Schema struct {
	Type       string              `json:"type" yaml:"type"`
	Properties map[string]Property `json:"properties" yaml:"properties"`
	Required   []string            `json:"required" yaml:"required"`
}

// Task bundles the prompt with the schema the model must fill in.
type Task struct {
	Prompt string `yaml:"prompt"`
	Schema Schema `yaml:"schema"`
}

// IDDocumentTask returns the built-in extraction task for identification
// documents: three mandatory fields and four that default to empty strings.
func IDDocumentTask() Task {
	return Task{
		Prompt: "Analyze the identification document in this image. Extract the Name, ID Number, " +
			"and Date of Birth. Also find and include the ID Expiry Date, Passport Number, " +
			"Passport Expiry Date, and Occupation if they are present on the document. " +
			"If a field is not present, return an empty string for that field.",
		Schema: Schema{
			Type: "OBJECT",
			Properties: map[string]Property{
				"Name":               {Type: "STRING", Description: "The full name of the person."},
				"IDNumber":           {Type: "STRING", Description: "The national ID or driver's license number."},
				"DateOfBirth":        {Type: "STRING", Description: "The date of birth, standardized to YYYY-MM-DD format if possible."},
				"IDExpiryDate":       {Type: "STRING", Description: "The ID card expiration date, standardized to YYYY-MM-DD format if present. Use an empty string if not found."},
				"PassportNumber":     {Type: "STRING", Description: "The passport number. Use an empty string if not present."},
				"PassportExpiryDate": {Type: "STRING", Description: "The passport expiration date, standardized to YYYY-MM-DD format if present. Use an empty string if not found."},
				"Occupation":         {Type: "STRING", Description: "The occupation or job title of the person, if listed on the ID. Use an empty string if not found."},
			},
			Required: []string{"Name", "IDNumber", "DateOfBirth"},
		},
	}
}

// LoadTaskFile reads a prompt/schema override from a YAML file.
func LoadTaskFile(path string) (Task, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Task{}, fmt.Errorf("failed to read task file: %w", err)
	}

	var task Task
	if err := yaml.Unmarshal(data, &task); err != nil {
		return Task{}, fmt.Errorf("failed to parse task file: %w", err)
	}

	if task.Prompt == "" {
		return Task{}, fmt.Errorf("task file %s has no prompt", path)
	}
	if len(task.Schema.Properties) == 0 {
		return Task{}, fmt.Errorf("task file %s has no schema properties", path)
	}

	return task, nil
}
