package extract

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestIDDocumentTask(t *testing.T) {
	task := IDDocumentTask()

	if task.Prompt == "" {
		t.Fatal("Expected non-empty prompt")
	}
	if task.Schema.Type != "OBJECT" {
		t.Errorf("Expected OBJECT schema type, got %s", task.Schema.Type)
	}

	wantFields := []string{
		"Name", "IDNumber", "DateOfBirth",
		"IDExpiryDate", "PassportNumber", "PassportExpiryDate", "Occupation",
	}
	if len(task.Schema.Properties) != len(wantFields) {
		t.Errorf("Expected %d fields, got %d", len(wantFields), len(task.Schema.Properties))
	}
	for _, field := range wantFields {
		prop, ok := task.Schema.Properties[field]
		if !ok {
			t.Errorf("Missing field %s", field)
			continue
		}
		if prop.Type != "STRING" {
			t.Errorf("Expected STRING type for %s, got %s", field, prop.Type)
		}
		if prop.Description == "" {
			t.Errorf("Expected description for %s", field)
		}
	}

	wantRequired := []string{"Name", "IDNumber", "DateOfBirth"}
	if !reflect.DeepEqual(task.Schema.Required, wantRequired) {
		t.Errorf("Expected required fields %v, got %v", wantRequired, task.Schema.Required)
	}
}

func TestLoadTaskFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "task.yaml")
	content := `prompt: Extract the receipt totals.
schema:
  type: OBJECT
  properties:
    Total:
      type: STRING
      description: The grand total.
    Currency:
      type: STRING
      description: The currency code.
  required:
    - Total
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write task file: %v", err)
	}

	task, err := LoadTaskFile(path)
	if err != nil {
		t.Fatalf("Expected task to load, got %v", err)
	}
	if task.Prompt != "Extract the receipt totals." {
		t.Errorf("Unexpected prompt: %s", task.Prompt)
	}
	if len(task.Schema.Properties) != 2 {
		t.Errorf("Expected 2 properties, got %d", len(task.Schema.Properties))
	}
	if task.Schema.Properties["Total"].Description != "The grand total." {
		t.Errorf("Unexpected property: %+v", task.Schema.Properties["Total"])
	}
	if !reflect.DeepEqual(task.Schema.Required, []string{"Total"}) {
		t.Errorf("Unexpected required list: %v", task.Schema.Required)
	}
}

func TestLoadTaskFileErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
	}{
		{"missing prompt", "schema:\n  type: OBJECT\n  properties:\n    A:\n      type: STRING\n"},
		{"missing properties", "prompt: do things\n"},
		{"invalid yaml", "prompt: [unclosed\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatalf("Failed to write task file: %v", err)
			}
			if _, err := LoadTaskFile(path); err == nil {
				t.Error("Expected error, got nil")
			}
		})
	}

	if _, err := LoadTaskFile(filepath.Join(dir, "does-not-exist.yaml")); err == nil {
		t.Error("Expected error for missing file, got nil")
	}
}
