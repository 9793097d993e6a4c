package loader

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jnbooth/ritual/model"
)

// LoadMetadata reads and parses an extractor metadata YAML file.
// It validates the YAML against the JSON Schema before unmarshalling.
func LoadMetadata(path string) (*model.Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading metadata: %w", err)
	}

	// First validate against JSON Schema
	if err := ValidateSchema(data); err != nil {
		return nil, fmt.Errorf("schema validation: %w", err)
	}

	return LoadMetadataNoValidate(data)
}

// LoadMetadataNoValidate parses without schema validation.
// Used internally when schema validation has already been performed.
func LoadMetadataNoValidate(data []byte) (*model.Metadata, error) {
	var meta model.Metadata
	if err := yaml.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("parsing metadata: %w", err)
	}
	return &meta, nil
}
