package config

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/sandhi-dev/sandhi/internal/domain/entities"
)

// ParseYAMLGrammar decodes a YAML grammar document after checking it
// against the grammar schema.
func ParseYAMLGrammar(data []byte) (*entities.GrammarSpec, error) {
	jsonData, err := yaml.YAMLToJSON(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode grammar YAML: %w", err)
	}

	var doc any
	decoder := json.NewDecoder(bytes.NewReader(jsonData))
	decoder.UseNumber()
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode grammar YAML: %w", err)
	}

	if err := validateDocument(doc); err != nil {
		return nil, err
	}

	var spec entities.GrammarSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("failed to decode grammar YAML: %w", err)
	}

	return &spec, nil
}

// MarshalGrammarYAML renders a grammar document as YAML.
func MarshalGrammarYAML(spec *entities.GrammarSpec) ([]byte, error) {
	data, err := yaml.MarshalWithOptions(spec, yaml.IndentSequence(true))
	if err != nil {
		return nil, fmt.Errorf("failed to encode grammar YAML: %w", err)
	}
	return data, nil
}
