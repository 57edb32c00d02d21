package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema/grammar.schema.json
var grammarSchemaJSON []byte

const grammarSchemaURL = "grammar.schema.json"

var compileGrammarSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020

	if err := compiler.AddResource(grammarSchemaURL, bytes.NewReader(grammarSchemaJSON)); err != nil {
		return nil, fmt.Errorf("failed to add grammar schema resource: %w", err)
	}
	return compiler.Compile(grammarSchemaURL)
})

// GrammarSchema returns the JSON Schema grammar documents are validated against.
func GrammarSchema() []byte {
	return grammarSchemaJSON
}

// validateDocument checks a decoded JSON document against the grammar schema.
func validateDocument(doc any) error {
	schema, err := compileGrammarSchema()
	if err != nil {
		return fmt.Errorf("failed to compile grammar schema: %w", err)
	}

	if err := schema.Validate(doc); err != nil {
		if validationErr, ok := err.(*jsonschema.ValidationError); ok {
			return formatSchemaValidationError(validationErr)
		}
		return fmt.Errorf("grammar validation failed: %w", err)
	}
	return nil
}

// formatSchemaValidationError formats a JSON Schema validation error into a readable message.
func formatSchemaValidationError(err *jsonschema.ValidationError) error {
	var messages []string

	var collectErrors func(*jsonschema.ValidationError)
	collectErrors = func(e *jsonschema.ValidationError) {
		// Only leaves carry the specific failure
		if len(e.Causes) == 0 && e.Message != "" {
			location := e.InstanceLocation
			if location == "" {
				location = "(root)"
			}
			messages = append(messages, fmt.Sprintf("%s: %s", location, e.Message))
		}

		for _, cause := range e.Causes {
			collectErrors(cause)
		}
	}

	collectErrors(err)

	if len(messages) == 0 {
		return fmt.Errorf("grammar validation failed")
	}

	return fmt.Errorf("grammar validation failed:\n    - %s", strings.Join(messages, "\n    - "))
}
