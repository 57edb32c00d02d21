package output

import (
	"io"

	"github.com/goccy/go-yaml"
	"github.com/sandhi-dev/sandhi/internal/domain/execution"
)

// YAMLFormatter formats batch results as YAML.
type YAMLFormatter struct {
	writer io.Writer
}

// NewYAMLFormatter creates a new YAML formatter.
func NewYAMLFormatter(w io.Writer) *YAMLFormatter {
	return &YAMLFormatter{writer: w}
}

// Format writes the batch result as YAML.
func (f *YAMLFormatter) Format(result *execution.BatchResult) error {
	encoder := yaml.NewEncoder(f.writer, yaml.Indent(2))

	if err := encoder.Encode(result); err != nil {
		return err
	}

	return encoder.Close()
}
