// Package config provides infrastructure for loading grammars and word lists.
// This package handles YAML parsing, the sectioned text format, schema
// validation and file I/O.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sandhi-dev/sandhi/internal/domain/entities"
)

// Format identifies a grammar file format.
type Format string

const (
	// FormatYAML is the structured YAML grammar document.
	FormatYAML Format = "yaml"
	// FormatText is the sectioned text format (!FEATURES, !PHONEMES, ...).
	FormatText Format = "text"
)

// FormatForPath chooses the grammar format from the file extension.
// Anything that is not .yaml or .yml is read as the text format.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatText
	}
}

// GrammarLoader loads grammar documents from disk.
type GrammarLoader struct{}

// NewGrammarLoader creates a new grammar loader.
func NewGrammarLoader() *GrammarLoader {
	return &GrammarLoader{}
}

// LoadGrammar reads the grammar document at path.
func (l *GrammarLoader) LoadGrammar(path string) (*entities.GrammarSpec, error) {
	file, closeFn, err := openInRoot(path, "grammar")
	if err != nil {
		return nil, err
	}
	defer closeFn()

	return l.LoadGrammarFromReader(file, FormatForPath(path), defaultGrammarName(path))
}

// LoadGrammarFromReader parses a grammar document. name is used when the
// format carries no metadata of its own.
func (l *GrammarLoader) LoadGrammarFromReader(r io.Reader, format Format, name string) (*entities.GrammarSpec, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read grammar: %w", err)
	}

	switch format {
	case FormatYAML:
		return ParseYAMLGrammar(data)
	case FormatText:
		return ParseTextGrammar(data, name)
	default:
		return nil, fmt.Errorf("unsupported grammar format %q", format)
	}
}

// openInRoot opens path through os.OpenRoot so the read cannot escape the
// file's directory.
func openInRoot(path, what string) (*os.File, func(), error) {
	dir := filepath.Dir(path)
	base := filepath.Base(path)

	root, err := os.OpenRoot(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s directory: %w", what, err)
	}

	file, err := root.Open(base)
	if err != nil {
		_ = root.Close()
		return nil, nil, fmt.Errorf("failed to open %s: %w", what, err)
	}

	return file, func() {
		_ = file.Close() // Best-effort cleanup
		_ = root.Close()
	}, nil
}

func defaultGrammarName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
