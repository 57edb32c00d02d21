package config

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/sandhi-dev/sandhi/internal/domain/execution"
)

// WordListLoader loads word lists from disk.
type WordListLoader struct{}

// NewWordListLoader creates a new word list loader.
func NewWordListLoader() *WordListLoader {
	return &WordListLoader{}
}

// LoadWords reads the word list at path.
func (l *WordListLoader) LoadWords(path string) ([]execution.WordInput, error) {
	file, closeFn, err := openInRoot(path, "word list")
	if err != nil {
		return nil, err
	}
	defer closeFn()

	return ParseWordList(file)
}

// ParseWordList reads one word per line with an optional expected surface
// form as a second field. "/ata/ [ada]" is accepted as well as "ata ada".
// Blank lines and lines starting with "//" are skipped.
func ParseWordList(r io.Reader) ([]execution.WordInput, error) {
	var words []execution.WordInput

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) > 2 {
			return nil, fmt.Errorf("line %d: expected a word and at most one expected form, got %d fields", lineNo, len(fields))
		}

		w := execution.WordInput{Input: trimDelimiters(fields[0], "/", "/")}
		if len(fields) == 2 {
			w.Expected = trimDelimiters(fields[1], "[", "]")
		}
		if w.Input == "" {
			return nil, fmt.Errorf("line %d: empty word", lineNo)
		}
		words = append(words, w)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read word list: %w", err)
	}

	return words, nil
}

func trimDelimiters(s, open, closing string) string {
	if len(s) >= len(open)+len(closing) && strings.HasPrefix(s, open) && strings.HasSuffix(s, closing) {
		return s[len(open) : len(s)-len(closing)]
	}
	return s
}
