package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExamples_DeriveAsExpected(t *testing.T) {
	words := filepath.Join("..", "..", "examples", "lenition-words.txt")

	for _, grammar := range []string{"lenition.yaml", "lenition.txt"} {
		t.Run(grammar, func(t *testing.T) {
			opts := testDeriveOptions("table")
			opts.WordsFile = words
			var out bytes.Buffer

			err := runDerive(newCommandContext(context.Background()), &out, opts,
				filepath.Join("..", "..", "examples", grammar), nil)
			require.NoError(t, err, out.String())
			assert.Contains(t, out.String(), "[aza]")
		})
	}
}
