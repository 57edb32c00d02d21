package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sandhi-dev/sandhi/internal/domain/execution"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scenarioGrammar = `grammar:
  name: scenario
  version: 1.0.0
features: [syll, voice]
phonemes:
  - {symbol: a, features: "+syll -voice"}
  - {symbol: t, features: "-syll -voice"}
  - {symbol: d, features: "-syll +voice"}
rules:
  - {group: Voicing, rule: "t > [+voice] / a_a"}
`

func writeTestFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func testDeriveOptions(format string) deriveOptions {
	opts := deriveOptions{CommonOptions: DefaultCommonOptions()}
	opts.Format = format
	opts.Color = false
	return opts
}

func TestRunDerive_Table(t *testing.T) {
	grammar := writeTestFile(t, "scenario.yaml", scenarioGrammar)
	var out bytes.Buffer

	err := runDerive(newCommandContext(context.Background()), &out, testDeriveOptions("table"), grammar, []string{"ata", "atta"})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "/ata/")
	assert.Contains(t, out.String(), "[ada]")
	assert.Contains(t, out.String(), "[atta]")
	assert.Contains(t, out.String(), "Voicing")
}

func TestRunDerive_JSON(t *testing.T) {
	grammar := writeTestFile(t, "scenario.yaml", scenarioGrammar)
	var out bytes.Buffer

	err := runDerive(newCommandContext(context.Background()), &out, testDeriveOptions("json"), grammar, []string{"ata"})
	require.NoError(t, err)

	assert.Contains(t, out.String(), `"surface": "ada"`)
	assert.Contains(t, out.String(), `"grammar_name": "scenario"`)
}

func TestRunDerive_Expectations(t *testing.T) {
	grammar := writeTestFile(t, "scenario.yaml", scenarioGrammar)

	t.Run("expect matches", func(t *testing.T) {
		opts := testDeriveOptions("json")
		opts.Expect = "ada"
		var out bytes.Buffer
		err := runDerive(newCommandContext(context.Background()), &out, opts, grammar, []string{"ata"})
		require.NoError(t, err)
		assert.Contains(t, out.String(), `"status": "pass"`)
	})

	t.Run("expect differs", func(t *testing.T) {
		opts := testDeriveOptions("json")
		opts.Expect = "ata"
		var out bytes.Buffer
		err := runDerive(newCommandContext(context.Background()), &out, opts, grammar, []string{"ata"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "derivation failed: 0 passed, 1 failed, 0 errors")
	})

	t.Run("expect needs one word", func(t *testing.T) {
		opts := testDeriveOptions("json")
		opts.Expect = "ada"
		err := runDerive(newCommandContext(context.Background()), &bytes.Buffer{}, opts, grammar, []string{"ata", "atta"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "--expect requires exactly one word argument")
	})
}

func TestRunDerive_WordList(t *testing.T) {
	grammar := writeTestFile(t, "scenario.yaml", scenarioGrammar)
	words := writeTestFile(t, "words.txt", "// scenario\nata ada\natta atta\naxa\n")

	opts := testDeriveOptions("yaml")
	opts.WordsFile = words
	var out bytes.Buffer

	err := runDerive(newCommandContext(context.Background()), &out, opts, grammar, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 passed, 0 failed, 1 errors")
	assert.Contains(t, out.String(), "unknown symbol")
}

func TestRunDerive_StrictRejectsUnknownSymbols(t *testing.T) {
	grammar := writeTestFile(t, "scenario.yaml", scenarioGrammar)
	opts := testDeriveOptions("json")
	opts.Strict = true
	var out bytes.Buffer

	err := runDerive(newCommandContext(context.Background()), &out, opts, grammar, []string{"axa"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid input "axa"`)
	assert.Empty(t, out.String())
}

func TestRunDerive_OutputFile(t *testing.T) {
	grammar := writeTestFile(t, "scenario.yaml", scenarioGrammar)
	opts := testDeriveOptions("junit")
	opts.Output = filepath.Join(t.TempDir(), "report.xml")
	var out bytes.Buffer

	require.NoError(t, runDerive(newCommandContext(context.Background()), &out, opts, grammar, []string{"ata"}))
	assert.Empty(t, out.String())

	data, err := os.ReadFile(opts.Output)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<testsuite")
}

func TestRunDerive_InvalidOptions(t *testing.T) {
	grammar := writeTestFile(t, "scenario.yaml", scenarioGrammar)

	tests := []struct {
		name   string
		modify func(*deriveOptions)
		errMsg string
	}{
		{
			name:   "unknown format",
			modify: func(o *deriveOptions) { o.Format = "sarif" },
			errMsg: "invalid format: sarif",
		},
		{
			name:   "unknown group",
			modify: func(o *deriveOptions) { o.Groups = []string{"Nope"} },
			errMsg: "--group references non-existent rule group: Nope",
		},
		{
			name:   "bad filter",
			modify: func(o *deriveOptions) { o.Filter = "name +" },
			errMsg: "filters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := testDeriveOptions("json")
			tt.modify(&opts)
			err := runDerive(newCommandContext(context.Background()), &bytes.Buffer{}, opts, grammar, []string{"ata"})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestChangedSurfaces(t *testing.T) {
	t.Parallel()

	batch := func(pairs ...string) *execution.BatchResult {
		r := execution.NewBatchResult("g", "", len(pairs)/2)
		for i := 0; i < len(pairs); i += 2 {
			r.SetWordResult(execution.NewWordResult(i/2, pairs[i], "", &execution.DerivationTrace{Surface: pairs[i+1]}))
		}
		return r
	}

	assert.Equal(t, 0, changedSurfaces(batch("ata", "ada"), batch("ata", "ada")))
	assert.Equal(t, 1, changedSurfaces(batch("ata", "ata", "atta", "atta"), batch("ata", "ada", "atta", "atta")))
	assert.Equal(t, -1, changedSurfaces(batch("ata", "ada"), batch("ata", "ada", "atta", "atta")))
	assert.Equal(t, -1, changedSurfaces(batch("ata", "ada"), batch("atta", "atta")))
}
