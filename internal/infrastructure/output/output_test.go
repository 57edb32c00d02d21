package output

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"errors"
	"testing"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/sandhi-dev/sandhi/internal/application/dto"
	"github.com/sandhi-dev/sandhi/internal/domain/execution"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func voicingTrace(input, surface string, changed bool) *execution.DerivationTrace {
	return &execution.DerivationTrace{
		Input:                 input,
		Underlying:            input,
		SyllabifiedUnderlying: "a.ta",
		Steps: []execution.GroupStep{{
			Group:       "Voicing",
			Changed:     changed,
			Surface:     surface,
			Syllabified: "a.da",
			Rules:       []execution.RuleStep{{Rule: "t > [+voice] / a_a", Changed: changed, Surface: surface}},
		}},
		Surface:            surface,
		SyllabifiedSurface: "a.da",
	}
}

// createTestResult creates a batch with one word of every status.
func createTestResult() *execution.BatchResult {
	result := execution.NewBatchResult("scenario", "1.0.0", 4)
	result.SetWordResult(execution.NewWordResult(0, "ata", "", voicingTrace("ata", "ada", true)))
	result.SetWordResult(execution.NewWordResult(1, "atta", "atta", voicingTrace("atta", "atta", false)))
	result.SetWordResult(execution.NewWordResult(2, "ata", "ata", voicingTrace("ata", "ada", true)))
	result.SetWordResult(execution.NewErrorWordResult(3, "axa", "", errors.New(`unknown symbol "x" at position 1 in "axa"`)))
	result.Finalize()
	result.Duration = 12 * time.Millisecond
	return result
}

func TestTableFormatter_Format(t *testing.T) {
	var buf bytes.Buffer
	f := NewTableFormatter(&buf)
	f.EnableColor = false
	f.Groups = []dto.GroupSummary{{Name: "Voicing", Rules: []string{"t > [+voice] / a_a"}}}

	require.NoError(t, f.Format(createTestResult()))
	out := buf.String()

	assert.Contains(t, out, "Voicing:\n\tt > [+voice] / a_a\n---\n---\n")
	assert.Contains(t, out, "UR       |  /ata/\nVoicing  |  ada\nSR       |  [ada]\n")
	assert.Contains(t, out, "UR       |  /atta/\nVoicing  |  -\nSR       |  [atta]\n✓ expected [atta]\n")
	assert.Contains(t, out, "✗ expected [ata], got [ada]\n")
	assert.Contains(t, out, "UR       |  /axa/\n⚠ unknown symbol")
	assert.Contains(t, out, "Summary: 4 words in 12ms")
	assert.Contains(t, out, "Failed:  1")
	assert.NotContains(t, out, "\033[")
}

func TestTableFormatter_SyllablesAndRuleSteps(t *testing.T) {
	var buf bytes.Buffer
	f := NewTableFormatter(&buf)
	f.EnableColor = false
	f.Syllables = true
	f.RuleSteps = true

	result := execution.NewBatchResult("scenario", "", 1)
	result.SetWordResult(execution.NewWordResult(0, "ata", "", voicingTrace("ata", "ada", true)))
	result.Finalize()

	require.NoError(t, f.Format(result))
	out := buf.String()

	assert.Contains(t, out, "UR       |  /a.ta/\n")
	assert.Contains(t, out, "Voicing  |  a.da\n")
	assert.Contains(t, out, "         |    t > [+voice] / a_a  ada\n")
	assert.Contains(t, out, "SR       |  [a.da]\n")
}

func TestTableFormatter_SkippedGroup(t *testing.T) {
	var buf bytes.Buffer
	f := NewTableFormatter(&buf)
	f.EnableColor = false

	trace := voicingTrace("ata", "ata", false)
	trace.Steps[0].Skipped = true
	result := execution.NewBatchResult("scenario", "", 1)
	result.SetWordResult(execution.NewWordResult(0, "ata", "", trace))
	result.Finalize()

	require.NoError(t, f.Format(result))
	assert.Contains(t, buf.String(), "Voicing  |  (skipped)\n")
}

func TestTableFormatter_Empty(t *testing.T) {
	var buf bytes.Buffer
	f := NewTableFormatter(&buf)
	result := execution.NewBatchResult("scenario", "", 0)
	result.Finalize()

	require.NoError(t, f.Format(result))
	assert.Equal(t, "No words derived.\n", buf.String())
}

func TestJSONFormatter_Format(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter(&buf, false).Format(createTestResult()))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "scenario", decoded["grammar_name"])

	words := decoded["words"].([]any)
	require.Len(t, words, 4)
	first := words[0].(map[string]any)
	assert.Equal(t, "derived", first["status"])
	assert.Equal(t, "ada", first["trace"].(map[string]any)["surface"])

	summary := decoded["summary"].(map[string]any)
	assert.InDelta(t, 1, summary["failed_words"], 0)
}

func TestJSONFormatter_Format_Indented(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter(&buf, true).Format(createTestResult()))

	assert.Contains(t, buf.String(), "\n  \"grammar_name\": \"scenario\"")
	assert.True(t, json.Valid(buf.Bytes()))
}

func TestYAMLFormatter_Format(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewYAMLFormatter(&buf).Format(createTestResult()))

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "scenario", decoded["grammar_name"])
	assert.Len(t, decoded["words"], 4)
}

func TestJUnitFormatter_Format(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJUnitFormatter(&buf).Format(createTestResult()))

	var suites JUnitTestSuites
	require.NoError(t, xml.Unmarshal(buf.Bytes(), &suites))

	assert.Equal(t, 4, suites.Tests)
	assert.Equal(t, 1, suites.Failures)
	assert.Equal(t, 1, suites.Errors)
	require.Len(t, suites.TestSuites, 1)

	cases := suites.TestSuites[0].TestCases
	require.Len(t, cases, 4)
	assert.Equal(t, "ata", cases[0].Name)
	assert.Nil(t, cases[0].Failure)
	assert.Contains(t, cases[0].SystemOut, "Voicing: ada")

	require.NotNil(t, cases[2].Failure)
	assert.Equal(t, "expected [ata], got [ada]", cases[2].Failure.Message)
	assert.Contains(t, cases[2].Failure.Content, "SR: [ada]")

	require.NotNil(t, cases[3].Error)
	assert.Contains(t, cases[3].Error.Message, "unknown symbol")
}
