package output

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/sandhi-dev/sandhi/internal/domain/execution"
	"github.com/sandhi-dev/sandhi/internal/domain/values"
)

// JUnitFormatter formats batch results as JUnit XML, one test case per word.
type JUnitFormatter struct {
	writer io.Writer
}

// NewJUnitFormatter creates a new JUnit formatter.
func NewJUnitFormatter(w io.Writer) *JUnitFormatter {
	return &JUnitFormatter{
		writer: w,
	}
}

// JUnitTestSuites JUnit XML structures
type JUnitTestSuites struct {
	XMLName    xml.Name         `xml:"testsuites"`
	Name       string           `xml:"name,attr"`
	Tests      int              `xml:"tests,attr"`
	Failures   int              `xml:"failures,attr"`
	Errors     int              `xml:"errors,attr"`
	Time       float64          `xml:"time,attr"`
	TestSuites []JUnitTestSuite `xml:"testsuite"`
}

type JUnitTestSuite struct {
	XMLName   xml.Name        `xml:"testsuite"`
	Name      string          `xml:"name,attr"`
	Tests     int             `xml:"tests,attr"`
	Failures  int             `xml:"failures,attr"`
	Errors    int             `xml:"errors,attr"`
	Time      float64         `xml:"time,attr"`
	TestCases []JUnitTestCase `xml:"testcase"`
}

type JUnitTestCase struct {
	XMLName   xml.Name      `xml:"testcase"`
	Name      string        `xml:"name,attr"`
	ClassName string        `xml:"classname,attr"`
	Time      float64       `xml:"time,attr"`
	Failure   *JUnitFailure `xml:"failure,omitempty"`
	Error     *JUnitError   `xml:"error,omitempty"`
	SystemOut string        `xml:"system-out,omitempty"`
}

type JUnitFailure struct {
	Message string `xml:"message,attr"`
	Content string `xml:",chardata"`
}

type JUnitError struct {
	Message string `xml:"message,attr"`
	Content string `xml:",chardata"`
}

// Format writes the batch result as JUnit XML.
func (f *JUnitFormatter) Format(result *execution.BatchResult) error {
	suite := JUnitTestSuite{
		Name:     result.GrammarName,
		Tests:    result.Summary.TotalWords,
		Failures: result.Summary.FailedWords,
		Errors:   result.Summary.ErrorWords,
		Time:     result.Duration.Seconds(),
	}

	for _, w := range result.Words {
		c := JUnitTestCase{
			Name:      w.Input,
			ClassName: result.GrammarName,
			Time:      w.Duration.Seconds(),
		}

		switch w.Status {
		case values.StatusFail:
			c.Failure = &JUnitFailure{
				Message: w.Message,
				Content: formatDerivation(w.Trace),
			}
		case values.StatusError:
			c.Error = &JUnitError{
				Message: w.Message,
			}
		default:
			c.SystemOut = formatDerivation(w.Trace)
		}

		suite.TestCases = append(suite.TestCases, c)
	}

	suites := JUnitTestSuites{
		Name:       "Sandhi Derivation",
		Tests:      result.Summary.TotalWords,
		Failures:   result.Summary.FailedWords,
		Errors:     result.Summary.ErrorWords,
		Time:       result.Duration.Seconds(),
		TestSuites: []JUnitTestSuite{suite},
	}

	_, err := f.writer.Write([]byte(xml.Header))
	if err != nil {
		return err
	}

	encoder := xml.NewEncoder(f.writer)
	encoder.Indent("", "  ")
	if err := encoder.Encode(suites); err != nil {
		return err
	}

	_, err = f.writer.Write([]byte("\n"))
	return err
}

// formatDerivation lists the forms a word passed through.
func formatDerivation(trace *execution.DerivationTrace) string {
	if trace == nil {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "UR: /%s/\n", trace.Underlying)
	for _, step := range trace.Steps {
		fmt.Fprintf(&b, "%s: %s\n", step.Group, step.StepResult())
	}
	fmt.Fprintf(&b, "SR: [%s]\n", trace.Surface)
	return b.String()
}
