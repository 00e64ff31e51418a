package reporting

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spboyer/pairtest/internal/comparison"
)

// JUnit XML schema types

// JUnitTestSuites is the top-level container.
type JUnitTestSuites struct {
	XMLName    xml.Name         `xml:"testsuites"`
	Tests      int              `xml:"tests,attr"`
	Failures   int              `xml:"failures,attr"`
	Errors     int              `xml:"errors,attr"`
	Time       float64          `xml:"time,attr"`
	TestSuites []JUnitTestSuite `xml:"testsuite"`
}

// JUnitTestSuite maps to one candidate compared against its benchmarks.
type JUnitTestSuite struct {
	XMLName    xml.Name        `xml:"testsuite"`
	Name       string          `xml:"name,attr"`
	Tests      int             `xml:"tests,attr"`
	Failures   int             `xml:"failures,attr"`
	Errors     int             `xml:"errors,attr"`
	Skipped    int             `xml:"skipped,attr"`
	Time       float64         `xml:"time,attr"`
	Timestamp  string          `xml:"timestamp,attr"`
	Properties []JUnitProperty `xml:"properties>property,omitempty"`
	TestCases  []JUnitTestCase `xml:"testcase"`
}

// JUnitTestCase maps to one benchmark comparison.
type JUnitTestCase struct {
	XMLName   xml.Name      `xml:"testcase"`
	Name      string        `xml:"name,attr"`
	Classname string        `xml:"classname,attr"`
	Time      float64       `xml:"time,attr"`
	Failure   *JUnitFailure `xml:"failure,omitempty"`
	Skipped   *JUnitSkipped `xml:"skipped,omitempty"`
}

// JUnitFailure marks a comparison that did not reach significance.
type JUnitFailure struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Body    string `xml:",chardata"`
}

// JUnitSkipped marks a comparison whose tests did not run.
type JUnitSkipped struct {
	Message string `xml:"message,attr,omitempty"`
}

// JUnitProperty is a key-value metadata entry.
type JUnitProperty struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

// ConvertToJUnit turns a set of comparisons into JUnit XML. Every benchmark
// is a test case that passes when both tests are significant at alpha;
// identical error vectors are reported as skipped.
func ConvertToJUnit(name string, results []comparison.NamedResult, alpha float64, at time.Time) *JUnitTestSuites {
	suite := JUnitTestSuite{
		Name:      name,
		Tests:     len(results),
		Timestamp: at.Format(time.RFC3339),
		Properties: []JUnitProperty{
			{Name: "alpha", Value: FormatP(alpha)},
		},
	}
	if len(results) > 0 {
		r := results[0].Result
		suite.Properties = append(suite.Properties,
			JUnitProperty{Name: "task", Value: string(r.Task)},
			JUnitProperty{Name: "loss", Value: string(r.Loss)},
			JUnitProperty{Name: "n", Value: fmt.Sprintf("%d", r.N)},
		)
	}

	for _, nr := range results {
		tc := JUnitTestCase{Name: nr.Benchmark, Classname: name}
		switch {
		case nr.NoDifference:
			tc.Skipped = &JUnitSkipped{Message: "identical error vectors"}
			suite.Skipped++
		case !nr.Significant(alpha):
			tc.Failure = buildFailure(nr, alpha)
			suite.Failures++
		}
		suite.TestCases = append(suite.TestCases, tc)
	}

	return &JUnitTestSuites{
		Tests:      suite.Tests,
		Failures:   suite.Failures,
		TestSuites: []JUnitTestSuite{suite},
	}
}

func buildFailure(nr comparison.NamedResult, alpha float64) *JUnitFailure {
	return &JUnitFailure{
		Message: fmt.Sprintf("%s: t-test p=%s, wilcoxon p=%s", nr.Benchmark, FormatP(nr.TPValue), FormatP(nr.WilcoxonPValue)),
		Type:    "NotSignificant",
		Body: fmt.Sprintf("T-test: %s\nWilcoxon test: %s\n",
			InterpretPValue(nr.TPValue, alpha), InterpretPValue(nr.WilcoxonPValue, alpha)),
	}
}

// WriteJUnit writes indented JUnit XML with the standard header.
func WriteJUnit(w io.Writer, suites *JUnitTestSuites) error {
	data, err := xml.MarshalIndent(suites, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JUnit XML: %w", err)
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return err
	}
	return nil
}

// WriteJUnitXML writes JUnit XML to the specified file path.
func WriteJUnitXML(suites *JUnitTestSuites, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := WriteJUnit(f, suites); err != nil {
		f.Close() //nolint:errcheck
		return err
	}
	return f.Close()
}
