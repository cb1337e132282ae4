package parser

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-steplib/steps-helix-alm-report/format/attributes"
)

const (
	testSuitesElement = "testsuites"
	testSuiteElement  = "testsuite"
)

// ErrUnsupportedRoot is returned for documents which are neither a <testsuites> nor a <testsuite>.
var ErrUnsupportedRoot = errors.New("unsupported root element")

// FileOpener ...
type FileOpener interface {
	Open(path string) (*os.File, error)
}

// Parser ...
type Parser interface {
	Parse(reportFiles []string) ([]Suite, error)
	ParseReader(name string, r io.Reader) ([]Suite, error)
}

type parser struct {
	fileOpener FileOpener
	logger     log.Logger
}

// NewParser ...
func NewParser(fileOpener FileOpener, logger log.Logger) Parser {
	return &parser{
		fileOpener: fileOpener,
		logger:     logger,
	}
}

// Parse reads every report file in order and returns their suites in document order.
// The first unreadable or malformed file aborts parsing.
func (p parser) Parse(reportFiles []string) ([]Suite, error) {
	var suites []Suite
	for _, reportFile := range reportFiles {
		fileSuites, err := p.parseFile(reportFile)
		if err != nil {
			return nil, err
		}

		p.logger.Debugf("%s: %d test suite(s)", reportFile, len(fileSuites))
		suites = append(suites, fileSuites...)
	}
	return suites, nil
}

func (p parser) parseFile(pth string) ([]Suite, error) {
	f, err := p.fileOpener.Open(pth)
	if err != nil {
		return nil, fmt.Errorf("failed to open report file (%s): %w", pth, err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			p.logger.Warnf("Failed to close report file (%s): %s", pth, err)
		}
	}()

	return p.ParseReader(pth, f)
}

// ParseReader ...
func (p parser) ParseReader(name string, r io.Reader) ([]Suite, error) {
	decoder := xml.NewDecoder(r)

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			return nil, fmt.Errorf("failed to parse report file (%s): no root element", name)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse report file (%s): %w", name, err)
		}

		start, ok := token.(xml.StartElement)
		if !ok {
			continue
		}

		switch start.Name.Local {
		case testSuitesElement:
			var wrapper testSuites
			if err := decoder.DecodeElement(&wrapper, &start); err != nil {
				return nil, fmt.Errorf("failed to parse report file (%s): %w", name, err)
			}
			return convertSuites(name, wrapper.TestSuites)
		case testSuiteElement:
			var single testSuite
			if err := decoder.DecodeElement(&single, &start); err != nil {
				return nil, fmt.Errorf("failed to parse report file (%s): %w", name, err)
			}
			return convertSuites(name, []testSuite{single})
		default:
			return nil, fmt.Errorf("failed to parse report file (%s): %w: <%s>", name, ErrUnsupportedRoot, start.Name.Local)
		}
	}
}

func convertSuites(name string, xmlSuites []testSuite) ([]Suite, error) {
	suites := make([]Suite, 0, len(xmlSuites))
	for _, xmlSuite := range xmlSuites {
		suite, err := xmlSuite.convert()
		if err != nil {
			return nil, fmt.Errorf("invalid test suite (%s) in report file (%s): %w", xmlSuite.Name, name, err)
		}
		suites = append(suites, suite)
	}
	return suites, nil
}

type testSuites struct {
	XMLName    xml.Name    `xml:"testsuites"`
	TestSuites []testSuite `xml:"testsuite"`
}

type testSuite struct {
	XMLName   xml.Name   `xml:"testsuite"`
	Name      string     `xml:"name,attr"`
	Timestamp string     `xml:"timestamp,attr"`
	Hostname  string     `xml:"hostname,attr"`
	Tests     string     `xml:"tests,attr"`
	Failures  string     `xml:"failures,attr"`
	Errors    string     `xml:"errors,attr"`
	Skipped   string     `xml:"skipped,attr"`
	Time      string     `xml:"time,attr"`
	Package   string     `xml:"package,attr"`
	ID        string     `xml:"id,attr"`
	Other     []xml.Attr `xml:",any,attr"`
	TestCases []testCase `xml:"testcase"`
	SystemOut string     `xml:"system-out"`
	SystemErr string     `xml:"system-err"`
}

func (s testSuite) convert() (Suite, error) {
	suiteTime, err := parseSeconds(s.Time)
	if err != nil {
		return Suite{}, err
	}

	suite := Suite{
		Name:       s.Name,
		Timestamp:  s.Timestamp,
		Time:       suiteTime,
		Attributes: convertAttributes(s.Other),
	}

	for _, xmlCase := range s.TestCases {
		testCase, err := xmlCase.convert()
		if err != nil {
			return Suite{}, fmt.Errorf("invalid test case (%s): %w", xmlCase.Name, err)
		}
		suite.Cases = append(suite.Cases, testCase)
	}

	return suite, nil
}

type testCase struct {
	XMLName   xml.Name        `xml:"testcase"`
	Name      string          `xml:"name,attr"`
	ClassName string          `xml:"classname,attr"`
	Time      string          `xml:"time,attr"`
	Other     []xml.Attr      `xml:",any,attr"`
	Error     *problemElement `xml:"error"`
	Failure   *problemElement `xml:"failure"`
	Skipped   *skippedElement `xml:"skipped"`
}

func (c testCase) convert() (Case, error) {
	caseTime, err := parseSeconds(c.Time)
	if err != nil {
		return Case{}, err
	}

	return Case{
		Name:       c.Name,
		ClassName:  c.ClassName,
		Time:       caseTime,
		Outcome:    c.outcome(),
		Attributes: convertAttributes(c.Other),
	}, nil
}

// outcome keeps a single outcome by precedence: error, failure, skipped.
func (c testCase) outcome() Outcome {
	switch {
	case c.Error != nil:
		return Error{Message: c.Error.Message, Type: c.Error.Type, Value: c.Error.Value}
	case c.Failure != nil:
		return Failure{Message: c.Failure.Message, Type: c.Failure.Type, Value: c.Failure.Value}
	case c.Skipped != nil:
		return Skipped{Message: c.Skipped.Message}
	default:
		return nil
	}
}

type problemElement struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Value   string `xml:",chardata"`
}

type skippedElement struct {
	Message string `xml:"message,attr"`
}

func convertAttributes(xmlAttrs []xml.Attr) attributes.Attributes {
	attrs := attributes.New()
	for _, attr := range xmlAttrs {
		if attr.Name.Space == "xmlns" || attr.Name.Local == "xmlns" {
			continue
		}
		attrs.Set(attr.Name.Local, attr.Value)
	}
	return attrs
}

func parseSeconds(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	seconds, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid time attribute (%s): %w", s, err)
	}
	return &seconds, nil
}
