package format

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-steplib/steps-helix-alm-report/automation"
	"github.com/bitrise-steplib/steps-helix-alm-report/format/junit"
	"github.com/bitrise-steplib/steps-helix-alm-report/format/junit/parser"
	"github.com/bitrise-steplib/steps-helix-alm-report/metadata"
)

// ReportFormat ...
type ReportFormat string

// Supported report formats ...
const (
	JUnit ReportFormat = "junit"
	XUnit ReportFormat = "xunit"
)

// ErrUnsupportedFormat ...
var ErrUnsupportedFormat = errors.New("report format type is not supported")

// SupportedFormats ...
func SupportedFormats() []ReportFormat {
	return []ReportFormat{JUnit, XUnit}
}

// ParseReportFormat ...
func ParseReportFormat(s string) (ReportFormat, error) {
	f := ReportFormat(strings.ToLower(strings.TrimSpace(s)))
	for _, supported := range SupportedFormats() {
		if f == supported {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, s)
}

// BuildGenerator creates an automation build from report files of one format.
type BuildGenerator interface {
	GenerateBuild(buildNumber string, reportFiles []string, buildMetadata *metadata.BuildMetadata) (automation.Build, bool, error)
}

// NewBuildGenerator returns the generator for the given format.
func NewBuildGenerator(reportFormat ReportFormat, fileOpener parser.FileOpener, logger log.Logger) (BuildGenerator, error) {
	switch reportFormat {
	case JUnit, XUnit:
		return junit.NewBuildFormatter(parser.NewParser(fileOpener, logger), logger), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, reportFormat)
	}
}
