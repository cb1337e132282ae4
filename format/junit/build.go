package junit

import (
	"fmt"

	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-steplib/steps-helix-alm-report/automation"
	"github.com/bitrise-steplib/steps-helix-alm-report/format/junit/parser"
	"github.com/bitrise-steplib/steps-helix-alm-report/format/uniquename"
	"github.com/bitrise-steplib/steps-helix-alm-report/metadata"
)

// BuildFormatter turns JUnit and xUnit report files into an automation build.
type BuildFormatter struct {
	parser parser.Parser
	logger log.Logger
}

// NewBuildFormatter ...
func NewBuildFormatter(reportParser parser.Parser, logger log.Logger) BuildFormatter {
	return BuildFormatter{
		parser: reportParser,
		logger: logger,
	}
}

// GenerateBuild parses the report files in order and assembles their suites.
// The returned bool is false when the files contain no test suite at all.
func (f BuildFormatter) GenerateBuild(buildNumber string, reportFiles []string, buildMetadata *metadata.BuildMetadata) (automation.Build, bool, error) {
	suites, err := f.parser.Parse(reportFiles)
	if err != nil {
		return automation.Build{}, false, fmt.Errorf("failed to parse test reports: %w", err)
	}

	build, ok := f.Assemble(buildNumber, suites, buildMetadata)
	return build, ok, nil
}

// Assemble ...
func (f BuildFormatter) Assemble(buildNumber string, suites []parser.Suite, buildMetadata *metadata.BuildMetadata) (automation.Build, bool) {
	if len(suites) == 0 {
		return automation.Build{}, false
	}

	build := automation.Build{
		Number: buildNumber,
		Source: automation.DefaultSource,
	}
	applyMetadata(&build, buildMetadata)

	timing := NewTimingAggregator(f.logger)
	uniqueNames := uniquename.NewTracker()
	mapper := NewResultMapper(uniqueNames, f.logger)

	for _, suite := range suites {
		timing.ObserveSuite(suite)
		suiteHasDuration := suite.DurationMillis() > 0

		for _, testCase := range suite.Cases {
			if !suiteHasDuration {
				timing.ObserveCase(testCase)
			}
			build.Results = append(build.Results, mapper.Map(testCase, suite))
		}
	}

	timing.Finalize(&build)

	if collisions := uniqueNames.Collisions(); collisions > 0 {
		f.logger.Warnf("%d test case(s) share a unique name, numeric suffixes were added", collisions)
	}

	return build, true
}

func applyMetadata(build *automation.Build, buildMetadata *metadata.BuildMetadata) {
	if buildMetadata == nil {
		return
	}

	if buildMetadata.Description != "" {
		build.Description = buildMetadata.Description
	}
	if buildMetadata.Branch != "" {
		build.Branch = buildMetadata.Branch
	}
	if buildMetadata.ExternalURL != "" {
		build.ExternalURL = buildMetadata.ExternalURL
	}
	if buildMetadata.SourceOverride != "" {
		build.Source = buildMetadata.SourceOverride
	}
	if buildMetadata.PendingRunID != "" {
		build.PendingRunID = buildMetadata.PendingRunID
	}
	if buildMetadata.TestRunSet != nil {
		testRunSet := *buildMetadata.TestRunSet
		build.TestRunSet = &testRunSet
	}
	if len(buildMetadata.RunConfigurationInfo) > 0 {
		build.RunConfigurationInfo = buildMetadata.RunConfigurationInfo
	}
	if len(buildMetadata.Properties) > 0 {
		build.Properties = append([]automation.NameValuePair(nil), buildMetadata.Properties...)
	}
}
