package junit

import (
	"time"

	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-steplib/steps-helix-alm-report/automation"
	"github.com/bitrise-steplib/steps-helix-alm-report/format/junit/parser"
)

// TimingAggregator derives the start date and duration of a build from its suites.
//
// When at least one suite carries a valid timestamp the build spans from the earliest
// suite start to the end of the latest started suite. Without timestamps the durations
// are summed, which overstates the duration of concurrently executed tests.
type TimingAggregator struct {
	logger log.Logger

	earliest       *time.Time
	earliestString string
	latest         *time.Time
	latestDuration int64
	totalDuration  int64
}

// NewTimingAggregator ...
func NewTimingAggregator(logger log.Logger) *TimingAggregator {
	return &TimingAggregator{logger: logger}
}

// ObserveSuite ...
func (a *TimingAggregator) ObserveSuite(suite parser.Suite) {
	if suite.Timestamp == "" {
		return
	}

	start, err := ParseTimestamp(suite.Timestamp)
	if err != nil {
		// The suite is handled as one without a timestamp.
		a.logger.Debugf("Ignoring timestamp of test suite (%s): %s", suite.Name, err)
	} else {
		if a.earliest == nil || start.Before(*a.earliest) {
			a.earliest = &start
			a.earliestString = suite.Timestamp
		}
		if a.latest == nil || start.After(*a.latest) {
			a.latest = &start
			a.latestDuration = suite.DurationMillis()
		}
	}

	if a.earliest == nil {
		a.totalDuration += suite.DurationMillis()
	}
}

// ObserveCase is called for the cases of suites which report no duration of their own.
func (a *TimingAggregator) ObserveCase(testCase parser.Case) {
	if duration := testCase.DurationMillis(); duration > 0 {
		a.totalDuration += duration
	}
}

// Finalize writes the aggregated start date and duration to the build.
func (a *TimingAggregator) Finalize(build *automation.Build) {
	if a.earliest == nil {
		build.Duration = a.totalDuration
		return
	}

	build.StartDate = a.earliestString
	build.Duration = (a.latest.Unix()-a.earliest.Unix())*1000 + a.latestDuration
}
