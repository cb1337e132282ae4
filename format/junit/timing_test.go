package junit

import (
	"testing"

	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-steplib/steps-helix-alm-report/automation"
	"github.com/bitrise-steplib/steps-helix-alm-report/format/junit/parser"
	"github.com/stretchr/testify/assert"
)

func Test_GivenSingleTimestampedSuite_WhenFinalizing_ThenUsesItsStartAndDuration(t *testing.T) {
	// Given
	aggregator := NewTimingAggregator(log.NewLogger())
	aggregator.ObserveSuite(suite("2022-05-14T04:40:51", 2))

	// When
	build := automation.Build{}
	aggregator.Finalize(&build)

	// Then
	assert.Equal(t, "2022-05-14T04:40:51", build.StartDate)
	assert.Equal(t, int64(2000), build.Duration)
}

func Test_GivenTwoTimestampedSuites_WhenFinalizing_ThenSpansFromEarliestToEndOfLatest(t *testing.T) {
	// Given
	aggregator := NewTimingAggregator(log.NewLogger())
	aggregator.ObserveSuite(suite("2022-05-14T04:00:10", 30))
	aggregator.ObserveSuite(suite("2022-05-14T04:00:00", 5))

	// When
	build := automation.Build{}
	aggregator.Finalize(&build)

	// Then
	assert.Equal(t, "2022-05-14T04:00:00", build.StartDate)
	assert.Equal(t, int64(10000+30000), build.Duration)
}

func Test_GivenEarliestTimestampWithZone_WhenFinalizing_ThenKeepsOriginalString(t *testing.T) {
	// Given
	aggregator := NewTimingAggregator(log.NewLogger())
	aggregator.ObserveSuite(suite("2022-05-14T06:00:00+02:00", 1))
	aggregator.ObserveSuite(suite("2022-05-14T04:30:00Z", 1))

	// When
	build := automation.Build{}
	aggregator.Finalize(&build)

	// Then
	assert.Equal(t, "2022-05-14T06:00:00+02:00", build.StartDate)
	assert.Equal(t, int64(30*60*1000+1000), build.Duration)
}

func Test_GivenNoTimestamps_WhenFinalizing_ThenSumsCaseDurations(t *testing.T) {
	// Given
	aggregator := NewTimingAggregator(log.NewLogger())
	aggregator.ObserveSuite(parser.Suite{Name: "S"})
	aggregator.ObserveCase(testCase(0.5))
	aggregator.ObserveCase(testCase(0.25))
	aggregator.ObserveCase(testCase(0))

	// When
	build := automation.Build{}
	aggregator.Finalize(&build)

	// Then
	assert.Empty(t, build.StartDate)
	assert.Equal(t, int64(750), build.Duration)
}

func Test_GivenUnparseableTimestamp_WhenObserving_ThenSuiteDurationIsSummed(t *testing.T) {
	// Given
	aggregator := NewTimingAggregator(log.NewLogger())
	aggregator.ObserveSuite(suite("not a date", 3))
	aggregator.ObserveSuite(suite("", 7))

	// When
	build := automation.Build{}
	aggregator.Finalize(&build)

	// Then
	assert.Empty(t, build.StartDate)
	assert.Equal(t, int64(3000), build.Duration)
}

func Test_GivenValidTimestampAfterUnparseableOne_WhenFinalizing_ThenTimestampWins(t *testing.T) {
	// Given
	aggregator := NewTimingAggregator(log.NewLogger())
	aggregator.ObserveSuite(suite("garbage", 3))
	aggregator.ObserveSuite(suite("2022-05-14T04:00:00", 4))
	aggregator.ObserveSuite(suite("garbage", 100))

	// When
	build := automation.Build{}
	aggregator.Finalize(&build)

	// Then
	assert.Equal(t, "2022-05-14T04:00:00", build.StartDate)
	assert.Equal(t, int64(4000), build.Duration)
}

func suite(timestamp string, seconds float64) parser.Suite {
	return parser.Suite{Name: "S", Timestamp: timestamp, Time: &seconds}
}

func testCase(seconds float64) parser.Case {
	return parser.Case{Name: "T", Time: &seconds}
}
