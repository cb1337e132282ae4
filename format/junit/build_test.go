package junit

import (
	"path/filepath"
	"testing"

	"github.com/bitrise-io/go-utils/v2/fileutil"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-steplib/steps-helix-alm-report/automation"
	"github.com/bitrise-steplib/steps-helix-alm-report/format/attributes"
	"github.com/bitrise-steplib/steps-helix-alm-report/format/junit/parser"
	"github.com/bitrise-steplib/steps-helix-alm-report/metadata"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_GivenNoSuites_WhenAssembling_ThenThereIsNoBuild(t *testing.T) {
	// Given
	formatter := createFormatter()

	// When
	_, ok := formatter.Assemble("1", nil, nil)

	// Then
	assert.False(t, ok)
}

func Test_GivenSuiteWithoutCases_WhenAssembling_ThenBuildHasNoResults(t *testing.T) {
	// Given
	formatter := createFormatter()

	// When
	build, ok := formatter.Assemble("1", []parser.Suite{{Name: "S"}}, nil)

	// Then
	require.True(t, ok)
	assert.Equal(t, "1", build.Number)
	assert.Equal(t, automation.DefaultSource, build.Source)
	assert.Nil(t, build.Results)
	assert.Nil(t, build.Properties)
}

func Test_GivenMetadata_WhenAssembling_ThenCopiesNonEmptyFields(t *testing.T) {
	// Given
	formatter := createFormatter()
	buildMetadata := metadata.New()
	buildMetadata.Description = "desc"
	buildMetadata.Branch = "main"
	buildMetadata.ExternalURL = "https://ci.example.com/1"
	buildMetadata.SourceOverride = "bitrise"
	buildMetadata.PendingRunID = "12"
	buildMetadata.TestRunSet = &automation.IDLabelPair{ID: 4, Label: "Smoke"}
	buildMetadata.RunConfigurationInfo = map[string]any{"type": "jenkins"}
	buildMetadata.Properties = []automation.NameValuePair{{Name: "commit", Value: "abc"}}

	// When
	build, ok := formatter.Assemble("42", []parser.Suite{{Name: "S"}}, &buildMetadata)

	// Then
	require.True(t, ok)
	want := automation.Build{
		Number:               "42",
		Description:          "desc",
		Branch:               "main",
		ExternalURL:          "https://ci.example.com/1",
		Source:               "bitrise",
		PendingRunID:         "12",
		TestRunSet:           &automation.IDLabelPair{ID: 4, Label: "Smoke"},
		RunConfigurationInfo: map[string]any{"type": "jenkins"},
		Properties:           []automation.NameValuePair{{Name: "commit", Value: "abc"}},
	}
	if diff := cmp.Diff(want, build); diff != "" {
		t.Errorf("Assemble() mismatch (-want +got):\n%s", diff)
	}
}

func Test_GivenDuplicateCasesAcrossSuites_WhenAssembling_ThenUniqueNamesAreDeduplicatedPerBuild(t *testing.T) {
	// Given
	formatter := createFormatter()
	suites := []parser.Suite{
		{Name: "S", Cases: []parser.Case{{Name: "T", ClassName: "C"}, {Name: "T", ClassName: "C"}}},
		{Name: "S", Cases: []parser.Case{{Name: "T", ClassName: "C"}}},
	}

	// When
	first, _ := formatter.Assemble("1", suites, nil)
	second, _ := formatter.Assemble("2", suites, nil)

	// Then
	assert.Equal(t, []string{"S:C:T", "S:C:T.1", "S:C:T.2"}, uniqueNames(first))
	assert.Equal(t, []string{"S:C:T", "S:C:T.1", "S:C:T.2"}, uniqueNames(second))
}

func Test_GivenSuiteWithoutDuration_WhenAssembling_ThenCaseDurationsAreSummed(t *testing.T) {
	// Given
	formatter := createFormatter()
	half, quarter, suiteTime := 0.5, 0.25, 9.0
	suites := []parser.Suite{
		{Name: "timed", Time: &suiteTime, Cases: []parser.Case{{Name: "ignored", Time: &half}}},
		{Name: "untimed", Cases: []parser.Case{{Name: "a", Time: &half}, {Name: "b", Time: &quarter}}},
	}

	// When
	build, ok := formatter.Assemble("1", suites, nil)

	// Then
	require.True(t, ok)
	assert.Empty(t, build.StartDate)
	assert.Equal(t, int64(750), build.Duration)
	assert.Len(t, build.Results, 3)
}

func Test_GivenSuitesInOrder_WhenAssembling_ThenResultsFollowDocumentOrder(t *testing.T) {
	// Given
	formatter := createFormatter()
	suites := []parser.Suite{
		{Name: "A", Cases: []parser.Case{{Name: "1"}, {Name: "2"}}},
		{Name: "B", Cases: []parser.Case{{Name: "3"}}},
	}

	// When
	build, _ := formatter.Assemble("1", suites, nil)

	// Then
	var names []string
	for _, result := range build.Results {
		names = append(names, result.Name)
	}
	assert.Equal(t, []string{"1", "2", "3"}, names)
}

func Test_GivenSuiteMetadataFile_WhenGenerating_ThenUsesSuiteTiming(t *testing.T) {
	// Given
	formatter := createFormatter()

	// When
	build, ok, err := formatter.GenerateBuild("1", testdata("single_suite_metadata.xml"), nil)

	// Then
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "2022-05-14T04:40:51", build.StartDate)
	assert.Equal(t, int64(123), build.Duration)
	assert.Len(t, build.Results, 2)
}

func Test_GivenSuitesWithoutTestsInTwoFiles_WhenGenerating_ThenSpansAllSuites(t *testing.T) {
	// Given
	formatter := createFormatter()

	// When
	build, ok, err := formatter.GenerateBuild("1", testdata("single_suite_no_tests.xml", "wrapper_two_suites_no_tests.xml"), nil)

	// Then
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "2022-05-14T04:36:20", build.StartDate)
	assert.Equal(t, int64(60000), build.Duration)
	assert.Nil(t, build.Results)
}

func Test_GivenCaseMetadataFile_WhenGenerating_ThenMapsCaseAttributes(t *testing.T) {
	// Given
	formatter := createFormatter()

	// When
	build, ok, err := formatter.GenerateBuild("1", testdata("single_case_metadata.xml"), nil)

	// Then
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "2022-05-14T04:36:20", build.StartDate)
	assert.Equal(t, int64(123), build.Duration)

	want := []automation.Result{{
		Name:         "Login",
		UniqueName:   "login_validation",
		Duration:     123,
		Status:       automation.IDLabelPair{ID: int(automation.StatusPassed)},
		Tags:         []string{"TC-1", "TC-2", "TC-3"},
		Device:       "laptop",
		Manufacturer: "Dell",
		Model:        "G15",
		OS:           "Windows",
		OSVersion:    "10",
		ExternalURL:  "https://mybuilder/jenkins",
		Properties: []automation.NameValuePair{
			{Name: "parameter", Value: "xyz"},
			{Name: "priority", Value: "high"},
		},
	}}
	if diff := cmp.Diff(want, build.Results); diff != "" {
		t.Errorf("GenerateBuild() results mismatch (-want +got):\n%s", diff)
	}
}

func Test_GivenMixedOutcomes_WhenGenerating_ThenResolvesStatuses(t *testing.T) {
	// Given
	formatter := createFormatter()

	// When
	build, ok, err := formatter.GenerateBuild("7", testdata("mixed_outcomes.xml"), nil)

	// Then
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "2022-05-14T10:00:00Z", build.StartDate)
	assert.Equal(t, int64(5000), build.Duration)
	assert.Equal(t, automation.StatusCounts{Total: 6, Passed: 3, Failed: 2, Skipped: 1}, build.StatusCounts())

	assert.Equal(t, "Checkout:cart:pay", build.Results[0].UniqueName)
	assert.Equal(t, "boom", build.Results[0].ErrorMessage)
	assert.Equal(t, "explicit message", build.Results[1].ErrorMessage)
	assert.Contains(t, build.Results[1].Properties, automation.NameValuePair{Name: "failureMessage", Value: "expected 1 but was 2"})
	assert.Equal(t, "not implemented yet", build.Results[2].ErrorMessage)
	assert.Equal(t, "Checkout:cart:pay.1", build.Results[3].UniqueName)
	assert.Equal(t, "pixel", build.Results[5].Device)
}

func Test_GivenInvalidFile_WhenGenerating_ThenFails(t *testing.T) {
	// Given
	formatter := createFormatter()

	// When
	_, ok, err := formatter.GenerateBuild("1", testdata("invalid.xml"), nil)

	// Then
	require.Error(t, err)
	assert.False(t, ok)
}

func Test_GivenFileWithoutRecognizedCases_WhenGenerating_ThenBuildHasNoResults(t *testing.T) {
	// Given
	formatter := createFormatter()

	// When
	build, ok, err := formatter.GenerateBuild("1", testdata("single_case_invalid.xml"), nil)

	// Then
	require.NoError(t, err)
	require.True(t, ok)
	assert.Nil(t, build.Results)
}

func Test_GivenSuiteAttributes_WhenAssembling_ThenTheyDoNotLeakIntoResults(t *testing.T) {
	// Given
	formatter := createFormatter()
	suites := []parser.Suite{{
		Name:       "S",
		Attributes: attributes.FromPairs("device", "suite-device"),
		Cases:      []parser.Case{{Name: "T"}},
	}}

	// When
	build, _ := formatter.Assemble("1", suites, nil)

	// Then
	assert.Empty(t, build.Results[0].Device)
}

func createFormatter() BuildFormatter {
	logger := log.NewLogger()
	return NewBuildFormatter(parser.NewParser(fileutil.NewFileManager(), logger), logger)
}

func testdata(names ...string) []string {
	var paths []string
	for _, name := range names {
		paths = append(paths, filepath.Join("testdata", name))
	}
	return paths
}

func uniqueNames(build automation.Build) []string {
	var names []string
	for _, result := range build.Results {
		names = append(names, result.UniqueName)
	}
	return names
}
