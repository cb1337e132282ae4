package parser

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/bitrise-io/go-utils/v2/fileutil"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_GivenSingleSuiteRoot_WhenParsing_ThenReturnsOneSuite(t *testing.T) {
	// Given
	p := createParser()
	report := `<testsuite name="S" timestamp="2022-05-14T04:40:51" time="1.5" tests="1">
	<testcase name="T" classname="C" time="0.25"/>
</testsuite>`

	// When
	suites, err := p.ParseReader("report.xml", strings.NewReader(report))

	// Then
	require.NoError(t, err)
	require.Len(t, suites, 1)
	assert.Equal(t, "S", suites[0].Name)
	assert.Equal(t, "2022-05-14T04:40:51", suites[0].Timestamp)
	assert.Equal(t, int64(1500), suites[0].DurationMillis())
	require.Len(t, suites[0].Cases, 1)
	assert.Equal(t, "T", suites[0].Cases[0].Name)
	assert.Equal(t, "C", suites[0].Cases[0].ClassName)
	assert.Equal(t, int64(250), suites[0].Cases[0].DurationMillis())
	assert.Nil(t, suites[0].Cases[0].Outcome)
}

func Test_GivenWrapperRoot_WhenParsing_ThenReturnsSuitesInDocumentOrder(t *testing.T) {
	// Given
	p := createParser()
	report := `<?xml version="1.0"?>
<testsuites>
	<testsuite name="first"/>
	<testsuite name="second"/>
	<testsuite name="third"/>
</testsuites>`

	// When
	suites, err := p.ParseReader("report.xml", strings.NewReader(report))

	// Then
	require.NoError(t, err)
	require.Len(t, suites, 3)
	assert.Equal(t, "first", suites[0].Name)
	assert.Equal(t, "second", suites[1].Name)
	assert.Equal(t, "third", suites[2].Name)
}

func Test_GivenSuiteNestedInSuite_WhenParsing_ThenOnlyTopLevelSuitesAreReturned(t *testing.T) {
	// Given
	p := createParser()
	report := `<testsuites>
	<testsuite name="outer">
		<testsuite name="inner">
			<testcase name="T" classname="C"/>
		</testsuite>
		<testcase name="U" classname="C"/>
	</testsuite>
</testsuites>`

	// When
	suites, err := p.ParseReader("report.xml", strings.NewReader(report))

	// Then
	require.NoError(t, err)
	require.Len(t, suites, 1)
	assert.Equal(t, "outer", suites[0].Name)
	require.Len(t, suites[0].Cases, 1)
	assert.Equal(t, "U", suites[0].Cases[0].Name)
}

func Test_GivenUnknownRoot_WhenParsing_ThenFails(t *testing.T) {
	// Given
	p := createParser()

	// When
	_, err := p.ParseReader("report.xml", strings.NewReader(`<assemblies><assembly/></assemblies>`))

	// Then
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedRoot)
}

func Test_GivenEmptyDocument_WhenParsing_ThenFails(t *testing.T) {
	// Given
	p := createParser()

	// When
	_, err := p.ParseReader("report.xml", strings.NewReader(`<?xml version="1.0"?>`))

	// Then
	require.Error(t, err)
}

func Test_GivenNonStandardAttributes_WhenParsing_ThenKeepsThemInDocumentOrder(t *testing.T) {
	// Given
	p := createParser()
	report := `<testsuite name="S" tests="1" hostname="h" buildAgent="agent-1">
	<testcase name="T" classname="C" time="1" os="Linux" device="vm" tags="a,b"/>
</testsuite>`

	// When
	suites, err := p.ParseReader("report.xml", strings.NewReader(report))

	// Then
	require.NoError(t, err)
	assert.Equal(t, []string{"buildAgent"}, suites[0].Attributes.Keys())
	assert.Equal(t, []string{"os", "device", "tags"}, suites[0].Cases[0].Attributes.Keys())
}

func Test_GivenNamespaceDeclarations_WhenParsing_ThenSkipsThemFromAttributes(t *testing.T) {
	// Given
	p := createParser()
	report := `<testsuite xmlns="urn:junit" xmlns:ci="urn:ci" name="S" tests="1" ci:agent="agent-1">
	<testcase xmlns:ci="urn:ci" name="T" classname="C" ci:device="iPhone"/>
</testsuite>`

	// When
	suites, err := p.ParseReader("report.xml", strings.NewReader(report))

	// Then
	require.NoError(t, err)
	assert.Equal(t, []string{"agent"}, suites[0].Attributes.Keys())
	require.Len(t, suites[0].Cases, 1)
	assert.Equal(t, []string{"device"}, suites[0].Cases[0].Attributes.Keys())
}

func Test_GivenOutcomeElements_WhenParsing_ThenMapsThemToOutcomes(t *testing.T) {
	// Given
	p := createParser()
	report := `<testsuite name="S">
	<testcase name="errored"><error message="m1" type="t1">v1</error></testcase>
	<testcase name="failed"><failure message="m2" type="t2">v2</failure></testcase>
	<testcase name="skipped"><skipped message="m3"/></testcase>
	<testcase name="passed"/>
</testsuite>`

	// When
	suites, err := p.ParseReader("report.xml", strings.NewReader(report))

	// Then
	require.NoError(t, err)
	cases := suites[0].Cases
	require.Len(t, cases, 4)
	assert.Equal(t, Error{Message: "m1", Type: "t1", Value: "v1"}, cases[0].Outcome)
	assert.Equal(t, Failure{Message: "m2", Type: "t2", Value: "v2"}, cases[1].Outcome)
	assert.Equal(t, Skipped{Message: "m3"}, cases[2].Outcome)
	assert.Nil(t, cases[3].Outcome)
}

func Test_GivenSeveralOutcomeElements_WhenParsing_ThenErrorWinsOverFailureAndSkipped(t *testing.T) {
	// Given
	p := createParser()
	report := `<testsuite name="S">
	<testcase name="T"><skipped/><failure message="f"/><error message="e"/></testcase>
	<testcase name="U"><skipped/><failure message="f"/></testcase>
</testsuite>`

	// When
	suites, err := p.ParseReader("report.xml", strings.NewReader(report))

	// Then
	require.NoError(t, err)
	assert.Equal(t, Error{Message: "e"}, suites[0].Cases[0].Outcome)
	assert.Equal(t, Failure{Message: "f"}, suites[0].Cases[1].Outcome)
}

func Test_GivenInvalidTimeAttribute_WhenParsing_ThenFails(t *testing.T) {
	// Given
	p := createParser()

	// When
	_, err := p.ParseReader("report.xml", strings.NewReader(`<testsuite name="S"><testcase name="T" time="fast"/></testsuite>`))

	// Then
	require.Error(t, err)
	assert.Contains(t, err.Error(), "report.xml")
}

func Test_GivenMissingTimeAttribute_WhenParsing_ThenDurationIsAbsent(t *testing.T) {
	// Given
	p := createParser()

	// When
	suites, err := p.ParseReader("report.xml", strings.NewReader(`<testsuite name="S"><testcase name="T"/></testsuite>`))

	// Then
	require.NoError(t, err)
	assert.Nil(t, suites[0].Time)
	assert.Nil(t, suites[0].Cases[0].Time)
	assert.Equal(t, int64(0), suites[0].DurationMillis())
}

func Test_GivenReportFiles_WhenParsing_ThenConcatenatesSuitesInFileOrder(t *testing.T) {
	// Given
	p := createParser()
	files := []string{
		filepath.Join("..", "testdata", "single_suite_no_tests.xml"),
		filepath.Join("..", "testdata", "wrapper_two_suites_no_tests.xml"),
	}

	// When
	suites, err := p.Parse(files)

	// Then
	require.NoError(t, err)
	require.Len(t, suites, 3)
	assert.Equal(t, "Empty", suites[0].Name)
	assert.Equal(t, "EmptyFirst", suites[1].Name)
	assert.Equal(t, "EmptySecond", suites[2].Name)
}

func Test_GivenMalformedFileAmongOthers_WhenParsing_ThenFailsWithoutPartialResult(t *testing.T) {
	// Given
	p := createParser()
	files := []string{
		filepath.Join("..", "testdata", "single_suite_metadata.xml"),
		filepath.Join("..", "testdata", "invalid.xml"),
	}

	// When
	suites, err := p.Parse(files)

	// Then
	require.Error(t, err)
	assert.Nil(t, suites)
	assert.Contains(t, err.Error(), "invalid.xml")
}

func Test_GivenMissingFile_WhenParsing_ThenFails(t *testing.T) {
	// Given
	p := createParser()

	// When
	_, err := p.Parse([]string{filepath.Join(t.TempDir(), "missing.xml")})

	// Then
	require.Error(t, err)
}

func createParser() Parser {
	return NewParser(fileutil.NewFileManager(), log.NewLogger())
}
