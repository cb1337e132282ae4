package output

import (
	"bytes"
	"fmt"
	"time"

	"github.com/bitrise-steplib/steps-helix-alm-report/automation"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// RenderSummary renders the results of the build as a table, one row per result.
func RenderSummary(build automation.Build) string {
	var buf bytes.Buffer

	t := table.NewWriter()
	t.SetOutputMirror(&buf)
	t.SetTitle(fmt.Sprintf("Automation build %s", build.Number))

	t.AppendHeader(table.Row{"#", "Unique name", "Duration", "Status", "Message"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "#", Align: text.AlignRight},
		{Name: "Unique name", WidthMax: 80, WidthMaxEnforcer: text.WrapSoft},
		{Name: "Duration", Align: text.AlignRight},
		{Name: "Message", WidthMax: 60, WidthMaxEnforcer: text.Trim},
	})

	for i, result := range build.Results {
		t.AppendRow(table.Row{
			i + 1,
			result.UniqueName,
			formatDuration(result.Duration),
			result.ResultStatus().String(),
			result.ErrorMessage,
		})
	}

	counts := build.StatusCounts()
	t.AppendFooter(table.Row{
		"",
		fmt.Sprintf("%d passed, %d failed, %d skipped", counts.Passed, counts.Failed, counts.Skipped),
		formatDuration(build.Duration),
		overallStatus(counts),
		build.StartDate,
	})

	t.SetStyle(table.StyleLight)
	t.Render()

	return buf.String()
}

func overallStatus(counts automation.StatusCounts) string {
	switch {
	case counts.Failed > 0:
		return "FAIL"
	case counts.Skipped > 0:
		return "SKIP"
	default:
		return "PASS"
	}
}

func formatDuration(millis int64) string {
	return (time.Duration(millis) * time.Millisecond).String()
}
