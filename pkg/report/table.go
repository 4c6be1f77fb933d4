package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/specvital/spectree/pkg/domain"
)

// TableOptions controls RenderTable.
type TableOptions struct {
	Title string
	// ShowTests adds one row per test below its spec row.
	ShowTests bool
	// Color selects a status-colored style; plain light borders otherwise.
	Color bool
}

// RenderTable writes a summary table of r to w.
func RenderTable(w io.Writer, r *Report, opts TableOptions) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	if opts.Title != "" {
		t.SetTitle(opts.Title)
	}

	t.AppendHeader(table.Row{
		"Type", "ID", "Duration", "Tests", "Passed", "Failed", "Skipped", "Status",
	})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Type", AutoMerge: true},
		{Name: "ID", WidthMax: 120, WidthMaxEnforcer: text.WrapSoft},
		{Name: "Duration", Align: text.AlignRight},
		{Name: "Tests", Align: text.AlignRight},
		{Name: "Passed", Align: text.AlignRight},
		{Name: "Failed", Align: text.AlignRight},
		{Name: "Skipped", Align: text.AlignRight},
	})

	for _, s := range r.Specs {
		t.AppendRow(table.Row{
			"Spec",
			s.Spec,
			formatDuration(specDuration(s)),
			s.Stats.Total,
			s.Stats.Passed,
			s.Stats.Failed,
			s.Stats.Skipped,
			statusOf(s.Stats),
		})
		if opts.ShowTests {
			for _, tr := range s.Tests {
				t.AppendRow(table.Row{
					"Test",
					treePrefix(len(tr.Path)) + tr.Name,
					formatDuration(tr.Duration),
					"", "", "", "",
					strings.ToUpper(resultLabel(tr.Result)),
				})
			}
		}
		for _, gf := range s.GroupFailures {
			t.AppendRow(table.Row{
				"Group",
				treePrefix(len(gf.Path)-1) + strings.Join(gf.Path, domain.PathSeparator),
				"", "", "", "", "",
				"FAIL",
			})
		}
		t.AppendSeparator()
	}

	if opts.Color {
		switch {
		case r.HasFailures():
			t.SetStyle(table.StyleColoredBlackOnRedWhite)
		case r.Stats.Skipped > 0:
			t.SetStyle(table.StyleColoredBlackOnYellowWhite)
		default:
			t.SetStyle(table.StyleColoredBlackOnGreenWhite)
		}
	} else {
		t.SetStyle(table.StyleLight)
	}

	t.AppendFooter(table.Row{
		"TOTAL",
		"",
		formatDuration(r.Duration),
		r.Stats.Total,
		r.Stats.Passed,
		r.Stats.Failed,
		r.Stats.Skipped,
		statusOf(r.Stats),
	})

	t.Render()
}

func statusOf(s Stats) string {
	switch {
	case s.Failed > 0 || s.HookFailures > 0:
		return "FAIL"
	case s.Skipped > 0:
		return "SKIP"
	default:
		return "PASS"
	}
}

func resultLabel(result string) string {
	if result == domain.ResultSkipped.String() {
		return "skip"
	}
	if result == domain.ResultFailed.String() {
		return "fail"
	}
	return "pass"
}

func specDuration(s SpecReport) time.Duration {
	var d time.Duration
	for _, tr := range s.Tests {
		d += tr.Duration
	}
	return d
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.Truncate(time.Millisecond).String()
}

func treePrefix(level int) string {
	if level <= 0 {
		return ""
	}
	return strings.Repeat("│   ", level-1) + "├── "
}
