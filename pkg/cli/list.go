package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/list"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/specvital/spectree/pkg/domain"
	"github.com/specvital/spectree/pkg/report"
)

func newListCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "list [patterns...]",
		Short: "Print the test plan of the selected specs",
		Long: `List plans every spec matching the given doublestar patterns without
running any hook or test, and prints the description tree.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := a.output(output)
			if err != nil {
				return err
			}
			names, err := a.specs(args)
			if err != nil {
				return err
			}

			result, planErr := a.planner().PlanAll(cmd.Context(), names)
			if result == nil {
				return planErr
			}
			for _, e := range result.Errors {
				fmt.Fprintf(cmd.ErrOrStderr(), "%v\n", e)
			}

			switch format {
			case report.FormatTable:
				renderInventory(cmd.OutOrStdout(), result.Inventory, a.cfg.UseColor())
			default:
				if err := report.Encode(cmd.OutOrStdout(), result.Inventory, format); err != nil {
					return err
				}
			}

			if planErr != nil {
				return planErr
			}
			if len(result.Errors) > 0 {
				return errors.New("some specs could not be planned")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output format: table, json, yaml")
	return cmd
}

// renderInventory prints each plan as a tree of groups and tests.
func renderInventory(w io.Writer, inv *domain.Inventory, color bool) {
	for _, p := range inv.Plans {
		l := list.NewWriter()
		l.SetStyle(list.StyleConnectedRounded)
		appendSuite(l, p.Root, color)
		fmt.Fprintf(w, "%s (%s)\n%s\n", p.Spec, testCount(&p), l.Render())
	}
}

func testCount(p *domain.TestPlan) string {
	runnable := 0
	for _, t := range p.Tests {
		if p.Runnable(t) {
			runnable++
		}
	}
	if runnable == p.CountTests() {
		return fmt.Sprintf("%d tests", runnable)
	}
	return fmt.Sprintf("%d tests, %d runnable", p.CountTests(), runnable)
}

func appendSuite(l list.Writer, s domain.TestSuite, color bool) {
	l.AppendItem(paint(s.Name, s.Status, color))
	l.Indent()
	for _, t := range s.Tests {
		l.AppendItem(paint("should "+t.Name(), t.Status, color))
	}
	for _, child := range s.Suites {
		appendSuite(l, child, color)
	}
	l.UnIndent()
}

func paint(label string, status domain.TestStatus, color bool) string {
	switch status {
	case domain.TestStatusSkipped:
		label += " [skipped]"
		if color {
			return text.FgYellow.Sprint(label)
		}
	case domain.TestStatusFocused:
		label += " [focused]"
		if color {
			return text.FgHiCyan.Sprint(label)
		}
	}
	return label
}
