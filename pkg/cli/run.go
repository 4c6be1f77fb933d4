package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/specvital/spectree/pkg/notify"
	"github.com/specvital/spectree/pkg/report"
	"github.com/specvital/spectree/pkg/runner"
)

func newRunCmd(a *app) *cobra.Command {
	var (
		output    string
		showTests bool
	)

	cmd := &cobra.Command{
		Use:   "run [patterns...]",
		Short: "Execute the selected specs",
		Long: `Run executes every spec matching the given doublestar patterns, one after
another, streaming results and printing a summary. It exits non-zero when a
test or an afterAll hook failed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := a.output(output)
			if err != nil {
				return err
			}
			names, err := a.specs(args)
			if err != nil {
				return err
			}
			return a.run(cmd.OutOrStdout(), cmd.ErrOrStderr(), names, format, showTests || a.cfg.ShowTests)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output format: table, json, yaml")
	cmd.Flags().BoolVar(&showTests, "show-tests", false, "list every test in the summary table")
	return cmd
}

func (a *app) run(stdout, stderr io.Writer, names []string, output string, showTests bool) error {
	collector := report.NewCollector()
	notifiers := []notify.Notifier{collector}
	if output == report.FormatTable {
		notifiers = append(notifiers, notify.NewConsole(stdout, a.cfg.UseColor()))
	}
	if a.logger.Enabled(context.Background(), slog.LevelDebug) {
		notifiers = append(notifiers, notify.NewLogging(a.logger.With("component", "notify")))
	}

	var (
		metricsRegistry *prometheus.Registry
		metrics         *notify.Metrics
	)
	if a.cfg.MetricsFile != "" {
		metricsRegistry = prometheus.NewRegistry()
		var err error
		if metrics, err = notify.NewMetrics(metricsRegistry); err != nil {
			return err
		}
	}
	n := notify.NewMulti(notifiers...)

	planner := a.planner()
	configFailures := 0
	for _, name := range names {
		r, err := planner.Runner(name, runner.WithLogger(a.logger.With("component", "runner", "spec", name)))
		if err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
			configFailures++
			continue
		}
		collector.Begin(name)
		if output == report.FormatTable {
			fmt.Fprintln(stdout, name)
		}
		specNotifier := n
		if metrics != nil {
			specNotifier = notify.NewMulti(n, metrics.For(name))
		}
		if err := r.ExecuteTests(specNotifier); err != nil {
			fmt.Fprintf(stderr, "%s: %v\n", name, err)
			configFailures++
		}
	}

	rep := collector.Report()
	if output == report.FormatTable {
		report.RenderTable(stdout, rep, report.TableOptions{
			Title:     "spectree run " + rep.RunID,
			ShowTests: showTests,
			Color:     a.cfg.UseColor(),
		})
	} else if err := report.Encode(stdout, rep, output); err != nil {
		return err
	}

	if metricsRegistry != nil {
		if err := prometheus.WriteToTextfile(a.cfg.MetricsFile, metricsRegistry); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}

	if configFailures > 0 || rep.HasFailures() {
		return ErrTestsFailed
	}
	return nil
}
