// Package metrics exposes the outcome of a monitoring run as Prometheus
// metrics, written to a file for the node exporter textfile collector.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/custodia-labs/hedwig/internal/core/domain"
)

var (
	keywordMatchesDesc = prometheus.NewDesc(
		"hedwig_keyword_matches",
		"Commits matched per keyword group in the last run",
		[]string{"project", "group"},
		nil,
	)
	patternMatchesDesc = prometheus.NewDesc(
		"hedwig_pattern_matches",
		"Commits matched per pattern in the last run (group-count mode)",
		[]string{"project", "group", "pattern"},
		nil,
	)
	pagesDesc = prometheus.NewDesc(
		"hedwig_pages_fetched",
		"Pages fetched in the last run",
		[]string{"project"},
		nil,
	)
	commitsDesc = prometheus.NewDesc(
		"hedwig_commits_scanned",
		"Commits scanned in the last run",
		[]string{"project"},
		nil,
	)
	successDesc = prometheus.NewDesc(
		"hedwig_run_success",
		"Whether the last run finished without failure",
		[]string{"project", "failure"},
		nil,
	)
	durationDesc = prometheus.NewDesc(
		"hedwig_run_duration_seconds",
		"Wall time of the last run",
		[]string{"project"},
		nil,
	)
	finishedDesc = prometheus.NewDesc(
		"hedwig_run_finished_timestamp_seconds",
		"Unix time the last run finished",
		[]string{"project"},
		nil,
	)
)

// RunCollector is a custom Prometheus collector that reports a RunReport.
type RunCollector struct {
	report *domain.RunReport
}

// NewRunCollector creates a collector for report.
func NewRunCollector(report *domain.RunReport) *RunCollector {
	return &RunCollector{report: report}
}

// Describe sends the metric descriptors to the channel.
func (c *RunCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- keywordMatchesDesc
	ch <- patternMatchesDesc
	ch <- pagesDesc
	ch <- commitsDesc
	ch <- successDesc
	ch <- durationDesc
	ch <- finishedDesc
}

// Collect emits the report as gauges.
func (c *RunCollector) Collect(ch chan<- prometheus.Metric) {
	r := c.report
	if r == nil {
		return
	}
	project := r.Project

	for group, count := range groupCounts(r.Result) {
		ch <- prometheus.MustNewConstMetric(keywordMatchesDesc, prometheus.GaugeValue, float64(count), project, group)
	}
	if r.Result != nil && r.Result.Mode != domain.AggregationMatchList {
		for _, g := range r.Result.Groups {
			for pattern, count := range g.Patterns {
				ch <- prometheus.MustNewConstMetric(patternMatchesDesc, prometheus.GaugeValue,
					float64(count), project, g.Name, pattern)
			}
		}
	}

	ch <- prometheus.MustNewConstMetric(pagesDesc, prometheus.GaugeValue, float64(r.Pages), project)
	ch <- prometheus.MustNewConstMetric(commitsDesc, prometheus.GaugeValue, float64(r.Commits), project)

	success := 0.0
	if r.State == domain.RunStateDone {
		success = 1
	}
	ch <- prometheus.MustNewConstMetric(successDesc, prometheus.GaugeValue, success, project, string(r.Failure))
	ch <- prometheus.MustNewConstMetric(durationDesc, prometheus.GaugeValue, r.Duration().Seconds(), project)
	if !r.FinishedAt.IsZero() {
		ch <- prometheus.MustNewConstMetric(finishedDesc, prometheus.GaugeValue,
			float64(r.FinishedAt.Unix()), project)
	}
}

// groupCounts totals a result per group in either aggregation mode.
func groupCounts(result *domain.AggregateResult) map[string]int {
	counts := make(map[string]int)
	if result == nil {
		return counts
	}
	if result.Mode == domain.AggregationMatchList {
		for _, m := range result.Matches {
			counts[m.Group]++
		}
		return counts
	}
	for _, g := range result.Groups {
		counts[g.Name] = g.Count
	}
	return counts
}

// WriteTextfile writes the report's metrics to path in the text exposition
// format. The file is replaced atomically.
func WriteTextfile(path string, report *domain.RunReport) error {
	registry := prometheus.NewRegistry()
	if err := registry.Register(NewRunCollector(report)); err != nil {
		return err
	}
	return prometheus.WriteToTextfile(path, registry)
}
