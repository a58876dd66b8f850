// Package report turns aggregated metric series and buffered log text
// into an HTML progress summary and PNG plots.
package report

import (
	"sort"
	"strings"
	"time"

	"trainwatch/pkg/metrics"
)

// MetricSummary is one row of the report table.
type MetricSummary struct {
	Name    string
	Current float64
	Best    float64
}

// Summary is the data behind one progress report.
type Summary struct {
	// Start is when watching began.
	Start time.Time

	// GeneratedAt is when the summary was built.
	GeneratedAt time.Time

	// Metrics holds one row per non-empty series.
	Metrics []MetricSummary

	// NewText is the raw log text accumulated since the last report.
	NewText string

	// Truncated indicates older buffered text was discarded to bound
	// memory.
	Truncated bool
}

// wellKnownOrder fixes the position of the default metrics in the report
// table; any extra metrics follow alphabetically.
var wellKnownOrder = []string{
	metrics.MetricLoss,
	metrics.MetricAccuracy,
	metrics.MetricValLoss,
	metrics.MetricValAccuracy,
	metrics.MetricWER,
	metrics.MetricSubstitutions,
	metrics.MetricDeletions,
	metrics.MetricInsertions,
}

// BuildSummary computes current and best values for every non-empty
// series. Metrics whose series is empty are omitted, not rendered as
// zero. "Best" is the minimum for loss-like metrics (name contains
// "loss", case-insensitive) and the maximum otherwise.
func BuildSummary(series map[string][]float64, newText string, start, now time.Time) *Summary {
	s := &Summary{
		Start:       start,
		GeneratedAt: now,
		NewText:     newText,
	}

	for _, name := range orderedNames(series) {
		values := series[name]
		if len(values) == 0 {
			continue
		}
		s.Metrics = append(s.Metrics, MetricSummary{
			Name:    name,
			Current: values[len(values)-1],
			Best:    bestValue(name, values),
		})
	}

	return s
}

// Duration returns the elapsed watch time.
func (s *Summary) Duration() time.Duration {
	return s.GeneratedAt.Sub(s.Start)
}

// Hours returns the whole hours of the elapsed watch time.
func (s *Summary) Hours() int {
	return int(s.Duration().Hours())
}

// Minutes returns the minutes of the elapsed watch time beyond whole
// hours.
func (s *Summary) Minutes() int {
	return int(s.Duration().Minutes()) % 60
}

func bestValue(name string, values []float64) float64 {
	lossLike := strings.Contains(strings.ToLower(name), "loss")
	best := values[0]
	for _, v := range values[1:] {
		if lossLike && v < best {
			best = v
		}
		if !lossLike && v > best {
			best = v
		}
	}
	return best
}

func orderedNames(series map[string][]float64) []string {
	names := make([]string, 0, len(series))

	known := make(map[string]bool, len(wellKnownOrder))
	for _, name := range wellKnownOrder {
		known[name] = true
		if _, ok := series[name]; ok {
			names = append(names, name)
		}
	}

	var rest []string
	for name := range series {
		if !known[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)

	return append(names, rest...)
}
