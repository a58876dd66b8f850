package metrics

// Parser recognizes one metric (or metric family) in a line of log text.
// Each parser owns the series it produces; no state is shared between
// parsers. Implementations are not safe for concurrent use.
type Parser interface {
	// Name returns the primary metric name for reporting.
	Name() string

	// Parse attempts to extract a metric from one line of text.
	// Matching is case-insensitive. On a match the value is appended to
	// the parser's series and a Result is returned. A line that does not
	// match returns nil; absence of a metric in a line is not an error.
	Parse(line string) *Result

	// Series returns every series this parser owns, keyed by metric name.
	// Series are append-only and ordered by occurrence. The returned
	// slices are the parser's backing storage; callers must not mutate.
	Series() map[string][]float64
}
