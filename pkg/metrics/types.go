// Package metrics provides pluggable parsers that extract numeric training
// metrics from log lines and accumulate them into per-metric series.
package metrics

// Result is a single parsed metric observation.
// A Result is immutable once created.
type Result struct {
	// Name is the metric name, e.g. "Loss".
	Name string

	// Value is the parsed numeric value.
	Value float64

	// Epoch is the training epoch this observation belongs to, if known.
	Epoch *int

	// Step is the training step this observation belongs to, if known.
	Step *int

	// Extra carries auxiliary values parsed from the same line, keyed by
	// component name. A component absent from the line is an absent key.
	Extra map[string]float64
}
