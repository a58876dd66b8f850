package metrics

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// StandardParser extracts a single-valued metric using one regex with a
// capture group for the numeric value.
type StandardParser struct {
	name    string
	pattern *regexp.Regexp
	values  []float64
}

// NewStandardParser creates a parser for the named metric.
// The pattern must contain at least one capture group; group 1 is parsed
// as the value.
func NewStandardParser(name, pattern string) (*StandardParser, error) {
	if name == "" {
		return nil, errors.New("metric name is required")
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern for metric %q: %w", name, err)
	}

	if re.NumSubexp() < 1 {
		return nil, fmt.Errorf("pattern for metric %q must have a capture group for the value", name)
	}

	return &StandardParser{
		name:    name,
		pattern: re,
	}, nil
}

// Name returns the metric name.
func (p *StandardParser) Name() string {
	return p.name
}

// Parse attempts to extract the metric from one line.
func (p *StandardParser) Parse(line string) *Result {
	m := p.pattern.FindStringSubmatch(strings.ToLower(line))
	if m == nil {
		return nil
	}

	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		// Malformed numeric text is treated as a non-match.
		return nil
	}

	p.values = append(p.values, value)
	return &Result{Name: p.name, Value: value}
}

// Series returns the single series this parser owns.
func (p *StandardParser) Series() map[string][]float64 {
	return map[string][]float64{p.name: p.values}
}
