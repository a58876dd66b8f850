package metrics

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Series names produced by the WER parser.
const (
	MetricWER           = "WER"
	MetricSubstitutions = "Substitutions"
	MetricDeletions     = "Deletions"
	MetricInsertions    = "Insertions"
)

// Extra keys carried on WER results.
const (
	ExtraSubstitutions = "substitutions"
	ExtraDeletions     = "deletions"
	ExtraInsertions    = "insertions"
)

// CompositePatterns configures a composite rate parser: a primary rate
// pattern plus optional patterns for its error components. Every pattern
// must have a capture group for the value.
type CompositePatterns struct {
	Rate          string
	Substitutions string
	Deletions     string
	Insertions    string
}

// WERParser extracts a word error rate and its error components from a
// single line. A result is emitted only when the primary rate matched;
// component series grow only when their key was seen on the line, so the
// component series are positionally unaligned with each other and with
// the rate series.
type WERParser struct {
	rate *regexp.Regexp
	subs *regexp.Regexp
	dels *regexp.Regexp
	ins  *regexp.Regexp

	rateValues []float64
	subValues  []float64
	delValues  []float64
	insValues  []float64
}

// NewWERParser creates a WER parser with the default patterns.
func NewWERParser() *WERParser {
	p, err := NewCompositeRateParser(CompositePatterns{
		Rate:          PatternWER,
		Substitutions: PatternSubstitutions,
		Deletions:     PatternDeletions,
		Insertions:    PatternInsertions,
	})
	if err != nil {
		// Default patterns are compile-time constants.
		panic(err)
	}
	return p
}

// NewCompositeRateParser creates a WER parser from explicit patterns.
// Component patterns may be empty, in which case that component is never
// tracked.
func NewCompositeRateParser(patterns CompositePatterns) (*WERParser, error) {
	p := &WERParser{}

	compile := func(name, pattern string) (*regexp.Regexp, error) {
		if pattern == "" {
			return nil, nil
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid %s pattern: %w", name, err)
		}
		if re.NumSubexp() < 1 {
			return nil, fmt.Errorf("%s pattern must have a capture group for the value", name)
		}
		return re, nil
	}

	var err error
	if patterns.Rate == "" {
		return nil, fmt.Errorf("rate pattern is required")
	}
	if p.rate, err = compile("rate", patterns.Rate); err != nil {
		return nil, err
	}
	if p.subs, err = compile("substitutions", patterns.Substitutions); err != nil {
		return nil, err
	}
	if p.dels, err = compile("deletions", patterns.Deletions); err != nil {
		return nil, err
	}
	if p.ins, err = compile("insertions", patterns.Insertions); err != nil {
		return nil, err
	}

	return p, nil
}

// Name returns the primary metric name.
func (p *WERParser) Name() string {
	return MetricWER
}

// Parse attempts to extract the rate and its components from one line.
func (p *WERParser) Parse(line string) *Result {
	line = strings.ToLower(line)

	rate, ok := matchValue(p.rate, line)
	if !ok {
		// Components without a rate on the same line are ignored.
		return nil
	}

	p.rateValues = append(p.rateValues, rate)
	extra := make(map[string]float64)

	if v, ok := matchValue(p.subs, line); ok {
		p.subValues = append(p.subValues, v)
		extra[ExtraSubstitutions] = v
	}
	if v, ok := matchValue(p.dels, line); ok {
		p.delValues = append(p.delValues, v)
		extra[ExtraDeletions] = v
	}
	if v, ok := matchValue(p.ins, line); ok {
		p.insValues = append(p.insValues, v)
		extra[ExtraInsertions] = v
	}

	return &Result{
		Name:  MetricWER,
		Value: rate,
		Extra: extra,
	}
}

// Series returns the rate series plus any component series that have data.
func (p *WERParser) Series() map[string][]float64 {
	series := map[string][]float64{MetricWER: p.rateValues}
	if len(p.subValues) > 0 {
		series[MetricSubstitutions] = p.subValues
	}
	if len(p.delValues) > 0 {
		series[MetricDeletions] = p.delValues
	}
	if len(p.insValues) > 0 {
		series[MetricInsertions] = p.insValues
	}
	return series
}

// matchValue applies a pattern (which may be nil) and parses capture
// group 1 as a float.
func matchValue(re *regexp.Regexp, line string) (float64, bool) {
	if re == nil {
		return 0, false
	}
	m := re.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return value, true
}
