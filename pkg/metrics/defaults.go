package metrics

// Default patterns for the standard training metrics. Matching is done
// against the lowercased line, so patterns are written in lowercase.
const (
	PatternLoss        = `loss[:\s]+([\d.]+)`
	PatternAccuracy    = `accuracy[:\s]+([\d.]+)`
	PatternValLoss     = `val_loss[:\s]+([\d.]+)`
	PatternValAccuracy = `val_accuracy[:\s]+([\d.]+)`

	PatternWER           = `wer[:\s]+([\d.]+)`
	PatternSubstitutions = `substitutions[:\s]+(\d+)`
	PatternDeletions     = `deletions[:\s]+(\d+)`
	PatternInsertions    = `insertions[:\s]+(\d+)`
)

// Well-known metric names registered by default.
const (
	MetricLoss        = "Loss"
	MetricAccuracy    = "Accuracy"
	MetricValLoss     = "Val_Loss"
	MetricValAccuracy = "Val_Accuracy"
)

// NewDefaultRegistry creates a registry with the standard training
// metrics (loss, accuracy and their validation variants) plus the WER
// composite parser.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()

	defaults := []struct {
		name    string
		pattern string
	}{
		{MetricLoss, PatternLoss},
		{MetricAccuracy, PatternAccuracy},
		{MetricValLoss, PatternValLoss},
		{MetricValAccuracy, PatternValAccuracy},
	}

	for _, d := range defaults {
		p, err := NewStandardParser(d.name, d.pattern)
		if err != nil {
			// Default patterns are compile-time constants.
			panic(err)
		}
		r.Register(p)
	}

	r.Register(NewWERParser())
	return r
}
