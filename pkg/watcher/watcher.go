package watcher

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"trainwatch/pkg/config"
	"trainwatch/pkg/metrics"
	"trainwatch/pkg/report"
)

// MaxBufferBytes caps the pending unsent log buffer. When delivery keeps
// failing the oldest buffered text is discarded first and the eventual
// report notes the truncation.
const MaxBufferBytes = 1 << 20

// Sender delivers a rendered report. Transport details are entirely the
// implementation's concern.
type Sender interface {
	Send(ctx context.Context, subject, htmlBody string, attachments []string) error
}

// Watcher runs the poll/parse/report cycle. All state is owned by the
// single loop; Watcher is not safe for concurrent use.
type Watcher struct {
	cfg      *config.Config
	registry *metrics.Registry
	poller   *Poller
	sched    *Scheduler
	sender   Sender
	log      *zap.Logger

	buffer    strings.Builder
	truncated bool
	start     time.Time

	// now is injectable for tests.
	now func() time.Time
}

// New creates a watcher over the configured log file.
func New(cfg *config.Config, registry *metrics.Registry, sender Sender, log *zap.Logger) *Watcher {
	now := time.Now()
	return &Watcher{
		cfg:      cfg,
		registry: registry,
		poller:   NewPoller(cfg.LogFile),
		sched:    NewScheduler(cfg.ReportInterval, now),
		sender:   sender,
		log:      log,
		start:    now,
		now:      time.Now,
	}
}

// Run executes the watch loop until the context is canceled. On
// cancellation a final report is attempted best-effort before returning.
// A single cycle's failure is logged and the loop continues; Run itself
// returns an error only when the plot directory cannot be created.
func (w *Watcher) Run(ctx context.Context) error {
	if err := os.MkdirAll(w.cfg.PlotDir, 0o755); err != nil {
		return fmt.Errorf("creating plot directory: %w", err)
	}

	w.log.Info("watching training log",
		zap.String("log_file", w.cfg.LogFile),
		zap.Duration("check_interval", w.cfg.CheckInterval),
		zap.Duration("report_interval", w.cfg.ReportInterval))

	timer := time.NewTimer(w.cfg.CheckInterval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			w.shutdown()
			return nil
		case <-timer.C:
		}

		w.cycle(ctx)
		timer.Reset(w.cfg.CheckInterval)
	}
}

// cycle runs one poll/dispatch/report pass.
func (w *Watcher) cycle(ctx context.Context) {
	text, err := w.poller.Poll()
	if err != nil {
		// Fail soft: the cursor did not advance, retry next cycle.
		w.log.Warn("poll failed", zap.Error(err))
		return
	}

	if text != "" {
		matched := 0
		for _, line := range strings.Split(text, "\n") {
			matched += len(w.registry.Dispatch(line))
		}
		w.bufferText(text)
		w.log.Debug("new log content",
			zap.Int("bytes", len(text)),
			zap.Int("metrics_matched", matched),
			zap.Int64("cursor", w.poller.Offset()))
	}

	if w.buffer.Len() > 0 && w.sched.ShouldSend(w.now()) {
		subject := "Training Progress Report - " + w.now().Format("2006-01-02 15:04:05")
		if err := w.report(ctx, subject); err != nil {
			// Buffer is retained; delivery is retried next cycle
			// with no backoff.
			w.log.Warn("report delivery failed", zap.Error(err))
		}
	}
}

// bufferText appends to the pending buffer, discarding the oldest content
// once the cap is exceeded.
func (w *Watcher) bufferText(text string) {
	w.buffer.WriteString(text)
	if w.buffer.Len() <= MaxBufferBytes {
		return
	}

	kept := w.buffer.String()
	kept = kept[len(kept)-MaxBufferBytes:]
	w.buffer.Reset()
	w.buffer.WriteString(kept)
	w.truncated = true
	w.log.Warn("pending buffer exceeded cap, discarded oldest content",
		zap.Int("cap_bytes", MaxBufferBytes))
}

// report renders the summary and plots and attempts delivery. The buffer
// is cleared only after the sender confirms success.
func (w *Watcher) report(ctx context.Context, subject string) error {
	now := w.now()
	series := w.registry.AllSeries()

	summary := report.BuildSummary(series, w.buffer.String(), w.start, now)
	summary.Truncated = w.truncated

	body, err := report.RenderHTML(summary)
	if err != nil {
		return err
	}

	plots, err := report.RenderPlots(series, w.cfg.PlotDir)
	if err != nil {
		// Deliver the text summary even when plotting fails.
		w.log.Warn("plot rendering failed", zap.Error(err))
	}

	if err := w.sender.Send(ctx, subject, body, plots); err != nil {
		return fmt.Errorf("sending report: %w", err)
	}

	w.buffer.Reset()
	w.truncated = false
	w.sched.MarkSent(now)
	w.log.Info("report sent",
		zap.String("subject", subject),
		zap.Int("plots", len(plots)))
	return nil
}

// shutdown attempts one final best-effort report for any buffered text.
func (w *Watcher) shutdown() {
	w.log.Info("stopping log watcher")
	if w.buffer.Len() == 0 {
		return
	}

	// The run context is already canceled; give the final send its own
	// deadline.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	subject := "Final Training Report - " + w.now().Format("2006-01-02 15:04:05")
	if err := w.report(ctx, subject); err != nil {
		w.log.Warn("final report failed", zap.Error(err))
	}
}
