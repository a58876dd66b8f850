package watcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"trainwatch/pkg/config"
	"trainwatch/pkg/metrics"
)

type fakeSender struct {
	fail     bool
	subjects []string
	bodies   []string
	plots    [][]string
}

func (f *fakeSender) Send(_ context.Context, subject, body string, attachments []string) error {
	if f.fail {
		return errors.New("smtp unavailable")
	}
	f.subjects = append(f.subjects, subject)
	f.bodies = append(f.bodies, body)
	f.plots = append(f.plots, attachments)
	return nil
}

func newTestWatcher(t *testing.T, sender Sender) (*Watcher, string) {
	t.Helper()
	dir := t.TempDir()
	logFile := filepath.Join(dir, "train.log")
	if err := os.WriteFile(logFile, nil, 0644); err != nil {
		t.Fatal(err)
	}

	cfg := config.DefaultConfig()
	cfg.LogFile = logFile
	cfg.CheckInterval = time.Millisecond
	cfg.ReportInterval = time.Millisecond
	cfg.PlotDir = filepath.Join(dir, "plots")

	w := New(cfg, metrics.NewDefaultRegistry(), sender, zap.NewNop())
	// Make every report due immediately.
	w.sched = NewScheduler(0, w.start)
	return w, logFile
}

func appendLog(t *testing.T, path, text string) {
	t.Helper()
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.WriteString(text); err != nil {
		t.Fatal(err)
	}
	f.Close()
}

func TestWatcher_CycleReportsNewContent(t *testing.T) {
	sender := &fakeSender{}
	w, logFile := newTestWatcher(t, sender)

	appendLog(t, logFile, "epoch 1 loss: 0.9 accuracy: 0.5\n")
	w.cycle(context.Background())

	if len(sender.subjects) != 1 {
		t.Fatalf("sender called %d times, want 1", len(sender.subjects))
	}
	if !strings.HasPrefix(sender.subjects[0], "Training Progress Report") {
		t.Errorf("subject = %q, want progress report prefix", sender.subjects[0])
	}
	if !strings.Contains(sender.bodies[0], "epoch 1 loss: 0.9") {
		t.Error("body does not contain the raw new log text")
	}
	if !strings.Contains(sender.bodies[0], "<td>Loss</td>") {
		t.Error("body does not contain the Loss table row")
	}

	// Buffer cleared after confirmed delivery.
	if w.buffer.Len() != 0 {
		t.Errorf("buffer length = %d after successful send, want 0", w.buffer.Len())
	}

	// The primary plot was written and attached.
	if len(sender.plots[0]) == 0 {
		t.Fatal("no plots attached")
	}
	if _, err := os.Stat(sender.plots[0][0]); err != nil {
		t.Errorf("attached plot missing on disk: %v", err)
	}

	series := w.registry.AllSeries()
	if got := series["Loss"]; len(got) != 1 || got[0] != 0.9 {
		t.Errorf("Loss series = %v, want [0.9]", got)
	}
}

func TestWatcher_FailedDeliveryRetainsBuffer(t *testing.T) {
	sender := &fakeSender{fail: true}
	w, logFile := newTestWatcher(t, sender)

	appendLog(t, logFile, "loss: 0.7\n")
	w.cycle(context.Background())

	if w.buffer.Len() == 0 {
		t.Fatal("buffer cleared despite delivery failure")
	}

	// Delivery recovers: the retained text goes out on the next cycle.
	sender.fail = false
	w.cycle(context.Background())

	if len(sender.bodies) != 1 {
		t.Fatalf("sender called %d times after recovery, want 1", len(sender.bodies))
	}
	if !strings.Contains(sender.bodies[0], "loss: 0.7") {
		t.Error("recovered report lost the buffered text")
	}
	if w.buffer.Len() != 0 {
		t.Error("buffer not cleared after successful retry")
	}
}

func TestWatcher_NoContentNoReport(t *testing.T) {
	sender := &fakeSender{}
	w, _ := newTestWatcher(t, sender)

	w.cycle(context.Background())

	if len(sender.subjects) != 0 {
		t.Errorf("sender called %d times with an empty buffer, want 0", len(sender.subjects))
	}
}

func TestWatcher_PollErrorFailsSoft(t *testing.T) {
	sender := &fakeSender{}
	w, logFile := newTestWatcher(t, sender)

	if err := os.Remove(logFile); err != nil {
		t.Fatal(err)
	}

	// Must not panic or send; cursor stays put for the next cycle.
	w.cycle(context.Background())

	if w.poller.Offset() != 0 {
		t.Errorf("cursor = %d after failed poll, want 0", w.poller.Offset())
	}
	if len(sender.subjects) != 0 {
		t.Error("report sent despite poll failure and empty buffer")
	}
}

func TestWatcher_BufferCap(t *testing.T) {
	sender := &fakeSender{fail: true}
	w, _ := newTestWatcher(t, sender)

	chunk := strings.Repeat("x", MaxBufferBytes/2)
	w.bufferText(chunk)
	w.bufferText(chunk)
	w.bufferText("tail marker")

	if w.buffer.Len() != MaxBufferBytes {
		t.Errorf("buffer length = %d, want cap %d", w.buffer.Len(), MaxBufferBytes)
	}
	if !w.truncated {
		t.Error("truncated flag not set after exceeding cap")
	}
	if !strings.HasSuffix(w.buffer.String(), "tail marker") {
		t.Error("newest content was discarded; cap must drop oldest first")
	}
}

func TestWatcher_ShutdownSendsFinalReport(t *testing.T) {
	sender := &fakeSender{}
	w, logFile := newTestWatcher(t, sender)

	appendLog(t, logFile, "loss: 0.3\n")

	// Simulate a poll that buffered content but whose report has not
	// gone out yet.
	sender.fail = true
	w.cycle(context.Background())
	sender.fail = false

	w.shutdown()

	if len(sender.subjects) != 1 {
		t.Fatalf("sender called %d times during shutdown, want 1", len(sender.subjects))
	}
	if !strings.HasPrefix(sender.subjects[0], "Final Training Report") {
		t.Errorf("subject = %q, want final report prefix", sender.subjects[0])
	}
}

func TestWatcher_RunStopsOnCancel(t *testing.T) {
	sender := &fakeSender{}
	w, _ := newTestWatcher(t, sender)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() error = %v, want nil on cancel", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not stop after cancel")
	}
}
