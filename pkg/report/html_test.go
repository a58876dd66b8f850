package report

import (
	"strings"
	"testing"
	"time"
)

func TestRenderHTML(t *testing.T) {
	series := map[string][]float64{
		"Loss":     {0.9, 0.4321},
		"Accuracy": {0.5, 0.8765},
	}
	start := time.Date(2026, 8, 25, 9, 0, 0, 0, time.UTC)
	now := start.Add(1*time.Hour + 30*time.Minute)

	s := BuildSummary(series, "epoch 2 loss: 0.4321\n", start, now)

	body, err := RenderHTML(s)
	if err != nil {
		t.Fatalf("RenderHTML() error = %v", err)
	}

	for _, want := range []string{
		"Training Duration: 1h 30m",
		"<td>Loss</td>",
		"<td>0.4321</td>",
		"<td>Accuracy</td>",
		"<td>0.8765</td>",
		"<pre>epoch 2 loss: 0.4321\n</pre>",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}

	if strings.Contains(body, "discarded") {
		t.Error("truncation note present without truncation")
	}
}

func TestRenderHTML_EscapesLogText(t *testing.T) {
	s := BuildSummary(nil, "<script>alert(1)</script>", time.Now(), time.Now())

	body, err := RenderHTML(s)
	if err != nil {
		t.Fatalf("RenderHTML() error = %v", err)
	}

	if strings.Contains(body, "<script>") {
		t.Error("raw log text was not escaped")
	}
	if !strings.Contains(body, "&lt;script&gt;") {
		t.Error("escaped log text missing from body")
	}
}

func TestRenderHTML_TruncationNote(t *testing.T) {
	s := BuildSummary(nil, "tail", time.Now(), time.Now())
	s.Truncated = true

	body, err := RenderHTML(s)
	if err != nil {
		t.Fatalf("RenderHTML() error = %v", err)
	}
	if !strings.Contains(body, "discarded") {
		t.Error("truncation note missing")
	}
}
