package notifier

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestLogNotifier_WritesEachPosting(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	n := NewLogNotifier(logger)
	if err := n.Notify(samplePostings()); err != nil {
		t.Fatalf("Notify: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Data Analyst") || !strings.Contains(out, "Acme") {
		t.Errorf("log output missing posting fields: %q", out)
	}
}

func TestLogNotifier_EmptyBatch(t *testing.T) {
	var buf bytes.Buffer
	n := NewLogNotifier(slog.New(slog.NewTextHandler(&buf, nil)))

	if err := n.Notify(nil); err != nil {
		t.Fatalf("Notify(nil) = %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output for empty batch, got %q", buf.String())
	}
}
