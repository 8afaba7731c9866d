package pipeline

import (
	"strings"
	"testing"

	"quotereel/config"
)

func TestDefaultJob(t *testing.T) {
	job := DefaultJob()
	if job.QuoteCount != config.DefaultQuoteCount {
		t.Fatalf("quote count = %d; want %d", job.QuoteCount, config.DefaultQuoteCount)
	}
	if job.DurationSeconds != config.DefaultDurationSeconds {
		t.Fatalf("duration = %d; want %d", job.DurationSeconds, config.DefaultDurationSeconds)
	}
	if !job.CustomAudio {
		t.Fatal("custom audio should default to on")
	}
	if job.Upload {
		t.Fatal("upload should default to off")
	}
}

func TestOutputName(t *testing.T) {
	plain := outputName(runID(""))
	if !strings.HasPrefix(plain, "quotes_") || !strings.HasSuffix(plain, ".mp4") {
		t.Fatalf("unexpected output name: %q", plain)
	}

	withID := outputName(runID("job42"))
	if !strings.Contains(withID, "_job42.mp4") {
		t.Fatalf("job ID missing from output name: %q", withID)
	}
}

// Two concurrent jobs must not share quote, background, or frame files.
func TestRunScopesWorkingTreePerJob(t *testing.T) {
	cfg := config.Default()
	a := cfg.Scoped(runID("job-a"))
	b := cfg.Scoped(runID("job-b"))

	if a.QuotesDir == b.QuotesDir || a.ImagesDir == b.ImagesDir || a.FramesDir == b.FramesDir {
		t.Fatalf("scoped working trees collide: %v vs %v", a.Dirs(), b.Dirs())
	}
	if a.OutputDir != b.OutputDir || a.AudioDir != b.AudioDir {
		t.Fatal("output and audio directories should stay shared across jobs")
	}
	if !strings.Contains(a.FramesDir, "job-a") {
		t.Fatalf("job ID missing from working tree: %q", a.FramesDir)
	}
}
