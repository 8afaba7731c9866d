package config

import "testing"

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("QUOTEREEL_HISTORY_FILE", "")
	t.Setenv("QUOTEREEL_STRICT_IMAGES", "")
	t.Setenv("S3_BUCKET", "")
	t.Setenv("S3_PREFIX", "")

	cfg := FromEnv()
	if cfg.HistoryFile != "quotes_history.txt" {
		t.Fatalf("history file = %q; want default", cfg.HistoryFile)
	}
	if cfg.StrictImageCheck {
		t.Fatal("strict image check should default to off")
	}
	if cfg.S3Bucket != "" {
		t.Fatal("S3 archiving should default to off")
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("QUOTEREEL_HISTORY_FILE", "/var/lib/quotereel/history.txt")
	t.Setenv("QUOTEREEL_STRICT_IMAGES", "TRUE")
	t.Setenv("S3_BUCKET", "my-bucket")
	t.Setenv("S3_PREFIX", "/reels/")

	cfg := FromEnv()
	if cfg.HistoryFile != "/var/lib/quotereel/history.txt" {
		t.Fatalf("history file override ignored: %q", cfg.HistoryFile)
	}
	if !cfg.StrictImageCheck {
		t.Fatal("strict image check should parse case-insensitively")
	}
	if cfg.S3Bucket != "my-bucket" {
		t.Fatalf("bucket = %q", cfg.S3Bucket)
	}
	if cfg.S3Prefix != "reels/" {
		t.Fatalf("prefix should be trimmed and slash-terminated, got %q", cfg.S3Prefix)
	}
}

func TestDirsListsWorkingTree(t *testing.T) {
	dirs := Default().Dirs()
	if len(dirs) != 5 {
		t.Fatalf("expected 5 working directories, got %d: %v", len(dirs), dirs)
	}
}

func TestScopedNestsIntermediateDirs(t *testing.T) {
	base := Default()
	scoped := base.Scoped("20260825_120000_job42")

	if scoped.QuotesDir == base.QuotesDir || scoped.ImagesDir == base.ImagesDir || scoped.FramesDir == base.FramesDir {
		t.Fatalf("intermediate dirs were not scoped: %v", scoped.Dirs())
	}
	if scoped.OutputDir != base.OutputDir {
		t.Fatalf("output dir must stay shared, got %q", scoped.OutputDir)
	}
	if scoped.AudioDir != base.AudioDir {
		t.Fatalf("audio dir must stay shared, got %q", scoped.AudioDir)
	}
}
