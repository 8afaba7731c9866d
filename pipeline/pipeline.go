// Package pipeline ties the generation stages into one sequential run.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"quotereel/archive"
	"quotereel/audio"
	"quotereel/config"
	"quotereel/quotes"
	"quotereel/render"
	"quotereel/upload"
	"quotereel/video"
)

// Job describes one video generation request. The zero value is not usable;
// build jobs with DefaultJob and override fields as needed.
type Job struct {
	ID              string   `json:"id,omitempty"`
	QuoteCount      int      `json:"quote_count"`
	DurationSeconds int      `json:"duration_seconds"`
	Upload          bool     `json:"upload"`
	CustomAudio     bool     `json:"custom_audio"`
	AudioFile       string   `json:"audio_file,omitempty"`
	Title           string   `json:"title,omitempty"`
	Description     string   `json:"description,omitempty"`
	Tags            []string `json:"tags,omitempty"`
}

// DefaultJob mirrors the CLI defaults.
func DefaultJob() Job {
	return Job{
		QuoteCount:      config.DefaultQuoteCount,
		DurationSeconds: config.DefaultDurationSeconds,
		CustomAudio:     true,
	}
}

// Result reports what a run produced.
type Result struct {
	VideoPath  string
	QuoteCount int
	VideoID    string
	HasAudio   bool
}

// Processor owns the stage collaborators shared across runs.
type Processor struct {
	cfg      config.Config
	source   *quotes.Source
	archiver *archive.Client
}

// NewProcessor wires the quote source (provider + history) and the optional
// S3 archiver. A missing LLM credential is an error: there is nothing to
// render without a quote source.
func NewProcessor(ctx context.Context, cfg config.Config) (*Processor, error) {
	provider := quotes.NewDefaultProvider()
	if provider == nil {
		return nil, fmt.Errorf("no quote provider configured: set COHERE_API_KEY or OPENAI_API_KEY")
	}

	history, err := quotes.OpenHistory(cfg.HistoryFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open quote history: %w", err)
	}

	return &Processor{
		cfg:      cfg,
		source:   quotes.NewSource(provider, history),
		archiver: archive.New(ctx, cfg),
	}, nil
}

// Run executes the full pipeline for one job. Enrichment failures (texture,
// audio, archive) degrade and continue; foundational failures (no frames,
// silent encode, upload when requested) return an error.
func (p *Processor) Run(ctx context.Context, job Job) (*Result, error) {
	// Intermediates live in a per-run subtree so concurrent API/Kafka jobs
	// never overwrite each other's quote, background, or frame files.
	id := runID(job.ID)
	cfg := p.cfg.Scoped(id)

	if err := setupDirectories(cfg); err != nil {
		return nil, err
	}

	// Stage 1: quotes.
	list, err := p.source.Fetch(ctx, job.QuoteCount)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("no quotes available; cannot build a video")
	}
	if err := quotes.WriteQuoteFiles(cfg.QuotesDir, list); err != nil {
		return nil, err
	}

	// Stage 2: backgrounds, one per quote.
	backgrounds := render.NewBackgrounds(cfg)
	backgroundPaths := make([]string, len(list))
	for i := range list {
		path, err := backgrounds.Render(i)
		if err != nil {
			return nil, err
		}
		backgroundPaths[i] = path
	}

	// Stage 3: frames. One frame per quote, order preserved; failures become
	// error frames inside Compose.
	frames := render.NewFrames(cfg, render.LoadFonts())
	framePaths := make([]string, len(list))
	for i, q := range list {
		framePaths[i] = frames.Compose(backgroundPaths[i], q, i)
	}

	// Stage 4: audio (advisory; empty string means silent video).
	var audioPath string
	if job.AudioFile != "" {
		audioPath = audio.Select(cfg.AudioDir, job.AudioFile)
	} else if job.CustomAudio {
		audioPath = audio.Select(cfg.AudioDir, "")
	}

	// Stage 5: assemble.
	outputPath := filepath.Join(cfg.OutputDir, outputName(id))
	videoPath, hasAudio, err := video.Assemble(framePaths, outputPath, audioPath, job.DurationSeconds)
	if err != nil {
		return nil, fmt.Errorf("video assembly failed: %w", err)
	}

	result := &Result{
		VideoPath:  videoPath,
		QuoteCount: len(list),
		HasAudio:   hasAudio,
	}

	// Stage 6: optional archive, then optional upload. Archive failures are
	// absorbed; the local artifact is the source of truth.
	if p.archiver != nil {
		if err := p.archiver.ArchiveVideo(ctx, videoPath); err != nil {
			log.Printf("Archive failed: %v", err)
		}
	}

	if job.Upload {
		videoID, err := p.uploadVideo(ctx, job, videoPath)
		if err != nil {
			return result, fmt.Errorf("upload failed (video still available at %s): %w", videoPath, err)
		}
		result.VideoID = videoID
	}

	return result, nil
}

func (p *Processor) uploadVideo(ctx context.Context, job Job, videoPath string) (string, error) {
	uploader, err := upload.NewUploader(ctx, p.cfg)
	if err != nil {
		return "", err
	}

	metadata := upload.DefaultMetadata()
	if job.Title != "" {
		metadata.Title = job.Title
	}
	if job.Description != "" {
		metadata.Description = job.Description
	}
	if len(job.Tags) > 0 {
		metadata.Tags = job.Tags
	}

	log.Println("Uploading video to YouTube (this may take a while)...")
	return uploader.UploadVideo(ctx, videoPath, metadata)
}

// setupDirectories creates the working tree and clears quote files from
// previous runs of the same scope.
func setupDirectories(cfg config.Config) error {
	for _, dir := range cfg.Dirs() {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	if err := quotes.CleanQuoteFiles(cfg.QuotesDir); err != nil {
		return err
	}
	log.Println("Project directories created and cleaned")
	return nil
}

// runID stamps a run with its start time; job IDs from the API/Kafka paths
// are folded in so concurrent jobs share neither working files nor output
// names.
func runID(jobID string) string {
	stamp := time.Now().Format("20060102_150405")
	if jobID != "" {
		return stamp + "_" + jobID
	}
	return stamp
}

func outputName(id string) string {
	return fmt.Sprintf("quotes_%s.mp4", id)
}
