package config

import (
	"os"
	"path/filepath"
	"strings"
)

// Video output constants
const (
	// VideoWidth is the output video width (9:16 aspect ratio, Shorts format)
	VideoWidth = 1080

	// VideoHeight is the output video height
	VideoHeight = 1920

	// VideoCodec is the video encoding codec
	VideoCodec = "libx264"

	// AudioCodec is the audio encoding codec used when muxing
	AudioCodec = "aac"

	// AudioBitrate is the audio quality bitrate
	AudioBitrate = "192k"

	// VideoPreset is the ffmpeg encoding speed preset
	VideoPreset = "medium"

	// VideoCRF is the constant rate factor (lower is better quality)
	VideoCRF = 23

	// VideoFrameRate is the output frame rate
	VideoFrameRate = 30

	// PixelFormat keeps the output playable on most devices
	PixelFormat = "yuv420p"
)

// Quote sourcing constants
const (
	// DefaultQuoteCount is the number of quotes requested per run
	DefaultQuoteCount = 9

	// MaxFetchAttempts bounds the number of LLM round trips per run
	MaxFetchAttempts = 5

	// DefaultDurationSeconds is how long each quote stays on screen
	DefaultDurationSeconds = 10
)

// Text layout constants
const (
	// MaxCharsPerLine is the greedy word-wrap budget for quote text
	MaxCharsPerLine = 25

	// LinePitch is the vertical advance between wrapped quote lines, in pixels
	LinePitch = 100

	// QuoteFontSize is the point size for quote text
	QuoteFontSize = 60

	// TitleFontSize is the point size for the attribution line
	TitleFontSize = 48
)

// Upload constants
const (
	// YouTubeCategoryID used for every upload
	YouTubeCategoryID = "17"

	// YouTubePrivacyStatus sets initial video visibility
	YouTubePrivacyStatus = "private"
)

// MinImageBytes is the size below which a rendered image is considered suspect.
const MinImageBytes = 1000

// Config carries all per-run settings. It is built once at startup and never
// mutated afterwards; every stage receives it by value or pointer-to-const use.
type Config struct {
	QuotesDir   string
	ImagesDir   string
	FramesDir   string
	OutputDir   string
	AudioDir    string
	HistoryFile string

	ClientSecretFile string
	TokenFile        string

	// StrictImageCheck promotes the too-small-image warning to a hard error.
	StrictImageCheck bool

	// S3Bucket enables archiving of finished videos when non-empty.
	S3Bucket string
	S3Prefix string
	S3Region string
}

// Default returns the directory layout used by the CLI.
func Default() Config {
	return Config{
		QuotesDir:        "quotes",
		ImagesDir:        "images",
		FramesDir:        "frames",
		OutputDir:        "output",
		AudioDir:         "audio",
		HistoryFile:      "quotes_history.txt",
		ClientSecretFile: "client_secret.json",
		TokenFile:        "token.json",
	}
}

// FromEnv overlays environment-provided settings on the defaults.
// Required env vars are intentionally none; everything degrades gracefully.
func FromEnv() Config {
	cfg := Default()

	if v := strings.TrimSpace(os.Getenv("QUOTEREEL_HISTORY_FILE")); v != "" {
		cfg.HistoryFile = v
	}
	if v := strings.TrimSpace(os.Getenv("QUOTEREEL_CLIENT_SECRET")); v != "" {
		cfg.ClientSecretFile = v
	}
	if v := strings.TrimSpace(os.Getenv("QUOTEREEL_TOKEN_FILE")); v != "" {
		cfg.TokenFile = v
	}
	if strings.EqualFold(strings.TrimSpace(os.Getenv("QUOTEREEL_STRICT_IMAGES")), "true") {
		cfg.StrictImageCheck = true
	}

	cfg.S3Bucket = strings.TrimSpace(os.Getenv("S3_BUCKET"))
	cfg.S3Region = strings.TrimSpace(os.Getenv("S3_REGION"))
	if p := strings.TrimSpace(os.Getenv("S3_PREFIX")); p != "" {
		cfg.S3Prefix = strings.Trim(p, "/") + "/"
	}

	return cfg
}

// Dirs lists every directory the pipeline needs to exist before a run.
func (c Config) Dirs() []string {
	return []string{c.QuotesDir, c.ImagesDir, c.FramesDir, c.OutputDir, c.AudioDir}
}

// Scoped nests the intermediate working directories under scope so concurrent
// jobs never write the same quote, background, or frame files. The audio
// library and the output directory stay shared; finished videos are keyed by
// name instead.
func (c Config) Scoped(scope string) Config {
	c.QuotesDir = filepath.Join(c.QuotesDir, scope)
	c.ImagesDir = filepath.Join(c.ImagesDir, scope)
	c.FramesDir = filepath.Join(c.FramesDir, scope)
	return c
}
