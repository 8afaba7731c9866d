package quotes

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"quotereel/config"
)

// themes rotate through the prompt so consecutive runs pull from different
// corners of the genre.
var themes = []string{
	"classic horror",
	"modern horror",
	"psychological horror",
	"slasher films",
	"supernatural horror",
	"zombie films",
	"vampire movies",
	"ghost stories",
}

// Source fetches unique quotes from a Provider, deduplicating against History.
type Source struct {
	provider Provider
	history  History
	attempts int
}

func NewSource(provider Provider, history History) *Source {
	return &Source{
		provider: provider,
		history:  history,
		attempts: config.MaxFetchAttempts,
	}
}

// Fetch returns up to count quotes never seen before (normalized comparison).
// A shortfall is reported with a warning, never an error: per-attempt API
// failures are logged and the loop moves on. Accepted quotes are appended to
// the history before returning.
func (s *Source) Fetch(ctx context.Context, count int) ([]string, error) {
	log.Printf("Requesting %d quotes (model: %s)...", count, s.provider.ModelName())
	log.Printf("Found %d previously used quotes", s.history.Len())

	var accepted []string
	seenThisRun := make(map[string]struct{})

	for attempt := 1; attempt <= s.attempts && len(accepted) < count; attempt++ {
		log.Printf("Attempt %d to get unique quotes...", attempt)

		theme := themes[rand.Intn(len(themes))]
		seed := fmt.Sprintf("%d", rand.Intn(100000)+1)
		timestamp := time.Now().Format("20060102150405.000000")

		lines, err := s.provider.GenerateQuotes(ctx, count-len(accepted), theme, seed, timestamp)
		if err != nil {
			log.Printf("Error in attempt %d: %v", attempt, err)
			continue
		}

		for _, line := range lines {
			if len(accepted) >= count {
				break
			}
			norm := Normalize(line)
			if _, dup := seenThisRun[norm]; dup {
				log.Printf("  Skipped duplicate: %.50s", line)
				continue
			}
			if s.history.Contains(line) {
				log.Printf("  Skipped duplicate: %.50s", line)
				continue
			}
			seenThisRun[norm] = struct{}{}
			accepted = append(accepted, line)
			log.Printf("  Added unique quote: %.50s", line)
		}
	}

	if len(accepted) < count {
		log.Printf("Warning: only got %d unique quotes out of %d requested", len(accepted), count)
	}

	if err := s.history.Append(accepted); err != nil {
		return nil, fmt.Errorf("failed to persist quote history: %w", err)
	}

	log.Printf("Generated %d unique quotes", len(accepted))
	return accepted, nil
}

// WriteQuoteFiles drops one quote_N.txt per quote into dir, matching the
// numbering used by the background and frame stages.
func WriteQuoteFiles(dir string, list []string) error {
	for i, q := range list {
		path := filepath.Join(dir, fmt.Sprintf("quote_%d.txt", i+1))
		if err := os.WriteFile(path, []byte(q), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}
	return nil
}

// CleanQuoteFiles removes quote_*.txt leftovers from earlier runs so stale
// text can never leak into a new video.
func CleanQuoteFiles(dir string) error {
	matches, err := filepath.Glob(filepath.Join(dir, "quote_*.txt"))
	if err != nil {
		return err
	}
	for _, m := range matches {
		if err := os.Remove(m); err != nil {
			return fmt.Errorf("failed to remove old quote file %s: %w", m, err)
		}
		log.Printf("Removed old quote file: %s", m)
	}
	return nil
}
