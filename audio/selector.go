// Package audio picks a background track from the local audio directory.
package audio

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"

	"quotereel/media"
)

// extensions lists the audio formats the selector recognizes.
var extensions = []string{"*.mp3", "*.wav", "*.m4a"}

// Select resolves a background track. With an explicit filename it looks only
// for that file inside dir; otherwise it random-picks among the recognized
// audio files present. The empty string means "no usable audio"; callers
// treat that as "make a silent video", never as an error.
func Select(dir, explicitFile string) string {
	if explicitFile != "" {
		path := filepath.Join(dir, explicitFile)
		if _, err := os.Stat(path); err != nil {
			log.Printf("Specified audio file not found: %s", explicitFile)
			log.Printf("Please place the file in the %s directory.", dir)
			return ""
		}
		log.Printf("Using specified audio file: %s", path)
		return validate(path)
	}

	files, err := scan(dir)
	if err != nil {
		log.Printf("Error scanning audio directory: %v", err)
		return ""
	}
	if len(files) == 0 {
		log.Println("No custom audio files found in the audio directory.")
		log.Printf("Please place your MP3, WAV, or M4A files in the %s directory.", dir)
		return ""
	}

	selected := files[rand.Intn(len(files))]
	log.Printf("Selected audio file: %s", selected)
	return validate(selected)
}

func scan(dir string) ([]string, error) {
	var files []string
	for _, pattern := range extensions {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("failed to scan for %s: %w", pattern, err)
		}
		files = append(files, matches...)
	}
	return files, nil
}

// validate probes the candidate; a track ffprobe rejects is discarded.
func validate(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		log.Printf("Error checking audio file: %v", err)
		return ""
	}
	log.Printf("Audio file size: %d bytes", info.Size())

	if !media.Valid(path) {
		log.Printf("Audio validation failed for %s", path)
		return ""
	}
	log.Println("Audio file validation successful")
	return path
}
