// Package media wraps ffprobe inspection used to validate audio candidates
// and to verify encoded output.
package media

import (
	"encoding/json"
	"fmt"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

type probeStream struct {
	CodecType string `json:"codec_type"`
}

type probeResult struct {
	Streams []probeStream `json:"streams"`
}

// Streams returns the codec types found in the file, in stream order.
func Streams(path string) ([]string, error) {
	out, err := ffmpeg.Probe(path)
	if err != nil {
		return nil, fmt.Errorf("ffprobe failed for %s: %w", path, err)
	}

	var parsed probeResult
	if err := json.Unmarshal([]byte(out), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse ffprobe output for %s: %w", path, err)
	}

	types := make([]string, 0, len(parsed.Streams))
	for _, s := range parsed.Streams {
		types = append(types, s.CodecType)
	}
	return types, nil
}

// Valid reports whether ffprobe can open the file at all.
func Valid(path string) bool {
	_, err := ffmpeg.Probe(path)
	return err == nil
}

// HasAudioStream reports whether the file carries at least one audio stream.
func HasAudioStream(path string) (bool, error) {
	types, err := Streams(path)
	if err != nil {
		return false, err
	}
	for _, t := range types {
		if t == "audio" {
			return true, nil
		}
	}
	return false, nil
}
