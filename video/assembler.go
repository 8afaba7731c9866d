package video

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"quotereel/config"
	"quotereel/media"
)

// WriteManifest emits a concat-demuxer manifest: each frame paired with its
// display duration, then the last frame repeated without a duration entry
// (the demuxer needs the trailing repeat to hold the final frame).
func WriteManifest(w io.Writer, framePaths []string, durationSeconds int) error {
	for _, p := range framePaths {
		if _, err := fmt.Fprintf(w, "file '%s'\nduration %d\n", p, durationSeconds); err != nil {
			return err
		}
	}
	if len(framePaths) > 0 {
		if _, err := fmt.Fprintf(w, "file '%s'\n", framePaths[len(framePaths)-1]); err != nil {
			return err
		}
	}
	return nil
}

// Assemble concatenates frames into a video at outputPath, muxing in
// audioPath when it is present and probe-valid. The silent encode failing is
// fatal; a mux failure falls back to the silent video. The bool reports
// whether the final video actually carries an audio stream.
func Assemble(framePaths []string, outputPath, audioPath string, durationSeconds int) (string, bool, error) {
	if len(framePaths) == 0 {
		return "", false, fmt.Errorf("no frames to assemble")
	}

	absFrames := make([]string, len(framePaths))
	for i, p := range framePaths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return "", false, fmt.Errorf("failed to resolve frame path %s: %w", p, err)
		}
		absFrames[i] = abs
	}
	absOutput, err := filepath.Abs(outputPath)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve output path: %w", err)
	}

	tmpDir, err := os.MkdirTemp("", "quotereel-assemble-")
	if err != nil {
		return "", false, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(tmpDir); err != nil {
			log.Printf("Error cleaning up temp files: %v", err)
		}
	}()

	log.Printf("Creating video with %d frames, duration: %ds each", len(absFrames), durationSeconds)

	// Step 1: silent video from the frame manifest.
	manifestPath := filepath.Join(tmpDir, "frames.txt")
	mf, err := os.Create(manifestPath)
	if err != nil {
		return "", false, fmt.Errorf("failed to create frame manifest: %w", err)
	}
	if err := WriteManifest(mf, absFrames, durationSeconds); err != nil {
		mf.Close()
		return "", false, fmt.Errorf("failed to write frame manifest: %w", err)
	}
	if err := mf.Close(); err != nil {
		return "", false, fmt.Errorf("failed to close frame manifest: %w", err)
	}

	silentPath := filepath.Join(tmpDir, "silent_video.mp4")
	err = ffmpeg.Input(manifestPath, ffmpeg.KwArgs{"f": "concat", "safe": "0"}).
		Output(silentPath, ffmpeg.KwArgs{
			"c:v":     config.VideoCodec,
			"pix_fmt": config.PixelFormat,
			"preset":  config.VideoPreset,
			"crf":     config.VideoCRF,
			"r":       config.VideoFrameRate,
		}).
		OverWriteOutput().
		Run()
	if err != nil {
		return "", false, fmt.Errorf("failed to create silent video: %w", err)
	}
	log.Printf("Silent video created: %s", silentPath)

	// Step 2: mux audio when a valid track was supplied.
	finalPath := silentPath
	hasAudio := false
	if audioPath != "" && media.Valid(audioPath) {
		log.Println("Adding audio to video...")
		muxed, err := muxAudio(silentPath, audioPath, absOutput)
		if err != nil {
			log.Printf("Error adding audio: %v", err)
			log.Println("Using silent video as fallback")
		} else {
			finalPath = muxed
			hasAudio = verifyAudioStream(finalPath)
		}
	} else {
		if audioPath != "" {
			log.Printf("Audio validation failed for %s; producing silent video", audioPath)
		} else {
			log.Println("No audio supplied; producing silent video")
		}
	}

	// Step 3: land the result at the requested output path.
	if finalPath != absOutput {
		if err := copyFile(finalPath, absOutput); err != nil {
			return "", false, fmt.Errorf("failed to copy video to destination: %w", err)
		}
	}

	info, err := os.Stat(absOutput)
	if err != nil {
		return "", false, fmt.Errorf("final video not created: %w", err)
	}
	if info.Size() == 0 {
		return "", false, fmt.Errorf("final video is empty: %s", absOutput)
	}

	log.Printf("Final video created at %s, size: %d bytes", absOutput, info.Size())
	return absOutput, hasAudio, nil
}

// muxAudio copies the video stream and re-encodes the audio to AAC,
// truncating to the shorter of the two inputs.
func muxAudio(videoPath, audioPath, outputPath string) (string, error) {
	videoIn := ffmpeg.Input(videoPath)
	audioIn := ffmpeg.Input(audioPath)

	err := ffmpeg.Output([]*ffmpeg.Stream{videoIn, audioIn}, outputPath, ffmpeg.KwArgs{
		"c:v":      "copy",
		"c:a":      config.AudioCodec,
		"b:a":      config.AudioBitrate,
		"shortest": "",
	}).
		OverWriteOutput().
		Run()
	if err != nil {
		return "", fmt.Errorf("mux failed: %w", err)
	}
	return outputPath, nil
}

// verifyAudioStream double-checks the mux actually landed an audio stream.
// An absent stream is logged, not fatal; a failed probe falls back to the
// mux result.
func verifyAudioStream(path string) bool {
	has, err := media.HasAudioStream(path)
	if err != nil {
		log.Printf("Error verifying audio: %v", err)
		return true
	}
	if has {
		log.Println("Output video contains audio")
	} else {
		log.Println("WARNING: output video does not contain audio")
	}
	return has
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
