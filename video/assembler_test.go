package video

import (
	"strings"
	"testing"
)

func TestWriteManifest(t *testing.T) {
	var sb strings.Builder
	frames := []string{"/abs/frame_1.png", "/abs/frame_2.png", "/abs/frame_3.png"}

	if err := WriteManifest(&sb, frames, 5); err != nil {
		t.Fatalf("WriteManifest error: %v", err)
	}

	want := "file '/abs/frame_1.png'\n" +
		"duration 5\n" +
		"file '/abs/frame_2.png'\n" +
		"duration 5\n" +
		"file '/abs/frame_3.png'\n" +
		"duration 5\n" +
		"file '/abs/frame_3.png'\n"
	if sb.String() != want {
		t.Fatalf("manifest mismatch:\ngot:\n%s\nwant:\n%s", sb.String(), want)
	}
}

func TestWriteManifestSingleFrame(t *testing.T) {
	var sb strings.Builder
	if err := WriteManifest(&sb, []string{"/abs/only.png"}, 10); err != nil {
		t.Fatalf("WriteManifest error: %v", err)
	}

	lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 manifest lines, got %d: %v", len(lines), lines)
	}
	// The trailing repeat carries no duration entry.
	if lines[2] != "file '/abs/only.png'" {
		t.Fatalf("last line = %q; want trailing file repeat", lines[2])
	}
}

func TestWriteManifestEmpty(t *testing.T) {
	var sb strings.Builder
	if err := WriteManifest(&sb, nil, 10); err != nil {
		t.Fatalf("WriteManifest error: %v", err)
	}
	if sb.Len() != 0 {
		t.Fatalf("empty frame list should produce an empty manifest, got %q", sb.String())
	}
}

func TestAssembleRejectsEmptyFrameList(t *testing.T) {
	_, hasAudio, err := Assemble(nil, "out.mp4", "", 10)
	if err == nil {
		t.Fatal("Assemble should fail with no frames")
	}
	if hasAudio {
		t.Fatal("a failed assembly must not report audio")
	}
}
