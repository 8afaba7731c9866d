package render

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"quotereel/config"
)

func TestParseQuote(t *testing.T) {
	cases := []struct {
		name      string
		in        string
		wantText  string
		wantTitle string
	}{
		{
			"full form",
			`"I see dead people" - The Sixth Sense (1999)`,
			`"I see dead people"`,
			"The Sixth Sense (1999)",
		},
		{
			"missing title",
			`"We all go a little mad sometimes"`,
			`"We all go a little mad sometimes"`,
			"Unknown",
		},
		{
			"enumeration dot",
			`1. "They're here!" - Poltergeist (1982)`,
			`"They're here!"`,
			"Poltergeist (1982)",
		},
		{
			"enumeration paren",
			`3) "Be afraid" - The Fly (1986)`,
			`"Be afraid"`,
			"The Fly (1986)",
		},
		{
			"splits on first separator only",
			`"A - B" is odd - Some Movie (2000)`,
			`"A`,
			"B\" is odd - Some Movie (2000)",
		},
		{
			"empty title after separator",
			`"Quote" - `,
			`"Quote"`,
			"Unknown",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			text, title := ParseQuote(c.in)
			if text != c.wantText || title != c.wantTitle {
				t.Fatalf("ParseQuote(%q) = (%q, %q); want (%q, %q)",
					c.in, text, title, c.wantText, c.wantTitle)
			}
		})
	}
}

func TestWrapWords(t *testing.T) {
	cases := []struct {
		name   string
		in     string
		budget int
		want   []string
	}{
		{
			"fits on one line",
			"short quote",
			25,
			[]string{"short quote"},
		},
		{
			"wraps greedily",
			"they're coming to get you Barbara",
			25,
			[]string{"they're coming to get you", "Barbara"},
		},
		{
			"single overlong word gets its own line",
			"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaa end",
			25,
			[]string{"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", "end"},
		},
		{
			"empty input",
			"",
			25,
			nil,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := WrapWords(c.in, c.budget)
			if len(got) != len(c.want) {
				t.Fatalf("WrapWords(%q) = %v; want %v", c.in, got, c.want)
			}
			for i := range got {
				if got[i] != c.want[i] {
					t.Fatalf("line %d: got %q; want %q", i, got[i], c.want[i])
				}
			}
		})
	}
}

func TestWrapWordsNeverExceedsBudget(t *testing.T) {
	text := "it's alive it's alive oh in the name of god now I know what it feels like to be god"
	for _, line := range WrapWords(text, config.MaxCharsPerLine) {
		if len(line) > config.MaxCharsPerLine && len(strings.Fields(line)) > 1 {
			t.Fatalf("multi-word line exceeds budget: %q (%d chars)", line, len(line))
		}
	}
}

func TestComposeProducesOneFramePerQuoteInOrder(t *testing.T) {
	cfg := config.Default()
	cfg.ImagesDir = t.TempDir()
	cfg.FramesDir = t.TempDir()

	backgrounds := NewBackgrounds(cfg)
	frames := NewFrames(cfg, LoadFonts())

	list := []string{
		`"One" - A (2001)`,
		`"Two" - B (2002)`,
		`"Three" - C (2003)`,
	}

	for i, q := range list {
		bg, err := backgrounds.Render(i)
		if err != nil {
			t.Fatalf("background %d: %v", i, err)
		}
		framePath := frames.Compose(bg, q, i)

		want := filepath.Join(cfg.FramesDir, fmt.Sprintf("frame_%d.png", i+1))
		if framePath != want {
			t.Fatalf("frame %d path = %q; want %q", i, framePath, want)
		}
		assertValidPNG(t, framePath)
	}
}

func TestComposeSurvivesMissingBackground(t *testing.T) {
	cfg := config.Default()
	cfg.FramesDir = t.TempDir()

	frames := NewFrames(cfg, LoadFonts())
	framePath := frames.Compose(filepath.Join(t.TempDir(), "nope.png"), `"Quote" - Movie (2000)`, 0)
	assertValidPNG(t, framePath)
}

func assertValidPNG(t *testing.T, path string) {
	t.Helper()

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("frame missing: %v", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("frame is not a valid PNG: %v", err)
	}
	if img.Bounds().Dx() != config.VideoWidth || img.Bounds().Dy() != config.VideoHeight {
		t.Fatalf("frame size = %v; want %dx%d", img.Bounds(), config.VideoWidth, config.VideoHeight)
	}
}
